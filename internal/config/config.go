// Package config provides the tunable configuration surface of the ranking
// engine. All knobs carry defaults matching the shipped scoring model; a
// config file or RANKER_* environment variables override them.
package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// Config holds every tunable of the ranking pipeline.
type Config struct {
	Scoring ScoringConfig `mapstructure:"scoring"`
	Skills  SkillsConfig  `mapstructure:"skills"`
	Models  ModelsConfig  `mapstructure:"models"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Summary SummaryConfig `mapstructure:"summary"`
}

// ScoringConfig controls how the two similarity channels combine.
type ScoringConfig struct {
	// FullTextWeight and SkillsWeight must sum to 1.0.
	FullTextWeight float64 `mapstructure:"full-text-weight"`
	SkillsWeight   float64 `mapstructure:"skills-weight"`
	// SkillBonusWeight scales the skill-match-rate bonus added on top of the
	// combined similarity; the final score is capped at 1.0.
	SkillBonusWeight float64 `mapstructure:"skill-bonus-weight"`
	// TopJobSkills bounds how many job skills (in frequency order) feed the
	// match-rate and excerpt construction.
	TopJobSkills int `mapstructure:"top-job-skills"`
}

// SkillsConfig controls skill extraction and matching.
type SkillsConfig struct {
	// TagChunkSize is the character budget per tagging call.
	TagChunkSize int `mapstructure:"tag-chunk-size"`
	// FullTextBudget bounds the full-text extraction pass.
	FullTextBudget int `mapstructure:"full-text-budget"`
	// SectionWindow is how many lines after a section hit are collected.
	SectionWindow int `mapstructure:"section-window"`
	// SectionBudget bounds the section-focused excerpt.
	SectionBudget int `mapstructure:"section-budget"`
	MinSkillLen   int `mapstructure:"min-skill-len"`
	MaxSkillLen   int `mapstructure:"max-skill-len"`
	// PartialMatchRatio is the share of long words of a multi-word skill that
	// must appear in a résumé for a partial match.
	PartialMatchRatio float64 `mapstructure:"partial-match-ratio"`
	// MatchConfidence is the threshold above which a match counts.
	MatchConfidence float64 `mapstructure:"match-confidence"`
}

// ModelsConfig selects and parameterizes the external model backends.
type ModelsConfig struct {
	// EmbedProvider is "gemini" or "http".
	EmbedProvider string `mapstructure:"embed-provider"`
	EmbedModel    string `mapstructure:"embed-model"`
	// EmbedEndpoint is the base URL for the http provider.
	EmbedEndpoint  string `mapstructure:"embed-endpoint"`
	EmbedBatchSize int    `mapstructure:"embed-batch-size"`
	TagModel       string `mapstructure:"tag-model"`
	TagEndpoint    string `mapstructure:"tag-endpoint"`
}

// LimitsConfig mirrors the upload limits of the presentation layer.
type LimitsConfig struct {
	MaxResumes    int `mapstructure:"max-resumes"`
	MaxFileSizeMB int `mapstructure:"max-file-size-mb"`
	DefaultTopK   int `mapstructure:"default-top-k"`
	MinTopK       int `mapstructure:"min-top-k"`
	MaxTopK       int `mapstructure:"max-top-k"`
}

// SummaryConfig controls fit-summary generation.
type SummaryConfig struct {
	// Snippets is how many evidence sentences are fed to the rationale prompt.
	Snippets int `mapstructure:"snippets"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{
			FullTextWeight:   0.35,
			SkillsWeight:     0.65,
			SkillBonusWeight: 0.1,
			TopJobSkills:     20,
		},
		Skills: SkillsConfig{
			TagChunkSize:      400,
			FullTextBudget:    2000,
			SectionWindow:     5,
			SectionBudget:     4000,
			MinSkillLen:       3,
			MaxSkillLen:       50,
			PartialMatchRatio: 0.6,
			MatchConfidence:   0.5,
		},
		Models: ModelsConfig{
			EmbedProvider:  "gemini",
			EmbedModel:     "text-embedding-004",
			EmbedEndpoint:  "http://localhost:8080",
			EmbedBatchSize: 32,
			TagModel:       "dslim/bert-base-NER",
			TagEndpoint:    "https://api-inference.huggingface.co",
		},
		Limits: LimitsConfig{
			MaxResumes:    30,
			MaxFileSizeMB: 5,
			DefaultTopK:   10,
			MinTopK:       1,
			MaxTopK:       20,
		},
		Summary: SummaryConfig{
			Snippets: 5,
		},
	}
}

// SetDefaults registers every default on the given viper instance so that
// config files and environment variables only need to override.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("scoring.full-text-weight", d.Scoring.FullTextWeight)
	v.SetDefault("scoring.skills-weight", d.Scoring.SkillsWeight)
	v.SetDefault("scoring.skill-bonus-weight", d.Scoring.SkillBonusWeight)
	v.SetDefault("scoring.top-job-skills", d.Scoring.TopJobSkills)

	v.SetDefault("skills.tag-chunk-size", d.Skills.TagChunkSize)
	v.SetDefault("skills.full-text-budget", d.Skills.FullTextBudget)
	v.SetDefault("skills.section-window", d.Skills.SectionWindow)
	v.SetDefault("skills.section-budget", d.Skills.SectionBudget)
	v.SetDefault("skills.min-skill-len", d.Skills.MinSkillLen)
	v.SetDefault("skills.max-skill-len", d.Skills.MaxSkillLen)
	v.SetDefault("skills.partial-match-ratio", d.Skills.PartialMatchRatio)
	v.SetDefault("skills.match-confidence", d.Skills.MatchConfidence)

	v.SetDefault("models.embed-provider", d.Models.EmbedProvider)
	v.SetDefault("models.embed-model", d.Models.EmbedModel)
	v.SetDefault("models.embed-endpoint", d.Models.EmbedEndpoint)
	v.SetDefault("models.embed-batch-size", d.Models.EmbedBatchSize)
	v.SetDefault("models.tag-model", d.Models.TagModel)
	v.SetDefault("models.tag-endpoint", d.Models.TagEndpoint)

	v.SetDefault("limits.max-resumes", d.Limits.MaxResumes)
	v.SetDefault("limits.max-file-size-mb", d.Limits.MaxFileSizeMB)
	v.SetDefault("limits.default-top-k", d.Limits.DefaultTopK)
	v.SetDefault("limits.min-top-k", d.Limits.MinTopK)
	v.SetDefault("limits.max-top-k", d.Limits.MaxTopK)

	v.SetDefault("summary.snippets", d.Summary.Snippets)
}

// Load unmarshals and validates the configuration carried by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if sum := c.Scoring.FullTextWeight + c.Scoring.SkillsWeight; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("config error: scoring weights must sum to 1.0, got %.4f", sum)
	}
	if c.Scoring.SkillBonusWeight < 0 || c.Scoring.SkillBonusWeight > 1 {
		return fmt.Errorf("config error: skill-bonus-weight must be in [0,1]")
	}
	if c.Scoring.TopJobSkills < 1 {
		return fmt.Errorf("config error: top-job-skills must be positive")
	}
	if c.Skills.TagChunkSize < 1 {
		return fmt.Errorf("config error: tag-chunk-size must be positive")
	}
	if c.Skills.MinSkillLen < 1 || c.Skills.MaxSkillLen < c.Skills.MinSkillLen {
		return fmt.Errorf("config error: skill length bounds are inverted")
	}
	if c.Skills.PartialMatchRatio <= 0 || c.Skills.PartialMatchRatio > 1 {
		return fmt.Errorf("config error: partial-match-ratio must be in (0,1]")
	}
	if c.Skills.MatchConfidence < 0 || c.Skills.MatchConfidence >= 1 {
		return fmt.Errorf("config error: match-confidence must be in [0,1)")
	}
	if c.Models.EmbedProvider != "gemini" && c.Models.EmbedProvider != "http" {
		return fmt.Errorf("config error: unknown embed-provider %q", c.Models.EmbedProvider)
	}
	if c.Models.EmbedBatchSize < 1 {
		return fmt.Errorf("config error: embed-batch-size must be positive")
	}
	if c.Limits.MinTopK < 1 || c.Limits.MaxTopK < c.Limits.MinTopK {
		return fmt.Errorf("config error: top-k bounds are inverted")
	}
	if c.Limits.DefaultTopK < c.Limits.MinTopK || c.Limits.DefaultTopK > c.Limits.MaxTopK {
		return fmt.Errorf("config error: default-top-k outside [min-top-k, max-top-k]")
	}
	if c.Limits.MaxResumes < 1 || c.Limits.MaxFileSizeMB < 1 {
		return fmt.Errorf("config error: limits must be positive")
	}
	if c.Summary.Snippets < 1 {
		return fmt.Errorf("config error: summary snippets must be positive")
	}
	return nil
}
