// Package skills extracts skill phrases from free text and decides which
// job skills a résumé covers.
package skills

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/tagging"
)

// skillLabels are the entity categories treated as skill-like. Everything
// else the tagger recognizes (people, locations) is discarded.
var skillLabels = map[string]bool{
	"SKILL": true,
	"TECH":  true,
	"MISC":  true,
	"ORG":   true,
}

// sectionKeywords mark lines likely to open or belong to a skills-bearing
// section of a résumé or job description.
var sectionKeywords = []string{
	"skill", "technical", "technologies", "expertise", "qualification",
	"experience", "proficient", "competencies", "tools",
}

var bulletPrefixes = []string{"•", "- ", "* ", "·"}

// Config bounds the extraction passes.
type Config struct {
	// TagChunkSize is the character budget per tagging call, sized to stay
	// under the backing model's token ceiling.
	TagChunkSize int
	// FullTextBudget bounds the full-text pass.
	FullTextBudget int
	// SectionWindow is how many lines after a section hit are collected.
	SectionWindow int
	// SectionBudget bounds the section-focused excerpt.
	SectionBudget int
	MinSkillLen   int
	MaxSkillLen   int
}

// DefaultConfig returns the extraction bounds used by the shipped pipeline.
func DefaultConfig() Config {
	return Config{
		TagChunkSize:   400,
		FullTextBudget: 2000,
		SectionWindow:  5,
		SectionBudget:  4000,
		MinSkillLen:    3,
		MaxSkillLen:    50,
	}
}

// Extractor pulls normalized skill phrases out of free text by running a
// token-classification model over skill-bearing excerpts.
type Extractor struct {
	tagger tagging.Tagger
	cfg    Config
	logger *zap.Logger
}

// NewExtractor creates an extractor over the given tagger. Zero config
// fields fall back to defaults.
func NewExtractor(tagger tagging.Tagger, cfg Config, logger *zap.Logger) *Extractor {
	d := DefaultConfig()
	if cfg.TagChunkSize <= 0 {
		cfg.TagChunkSize = d.TagChunkSize
	}
	if cfg.FullTextBudget <= 0 {
		cfg.FullTextBudget = d.FullTextBudget
	}
	if cfg.SectionWindow <= 0 {
		cfg.SectionWindow = d.SectionWindow
	}
	if cfg.SectionBudget <= 0 {
		cfg.SectionBudget = d.SectionBudget
	}
	if cfg.MinSkillLen <= 0 {
		cfg.MinSkillLen = d.MinSkillLen
	}
	if cfg.MaxSkillLen <= 0 {
		cfg.MaxSkillLen = d.MaxSkillLen
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{tagger: tagger, cfg: cfg, logger: logger}
}

// Extract returns the unique normalized skill phrases found in text,
// ordered by descending frequency of the phrase in the text. Downstream
// truncation (top-N job skills) relies on that order as a relevance proxy.
//
// Two passes feed the result: a section-focused excerpt and a bounded
// full-text pass that catches skills outside recognizable headers. A chunk
// whose tagging call fails is skipped with a log line; only context
// cancellation aborts the whole extraction.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var passes []string
	if section := e.sectionExcerpt(text); section != "" {
		passes = append(passes, section)
	}
	passes = append(passes, truncate(text, e.cfg.FullTextBudget))

	seen := make(map[string]bool)
	var found []string
	for _, pass := range passes {
		for _, chunk := range chunked(pass, e.cfg.TagChunkSize) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			entities, err := e.tagger.TagEntities(ctx, chunk)
			if err != nil {
				e.logger.Warn("skipping chunk after tagging failure", zap.Error(err))
				continue
			}
			for _, entity := range entities {
				if !skillLabels[strings.ToUpper(entity.Label)] {
					continue
				}
				skill := cleanSurface(entity.Surface)
				// Length bounds count characters, not bytes.
				if n := utf8.RuneCountInString(skill); n < e.cfg.MinSkillLen || n > e.cfg.MaxSkillLen {
					continue
				}
				if !seen[skill] {
					seen[skill] = true
					found = append(found, skill)
				}
			}
		}
	}

	lower := strings.ToLower(text)
	freq := make(map[string]int, len(found))
	for _, skill := range found {
		freq[skill] = strings.Count(lower, skill)
	}
	sort.SliceStable(found, func(i, j int) bool {
		return freq[found[i]] > freq[found[j]]
	})

	return found, nil
}

// sectionExcerpt collects every line that looks like part of a skills
// section plus a trailing window of following lines, bounded to the
// configured budget.
func (e *Extractor) sectionExcerpt(text string) string {
	lines := strings.Split(text, "\n")

	var collected []string
	for i, line := range lines {
		if !sectionLine(line) {
			continue
		}
		end := min(i+1+e.cfg.SectionWindow, len(lines))
		collected = append(collected, lines[i:end]...)
	}
	if len(collected) == 0 {
		return ""
	}
	return truncate(strings.Join(collected, "\n"), e.cfg.SectionBudget)
}

// FocusSection returns the skill-bearing lines of text (each matched line
// plus window following lines) joined with spaces, or "" when nothing in
// the text looks like a skills section. The similarity scorer uses it to
// build fallback excerpts for the skills channel.
func FocusSection(text string, window int) string {
	if window <= 0 {
		window = DefaultConfig().SectionWindow
	}
	lines := strings.Split(text, "\n")

	var collected []string
	for i, line := range lines {
		if !sectionLine(line) {
			continue
		}
		end := min(i+1+window, len(lines))
		for _, l := range lines[i:end] {
			if trimmed := strings.TrimSpace(l); trimmed != "" {
				collected = append(collected, trimmed)
			}
		}
	}
	return strings.Join(collected, " ")
}

func sectionLine(line string) bool {
	low := strings.ToLower(strings.TrimSpace(line))
	if low == "" {
		return false
	}
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(low, prefix) {
			return true
		}
	}
	for _, keyword := range sectionKeywords {
		if strings.Contains(low, keyword) {
			return true
		}
	}
	return false
}

// cleanSurface normalizes a tagged surface form: sub-word tokenizer
// artifacts are stripped, whitespace collapsed, case folded.
func cleanSurface(surface string) string {
	s := strings.ReplaceAll(surface, "##", "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// chunked splits text into runs of at most size characters. The tagging
// model has a fixed input ceiling, so oversized text goes through in
// slices.
func chunked(text string, size int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
