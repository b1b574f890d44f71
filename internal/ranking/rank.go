// Package ranking scores candidate résumés against a job description and
// produces an explainable, ordered candidate list. Two cosine channels feed
// each score: the full texts and skills-focused excerpts, combined with
// fixed weights plus a bounded bonus for the skill-match rate.
package ranking

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/models"
	"github.com/DarkEnough/resume-ranker/internal/names"
	"github.com/DarkEnough/resume-ranker/internal/skills"
	"github.com/DarkEnough/resume-ranker/internal/types"
)

// Ranker runs the scoring pipeline against the shared model handles.
type Ranker struct {
	registry  *models.Registry
	scoring   config.ScoringConfig
	skillsCfg config.SkillsConfig
	logger    *zap.Logger
}

// New creates a ranker. Zero-valued config sections fall back to defaults.
func New(registry *models.Registry, scoring config.ScoringConfig, skillsCfg config.SkillsConfig, logger *zap.Logger) *Ranker {
	d := config.Default()
	if scoring.FullTextWeight == 0 && scoring.SkillsWeight == 0 {
		scoring = d.Scoring
	}
	if scoring.TopJobSkills <= 0 {
		scoring.TopJobSkills = d.Scoring.TopJobSkills
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{registry: registry, scoring: scoring, skillsCfg: skillsCfg, logger: logger}
}

// Result is the output of one ranking run: the ordered candidates plus the
// job's skill list they were measured against.
type Result struct {
	Candidates []types.ScoredCandidate
	JobSkills  []string
}

// Rank scores every résumé against the job description and returns the top
// topK candidates in descending similarity order. Ties keep input order.
// An empty résumé pool or blank job description is rejected up front; an
// embedding failure is fatal because every score depends on it.
func (r *Ranker) Rank(ctx context.Context, jobDescription string, resumes []types.Resume, topK int) (*Result, error) {
	if len(resumes) == 0 {
		return nil, &InputError{Message: "résumé pool is empty"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &InputError{Message: "job description is empty"}
	}

	tagger, err := r.registry.Tagger()
	if err != nil {
		return nil, err
	}
	provider, err := r.registry.Embedder(ctx)
	if err != nil {
		return nil, err
	}

	extractor := skills.NewExtractor(tagger, skills.Config{
		TagChunkSize:   r.skillsCfg.TagChunkSize,
		FullTextBudget: r.skillsCfg.FullTextBudget,
		SectionWindow:  r.skillsCfg.SectionWindow,
		SectionBudget:  r.skillsCfg.SectionBudget,
		MinSkillLen:    r.skillsCfg.MinSkillLen,
		MaxSkillLen:    r.skillsCfg.MaxSkillLen,
	}, r.logger)

	jobSkills, err := extractor.Extract(ctx, jobDescription)
	if err != nil {
		return nil, err
	}
	if len(jobSkills) > r.scoring.TopJobSkills {
		jobSkills = jobSkills[:r.scoring.TopJobSkills]
	}
	if len(jobSkills) == 0 {
		r.logger.Warn("no skills extracted from job description; skill signal degenerates to zero")
	}

	// Skill evidence per résumé, before any embedding work.
	matchedPer := make([][]string, len(resumes))
	missingPer := make([][]string, len(resumes))
	resumeSkillsPer := make([][]string, len(resumes))
	for i, resume := range resumes {
		resumeSkills, err := extractor.Extract(ctx, resume.Text)
		if err != nil {
			return nil, err
		}
		resumeSkillsPer[i] = resumeSkills
		matchedPer[i], missingPer[i] = skills.Partition(jobSkills, skills.NewSetMatcher(resumeSkills))
	}

	// Channel one: full texts, job description first, one batch.
	fullTexts := make([]string, 0, len(resumes)+1)
	fullTexts = append(fullTexts, jobDescription)
	for _, resume := range resumes {
		fullTexts = append(fullTexts, resume.Text)
	}
	fullVecs, err := provider.Encode(ctx, fullTexts)
	if err != nil {
		return nil, err
	}

	// Channel two: skills-focused excerpts, same layout.
	window := r.skillsCfg.SectionWindow
	excerpts := make([]string, 0, len(resumes)+1)
	excerpts = append(excerpts, jobExcerpt(jobDescription, jobSkills, window))
	for i, resume := range resumes {
		excerpts = append(excerpts, resumeExcerpt(resume.Text, matchedPer[i], resumeSkillsPer[i], window))
	}
	skillVecs, err := provider.Encode(ctx, excerpts)
	if err != nil {
		return nil, err
	}

	jdFull, resumeFull := fullVecs[0], fullVecs[1:]
	jdSkills, resumeSkills := skillVecs[0], skillVecs[1:]

	candidates := make([]types.ScoredCandidate, 0, len(resumes))
	for i, resume := range resumes {
		fullSim := float64(embedding.Cosine(jdFull, resumeFull[i]))
		skillsSim := float64(embedding.Cosine(jdSkills, resumeSkills[i]))

		rate := 0.0
		if len(jobSkills) > 0 {
			rate = float64(len(matchedPer[i])) / float64(len(jobSkills))
		}

		combined := r.scoring.FullTextWeight*fullSim + r.scoring.SkillsWeight*skillsSim
		final := clamp01(combined + r.scoring.SkillBonusWeight*rate)

		candidates = append(candidates, types.ScoredCandidate{
			CandidateName:  names.Resolve(resume.Text, resume.ID),
			SourceID:       resume.ID,
			Similarity:     final,
			MatchedSkills:  matchedPer[i],
			MissingSkills:  missingPer[i],
			SkillCount:     len(matchedPer[i]),
			TotalSkills:    len(jobSkills),
			SkillMatchRate: rate,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if topK > 0 && topK < len(candidates) {
		candidates = candidates[:topK]
	}

	r.logger.Info("ranked candidates",
		zap.Int("pool", len(resumes)),
		zap.Int("returned", len(candidates)),
		zap.Int("job_skills", len(jobSkills)))

	return &Result{Candidates: candidates, JobSkills: jobSkills}, nil
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
