// Package coverage turns a ranked candidate list into a per-candidate skill
// coverage report: which job skills each candidate evidences, which are
// missing, and which skills the pool as a whole lacks most often.
package coverage

import (
	"fmt"
	"sort"

	"github.com/DarkEnough/resume-ranker/internal/skills"
	"github.com/DarkEnough/resume-ranker/internal/types"
)

// Analyzer recomputes skill coverage from résumé text. Unlike the ranking
// step's exact set matching, coverage matches against the raw text with the
// substring-plus-partial rule, so the report catches skills the extractor
// missed.
type Analyzer struct {
	partialRatio    float64
	matchConfidence float64
}

// New creates an analyzer. Zero values fall back to the 0.6 partial ratio
// and 0.5 confidence threshold.
func New(partialRatio, matchConfidence float64) *Analyzer {
	return &Analyzer{partialRatio: partialRatio, matchConfidence: matchConfidence}
}

// Analyze builds one CoverageRow per top-N ranked candidate, in rank order.
// Each row is a pure function of the candidate's résumé text and the job
// skill list; nothing is cached across calls.
func (a *Analyzer) Analyze(jobSkills []string, ranked []types.ScoredCandidate, resumes []types.Resume, topN int) ([]types.CoverageRow, error) {
	textByID := make(map[string]string, len(resumes))
	for _, resume := range resumes {
		textByID[resume.ID] = resume.Text
	}

	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}

	rows := make([]types.CoverageRow, 0, topN)
	for _, candidate := range ranked[:topN] {
		text, ok := textByID[candidate.SourceID]
		if !ok {
			return nil, fmt.Errorf("no résumé text for ranked candidate %s", candidate.SourceID)
		}

		matcher := skills.NewTextMatcher(text, a.partialRatio, a.matchConfidence)
		matched, missing := skills.Partition(jobSkills, matcher)

		pct := 0.0
		if len(jobSkills) > 0 {
			pct = float64(len(matched)) / float64(len(jobSkills)) * 100
		}

		rows = append(rows, types.CoverageRow{
			Candidate:     candidate.CandidateName,
			MatchedSkills: matched,
			MissingSkills: missing,
			CoveragePct:   pct,
			MatchCount:    len(matched),
			MissingCount:  len(missing),
		})
	}

	return rows, nil
}

// MissingSkillCounts aggregates how many analyzed candidates are missing
// each skill, most common first; ties order alphabetically.
func MissingSkillCounts(rows []types.CoverageRow) []types.MissingSkillCount {
	counts := make(map[string]int)
	for _, row := range rows {
		for _, skill := range row.MissingSkills {
			counts[skill]++
		}
	}

	result := make([]types.MissingSkillCount, 0, len(counts))
	for skill, count := range counts {
		result = append(result, types.MissingSkillCount{Skill: skill, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Skill < result[j].Skill
	})

	return result
}
