// Package types provides type definitions for structured data used throughout the resume ranker.
package types

import "time"

// RankResult is the artifact produced by the rank step.
type RankResult struct {
	RunID      string            `json:"run_id"`
	CreatedAt  time.Time         `json:"created_at"`
	JobSkills  []string          `json:"jd_skills"`
	TopK       int               `json:"top_k"`
	Candidates []ScoredCandidate `json:"candidates"`
}

// ScoredCandidate represents a single ranked résumé with its similarity
// score and skill evidence.
type ScoredCandidate struct {
	CandidateName  string   `json:"candidate_name"`
	SourceID       string   `json:"filename"`
	Similarity     float64  `json:"similarity"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	SkillCount     int      `json:"skill_count"`
	TotalSkills    int      `json:"total_skills"`
	SkillMatchRate float64  `json:"skill_match_rate"`
	// Summary is the generated fit rationale (nil until the summarize step runs)
	Summary *string `json:"summary,omitempty"`
}
