// Package types provides type definitions for structured data used throughout the resume ranker.
package types

import "time"

// CoverageReport is the artifact produced by the coverage step.
type CoverageReport struct {
	RunID       string              `json:"run_id"`
	CreatedAt   time.Time           `json:"created_at"`
	JobSkills   []string            `json:"jd_skills"`
	Rows        []CoverageRow       `json:"rows"`
	MostMissing []MissingSkillCount `json:"most_missing"`
}

// CoverageRow is the per-candidate skill coverage breakdown.
type CoverageRow struct {
	Candidate     string   `json:"candidate"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	CoveragePct   float64  `json:"coverage_percentage"`
	MatchCount    int      `json:"match_count"`
	MissingCount  int      `json:"missing_count"`
}

// MissingSkillCount records how many analyzed candidates are missing a skill.
type MissingSkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
