// Package types provides type definitions for structured data used throughout the resume ranker.
package types

import (
	"github.com/go-playground/validator/v10"
)

// RankRequest represents one ranking invocation as accepted by the HTTP API.
type RankRequest struct {
	JobDescription string          `json:"job_description" validate:"required,min=1"`
	Resumes        []ResumePayload `json:"resumes" validate:"required,min=1,max=30,dive"`
	TopK           int             `json:"top_k" validate:"omitempty,min=1,max=20"`
}

// ResumePayload is one résumé submitted for ranking, already reduced to text.
type ResumePayload struct {
	ID   string `json:"id" validate:"required,min=1"`
	Text string `json:"text" validate:"required,min=1"`
}

// RankResponse is the HTTP API response wrapping a completed ranking.
type RankResponse struct {
	RunID      string            `json:"run_id"`
	JobSkills  []string          `json:"jd_skills"`
	Candidates []ScoredCandidate `json:"candidates"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
