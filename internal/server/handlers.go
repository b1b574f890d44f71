package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/types"
)

// handleRank scores the submitted résumés against the job description and
// returns the ordered candidate list.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	// Requests carry plain text only, so the cap on the raw body mirrors the
	// per-file upload limit across the whole pool.
	maxBody := int64(s.cfg.Limits.MaxResumes) * int64(s.cfg.Limits.MaxFileSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	var req types.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	topK := req.TopK
	if topK == 0 {
		topK = s.cfg.Limits.DefaultTopK
	}

	resumes := make([]types.Resume, 0, len(req.Resumes))
	for _, payload := range req.Resumes {
		resumes = append(resumes, types.Resume{ID: payload.ID, Text: payload.Text})
	}

	result, err := s.ranker.Rank(r.Context(), req.JobDescription, resumes, topK)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("ranking failed", zap.Error(err))
			s.errorResponse(w, status, "ranking failed")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	jobSkills := result.JobSkills
	if jobSkills == nil {
		jobSkills = []string{}
	}

	s.jsonResponse(w, http.StatusOK, types.RankResponse{
		RunID:      uuid.NewString(),
		JobSkills:  jobSkills,
		Candidates: result.Candidates,
	})
}

// handleCapabilities reports what this deployment can do, so clients don't
// have to probe the summary endpoint to find out whether credentials exist.
func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"summaries_available": s.summarizer != nil && s.summarizer.Available(),
		"max_resumes":         s.cfg.Limits.MaxResumes,
		"max_top_k":           s.cfg.Limits.MaxTopK,
	})
}
