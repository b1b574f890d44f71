package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/models"
	"github.com/DarkEnough/resume-ranker/internal/server/ratelimit"
	"github.com/DarkEnough/resume-ranker/internal/tagging"
	"github.com/DarkEnough/resume-ranker/internal/types"
)

const serverJobPosting = `Backend Engineer

Required Skills: Python, Django, REST APIs. 3+ years experience building
scalable backend services with Python and Django.`

const serverResumeBackend = `Jane Doe
Senior software engineer with five years of Python and Django experience.
Designed REST APIs serving millions of requests.`

const serverResumeMarketing = `John Smith
Marketing specialist. Excel, PowerPoint, and campaign analytics.`

func testServer(t *testing.T, rl *ratelimit.Config) *Server {
	t.Helper()
	registry := models.NewStatic(embedding.NewMock(0), &tagging.Mock{Vocabulary: map[string]string{
		"python":    "SKILL",
		"django":    "SKILL",
		"rest apis": "SKILL",
		"excel":     "SKILL",
	}})
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	return New(Config{Registry: registry, RateLimit: rl})
}

func rankBody(t *testing.T, topK int) *bytes.Buffer {
	t.Helper()
	req := types.RankRequest{
		JobDescription: serverJobPosting,
		Resumes: []types.ResumePayload{
			{ID: "backend.txt", Text: serverResumeBackend},
			{ID: "marketing.txt", Text: serverResumeMarketing},
		},
		TopK: topK,
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestHandleRank_RanksCandidates(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest("POST", "/v1/rank", rankBody(t, 0))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.RankResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.NotEmpty(t, resp.JobSkills)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, "backend.txt", resp.Candidates[0].SourceID,
		"backend résumé outranks the marketing one")
	assert.Equal(t, "Jane Doe", resp.Candidates[0].CandidateName)
	assert.Greater(t, resp.Candidates[0].Similarity, resp.Candidates[1].Similarity)
}

func TestHandleRank_TopKTruncates(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest("POST", "/v1/rank", rankBody(t, 1))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.RankResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Candidates, 1)
}

func TestHandleRank_InvalidJSON(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest("POST", "/v1/rank", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestHandleRank_ValidationError(t *testing.T) {
	s := testServer(t, nil)

	body := bytes.NewBufferString(`{"job_description": "Engineer", "resumes": []}`)
	req := httptest.NewRequest("POST", "/v1/rank", body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRank_BlankJobDescription(t *testing.T) {
	s := testServer(t, nil)

	body := bytes.NewBufferString(`{"job_description": "   ", "resumes": [{"id": "a.txt", "text": "Python"}]}`)
	req := httptest.NewRequest("POST", "/v1/rank", body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code,
		"whitespace survives validation but the ranker refuses it")
}

func TestHandleCapabilities(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest("GET", "/v1/capabilities", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var caps map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &caps))
	assert.Equal(t, false, caps["summaries_available"])
	assert.Equal(t, float64(30), caps["max_resumes"])
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest("OPTIONS", "/v1/rank", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitExceeded(t *testing.T) {
	s := testServer(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	})

	var rec *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/v1/capabilities", nil)
		rec = httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
}

func TestHealthBypassesRateLimit(t *testing.T) {
	s := testServer(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
