package tagging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HF tags text through the HuggingFace Inference API token-classification
// task.
type HF struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// HFConfig configures the HuggingFace tagger.
type HFConfig struct {
	BaseURL string // default: https://api-inference.huggingface.co
	Model   string // default: dslim/bert-base-NER
	APIKey  string
	Timeout time.Duration // default: 30s
}

// NewHF creates a HuggingFace Inference API tagger.
func NewHF(cfg HFConfig) *HF {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	model := cfg.Model
	if model == "" {
		model = "dslim/bert-base-NER"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HF{
		baseURL: baseURL,
		model:   model,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type hfRequest struct {
	Inputs  string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type hfEntity struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

// TagEntities tags one chunk. Failures come back as *ChunkError so callers
// can skip the chunk and continue.
func (h *HF) TagEntities(ctx context.Context, chunk string) ([]Entity, error) {
	reqBody := hfRequest{Inputs: chunk}
	reqBody.Options.WaitForModel = true

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ChunkError{Message: "failed to marshal request", Cause: err}
	}

	url := fmt.Sprintf("%s/models/%s", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &ChunkError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &ChunkError{Message: "tagging request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ChunkError{Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ChunkError{Message: fmt.Sprintf("tagging API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var parsed []hfEntity
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ChunkError{Message: "failed to parse response", Cause: err}
	}

	entities := make([]Entity, 0, len(parsed))
	for _, e := range parsed {
		entities = append(entities, Entity{Label: e.EntityGroup, Surface: e.Word})
	}
	return entities, nil
}
