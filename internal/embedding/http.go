package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTP embeds text through an OpenAI-compatible /v1/embeddings endpoint,
// which covers self-hosted inference servers (TEI, Ollama, vLLM).
type HTTP struct {
	baseURL   string
	model     string
	apiKey    string
	batchSize int
	dimension int
	client    *http.Client
}

// HTTPConfig configures the HTTP embedding provider.
type HTTPConfig struct {
	BaseURL   string // default: http://localhost:8080
	Model     string
	APIKey    string        // optional bearer token
	BatchSize int           // default: 32
	Dimension int           // default: 768
	Timeout   time.Duration // default: 30s
}

// NewHTTP creates an embedding provider backed by an OpenAI-compatible
// inference server.
func NewHTTP(cfg HTTPConfig) *HTTP {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = 768
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTP{
		baseURL:   baseURL,
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		batchSize: batchSize,
		dimension: dimension,
		client:    &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Model string   `json:"model,omitempty"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Encode embeds texts in bounded batches and normalizes every vector.
func (e *HTTP) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))

		vectors, err := e.encodeBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		result = append(result, vectors...)
	}

	return result, nil
}

func (e *HTTP) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	jsonBody, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, &EncodeError{Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/v1/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &EncodeError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &EncodeError{Message: "embedding request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &EncodeError{Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &EncodeError{Message: fmt.Sprintf("embedding API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var parsed embedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &EncodeError{Message: "failed to parse response", Cause: err}
	}
	if len(parsed.Data) != len(texts) {
		return nil, &EncodeError{Message: "embedding count does not match input count"}
	}

	// Place by index to preserve input order
	vectors := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, &EncodeError{Message: fmt.Sprintf("embedding index %d out of range", d.Index)}
		}
		vectors[d.Index] = Normalize(d.Embedding)
	}

	return vectors, nil
}

// Dimension returns the configured vector length.
func (e *HTTP) Dimension() int {
	return e.dimension
}
