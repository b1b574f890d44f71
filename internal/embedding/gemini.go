package embedding

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini embeds text through the Gemini embedding API.
type Gemini struct {
	client    *genai.Client
	model     string
	batchSize int
}

// GeminiConfig configures the Gemini embedding provider.
type GeminiConfig struct {
	Model     string // default: text-embedding-004
	BatchSize int    // default: 32
}

// NewGemini creates a Gemini embedding provider.
func NewGemini(ctx context.Context, cfg GeminiConfig, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &EncodeError{Message: "API key is required"}
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-004"
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &EncodeError{Message: "failed to create Gemini client", Cause: err}
	}

	return &Gemini{
		client:    client,
		model:     model,
		batchSize: batchSize,
	}, nil
}

// Encode embeds texts in bounded batches and normalizes every vector.
func (g *Gemini) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := g.client.EmbeddingModel(g.model)
	result := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += g.batchSize {
		end := min(start+g.batchSize, len(texts))

		batch := em.NewBatch()
		for _, text := range texts[start:end] {
			batch.AddContent(genai.Text(text))
		}

		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &EncodeError{Message: "batch embed call failed", Cause: err}
		}
		if len(resp.Embeddings) != end-start {
			return nil, &EncodeError{Message: "embedding count does not match input count"}
		}

		for _, emb := range resp.Embeddings {
			result = append(result, Normalize(emb.Values))
		}
	}

	return result, nil
}

// Dimension returns the vector length of the configured model. Every Gemini
// embedding model so far emits 768-dimensional vectors.
func (g *Gemini) Dimension() int {
	return 768
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
