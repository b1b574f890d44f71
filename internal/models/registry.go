// Package models owns the process-wide handles to the external embedding
// and tagging models. Both are expensive to construct, so the registry
// builds each one lazily, at most once, and hands the same instance to
// every caller for the life of the process.
package models

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/tagging"
)

// Keys carries the credentials for the model backends.
type Keys struct {
	// Gemini is the API key for the Gemini embedding backend.
	Gemini string
	// HuggingFace is the API key for the Inference API tagger.
	HuggingFace string
	// Embed is the optional bearer token for the http embed provider.
	Embed string
}

// Registry builds and memoizes the model handles. Components receive the
// registry through their constructors instead of reaching for globals, so
// tests can inject one built from fakes.
type Registry struct {
	cfg    config.ModelsConfig
	keys   Keys
	logger *zap.Logger

	embedOnce sync.Once
	embedder  embedding.Provider
	embedErr  error

	tagOnce sync.Once
	tagger  tagging.Tagger
	tagErr  error
}

// NewRegistry creates a registry that constructs backends from config on
// first use.
func NewRegistry(cfg config.ModelsConfig, keys Keys, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{cfg: cfg, keys: keys, logger: logger}
}

// NewStatic returns a registry pre-seeded with the given handles. Tests use
// it to run the pipeline against mock backends.
func NewStatic(provider embedding.Provider, tagger tagging.Tagger) *Registry {
	r := &Registry{logger: zap.NewNop()}
	r.embedOnce.Do(func() { r.embedder = provider })
	r.tagOnce.Do(func() { r.tagger = tagger })
	return r
}

// Embedder returns the shared embedding provider, constructing it on first
// call. The handle is wrapped so concurrent encode calls take turns; a
// construction failure is memoized and returned to every caller.
func (r *Registry) Embedder(ctx context.Context) (embedding.Provider, error) {
	r.embedOnce.Do(func() {
		switch r.cfg.EmbedProvider {
		case "http":
			r.embedder = embedding.NewSerialized(embedding.NewHTTP(embedding.HTTPConfig{
				BaseURL:   r.cfg.EmbedEndpoint,
				Model:     r.cfg.EmbedModel,
				APIKey:    r.keys.Embed,
				BatchSize: r.cfg.EmbedBatchSize,
			}))
			r.logger.Debug("constructed http embedding provider",
				zap.String("endpoint", r.cfg.EmbedEndpoint))
		default:
			gemini, err := embedding.NewGemini(ctx, embedding.GeminiConfig{
				Model:     r.cfg.EmbedModel,
				BatchSize: r.cfg.EmbedBatchSize,
			}, r.keys.Gemini)
			if err != nil {
				r.embedErr = err
				return
			}
			r.embedder = embedding.NewSerialized(gemini)
			r.logger.Debug("constructed gemini embedding provider",
				zap.String("model", r.cfg.EmbedModel))
		}
	})
	return r.embedder, r.embedErr
}

// Tagger returns the shared skill tagger, constructing it on first call.
// Like the embedder, it is serialized: one chunk call at a time.
func (r *Registry) Tagger() (tagging.Tagger, error) {
	r.tagOnce.Do(func() {
		r.tagger = tagging.NewSerialized(tagging.NewHF(tagging.HFConfig{
			BaseURL: r.cfg.TagEndpoint,
			Model:   r.cfg.TagModel,
			APIKey:  r.keys.HuggingFace,
		}))
		r.logger.Debug("constructed huggingface tagger",
			zap.String("model", r.cfg.TagModel))
	})
	return r.tagger, r.tagErr
}
