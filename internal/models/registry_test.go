package models

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/tagging"
)

func TestRegistry_EmbedderBuiltOnce(t *testing.T) {
	cfg := config.Default().Models
	cfg.EmbedProvider = "http"
	registry := NewRegistry(cfg, Keys{}, nil)

	first, err := registry.Embedder(context.Background())
	require.NoError(t, err)

	second, err := registry.Embedder(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second, "registry must reuse the constructed handle")
}

func TestRegistry_EmbedderConcurrentCallersShareHandle(t *testing.T) {
	cfg := config.Default().Models
	cfg.EmbedProvider = "http"
	registry := NewRegistry(cfg, Keys{}, nil)

	const callers = 8
	handles := make([]embedding.Provider, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			provider, err := registry.Embedder(context.Background())
			assert.NoError(t, err)
			handles[i] = provider
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, handles[0], handles[i])
	}
}

func TestRegistry_GeminiWithoutKeyFails(t *testing.T) {
	cfg := config.Default().Models
	cfg.EmbedProvider = "gemini"
	registry := NewRegistry(cfg, Keys{}, nil)

	_, err := registry.Embedder(context.Background())
	require.Error(t, err)

	// The failure is memoized, not retried.
	_, err2 := registry.Embedder(context.Background())
	assert.Equal(t, err, err2)
}

func TestRegistry_TaggerBuiltOnce(t *testing.T) {
	registry := NewRegistry(config.Default().Models, Keys{HuggingFace: "hf_test"}, nil)

	first, err := registry.Tagger()
	require.NoError(t, err)

	second, err := registry.Tagger()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestNewStatic_ReturnsInjectedHandles(t *testing.T) {
	provider := embedding.NewMock(16)
	tagger := &tagging.Mock{Vocabulary: map[string]string{"python": "SKILL"}}
	registry := NewStatic(provider, tagger)

	gotProvider, err := registry.Embedder(context.Background())
	require.NoError(t, err)
	assert.Same(t, embedding.Provider(provider), gotProvider)

	gotTagger, err := registry.Tagger()
	require.NoError(t, err)
	assert.Same(t, tagging.Tagger(tagger), gotTagger)
}
