package tagging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHF_TagEntities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/dslim/bert-base-NER", r.URL.Path)

		var req hfRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Built services in Python and Django", req.Inputs)
		assert.True(t, req.Options.WaitForModel)

		_, _ = w.Write([]byte(`[
			{"entity_group":"MISC","word":"Python","score":0.98,"start":18,"end":24},
			{"entity_group":"MISC","word":"Django","score":0.97,"start":29,"end":35}
		]`))
	}))
	defer server.Close()

	tagger := NewHF(HFConfig{BaseURL: server.URL})

	entities, err := tagger.TagEntities(context.Background(), "Built services in Python and Django")
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, Entity{Label: "MISC", Surface: "Python"}, entities[0])
	assert.Equal(t, Entity{Label: "MISC", Surface: "Django"}, entities[1])
}

func TestHF_TagEntitiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tagger := NewHF(HFConfig{BaseURL: server.URL})

	_, err := tagger.TagEntities(context.Background(), "chunk")
	require.Error(t, err)

	var chunkErr *ChunkError
	require.ErrorAs(t, err, &chunkErr)
	assert.Contains(t, chunkErr.Message, "status 503")
}

func TestHF_TagEntitiesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "unexpected"}`))
	}))
	defer server.Close()

	tagger := NewHF(HFConfig{BaseURL: server.URL})

	_, err := tagger.TagEntities(context.Background(), "chunk")
	var chunkErr *ChunkError
	require.ErrorAs(t, err, &chunkErr)
}

func TestMock_FindsVocabularyTerms(t *testing.T) {
	tagger := &Mock{Vocabulary: map[string]string{
		"python": "MISC",
		"django": "MISC",
		"aws":    "ORG",
	}}

	entities, err := tagger.TagEntities(context.Background(), "Python and Django on AWS")
	require.NoError(t, err)
	require.Len(t, entities, 3)
	assert.Equal(t, "aws", entities[0].Surface, "results are in sorted term order")
}

func TestMock_PropagatesError(t *testing.T) {
	tagger := &Mock{Err: &ChunkError{Message: "boom"}}

	_, err := tagger.TagEntities(context.Background(), "chunk")
	assert.Error(t, err)
}
