package tagging

import (
	"context"
	"sync"
)

// Serialized wraps a Tagger so that concurrent chunk calls take turns
// against the shared model handle.
type Serialized struct {
	mu    sync.Mutex
	inner Tagger
}

// NewSerialized wraps the given tagger with a single-slot lock.
func NewSerialized(inner Tagger) *Serialized {
	return &Serialized{inner: inner}
}

// TagEntities forwards to the wrapped tagger while holding the slot.
func (s *Serialized) TagEntities(ctx context.Context, chunk string) ([]Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.TagEntities(ctx, chunk)
}
