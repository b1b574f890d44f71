package embedding

import (
	"context"
	"sync"
)

// Serialized wraps a Provider so that concurrent encodes take turns. The
// underlying model handle admits one batch at a time; callers block until
// the current batch releases the slot.
type Serialized struct {
	mu    sync.Mutex
	inner Provider
}

// NewSerialized wraps the given provider with a single-slot lock.
func NewSerialized(inner Provider) *Serialized {
	return &Serialized{inner: inner}
}

// Encode forwards to the wrapped provider while holding the slot.
func (s *Serialized) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Encode(ctx, texts)
}

// Dimension forwards to the wrapped provider.
func (s *Serialized) Dimension() int {
	return s.inner.Dimension()
}
