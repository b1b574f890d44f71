package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"
)

// Mock is a deterministic in-process provider for tests. It hashes words
// into a fixed number of buckets, so texts sharing vocabulary score high
// cosine similarity while unrelated texts score near zero.
type Mock struct {
	dimension int

	mu    sync.Mutex
	calls [][]string
}

// NewMock creates a mock provider. A dimension of 0 defaults to 64.
func NewMock(dimension int) *Mock {
	if dimension <= 0 {
		dimension = 64
	}
	return &Mock{dimension: dimension}
}

// Encode returns bag-of-words unit vectors.
func (m *Mock) Encode(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string(nil), texts...))
	m.mu.Unlock()

	result := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, m.dimension)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.TrimFunc(word, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsNumber(r)
			})
			if word == "" {
				continue
			}
			h := fnv.New32a()
			_, _ = h.Write([]byte(word))
			vec[h.Sum32()%uint32(m.dimension)]++
		}
		result[i] = Normalize(vec)
	}
	return result, nil
}

// Dimension returns the configured vector length.
func (m *Mock) Dimension() int {
	return m.dimension
}

// Calls returns the batches seen so far, for call-shape assertions.
func (m *Mock) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}
