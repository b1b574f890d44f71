// Package embedding wraps sentence-embedding backends behind a common
// provider contract. Providers return one vector per input text, in input
// order, L2-normalized so that cosine similarity reduces to a dot product.
package embedding

import "context"

// Provider produces unit vectors for batches of text.
type Provider interface {
	// Encode embeds the given texts. The result has the same length and
	// order as the input.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the vector length this provider produces.
	Dimension() int
}
