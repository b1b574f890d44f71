// Package tagging wraps token-classification backends that recognize
// entities in bounded chunks of text. The skill extractor feeds it chunks
// and keeps only skill-like labels.
package tagging

import "context"

// Entity is one recognized span.
type Entity struct {
	Label   string
	Surface string
}

// Tagger recognizes named entities in one chunk. Chunks are bounded by the
// caller to stay under the backing model's input ceiling.
type Tagger interface {
	TagEntities(ctx context.Context, chunk string) ([]Entity, error)
}
