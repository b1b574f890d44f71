package tagging

import "fmt"

// ChunkError represents a failed tagging call for a single chunk. Callers
// skip the chunk's contribution and continue; it is never fatal to a run.
type ChunkError struct {
	Message string
	Cause   error
}

func (e *ChunkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tagging chunk failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tagging chunk failed: %s", e.Message)
}

func (e *ChunkError) Unwrap() error {
	return e.Cause
}
