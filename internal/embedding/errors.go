package embedding

import "fmt"

// EncodeError represents a failure of the embedding backend. Every
// candidate's score depends on the same encode call, so callers treat it as
// fatal for the ranking request.
type EncodeError struct {
	Message string
	Cause   error
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}
