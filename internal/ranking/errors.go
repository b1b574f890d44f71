package ranking

import "fmt"

// InputError reports that a ranking request was rejected before any model
// work began: an empty résumé pool or a blank job description.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid ranking input: %s", e.Message)
}
