package tagging

import (
	"context"
	"sort"
	"strings"
)

// Mock is a deterministic in-process tagger for tests. It emits one entity
// per vocabulary term found in the chunk, in sorted term order.
type Mock struct {
	// Vocabulary maps a lowercase surface form to its label.
	Vocabulary map[string]string
	// Err, when set, fails every call.
	Err error
}

// TagEntities scans the chunk for vocabulary terms.
func (m *Mock) TagEntities(_ context.Context, chunk string) ([]Entity, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	terms := make([]string, 0, len(m.Vocabulary))
	for term := range m.Vocabulary {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	lower := strings.ToLower(chunk)
	var entities []Entity
	for _, term := range terms {
		if strings.Contains(lower, term) {
			entities = append(entities, Entity{Label: m.Vocabulary[term], Surface: term})
		}
	}
	return entities, nil
}
