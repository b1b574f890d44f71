package skills

import "strings"

// Matcher decides whether one résumé covers a job skill. Two notions ship:
// SetMatcher checks exact membership in the résumé's extracted skill set and
// drives the ranking step; TextMatcher checks the raw résumé text with a
// partial-match rule and drives the coverage report. The call sites choose
// explicitly, so the two definitions never diverge silently.
type Matcher interface {
	Matches(skill string) bool
}

// SetMatcher matches by exact membership in a normalized skill set.
type SetMatcher struct {
	set map[string]bool
}

// NewSetMatcher builds a matcher over the résumé's extracted skills.
func NewSetMatcher(resumeSkills []string) *SetMatcher {
	set := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		set[strings.ToLower(strings.TrimSpace(skill))] = true
	}
	return &SetMatcher{set: set}
}

// Matches reports whether the skill is in the résumé's skill set.
func (m *SetMatcher) Matches(skill string) bool {
	return m.set[strings.ToLower(strings.TrimSpace(skill))]
}

// partialConfidence is the weaker confidence assigned when only a share of
// a multi-word skill's words appear in the text.
const partialConfidence = 0.8

// minPartialWordLen filters short glue words out of the partial-match rule.
const minPartialWordLen = 3

// TextMatcher matches against the raw résumé text: an exact substring hit
// scores 1.0, and a multi-word skill whose long words mostly appear scores
// partialConfidence. A skill counts as matched when its confidence exceeds
// the configured threshold.
type TextMatcher struct {
	text       string
	ratio      float64
	confidence float64
}

// NewTextMatcher builds a matcher over the résumé text. ratio is the share
// of long words that must appear for a partial match (0 defaults to 0.6);
// confidence is the matched threshold (0 defaults to 0.5).
func NewTextMatcher(resumeText string, ratio, confidence float64) *TextMatcher {
	if ratio <= 0 {
		ratio = 0.6
	}
	if confidence <= 0 {
		confidence = 0.5
	}
	return &TextMatcher{
		text:       strings.ToLower(resumeText),
		ratio:      ratio,
		confidence: confidence,
	}
}

// Confidence scores how strongly the text evidences the skill.
func (m *TextMatcher) Confidence(skill string) float64 {
	s := strings.ToLower(strings.TrimSpace(skill))
	if s == "" {
		return 0
	}

	if strings.Contains(m.text, s) {
		return 1.0
	}

	words := strings.Fields(s)
	if len(words) < 2 {
		return 0
	}
	hits := 0
	for _, word := range words {
		if len(word) > minPartialWordLen && strings.Contains(m.text, word) {
			hits++
		}
	}
	if float64(hits) >= float64(len(words))*m.ratio {
		return partialConfidence
	}
	return 0
}

// Matches reports whether the skill's confidence clears the threshold.
func (m *TextMatcher) Matches(skill string) bool {
	return m.Confidence(skill) > m.confidence
}

// Partition splits the job's skill list into matched and missing slices,
// preserving the list's order in both. The union of the two halves is
// always exactly the input list.
func Partition(jobSkills []string, matcher Matcher) (matched, missing []string) {
	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0, len(jobSkills))
	for _, skill := range jobSkills {
		if matcher.Matches(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}
