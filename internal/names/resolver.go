// Package names heuristically resolves a candidate's display name from
// résumé text, falling back to a cleaned filename. Best effort only: the
// resolver always returns some string and never fails.
package names

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerLines is how many leading lines of the résumé are scanned. Names
// live at the top of real résumés; scanning further only finds employers.
const headerLines = 10

// Accepted name shapes: 2-4 words and 5-50 characters overall.
const (
	minNameWords = 2
	maxNameWords = 4
	minNameLen   = 5
	maxNameLen   = 50
)

var (
	// "Name: Jane Doe" style labels.
	labeledName = regexp.MustCompile(`(?i)^\s*name\s*[:\-]\s*(.+)$`)
	// Title-Case sequences, allowing a middle initial: "Jane Doe",
	// "Jane M. Doe", "Jane Marie Doe".
	titleCaseName = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+(?:[A-Z]\.|[A-Z][a-z]+)){1,3})\s*$`)
	// ALL-CAPS header lines: "JANE DOE".
	allCapsName = regexp.MustCompile(`^([A-Z][A-Z'\-]+(?:\s+[A-Z][A-Z'\-]+){1,3})\s*$`)

	fileSeparators = regexp.MustCompile(`[_\-.]+`)
)

// Resolve extracts a display name from the résumé header, or derives one
// from the filename when no line looks like a name.
func Resolve(resumeText, filename string) string {
	lines := strings.Split(resumeText, "\n")
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}

	for _, line := range lines {
		candidate := nameFromLine(strings.TrimSpace(line))
		if candidate != "" {
			return candidate
		}
	}

	return FromFilename(filename)
}

// nameFromLine returns the name found in one line, or "".
func nameFromLine(line string) string {
	if line == "" {
		return ""
	}

	if m := labeledName.FindStringSubmatch(line); m != nil {
		if name := strings.TrimSpace(m[1]); plausible(name) {
			return name
		}
		return ""
	}

	if m := titleCaseName.FindStringSubmatch(line); m != nil && plausible(m[1]) {
		return m[1]
	}

	if m := allCapsName.FindStringSubmatch(line); m != nil && plausible(m[1]) {
		return titleCase(strings.ToLower(m[1]))
	}

	return ""
}

// plausible applies the word-count and length bounds shared by all shapes.
// Length counts characters, not bytes, so accented and non-Latin names
// near the upper bound are not over-counted.
func plausible(name string) bool {
	words := len(strings.Fields(name))
	length := utf8.RuneCountInString(name)
	return words >= minNameWords && words <= maxNameWords &&
		length >= minNameLen && length <= maxNameLen
}

// FromFilename cleans a filename into a display name: extension stripped,
// separators replaced by spaces, title-cased.
func FromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = fileSeparators.ReplaceAllString(base, " ")
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Unknown Candidate"
	}
	return titleCase(base)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
