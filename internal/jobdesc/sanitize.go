// Package jobdesc strips boilerplate from job descriptions, keeping the
// requirement-bearing paragraphs that drive skill matching.
package jobdesc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// dropHeaders mark paragraphs to discard: company blurb, benefits,
// compensation, and legal/EEO boilerplate.
var dropHeaders = []string{
	"about the company", "company overview", "who we are", "what we do",
	"featured benefits", "benefits include", "perks", "insurance",
	"medical insurance", "vision insurance", "dental insurance", "401(k)",
	"equal opportunity", "diversity and inclusion", "location:", "headquartered",
	"verification", "background check", "salary range", "compensation and benefits",
	"compensation", "base pay", "salary", "pay range", "stipend", "relocation",
	"wellness", "healthcare", "parental leave", "pto", "vacation",
	"notice to applicants", "covey", "fair chance", "non-discrimination",
	"diversity", "inclusion", "equal opportunity employer", "statement of",
	"pursuant to", "ordinance", "regulation", "legal", "compliance",
	"our commitment", "our mission", "we're committed", "we hire",
	"we value", "we believe", "thank you to", "level playing field",
	"application will not be considered", "you will be asked",
	"for your application to be considered", "internship is paid",
	"internships are paid", "internships will be located",
	"carefully consider a wide range of compensation",
	"celebrate diversity", "unique place to work", "netflix is a unique place",
	"we do not discriminate", "we strive to host", "job is open for no less than",
}

// keepAnchors whitelist requirement-bearing paragraphs. A keep match always
// wins over a drop match.
var keepAnchors = []string{
	"responsibilities", "key responsibilities", "qualifications", "required", "primary duties",
	"must have", "preferred", "desired", "preferred skills", "preferred qualifications",
	"you will", "skills", "requirements", "minimum requirements", "minimum skills",
	"minimum qualifications", "nice to have",
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Fallback bounds: a paragraph matching neither list survives only when its
// word count is strictly between these.
const (
	minFallbackWords = 10
	maxFallbackWords = 120
)

// Clean removes paragraphs that are likely irrelevant for skill matching
// (benefits, company blurb, EEO statements). Deterministic and idempotent.
func Clean(text string) string {
	normalized := norm.NFC.String(text)
	paragraphs := paragraphSplit.Split(normalized, -1)

	kept := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		p := strings.TrimSpace(para)
		if p == "" {
			continue
		}
		low := strings.ToLower(p)

		if containsAny(low, keepAnchors) {
			kept = append(kept, p)
			continue
		}

		if containsAny(low, dropHeaders) {
			continue
		}

		if n := len(strings.Fields(p)); n > minFallbackWords && n < maxFallbackWords {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, "\n\n")
}

func containsAny(haystack string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(haystack, phrase) {
			return true
		}
	}
	return false
}
