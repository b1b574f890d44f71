package ranking

import (
	"strings"

	"github.com/DarkEnough/resume-ranker/internal/skills"
)

// fallbackExcerptLen bounds the leading-text excerpt used when neither
// extracted skills nor a recognizable skills section exist.
const fallbackExcerptLen = 300

// jobExcerpt builds the skills-channel text for the job description: the
// extracted skill list when there is one, otherwise the heuristic skills
// section, otherwise the leading text.
func jobExcerpt(jobDescription string, jobSkills []string, sectionWindow int) string {
	if len(jobSkills) > 0 {
		return strings.Join(jobSkills, ", ")
	}
	if section := skills.FocusSection(jobDescription, sectionWindow); section != "" {
		return section
	}
	return leadingText(jobDescription, fallbackExcerptLen)
}

// resumeExcerpt builds the skills-channel text for one résumé, weighted
// toward the job skills it matched: each matched skill appears twice,
// followed by the résumé's own skill list, so overlap with the job excerpt
// dominates the channel's cosine while unmatched résumés keep embedding
// their own vocabulary. Building the excerpt from the job's skill list
// instead would hand a zero-match résumé the same text as the job excerpt,
// a cosine of 1.0 for the worst candidate.
func resumeExcerpt(resumeText string, matched, resumeSkills []string, sectionWindow int) string {
	if len(matched) > 0 || len(resumeSkills) > 0 {
		parts := make([]string, 0, 2*len(matched)+len(resumeSkills))
		parts = append(parts, matched...)
		parts = append(parts, matched...)
		parts = append(parts, resumeSkills...)
		return strings.Join(parts, ", ")
	}
	if section := skills.FocusSection(resumeText, sectionWindow); section != "" {
		return section
	}
	return leadingText(resumeText, fallbackExcerptLen)
}

func leadingText(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
