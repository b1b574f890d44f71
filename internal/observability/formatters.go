// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/DarkEnough/resume-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobSkills outputs the skills extracted from the job description.
func (p *Printer) PrintJobSkills(skills []string) {
	if len(skills) == 0 {
		p.printBox("JOB SKILLS", "No skills extracted")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d skills (by frequency):\n\n", len(skills)))

	count := min(len(skills), 10)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > 10 {
		sb.WriteString(fmt.Sprintf("  ... and %d more", len(skills)-10))
	}

	p.printBox("JOB SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedCandidates outputs the top ranked candidates with scores and
// matched skills.
func (p *Printer) PrintRankedCandidates(result *types.RankResult) {
	if result == nil || len(result.Candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(result.Candidates)))

	count := min(len(result.Candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := result.Candidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, c.CandidateName, c.SourceID))
		sb.WriteString(fmt.Sprintf("    Score: %.3f  Match rate: %.0f%%\n", c.Similarity, c.SkillMatchRate*100))
		if len(c.MatchedSkills) > 0 {
			skills := strings.Join(c.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(result.Candidates)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintCoverage outputs the skills coverage matrix and the most commonly
// missing skills.
func (p *Printer) PrintCoverage(report *types.CoverageReport) {
	if report == nil || len(report.Rows) == 0 {
		return
	}

	var sb strings.Builder
	for i, row := range report.Rows {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more candidates\n", len(report.Rows)-maxItemsToShow))
			break
		}
		name := row.Candidate
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-24s %3.0f%%  (%d/%d skills)\n",
			name, row.CoveragePct, row.MatchCount, row.MatchCount+row.MissingCount))
	}

	if len(report.MostMissing) > 0 {
		sb.WriteString("\nMost commonly missing:\n")
		count := min(len(report.MostMissing), 3)
		for i := 0; i < count; i++ {
			m := report.MostMissing[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d candidates)\n", m.Skill, m.Count))
		}
	}

	p.printBox("SKILLS COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkipped outputs files excluded from the candidate pool.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSkipped(skipped map[string]string) {
	if len(skipped) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL FILES LOADED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skipped %d files:\n\n", len(skipped)))
	for file, reason := range skipped {
		if len(reason) > 40 {
			reason = reason[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", file))
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
	}

	p.printBox("SKIPPED FILES", strings.TrimSuffix(sb.String(), "\n"))
}
