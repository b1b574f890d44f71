// Package export writes ranking results to formats the presentation layer
// can ingest directly.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DarkEnough/resume-ranker/internal/types"
)

var csvHeader = []string{
	"filename", "candidate_name", "similarity", "skill_match_rate",
	"matched_skills", "missing_skills", "summary",
}

// WriteCSV writes the ranked candidate table as CSV. Skill lists are
// semicolon-joined inside their cells; candidates without a summary get an
// empty cell.
func WriteCSV(w io.Writer, candidates []types.ScoredCandidate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, c := range candidates {
		summary := ""
		if c.Summary != nil {
			summary = *c.Summary
		}
		record := []string{
			c.SourceID,
			c.CandidateName,
			strconv.FormatFloat(c.Similarity, 'f', 4, 64),
			strconv.FormatFloat(c.SkillMatchRate, 'f', 4, 64),
			strings.Join(c.MatchedSkills, "; "),
			strings.Join(c.MissingSkills, "; "),
			summary,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", c.SourceID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the ranked candidate table to a file path.
func WriteCSVFile(path string, candidates []types.ScoredCandidate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return WriteCSV(f, candidates)
}
