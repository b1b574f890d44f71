package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkEnough/resume-ranker/internal/types"
)

func sampleCandidates() []types.ScoredCandidate {
	summary := "Strong Django background."
	return []types.ScoredCandidate{
		{
			CandidateName:  "Jane Doe",
			SourceID:       "a.pdf",
			Similarity:     0.8125,
			SkillMatchRate: 0.75,
			MatchedSkills:  []string{"python", "django"},
			MissingSkills:  []string{"kubernetes"},
			Summary:        &summary,
		},
		{
			CandidateName: "John Smith",
			SourceID:      "b.pdf",
			Similarity:    0.41,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleCandidates()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	jane := records[1]
	assert.Equal(t, "a.pdf", jane[0])
	assert.Equal(t, "Jane Doe", jane[1])
	assert.Equal(t, "0.8125", jane[2])
	assert.Equal(t, "0.7500", jane[3])
	assert.Equal(t, "python; django", jane[4])
	assert.Equal(t, "kubernetes", jane[5])
	assert.Equal(t, "Strong Django background.", jane[6])

	john := records[2]
	assert.Empty(t, john[4], "no matched skills")
	assert.Empty(t, john[6], "no summary")
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranked.csv")
	require.NoError(t, WriteCSVFile(path, sampleCandidates()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
}

func TestWriteCSVFile_BadPath(t *testing.T) {
	err := WriteCSVFile("/nonexistent/dir/ranked.csv", nil)

	assert.Error(t, err)
}
