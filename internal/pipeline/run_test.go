package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/models"
	"github.com/DarkEnough/resume-ranker/internal/ranking"
	"github.com/DarkEnough/resume-ranker/internal/summary"
	"github.com/DarkEnough/resume-ranker/internal/tagging"
)

const jobPosting = `Backend Engineer

Required Skills: Python, Django, REST APIs. 3+ years experience building
scalable backend services with Python and Django.`

const resumeBackend = `Jane Doe
Senior software engineer with five years of Python and Django experience.
Designed REST APIs serving millions of requests.`

const resumeMarketing = `John Smith
Marketing specialist. Excel, PowerPoint, and campaign analytics.`

func testVocabulary() map[string]string {
	return map[string]string{
		"python":    "SKILL",
		"django":    "SKILL",
		"rest apis": "SKILL",
		"excel":     "SKILL",
	}
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	registry := models.NewStatic(embedding.NewMock(0), &tagging.Mock{Vocabulary: testVocabulary()})
	return New(config.Default(), registry, nil, nil)
}

func setupInputs(t *testing.T) (jdPath, resumeDir string) {
	t.Helper()
	dir := t.TempDir()

	jdPath = filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(jdPath, []byte(jobPosting), 0644))

	resumeDir = filepath.Join(dir, "resumes")
	require.NoError(t, os.Mkdir(resumeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(resumeDir, "a.txt"), []byte(resumeBackend), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(resumeDir, "b.txt"), []byte(resumeMarketing), 0644))
	return jdPath, resumeDir
}

func TestRun_WritesRankArtifact(t *testing.T) {
	p := testPipeline(t)
	jdPath, resumeDir := setupInputs(t)
	outDir := t.TempDir()

	var steps []string
	result, err := p.Run(context.Background(), RunOptions{
		JDPath:    jdPath,
		ResumeDir: resumeDir,
		OutDir:    outDir,
		OnProgress: func(e ProgressEvent) {
			steps = append(steps, e.Step)
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Rank.Candidates, 2)
	assert.Equal(t, "a.txt", result.Rank.Candidates[0].SourceID,
		"backend résumé outranks the marketing one")
	assert.Equal(t, "Jane Doe", result.Rank.Candidates[0].CandidateName)
	assert.Contains(t, steps, "rank")

	// Artifacts land in the run directory and round-trip.
	loaded, err := LoadRankResult(result.RunDir)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, loaded.RunID)
	assert.NotEmpty(t, loaded.JobSkills)

	jd, err := LoadJobDescription(result.RunDir)
	require.NoError(t, err)
	assert.Contains(t, jd, "Python")
}

func TestRun_WritesCSV(t *testing.T) {
	p := testPipeline(t)
	jdPath, resumeDir := setupInputs(t)
	csvPath := filepath.Join(t.TempDir(), "ranked.csv")

	_, err := p.Run(context.Background(), RunOptions{
		JDPath:    jdPath,
		ResumeDir: resumeDir,
		OutDir:    t.TempDir(),
		CSVPath:   csvPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a.txt")
}

func TestRun_NoJobSource(t *testing.T) {
	p := testPipeline(t)
	_, resumeDir := setupInputs(t)

	_, err := p.Run(context.Background(), RunOptions{ResumeDir: resumeDir, OutDir: t.TempDir()})

	var inputErr *ranking.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestRun_TopKOutOfBounds(t *testing.T) {
	p := testPipeline(t)
	jdPath, resumeDir := setupInputs(t)

	_, err := p.Run(context.Background(), RunOptions{
		JDPath:    jdPath,
		ResumeDir: resumeDir,
		OutDir:    t.TempDir(),
		TopK:      99,
	})

	var inputErr *ranking.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestRun_EmptyResumeDir(t *testing.T) {
	p := testPipeline(t)
	jdPath, _ := setupInputs(t)

	_, err := p.Run(context.Background(), RunOptions{
		JDPath:    jdPath,
		ResumeDir: t.TempDir(),
		OutDir:    t.TempDir(),
	})

	var inputErr *ranking.InputError
	assert.ErrorAs(t, err, &inputErr, "empty pool is refused before any model call")
}

func TestCoverage_WritesReport(t *testing.T) {
	p := testPipeline(t)
	jdPath, resumeDir := setupInputs(t)

	result, err := p.Run(context.Background(), RunOptions{
		JDPath:    jdPath,
		ResumeDir: resumeDir,
		OutDir:    t.TempDir(),
	})
	require.NoError(t, err)

	report, err := p.Coverage(context.Background(), result.RunDir, resumeDir, 10, false)
	require.NoError(t, err)

	assert.Equal(t, result.RunID, report.RunID)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Jane Doe", report.Rows[0].Candidate)
	assert.NotZero(t, report.Rows[0].CoveragePct)

	_, err = os.Stat(filepath.Join(result.RunDir, CoverageReportFile))
	assert.NoError(t, err)
}

func TestAttachSummaries_FallbackGenerator(t *testing.T) {
	registry := models.NewStatic(embedding.NewMock(0), &tagging.Mock{Vocabulary: testVocabulary()})
	gen := summary.New(nil, embedding.NewMock(0), 5, nil)
	p := New(config.Default(), registry, gen, nil)

	jdPath, resumeDir := setupInputs(t)
	result, err := p.Run(context.Background(), RunOptions{
		JDPath:    jdPath,
		ResumeDir: resumeDir,
		OutDir:    t.TempDir(),
	})
	require.NoError(t, err)

	updated, err := p.AttachSummaries(context.Background(), result.RunDir, resumeDir, 1)
	require.NoError(t, err)

	require.NotNil(t, updated.Candidates[0].Summary)
	assert.Contains(t, *updated.Candidates[0].Summary, "Strong candidate")
	assert.Nil(t, updated.Candidates[1].Summary, "only the top candidate was summarized")

	// The artifact on disk carries the summary too.
	loaded, err := LoadRankResult(result.RunDir)
	require.NoError(t, err)
	require.NotNil(t, loaded.Candidates[0].Summary)
}

func TestAttachSummaries_NoGenerator(t *testing.T) {
	p := testPipeline(t)

	_, err := p.AttachSummaries(context.Background(), t.TempDir(), t.TempDir(), 1)

	assert.Error(t, err)
}
