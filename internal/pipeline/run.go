// Package pipeline orchestrates the ranking steps end to end: job
// description ingestion, résumé loading, ranking, coverage analysis, and
// summary attachment. Each step leaves a JSON artifact under the run
// directory so later steps (and the serve surface) can pick up where a
// previous invocation stopped.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/coverage"
	"github.com/DarkEnough/resume-ranker/internal/export"
	"github.com/DarkEnough/resume-ranker/internal/extract"
	"github.com/DarkEnough/resume-ranker/internal/ingest"
	"github.com/DarkEnough/resume-ranker/internal/jobdesc"
	"github.com/DarkEnough/resume-ranker/internal/models"
	"github.com/DarkEnough/resume-ranker/internal/observability"
	"github.com/DarkEnough/resume-ranker/internal/ranking"
	"github.com/DarkEnough/resume-ranker/internal/summary"
	"github.com/DarkEnough/resume-ranker/internal/types"
)

// ProgressEvent reports one completed pipeline step.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is invoked after each pipeline step.
type ProgressCallback func(event ProgressEvent)

// Pipeline holds the collaborators shared across steps.
type Pipeline struct {
	cfg        *config.Config
	registry   *models.Registry
	summarizer *summary.Generator
	logger     *zap.Logger
	printer    *observability.Printer
}

// New creates a pipeline. summarizer may be nil when summaries are not
// wanted; cfg may be nil for defaults.
func New(cfg *config.Config, registry *models.Registry, summarizer *summary.Generator, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		registry:   registry,
		summarizer: summarizer,
		logger:     logger,
		printer:    observability.NewPrinter(os.Stdout),
	}
}

// RunOptions configures one ranking run.
type RunOptions struct {
	// JDPath and JDURL select the job description source; JDURL wins when
	// both are set.
	JDPath string
	JDURL  string
	// ResumeDir holds the candidate résumé files.
	ResumeDir string
	// TopK bounds the returned candidate list. 0 means the configured
	// default.
	TopK int
	// CSVPath, when set, additionally writes the ranked table as CSV.
	CSVPath string
	// OutDir is where run directories are created. Empty means "runs".
	OutDir     string
	UseBrowser bool
	Verbose    bool
	OnProgress ProgressCallback
}

// RunResult is what one ranking run produced.
type RunResult struct {
	RunID   string
	RunDir  string
	Rank    *types.RankResult
	Skipped []extract.Skipped
}

func (p *Pipeline) emit(opts *RunOptions, runID, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID})
	}
}

// Run executes ingestion, extraction, and ranking, then writes the
// rank_result artifact (and optional CSV) under a fresh run directory.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	runID := uuid.NewString()

	jd, err := p.ingestJob(ctx, &opts)
	if err != nil {
		return nil, err
	}
	jd = jobdesc.Clean(jd)
	p.emit(&opts, runID, "job_description", "ingested and sanitized job description")

	resumes, skipped, err := extract.LoadDir(ctx, opts.ResumeDir, extract.LoadOptions{
		MaxResumes:    p.cfg.Limits.MaxResumes,
		MaxFileSizeMB: p.cfg.Limits.MaxFileSizeMB,
	}, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load résumés: %w", err)
	}
	p.emit(&opts, runID, "resumes",
		fmt.Sprintf("loaded %d résumés, skipped %d", len(resumes), len(skipped)))
	if opts.Verbose {
		p.printer.PrintSkipped(skippedMap(skipped))
	}

	topK, err := p.resolveTopK(opts.TopK)
	if err != nil {
		return nil, err
	}

	ranker := ranking.New(p.registry, p.cfg.Scoring, p.cfg.Skills, p.logger)
	res, err := ranker.Rank(ctx, jd, resumes, topK)
	if err != nil {
		return nil, err
	}
	p.emit(&opts, runID, "rank", fmt.Sprintf("ranked %d candidates", len(res.Candidates)))

	artifact := &types.RankResult{
		RunID:      runID,
		CreatedAt:  time.Now().UTC(),
		JobSkills:  nonNil(res.JobSkills),
		TopK:       topK,
		Candidates: nonNil(res.Candidates),
	}

	runDir := filepath.Join(outDir(opts.OutDir), runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, JobDescriptionFile), []byte(jd), 0644); err != nil {
		return nil, fmt.Errorf("failed to save job description: %w", err)
	}
	rankPath := filepath.Join(runDir, RankResultFile)
	if err := writeJSON(rankPath, artifact); err != nil {
		return nil, err
	}
	validateArtifact(filepath.Join("schemas", "rank_result.schema.json"), rankPath, p.logger)

	if opts.CSVPath != "" {
		if err := export.WriteCSVFile(opts.CSVPath, artifact.Candidates); err != nil {
			return nil, err
		}
		p.emit(&opts, runID, "csv", "wrote CSV export")
	}

	if opts.Verbose {
		p.printer.PrintJobSkills(artifact.JobSkills)
		p.printer.PrintRankedCandidates(artifact)
	}

	return &RunResult{
		RunID:   runID,
		RunDir:  runDir,
		Rank:    artifact,
		Skipped: skipped,
	}, nil
}

// Coverage reads the rank artifact of an earlier run, recomputes the skills
// coverage matrix for its top candidates, and writes the coverage artifact
// next to it.
func (p *Pipeline) Coverage(ctx context.Context, runDir, resumeDir string, topN int, verbose bool) (*types.CoverageReport, error) {
	rankRes, err := LoadRankResult(runDir)
	if err != nil {
		return nil, err
	}

	resumes, _, err := extract.LoadDir(ctx, resumeDir, extract.LoadOptions{
		MaxResumes:    p.cfg.Limits.MaxResumes,
		MaxFileSizeMB: p.cfg.Limits.MaxFileSizeMB,
	}, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load résumés: %w", err)
	}

	analyzer := coverage.New(p.cfg.Skills.PartialMatchRatio, p.cfg.Skills.MatchConfidence)
	rows, err := analyzer.Analyze(rankRes.JobSkills, rankRes.Candidates, resumes, topN)
	if err != nil {
		return nil, err
	}

	report := &types.CoverageReport{
		RunID:       rankRes.RunID,
		CreatedAt:   time.Now().UTC(),
		JobSkills:   nonNil(rankRes.JobSkills),
		Rows:        nonNil(rows),
		MostMissing: nonNil(coverage.MissingSkillCounts(rows)),
	}

	reportPath := filepath.Join(runDir, CoverageReportFile)
	if err := writeJSON(reportPath, report); err != nil {
		return nil, err
	}
	validateArtifact(filepath.Join("schemas", "coverage_report.schema.json"), reportPath, p.logger)

	if verbose {
		p.printer.PrintCoverage(report)
	}
	return report, nil
}

// AttachSummaries generates fit summaries for the top topN candidates of an
// earlier run and rewrites its rank artifact. Candidates whose résumé file
// is gone are skipped with a warning.
func (p *Pipeline) AttachSummaries(ctx context.Context, runDir, resumeDir string, topN int) (*types.RankResult, error) {
	if p.summarizer == nil {
		return nil, fmt.Errorf("summary generator is not configured")
	}

	rankRes, err := LoadRankResult(runDir)
	if err != nil {
		return nil, err
	}
	jd, err := LoadJobDescription(runDir)
	if err != nil {
		return nil, err
	}

	resumes, _, err := extract.LoadDir(ctx, resumeDir, extract.LoadOptions{
		MaxResumes:    p.cfg.Limits.MaxResumes,
		MaxFileSizeMB: p.cfg.Limits.MaxFileSizeMB,
	}, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load résumés: %w", err)
	}
	textByID := make(map[string]string, len(resumes))
	for _, r := range resumes {
		textByID[r.ID] = r.Text
	}

	if topN <= 0 || topN > len(rankRes.Candidates) {
		topN = len(rankRes.Candidates)
	}
	for i := 0; i < topN; i++ {
		c := &rankRes.Candidates[i]
		text, ok := textByID[c.SourceID]
		if !ok {
			p.logger.Warn("résumé file missing, skipping summary",
				zap.String("file", c.SourceID))
			continue
		}
		s, err := p.summarizer.GenerateFitSummary(ctx, jd, text)
		if err != nil {
			p.logger.Warn("summary generation failed",
				zap.String("file", c.SourceID), zap.Error(err))
			continue
		}
		c.Summary = &s
	}

	rankPath := filepath.Join(runDir, RankResultFile)
	if err := writeJSON(rankPath, rankRes); err != nil {
		return nil, err
	}
	validateArtifact(filepath.Join("schemas", "rank_result.schema.json"), rankPath, p.logger)

	return rankRes, nil
}

func (p *Pipeline) ingestJob(ctx context.Context, opts *RunOptions) (string, error) {
	if opts.JDURL != "" {
		text, err := ingest.FromURL(ctx, opts.JDURL, ingest.Options{
			UseBrowser: opts.UseBrowser,
			Logger:     p.logger,
		})
		if err != nil {
			return "", fmt.Errorf("job ingestion from URL failed: %w", err)
		}
		return text, nil
	}
	if opts.JDPath == "" {
		return "", &ranking.InputError{Message: "no job description source given"}
	}
	text, err := ingest.FromFile(opts.JDPath)
	if err != nil {
		return "", fmt.Errorf("job ingestion from file failed: %w", err)
	}
	return text, nil
}

func (p *Pipeline) resolveTopK(topK int) (int, error) {
	if topK == 0 {
		return p.cfg.Limits.DefaultTopK, nil
	}
	if topK < p.cfg.Limits.MinTopK || topK > p.cfg.Limits.MaxTopK {
		return 0, &ranking.InputError{Message: fmt.Sprintf(
			"top-k %d out of bounds [%d, %d]", topK, p.cfg.Limits.MinTopK, p.cfg.Limits.MaxTopK)}
	}
	return topK, nil
}

func outDir(dir string) string {
	if dir == "" {
		return "runs"
	}
	return dir
}

func skippedMap(skipped []extract.Skipped) map[string]string {
	if len(skipped) == 0 {
		return nil
	}
	m := make(map[string]string, len(skipped))
	for _, s := range skipped {
		m[s.File] = s.Reason
	}
	return m
}
