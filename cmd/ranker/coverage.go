package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DarkEnough/resume-ranker/internal/pipeline"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Analyze skill coverage for an earlier ranking run",
	Long: `Reads the rank result of an earlier run, recomputes which job skills each of
the top candidates covers (including partial matches), and writes the
coverage report next to the rank artifact.`,
	RunE: runCoverage,
}

var (
	coverageRunID     string
	coverageOut       string
	coverageResumeDir string
	coverageTopN      int
)

func init() {
	coverageCmd.Flags().StringVar(&coverageRunID, "run-id", "", "Run id produced by the rank command (required)")
	coverageCmd.Flags().StringVarP(&coverageOut, "out", "o", "", "Directory holding run artifacts (default \"runs\")")
	coverageCmd.Flags().StringVarP(&coverageResumeDir, "resumes", "r", "", "Directory of candidate résumé files (required)")
	coverageCmd.Flags().IntVarP(&coverageTopN, "top-n", "n", 10, "How many top candidates to analyze")

	_ = coverageCmd.MarkFlagRequired("run-id")
	_ = coverageCmd.MarkFlagRequired("resumes")

	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Coverage only re-reads artifacts and résumé text; no model calls.
	p := pipeline.New(cfg, nil, nil, logger)

	runDir := runDirFor(coverageOut, coverageRunID)
	report, err := p.Coverage(cmd.Context(), runDir, coverageResumeDir, coverageTopN, rootVerbose)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Analyzed coverage for %d candidates\n", len(report.Rows))
	fmt.Fprintf(os.Stdout, "Report: %s\n", filepath.Join(runDir, pipeline.CoverageReportFile))
	return nil
}
