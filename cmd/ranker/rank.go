package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DarkEnough/resume-ranker/internal/pipeline"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a folder of résumés against a job description",
	Long: `Ingests the job description from a text file or URL, loads every résumé in
the given directory, and writes the ranked result to runs/<run-id>/.`,
	RunE: runRank,
}

var (
	rankJob        string
	rankJobURL     string
	rankResumeDir  string
	rankTopK       int
	rankCSV        string
	rankOut        string
	rankUseBrowser bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	rankCmd.Flags().StringVar(&rankJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	rankCmd.Flags().StringVarP(&rankResumeDir, "resumes", "r", "", "Directory of candidate résumé files (required)")
	rankCmd.Flags().IntVarP(&rankTopK, "top-k", "k", 0, "How many candidates to return (0 uses the configured default)")
	rankCmd.Flags().StringVar(&rankCSV, "csv", "", "Additionally export the ranked table as CSV to this path")
	rankCmd.Flags().StringVarP(&rankOut, "out", "o", "", "Directory where run artifacts are written (default \"runs\")")
	rankCmd.Flags().BoolVar(&rankUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered job postings (requires Chrome)")

	_ = rankCmd.MarkFlagRequired("resumes")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankJob == "" && rankJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if rankJob != "" && rankJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry := newRegistry(cfg, logger)
	p := pipeline.New(cfg, registry, nil, logger)

	result, err := p.Run(cmd.Context(), pipeline.RunOptions{
		JDPath:     rankJob,
		JDURL:      rankJobURL,
		ResumeDir:  rankResumeDir,
		TopK:       rankTopK,
		CSVPath:    rankCSV,
		OutDir:     rankOut,
		UseBrowser: rankUseBrowser,
		Verbose:    rootVerbose,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Ranked %d candidates (run %s)\n", len(result.Rank.Candidates), result.RunID)
	fmt.Fprintf(os.Stdout, "Result: %s\n", filepath.Join(result.RunDir, pipeline.RankResultFile))
	if rankCSV != "" {
		fmt.Fprintf(os.Stdout, "CSV: %s\n", rankCSV)
	}
	return nil
}
