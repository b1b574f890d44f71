package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DarkEnough/resume-ranker/internal/pipeline"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Attach fit summaries to the top candidates of an earlier run",
	Long: `Generates a short rationale for why each top candidate fits the role,
grounded on the résumé sentences most similar to the job description, and
rewrites the rank artifact with the summaries attached.

With GEMINI_API_KEY set the rationale is written by the LLM; without it a
canned summary built from the evidence snippets is used instead.`,
	RunE: runSummarize,
}

var (
	summarizeRunID     string
	summarizeOut       string
	summarizeResumeDir string
	summarizeTopN      int
	summarizeYes       bool
)

func init() {
	summarizeCmd.Flags().StringVar(&summarizeRunID, "run-id", "", "Run id produced by the rank command (required)")
	summarizeCmd.Flags().StringVarP(&summarizeOut, "out", "o", "", "Directory holding run artifacts (default \"runs\")")
	summarizeCmd.Flags().StringVarP(&summarizeResumeDir, "resumes", "r", "", "Directory of candidate résumé files (required)")
	summarizeCmd.Flags().IntVarP(&summarizeTopN, "top-n", "n", 5, "How many top candidates to summarize")
	summarizeCmd.Flags().BoolVarP(&summarizeYes, "yes", "y", false, "Skip the confirmation prompt")

	_ = summarizeCmd.MarkFlagRequired("run-id")
	_ = summarizeCmd.MarkFlagRequired("resumes")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
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
	gen, client, err := newSummarizer(cmd.Context(), cfg, registry, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	// Each summary costs LLM quota, so confirm before spending it.
	if gen.Available() && !summarizeYes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Generate LLM summaries for the top %d candidates", summarizeTopN),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}
	if !gen.Available() {
		fmt.Fprintln(os.Stdout, "GEMINI_API_KEY is not set; using canned summaries built from evidence snippets.")
	}

	runDir := runDirFor(summarizeOut, summarizeRunID)
	p := pipeline.New(cfg, registry, gen, logger)
	updated, err := p.AttachSummaries(cmd.Context(), runDir, summarizeResumeDir, summarizeTopN)
	if err != nil {
		return err
	}

	summarized := 0
	for _, c := range updated.Candidates {
		if c.Summary != nil {
			summarized++
		}
	}
	fmt.Fprintf(os.Stdout, "Attached summaries to %d candidates\n", summarized)
	fmt.Fprintf(os.Stdout, "Result: %s\n", filepath.Join(runDir, pipeline.RankResultFile))
	return nil
}
