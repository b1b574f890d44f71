package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DarkEnough/resume-ranker/internal/server"
	"github.com/DarkEnough/resume-ranker/internal/summary"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the ranking engine: POST /v1/rank scores
submitted résumés, GET /v1/capabilities reports deployment features, and
GET /health is the liveness probe.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
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

	// Summaries are a capability, not a requirement: wire the generator only
	// when credentials exist.
	var summarizer *summary.Generator
	if os.Getenv("GEMINI_API_KEY") != "" {
		gen, client, err := newSummarizer(cmd.Context(), cfg, registry, logger)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		summarizer = gen
	}

	srv := server.New(server.Config{
		Port:       servePort,
		App:        cfg,
		Registry:   registry,
		Summarizer: summarizer,
		Logger:     logger,
	})
	return srv.Start()
}
