package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/llm"
	"github.com/DarkEnough/resume-ranker/internal/logging"
	"github.com/DarkEnough/resume-ranker/internal/models"
	"github.com/DarkEnough/resume-ranker/internal/summary"
)

var rootCmd = &cobra.Command{
	Use:   "ranker",
	Short: "Rank candidate résumés against a job description",
	Long: `Ranker scores a folder of candidate résumés against a job posting using
embedding similarity plus extracted skill evidence, and explains each score
with matched and missing skills.`,
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootJSONLogs   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a config file overriding the built-in defaults")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed progress and debug logs")
	rootCmd.PersistentFlags().BoolVar(&rootJSONLogs, "json-logs", false, "Emit logs as JSON instead of console format")
}

// loadAppConfig builds the engine configuration from defaults, an optional
// config file, and RANKER_* environment variables, in that precedence order.
func loadAppConfig() (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RANKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if rootConfigPath != "" {
		v.SetConfigFile(rootConfigPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return config.Load(v)
}

func newLogger() (*zap.Logger, error) {
	return logging.New(rootJSONLogs, rootVerbose)
}

// newRegistry wires the model backends with credentials from the environment.
func newRegistry(cfg *config.Config, logger *zap.Logger) *models.Registry {
	return models.NewRegistry(cfg.Models, models.Keys{
		Gemini:      os.Getenv("GEMINI_API_KEY"),
		HuggingFace: os.Getenv("HF_API_KEY"),
		Embed:       os.Getenv("RANKER_EMBED_API_KEY"),
	}, logger)
}

// runDirFor locates the artifact directory of an earlier run.
func runDirFor(out, runID string) string {
	if out == "" {
		out = "runs"
	}
	return filepath.Join(out, runID)
}

// newSummarizer builds the fit-summary generator. Without GEMINI_API_KEY the
// generator still works but produces canned fallback summaries; the returned
// client is nil in that case and non-nil clients must be closed by the caller.
func newSummarizer(ctx context.Context, cfg *config.Config, registry *models.Registry, logger *zap.Logger) (*summary.Generator, llm.Client, error) {
	provider, err := registry.Embedder(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to construct embedding provider: %w", err)
	}

	var client llm.Client
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), key)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	return summary.New(client, provider, cfg.Summary.Snippets, logger), client, nil
}
