package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/schemas"
	"github.com/DarkEnough/resume-ranker/internal/types"
)

// Artifact file names within a run directory.
const (
	RankResultFile     = "rank_result.json"
	CoverageReportFile = "coverage_report.json"
	JobDescriptionFile = "job_description.txt"
)

// writeJSON writes an artifact with stable, readable formatting.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// validateArtifact checks a written artifact against its schema. Validation
// problems are logged, never returned: a malformed artifact should not sink
// a completed run.
func validateArtifact(schemaRelPath, artifactPath string, logger *zap.Logger) {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		logger.Debug("schema not found, skipping artifact validation",
			zap.String("schema", schemaRelPath))
		return
	}
	if err := schemas.ValidateJSON(schemaPath, artifactPath); err != nil {
		logger.Warn("artifact failed schema validation",
			zap.String("artifact", artifactPath), zap.Error(err))
	}
}

// LoadRankResult reads the rank artifact from a run directory.
func LoadRankResult(runDir string) (*types.RankResult, error) {
	data, err := os.ReadFile(filepath.Join(runDir, RankResultFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read rank result: %w", err)
	}
	var result types.RankResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse rank result: %w", err)
	}
	return &result, nil
}

// LoadJobDescription reads the sanitized job description saved with a run.
func LoadJobDescription(runDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(runDir, JobDescriptionFile))
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

// nonNil keeps artifact arrays as [] instead of null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
