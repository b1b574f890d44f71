// Package ingest turns a job posting into ranking-ready text, whether it
// comes from a local file or a job board URL.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/fetch"
)

var (
	// ErrInvalidURL is returned when the posting URL is malformed.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrFetchFailed is returned when the posting could not be retrieved.
	ErrFetchFailed = errors.New("job posting fetch failed")
	// ErrExtractionFailed is returned when no text could be pulled from the page.
	ErrExtractionFailed = errors.New("content extraction failed")
)

// Options configures URL ingestion.
type Options struct {
	// UseBrowser enables the headless-browser fallback for postings that
	// render client-side.
	UseBrowser bool
	// BrowserTimeout bounds a single browser render. 0 means 30s.
	BrowserTimeout time.Duration
	Logger         *zap.Logger
}

// FromURL fetches a job posting, extracts its text with platform-aware
// selectors, and normalizes the result. When the HTTP fetch yields too
// little text and the browser fallback is enabled, the page is re-rendered
// in headless Chrome; a failed render falls back to the HTTP content.
func FromURL(ctx context.Context, urlStr string, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, urlStr)
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("ingesting job posting",
		zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	logger.Debug("extracted posting text", zap.Int("chars", len(text)))

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		logger.Debug("posting text too short, rendering in browser",
			zap.Int("chars", len(text)), zap.Int("min", fetch.MinContentLength))

		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, timeout, logger)
		if browserErr != nil {
			// The HTTP content is still usable, keep it.
			logger.Warn("browser rendering failed, keeping HTTP content", zap.Error(browserErr))
		} else if rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
			text = rendered
			logger.Debug("browser extraction complete", zap.Int("chars", len(text)))
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: page contained no usable text", ErrExtractionFailed)
	}
	return cleaned, nil
}

// FromFile reads a job posting from a local text file and normalizes it.
func FromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job posting: %w", err)
	}
	return CleanText(string(content)), nil
}

var (
	spaceRuns = regexp.MustCompile(`\s+`)
	blankRuns = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes whitespace while keeping the posting's line
// structure, which the sanitizer's header heuristics depend on. Markdown
// headings and bullets keep their markers.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + trimmed
	}

	indent := len(line) - len(trimmed)
	content := spaceRuns.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}
