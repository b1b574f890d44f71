// Package summary generates short fit rationales for ranked candidates.
// The rationale is grounded on the résumé sentences most similar to the job
// description rather than the whole document.
package summary

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/llm"
	"github.com/DarkEnough/resume-ranker/internal/prompts"
)

// DefaultSnippets is how many evidence sentences back a summary.
const DefaultSnippets = 5

// Generator produces fit summaries. A nil LLM client is a valid state: the
// generator reports itself unavailable and falls back to canned summaries.
type Generator struct {
	client   llm.Client
	provider embedding.Provider
	snippets int
	logger   *zap.Logger
}

// New creates a Generator. client may be nil when no API credentials exist.
func New(client llm.Client, provider embedding.Provider, kSnippets int, logger *zap.Logger) *Generator {
	if kSnippets <= 0 {
		kSnippets = DefaultSnippets
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, provider: provider, snippets: kSnippets, logger: logger}
}

// Available reports whether LLM-written summaries can be generated. Missing
// credentials are a capability, not an error.
func (g *Generator) Available() bool {
	return g.client != nil
}

// Snippets returns the k résumé sentences most similar to the job
// description, highest first.
func (g *Generator) Snippets(ctx context.Context, jobDescription, resumeText string, k int) ([]string, error) {
	sentences := splitSentences(resumeText)
	if len(sentences) == 0 {
		return nil, nil
	}

	vectors, err := g.provider.Encode(ctx, append([]string{jobDescription}, sentences...))
	if err != nil {
		return nil, err
	}

	jdVec := vectors[0]
	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return embedding.Cosine(jdVec, vectors[idx[a]+1]) > embedding.Cosine(jdVec, vectors[idx[b]+1])
	})

	if k > len(idx) {
		k = len(idx)
	}
	top := make([]string, 0, k)
	for _, i := range idx[:k] {
		top = append(top, sentences[i])
	}
	return top, nil
}

// GenerateFitSummary writes a 2-3 sentence rationale for why the candidate
// fits the role. Any failure past snippet selection degrades to the canned
// fallback summary instead of erroring.
func (g *Generator) GenerateFitSummary(ctx context.Context, jobDescription, resumeText string) (string, error) {
	snippets, err := g.Snippets(ctx, jobDescription, resumeText, g.snippets)
	if err != nil {
		g.logger.Warn("snippet selection failed, using leading text", zap.Error(err))
		snippets = nil
	}
	if len(snippets) == 0 {
		snippets = []string{truncate(resumeText, 400)}
	}

	if g.Available() {
		prompt := prompts.Format(prompts.MustGet("summary.json", "fit_summary"), map[string]string{
			"JobDescription": jobDescription,
			"Evidence":       strings.Join(snippets, " • "),
		})

		text, err := g.client.GenerateContent(ctx, prompt, llm.TierLite)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		g.logger.Warn("summary generation failed, using fallback", zap.Error(err))
	}

	return fallbackSummary(snippets), nil
}

// fallbackSummary is the canned rationale used without credentials or after
// an LLM failure.
func fallbackSummary(snippets []string) string {
	if len(snippets) > 2 {
		snippets = snippets[:2]
	}
	evidence := truncate(strings.Join(snippets, " • "), 200)
	return "Strong candidate based on relevant experience. Key highlights: " + evidence + "..."
}

// splitSentences breaks text into sentences on terminal punctuation followed
// by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		sb.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') &&
			(i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(sb.String()); s != "" {
				sentences = append(sentences, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
