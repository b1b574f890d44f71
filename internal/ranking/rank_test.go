package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkEnough/resume-ranker/internal/config"
	"github.com/DarkEnough/resume-ranker/internal/embedding"
	"github.com/DarkEnough/resume-ranker/internal/models"
	"github.com/DarkEnough/resume-ranker/internal/tagging"
	"github.com/DarkEnough/resume-ranker/internal/types"
)

func testRanker(vocabulary map[string]string) *Ranker {
	registry := models.NewStatic(embedding.NewMock(64), &tagging.Mock{Vocabulary: vocabulary})
	cfg := config.Default()
	return New(registry, cfg.Scoring, cfg.Skills, nil)
}

func techVocabulary() map[string]string {
	return map[string]string{
		"python":     "SKILL",
		"django":     "SKILL",
		"rest apis":  "SKILL",
		"marketing":  "MISC",
		"excel":      "MISC",
		"powerpoint": "MISC",
	}
}

const backendJD = "Required Skills: Python, Django, REST APIs. 3+ years experience."

var (
	backendResume = types.Resume{
		ID:   "a.pdf",
		Text: "5 years of Python and Django development, built REST APIs",
	}
	marketingResume = types.Resume{
		ID:   "b.pdf",
		Text: "Marketing specialist, Excel and PowerPoint",
	}
)

func TestRank_EmptyResumePoolRejected(t *testing.T) {
	ranker := testRanker(techVocabulary())

	_, err := ranker.Rank(context.Background(), backendJD, nil, 5)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestRank_BlankJobDescriptionRejected(t *testing.T) {
	ranker := testRanker(techVocabulary())

	_, err := ranker.Rank(context.Background(), "  \n ", []types.Resume{backendResume}, 5)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestRank_BackendCandidateBeatsMarketingCandidate(t *testing.T) {
	ranker := testRanker(techVocabulary())

	result, err := ranker.Rank(context.Background(), backendJD,
		[]types.Resume{marketingResume, backendResume}, 10)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 2)

	top, bottom := result.Candidates[0], result.Candidates[1]
	assert.Equal(t, "a.pdf", top.SourceID)
	assert.Greater(t, top.Similarity, bottom.Similarity)

	assert.Contains(t, top.MatchedSkills, "python")
	assert.Contains(t, top.MatchedSkills, "django")
	assert.Contains(t, bottom.MissingSkills, "python")
	assert.Contains(t, bottom.MissingSkills, "django")
}

func TestRank_RespectsTopK(t *testing.T) {
	ranker := testRanker(techVocabulary())
	resumes := []types.Resume{
		{ID: "1.pdf", Text: "python developer"},
		{ID: "2.pdf", Text: "django developer"},
		{ID: "3.pdf", Text: "excel analyst"},
	}

	for _, topK := range []int{1, 2, 3, 10} {
		result, err := ranker.Rank(context.Background(), backendJD, resumes, topK)
		require.NoError(t, err)
		assert.Len(t, result.Candidates, min(topK, len(resumes)), "top_k=%d", topK)
	}
}

func TestRank_SimilarityBounds(t *testing.T) {
	ranker := testRanker(techVocabulary())
	resumes := []types.Resume{
		backendResume,
		marketingResume,
		{ID: "empty.pdf", Text: "unrelated words entirely"},
	}

	result, err := ranker.Rank(context.Background(), backendJD, resumes, 10)
	require.NoError(t, err)

	for _, c := range result.Candidates {
		assert.GreaterOrEqual(t, c.Similarity, 0.0, "%s", c.SourceID)
		assert.LessOrEqual(t, c.Similarity, 1.0, "%s", c.SourceID)
		assert.GreaterOrEqual(t, c.SkillMatchRate, 0.0)
		assert.LessOrEqual(t, c.SkillMatchRate, 1.0)
	}
}

func TestRank_MatchedAndMissingPartitionJobSkills(t *testing.T) {
	ranker := testRanker(techVocabulary())

	result, err := ranker.Rank(context.Background(), backendJD,
		[]types.Resume{backendResume, marketingResume}, 10)
	require.NoError(t, err)

	for _, c := range result.Candidates {
		union := append(append([]string{}, c.MatchedSkills...), c.MissingSkills...)
		assert.ElementsMatch(t, result.JobSkills, union, "%s", c.SourceID)

		for _, m := range c.MatchedSkills {
			assert.NotContains(t, c.MissingSkills, m)
		}
		assert.Equal(t, len(c.MatchedSkills), c.SkillCount)
		assert.Equal(t, len(result.JobSkills), c.TotalSkills)
	}
}

func TestRank_DeterministicWithFixedEmbeddings(t *testing.T) {
	ranker := testRanker(techVocabulary())
	resumes := []types.Resume{backendResume, marketingResume}

	first, err := ranker.Rank(context.Background(), backendJD, resumes, 10)
	require.NoError(t, err)
	second, err := ranker.Rank(context.Background(), backendJD, resumes, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRank_NoJobSkillsStillRanks(t *testing.T) {
	// A vocabulary that recognizes nothing in the job description: the
	// skills channel falls back to excerpts and the bonus degenerates to 0.
	ranker := testRanker(map[string]string{"quantum": "SKILL"})

	result, err := ranker.Rank(context.Background(), backendJD,
		[]types.Resume{backendResume, marketingResume}, 10)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2)
	assert.Empty(t, result.JobSkills)
	for _, c := range result.Candidates {
		assert.Zero(t, c.SkillMatchRate)
		assert.Zero(t, c.TotalSkills)
	}
}

func TestRank_TruncatesJobSkillsToConfiguredTop(t *testing.T) {
	vocabulary := map[string]string{
		"python": "SKILL", "django": "SKILL", "rest apis": "SKILL",
	}
	registry := models.NewStatic(embedding.NewMock(64), &tagging.Mock{Vocabulary: vocabulary})
	cfg := config.Default()
	cfg.Scoring.TopJobSkills = 2
	ranker := New(registry, cfg.Scoring, cfg.Skills, nil)

	result, err := ranker.Rank(context.Background(), backendJD,
		[]types.Resume{backendResume}, 10)
	require.NoError(t, err)

	assert.Len(t, result.JobSkills, 2)
	assert.Equal(t, 2, result.Candidates[0].TotalSkills)
}

func TestRank_PreservesEveryCandidateWithoutTopK(t *testing.T) {
	ranker := testRanker(techVocabulary())
	resumes := []types.Resume{
		{ID: "1.pdf", Text: "python"},
		{ID: "2.pdf", Text: "django"},
		{ID: "3.pdf", Text: "excel"},
	}

	result, err := ranker.Rank(context.Background(), backendJD, resumes, 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		ids = append(ids, c.SourceID)
	}
	assert.ElementsMatch(t, []string{"1.pdf", "2.pdf", "3.pdf"}, ids,
		"every résumé entering ranking appears in the output")
}
