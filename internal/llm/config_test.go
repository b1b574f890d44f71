package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_FallbackChain(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "only-lite"}}

	assert.Equal(t, "only-lite", config.GetModel(TierAdvanced),
		"missing tiers fall back down the ladder")

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Empty(t, empty.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierLite, "custom-model")

	assert.Equal(t, "custom-model", custom.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash-lite", base.GetModel(TierLite), "original is untouched")
	assert.Equal(t, base.GetModel(TierStandard), custom.GetModel(TierStandard))
}
