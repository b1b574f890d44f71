// Package llm wraps the Gemini text-generation API behind a small client
// interface with tiered model selection.
package llm

// ModelTier represents the capability level asked of a model.
type ModelTier string

const (
	// TierLite is for simple tasks such as short summaries.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning over longer inputs.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning tasks.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to concrete provider model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back down the tier
// ladder when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{Models: make(map[ModelTier]string, len(c.Models)+1)}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
