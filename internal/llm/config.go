// Package llm wraps the generative service behind a tiered client interface.
package llm

// ModelTier selects a model by how much reasoning a task needs.
type ModelTier string

const (
	// TierLite extracts keyphrases.
	TierLite ModelTier = "lite"
	// TierStandard writes the qualitative review.
	TierStandard ModelTier = "standard"
	// TierAdvanced rewrites résumé content.
	TierAdvanced ModelTier = "advanced"
)

// Provider names a generative service backend.
type Provider string

// ProviderGemini is the only supported provider.
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps scoring commentary and rewrites stable across runs.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for tier, falling back to the standard and
// then the lite model.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierLite]; ok && model != "" {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}

// WithOverrides applies per-tier model names keyed by tier name. Empty
// values and unknown tiers are ignored.
func (c *Config) WithOverrides(overrides map[string]string) *Config {
	next := c.WithModel(TierStandard, c.Models[TierStandard])
	for name, model := range overrides {
		tier := ModelTier(name)
		switch tier {
		case TierLite, TierStandard, TierAdvanced:
			if model != "" {
				next.Models[tier] = model
			}
		}
	}
	return next
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}
