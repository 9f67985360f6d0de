package pricing

import (
	"github.com/shopspring/decimal"
)

// Provider names recognized by the resolver, in scan order.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// DefaultUnitTokens is the billing unit assumed when a provider entry does not
// specify one (prices quoted per 1M tokens).
const DefaultUnitTokens int64 = 1_000_000

// providerOrder fixes the resolver's scan order. Resolution must stay
// deterministic when a model name appears under more than one provider, so
// this order is explicit rather than relying on map iteration.
var providerOrder = []string{ProviderOpenAI, ProviderGoogle}

// Table is the full pricing table: provider name to per-provider pricing.
// It is read-only once loaded and safe to share across concurrent batches.
type Table map[string]ProviderPricing

// ProviderPricing contains the billing unit and model pricing for one provider.
type ProviderPricing struct {
	// BillingUnitTokens is the token count the listed prices correspond to
	// (e.g. 1000000 for per-1M-token pricing). Zero means DefaultUnitTokens.
	BillingUnitTokens int64 `json:"billing_unit_tokens"`

	// Models maps canonical model keys to their pricing configuration.
	Models map[string]*ModelConfig `json:"models"`
}

// ModelConfig is the pricing configuration for a single model. Exactly one of
// the two shapes is populated: flat-rate fields (Input/Output/CachedInput) or
// the tier ladder (Tiers).
type ModelConfig struct {
	// Input is the flat-rate price per billing unit of billable input tokens.
	Input decimal.Decimal `json:"input"`

	// Output is the flat-rate price per billing unit of output tokens.
	Output decimal.Decimal `json:"output"`

	// CachedInput is the discounted price for cached input tokens. A nil
	// value means caching is unsupported for this model; cached tokens must
	// then bill at the regular input rate.
	CachedInput *decimal.Decimal `json:"cached_input"`

	// Aliases lists alternate names that resolve to this model.
	Aliases []string `json:"aliases,omitempty"`

	// Tiers is the ordered pricing ladder for tiered models. Tiers must be
	// pre-sorted ascending by MaxInputTokens with the catch-all (nil) last.
	Tiers []Tier `json:"tiers,omitempty"`
}

// Tiered reports whether this config uses the tier ladder shape.
func (c *ModelConfig) Tiered() bool {
	return c != nil && len(c.Tiers) > 0
}

// Tier is one pricing bracket of a tiered model.
type Tier struct {
	// MaxInputTokens is the inclusive upper bound of input tokens for this
	// tier. Nil marks the catch-all (highest) tier.
	MaxInputTokens *int64 `json:"max_input_tokens"`

	// Input is the price per billing unit of billable input tokens.
	Input decimal.Decimal `json:"input"`

	// Output is the price per billing unit of output tokens.
	Output decimal.Decimal `json:"output"`

	// ContextCache is the price per billing unit of cached context tokens.
	ContextCache decimal.Decimal `json:"context_cache"`

	// StoragePerHour is the context storage price per hour. Storage is billed
	// per hour directly, not scaled by the billing unit.
	StoragePerHour decimal.Decimal `json:"storage_per_hour"`
}

// UnitTokens returns the billing unit for a provider, falling back to
// DefaultUnitTokens when the provider is absent or did not specify one.
func (t Table) UnitTokens(provider string) int64 {
	if p, ok := t[provider]; ok && p.BillingUnitTokens > 0 {
		return p.BillingUnitTokens
	}
	return DefaultUnitTokens
}

// Resolve maps a free-text model name to its provider, canonical model key,
// and pricing configuration.
//
// Providers are scanned in the fixed order (openai, google). Within a
// provider the name is first tried as a direct key in the models map, then
// against each model's alias list. Matching is exact string equality; there
// is no case folding or partial matching. The first provider with any match
// wins. A miss across all providers returns ok=false.
func (t Table) Resolve(modelName string) (provider, key string, cfg *ModelConfig, ok bool) {
	if modelName == "" {
		return "", "", nil, false
	}

	for _, name := range providerOrder {
		p, present := t[name]
		if !present || p.Models == nil {
			continue
		}

		if c, direct := p.Models[modelName]; direct && c != nil {
			return name, modelName, c, true
		}

		for k, c := range p.Models {
			if c == nil {
				continue
			}
			for _, alias := range c.Aliases {
				if alias == modelName {
					return name, k, c, true
				}
			}
		}
	}

	return "", "", nil, false
}
