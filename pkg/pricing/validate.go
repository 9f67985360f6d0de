package pricing

import (
	"fmt"
)

// Validate checks a pricing table for structural problems that would make
// estimation results wrong or ambiguous:
//
//   - negative billing units or prices
//   - tiered models with no tiers after a tiers key is present
//   - tier ladders that are not ascending by threshold
//   - non-final catch-all tiers (nil threshold before the last tier)
//
// The tiered estimator walks the ladder in configured order and does not sort
// it, so ordering problems must be rejected at load time.
func Validate(table Table) error {
	for provider, p := range table {
		if p.BillingUnitTokens < 0 {
			return fmt.Errorf("provider %q: billing_unit_tokens must not be negative", provider)
		}

		for key, cfg := range p.Models {
			if cfg == nil {
				return fmt.Errorf("provider %q: model %q has no configuration", provider, key)
			}
			if err := validateModel(cfg); err != nil {
				return fmt.Errorf("provider %q: model %q: %w", provider, key, err)
			}
		}
	}
	return nil
}

func validateModel(cfg *ModelConfig) error {
	if cfg.Tiered() {
		return validateTiers(cfg.Tiers)
	}

	if cfg.Input.IsNegative() || cfg.Output.IsNegative() {
		return fmt.Errorf("prices must not be negative")
	}
	if cfg.CachedInput != nil && cfg.CachedInput.IsNegative() {
		return fmt.Errorf("cached_input price must not be negative")
	}
	return nil
}

func validateTiers(tiers []Tier) error {
	var prev int64
	for i, tier := range tiers {
		if tier.Input.IsNegative() || tier.Output.IsNegative() ||
			tier.ContextCache.IsNegative() || tier.StoragePerHour.IsNegative() {
			return fmt.Errorf("tier %d: prices must not be negative", i)
		}

		if tier.MaxInputTokens == nil {
			if i != len(tiers)-1 {
				return fmt.Errorf("tier %d: catch-all tier must be last", i)
			}
			continue
		}

		if *tier.MaxInputTokens <= 0 {
			return fmt.Errorf("tier %d: max_input_tokens must be positive", i)
		}
		if i > 0 && *tier.MaxInputTokens <= prev {
			return fmt.Errorf("tier %d: thresholds must be ascending", i)
		}
		prev = *tier.MaxInputTokens
	}
	return nil
}
