package costing

import (
	"errors"
	"fmt"

	"nooko-hq/tally/pkg/pricing"
)

// Estimation failures are configuration errors: the model resolved but its
// pricing entry cannot support a computation. Callers absorb these per record.
var (
	// ErrNoConfig indicates a missing or malformed pricing configuration.
	ErrNoConfig = errors.New("no pricing configuration")

	// ErrNoTiers indicates a tiered model with no tiers configured.
	ErrNoTiers = errors.New("no pricing tiers configured")

	// ErrUnknownProvider indicates a provider tag with no estimator kind.
	ErrUnknownProvider = errors.New("no estimator for provider")
)

// Kind identifies a pricing formula. The set is closed: every supported
// provider maps to exactly one kind.
type Kind int

const (
	// KindFlatRate applies per-unit input/output prices with an optional
	// discounted cached-input rate.
	KindFlatRate Kind = iota

	// KindTiered selects a pricing tier by input-token threshold and adds
	// hourly context storage billing.
	KindTiered
)

// String returns the kind name for logs and breakdown metadata.
func (k Kind) String() string {
	switch k {
	case KindFlatRate:
		return "flat_rate"
	case KindTiered:
		return "tiered"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindForProvider maps a resolver provider tag to its estimator kind.
func KindForProvider(provider string) (Kind, error) {
	switch provider {
	case pricing.ProviderOpenAI:
		return KindFlatRate, nil
	case pricing.ProviderGoogle:
		return KindTiered, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}

// Request carries everything an estimator needs for one record: the resolved
// pricing configuration and the extracted usage fields.
type Request struct {
	// Provider is the resolved provider tag.
	Provider string

	// Model is the canonical model key.
	Model string

	// UnitTokens is the provider's billing unit. Zero or negative falls back
	// to pricing.DefaultUnitTokens.
	UnitTokens int64

	// Config is the resolved model pricing configuration.
	Config *pricing.ModelConfig

	// Usage holds the extracted usage fields.
	Usage Fields
}

// unit returns the effective billing unit for the request.
func (r Request) unit() int64 {
	if r.UnitTokens > 0 {
		return r.UnitTokens
	}
	return pricing.DefaultUnitTokens
}

// Estimate computes the cost breakdown for the request using this kind's
// pricing formula. It returns a configuration error when the request's config
// cannot support the formula; it never panics on odd usage values.
func (k Kind) Estimate(req Request) (*Breakdown, error) {
	switch k {
	case KindFlatRate:
		return estimateFlatRate(req)
	case KindTiered:
		return estimateTiered(req)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownProvider, int(k))
	}
}
