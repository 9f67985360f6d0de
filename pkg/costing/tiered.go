package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"nooko-hq/tally/pkg/pricing"
)

// estimateTiered computes a Google-style tiered breakdown.
//
// Tier selection is a threshold ladder: the first tier whose max_input_tokens
// is nil or >= the record's input tokens wins. The boundary is inclusive; an
// input exactly at a tier's threshold selects that tier, not the next.
func estimateTiered(req Request) (*Breakdown, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w for model %q", ErrNoConfig, req.Model)
	}
	if len(cfg.Tiers) == 0 {
		return nil, fmt.Errorf("%w for model %q", ErrNoTiers, req.Model)
	}

	unit := req.unit()
	usage := req.Usage

	tier := selectTier(cfg.Tiers, usage.InputTokens)

	billableInput := usage.InputTokens - usage.CachedTokens
	if billableInput < 0 {
		billableInput = 0
	}

	inputUnitPrice, inputCost := unitCost(billableInput, unit, tier.Input)
	cacheUnitPrice, cacheCost := unitCost(usage.CachedTokens, unit, tier.ContextCache)
	outputUnitPrice, outputCost := unitCost(usage.OutputTokens, unit, tier.Output)

	// Storage bills per hour directly, not per billing unit.
	storageCost := usage.StorageHours.Mul(tier.StoragePerHour)

	total := inputCost.Add(cacheCost).Add(outputCost).Add(storageCost)

	lineItems := []LineItem{
		{
			Name:      lineInputBillable,
			Quantity:  decimal.NewFromInt(billableInput),
			Unit:      unitTokens,
			UnitPrice: inputUnitPrice,
			Cost:      inputCost,
		},
		{
			Name:      lineContextCache,
			Quantity:  decimal.NewFromInt(usage.CachedTokens),
			Unit:      unitTokens,
			UnitPrice: cacheUnitPrice,
			Cost:      cacheCost,
		},
		{
			Name:      lineOutput,
			Quantity:  decimal.NewFromInt(usage.OutputTokens),
			Unit:      unitTokens,
			UnitPrice: outputUnitPrice,
			Cost:      outputCost,
		},
	}
	if !usage.StorageHours.IsZero() {
		lineItems = append(lineItems, LineItem{
			Name:      lineStorageHours,
			Quantity:  usage.StorageHours,
			Unit:      unitHours,
			UnitPrice: tier.StoragePerHour,
			Cost:      storageCost,
		})
	}

	storageHours := usage.StorageHours
	contextCache := tier.ContextCache
	storagePerHour := tier.StoragePerHour

	return &Breakdown{
		Provider:   req.Provider,
		Model:      req.Model,
		UnitTokens: unit,
		Tokens: TokenCounts{
			Input:         usage.InputTokens,
			Cached:        usage.CachedTokens,
			BillableInput: billableInput,
			Output:        usage.OutputTokens,
			StorageHours:  &storageHours,
		},
		Pricing: PriceSummary{
			Input:          tier.Input,
			ContextCache:   &contextCache,
			Output:         tier.Output,
			StoragePerHour: &storagePerHour,
		},
		LineItems: lineItems,
		Total:     total,
		Meta: map[string]any{
			"tier": tierMeta(tier),
		},
	}, nil
}

// selectTier walks the ladder in configured order and returns the first tier
// whose threshold admits inputTokens. The ladder is validated at load time to
// be ascending with the catch-all last; if no tier matches (a ladder without
// a catch-all) the last tier applies.
func selectTier(tiers []pricing.Tier, inputTokens int64) pricing.Tier {
	for _, tier := range tiers {
		if tier.MaxInputTokens == nil || inputTokens <= *tier.MaxInputTokens {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

// tierMeta records the selected tier in the breakdown metadata.
func tierMeta(tier pricing.Tier) map[string]any {
	m := map[string]any{
		"input":            tier.Input,
		"output":           tier.Output,
		"context_cache":    tier.ContextCache,
		"storage_per_hour": tier.StoragePerHour,
	}
	if tier.MaxInputTokens != nil {
		m["max_input_tokens"] = *tier.MaxInputTokens
	} else {
		m["max_input_tokens"] = nil
	}
	return m
}
