package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// estimateFlatRate computes an OpenAI-style flat-rate breakdown.
//
// When the model's cached_input price is nil the model does not support
// caching: cached tokens are not billed separately and not discounted, they
// simply remain part of billable input.
func estimateFlatRate(req Request) (*Breakdown, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w for model %q", ErrNoConfig, req.Model)
	}

	unit := req.unit()
	usage := req.Usage

	cachedPrice := decimal.Zero
	effectiveCached := int64(0)
	if cfg.CachedInput != nil {
		cachedPrice = *cfg.CachedInput
		effectiveCached = usage.CachedTokens
	}

	billableInput := usage.InputTokens - effectiveCached
	if billableInput < 0 {
		billableInput = 0
	}

	inputUnitPrice, inputCost := unitCost(billableInput, unit, cfg.Input)
	cachedUnitPrice, cachedCost := unitCost(effectiveCached, unit, cachedPrice)
	outputUnitPrice, outputCost := unitCost(usage.OutputTokens, unit, cfg.Output)

	total := inputCost.Add(cachedCost).Add(outputCost)

	pricingSummary := PriceSummary{
		Input:  cfg.Input,
		Output: cfg.Output,
	}
	if cfg.CachedInput != nil {
		pricingSummary.CachedInput = cfg.CachedInput
	}

	return &Breakdown{
		Provider:   req.Provider,
		Model:      req.Model,
		UnitTokens: unit,
		Tokens: TokenCounts{
			Input:         usage.InputTokens,
			Cached:        effectiveCached,
			BillableInput: billableInput,
			Output:        usage.OutputTokens,
		},
		Pricing: pricingSummary,
		LineItems: []LineItem{
			{
				Name:      lineInputBillable,
				Quantity:  decimal.NewFromInt(billableInput),
				Unit:      unitTokens,
				UnitPrice: inputUnitPrice,
				Cost:      inputCost,
			},
			{
				Name:      lineInputCached,
				Quantity:  decimal.NewFromInt(effectiveCached),
				Unit:      unitTokens,
				UnitPrice: cachedUnitPrice,
				Cost:      cachedCost,
			},
			{
				Name:      lineOutput,
				Quantity:  decimal.NewFromInt(usage.OutputTokens),
				Unit:      unitTokens,
				UnitPrice: outputUnitPrice,
				Cost:      outputCost,
			},
		},
		Total: total,
		Meta:  map[string]any{},
	}, nil
}
