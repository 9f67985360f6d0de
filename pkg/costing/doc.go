// Package costing computes cost breakdowns for AI usage records.
//
// # Overview
//
// The package implements the two provider pricing formulas as a closed set of
// estimator kinds:
//
//   - KindFlatRate (OpenAI-style): per-unit input/output prices with an
//     optional discounted cached-input rate. When a model does not support
//     caching, cached tokens fold back into billable input.
//   - KindTiered (Google-style): a threshold ladder of tiers selected by
//     input-token count, plus hourly context storage billing.
//
// The estimator kind is selected from the provider tag returned by the
// pricing resolver, so dispatch is a closed switch rather than a string
// comparison scattered through callers.
//
// # Decimal Arithmetic
//
// All monetary values are computed with github.com/shopspring/decimal. Binary
// floating point never touches a price or a cost until the final display
// conversion: the written cost is a fixed 8-decimal-place string, rounded
// half-up. Per-category cost is (quantity / billing_unit) * unit_price.
//
// # Usage
//
//	provider, key, cfg, ok := table.Resolve(fields.Model)
//	if !ok {
//		// unknown model, not an estimation error
//	}
//	kind, _ := costing.KindForProvider(provider)
//	breakdown, err := kind.Estimate(costing.Request{
//		Provider:   provider,
//		Model:      key,
//		UnitTokens: table.UnitTokens(provider),
//		Config:     cfg,
//		Usage:      fields,
//	})
//	if err != nil {
//		// configuration problem; the caller leaves the record unmodified
//	}
//	record["cost_usd"] = costing.FormatUSD8(breakdown.Total)
package costing
