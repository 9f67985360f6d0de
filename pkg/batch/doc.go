// Package batch applies the cost engine to payloads of AI usage records.
//
// # Overview
//
// A payload is an object whose "ai_usage" key holds either a single usage
// record or a list of them. The processor walks the records in order, applies
// the skip rules, resolves each model against the pricing table, estimates
// the cost, and writes it back into the record as a fixed 8-decimal-place
// string. Payloads of any other shape pass through unmodified.
//
// # Skip Rules
//
// A record is left untouched when any of these hold, checked in order:
//
//  1. its status is not "success" (unless SkipNonSuccess is disabled)
//  2. it already carries a non-blank cost_usd (null and whitespace-only
//     strings count as blank)
//  3. its model field is blank
//
// # Failure Containment
//
// No per-record problem ever aborts a batch. Unknown models are not errors:
// they are collected (keyed by model name, first occurrence wins) and handed
// to the configured Notifier exactly once after the whole batch, decoupled
// from the per-record loop. Estimation failures are absorbed and leave the
// record unmodified. Malformed records coerce to safe zero defaults.
//
// # Usage
//
//	processor := batch.NewProcessor(batch.ProcessorConfig{
//		Table:    table,
//		Options:  batch.DefaultOptions(),
//		Notifier: notifier,
//	})
//
//	out := processor.Process(ctx, payload)            // decoded payload
//	raw, err := processor.ProcessJSON(ctx, rawJSON)   // serialized payload
package batch
