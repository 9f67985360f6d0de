// Package pricing provides the model pricing table and model name resolution.
//
// # Overview
//
// The pricing table maps providers to per-model pricing configuration. It is
// loaded from a JSON file (a bundled default or an override path) and treated
// as read-only by the cost engine. Two pricing shapes are supported:
//
//   - Flat-rate (OpenAI-style): input/output prices per billing unit, with an
//     optional discounted cached-input price. A null cached_input means the
//     model does not support caching and cached tokens bill as regular input.
//   - Tiered (Google-style): an ordered ladder of pricing tiers keyed by an
//     input-token threshold. A null max_input_tokens marks the catch-all tier.
//
// # Model Resolution
//
// Resolve maps a free-text model name to a (provider, canonical key, config)
// triple. Providers are scanned in a fixed order (openai, then google); within
// a provider the name is first tried as a direct key, then against each
// model's alias list. Matching is exact string equality. The fixed scan order
// is the tie-break when a name appears under more than one provider, so
// resolution stays deterministic.
//
// # Loading and Hot Reload
//
// The Loader caches parsed tables per path and validates them on load. A
// Watcher built on fsnotify can invalidate the cache and notify the caller
// when the pricing file changes on disk, so long-running processes pick up
// price updates without a restart.
//
// # Usage
//
//	loader := pricing.NewLoader()
//	table, err := loader.Load("") // bundled default table
//	if err != nil {
//		return err
//	}
//
//	provider, key, cfg, ok := table.Resolve("gpt-5-mini-2025-08-07")
//	if !ok {
//		// unknown model
//	}
package pricing
