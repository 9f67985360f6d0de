package costing

import (
	"github.com/shopspring/decimal"
)

// Breakdown is the full cost breakdown for a single usage record. It is
// produced fresh per record and never persisted by the engine itself.
type Breakdown struct {
	// Provider is the resolved provider tag ("openai", "google").
	Provider string `json:"provider"`

	// Model is the canonical model key the price was looked up under.
	Model string `json:"model"`

	// UnitTokens is the billing unit the prices correspond to.
	UnitTokens int64 `json:"unit_tokens"`

	// Tokens summarizes the token quantities that entered the computation.
	Tokens TokenCounts `json:"tokens"`

	// Pricing summarizes the unit prices applied.
	Pricing PriceSummary `json:"pricing"`

	// LineItems itemizes the cost per category, including zero-quantity
	// categories, for auditability.
	LineItems []LineItem `json:"line_items"`

	// Total is the exact decimal sum of all line item costs.
	Total decimal.Decimal `json:"total"`

	// Meta carries estimator-specific details (e.g. the selected tier).
	Meta map[string]any `json:"meta"`
}

// TokenCounts summarizes the token quantities used in a breakdown.
type TokenCounts struct {
	// Input is the raw input token count from the record.
	Input int64 `json:"input"`

	// Cached is the cached token count that was billed at the cached rate.
	Cached int64 `json:"cached"`

	// BillableInput is max(input - cached, 0), billed at the input rate.
	BillableInput int64 `json:"billable_input"`

	// Output is the output token count.
	Output int64 `json:"output"`

	// StorageHours is the context storage duration (tiered models only).
	StorageHours *decimal.Decimal `json:"storage_hours,omitempty"`
}

// PriceSummary summarizes the unit prices (per billing unit) applied.
type PriceSummary struct {
	Input decimal.Decimal `json:"input"`

	// CachedInput is nil when the model does not support caching.
	CachedInput *decimal.Decimal `json:"cached_input,omitempty"`

	// ContextCache is set for tiered models.
	ContextCache *decimal.Decimal `json:"context_cache,omitempty"`

	Output decimal.Decimal `json:"output"`

	// StoragePerHour is set for tiered models.
	StoragePerHour *decimal.Decimal `json:"storage_per_hour,omitempty"`
}

// LineItem is one cost category within a breakdown.
type LineItem struct {
	// Name identifies the category (e.g. "input_tokens_billable").
	Name string `json:"name"`

	// Quantity is the billed quantity in Unit.
	Quantity decimal.Decimal `json:"quantity"`

	// Unit is the quantity unit ("tokens" or "hours").
	Unit string `json:"unit"`

	// UnitPrice is the exact price per single unit.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Cost is the exact cost for this category.
	Cost decimal.Decimal `json:"cost"`
}

// Line item names and units shared by both estimators.
const (
	lineInputBillable = "input_tokens_billable"
	lineInputCached   = "input_tokens_cached"
	lineContextCache  = "context_cache_tokens"
	lineOutput        = "output_tokens"
	lineStorageHours  = "storage_hours"

	unitTokens = "tokens"
	unitHours  = "hours"
)
