package costing

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Fields are the usage record fields the engine consumes. Extraction is
// deliberately defensive: missing or non-numeric values coerce to zero rather
// than failing, so one malformed record can never abort a batch.
type Fields struct {
	Model        string
	Status       string
	InputTokens  int64
	OutputTokens int64
	CachedTokens int64
	StorageHours decimal.Decimal
}

// ExtractFields pulls the engine's fields out of a decoded usage record.
//
// CachedTokens falls back to the nested input_token_details.cached_tokens
// field when the top-level cached_tokens is zero or absent (OpenAI responses
// report it nested).
func ExtractFields(usage map[string]any) Fields {
	f := Fields{
		Model:        coerceString(usage["model"]),
		Status:       coerceString(usage["status"]),
		InputTokens:  coerceInt64(usage["input_tokens"]),
		OutputTokens: coerceInt64(usage["output_tokens"]),
		CachedTokens: coerceInt64(usage["cached_tokens"]),
		StorageHours: coerceDecimal(usage["storage_hours"]),
	}

	if f.CachedTokens == 0 {
		if details, ok := usage["input_token_details"].(map[string]any); ok {
			f.CachedTokens = coerceInt64(details["cached_tokens"])
		}
	}

	return f
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i
		}
	}
	return 0
}

func coerceDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}
