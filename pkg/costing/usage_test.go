package costing

import (
	"testing"
)

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name  string
		usage map[string]any
		want  Fields
	}{
		{
			name: "complete record",
			usage: map[string]any{
				"model":         "gpt-5-mini",
				"status":        "success",
				"input_tokens":  float64(447),
				"output_tokens": float64(132),
				"cached_tokens": float64(10),
				"storage_hours": float64(1.5),
			},
			want: Fields{
				Model:        "gpt-5-mini",
				Status:       "success",
				InputTokens:  447,
				OutputTokens: 132,
				CachedTokens: 10,
				StorageHours: dec("1.5"),
			},
		},
		{
			name: "cached tokens fall back to nested details",
			usage: map[string]any{
				"model":        "gpt-5-mini",
				"input_tokens": float64(1000),
				"input_token_details": map[string]any{
					"cached_tokens": float64(400),
				},
			},
			want: Fields{Model: "gpt-5-mini", InputTokens: 1000, CachedTokens: 400},
		},
		{
			name: "top-level cached tokens win over nested",
			usage: map[string]any{
				"model":         "gpt-5-mini",
				"cached_tokens": float64(5),
				"input_token_details": map[string]any{
					"cached_tokens": float64(400),
				},
			},
			want: Fields{Model: "gpt-5-mini", CachedTokens: 5},
		},
		{
			name:  "empty record coerces to zero values",
			usage: map[string]any{},
			want:  Fields{},
		},
		{
			name: "invalid numerics coerce to zero",
			usage: map[string]any{
				"model":         "gpt-5-mini",
				"input_tokens":  "not-a-number",
				"output_tokens": []any{1, 2},
				"storage_hours": "garbage",
			},
			want: Fields{Model: "gpt-5-mini"},
		},
		{
			name: "numeric strings accepted",
			usage: map[string]any{
				"input_tokens":  "447",
				"storage_hours": "2.5",
			},
			want: Fields{InputTokens: 447, StorageHours: dec("2.5")},
		},
		{
			name: "non-string model coerces to blank",
			usage: map[string]any{
				"model": float64(42),
			},
			want: Fields{},
		},
		{
			name: "malformed nested details ignored",
			usage: map[string]any{
				"input_token_details": "not-an-object",
			},
			want: Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFields(tt.usage)

			if got.Model != tt.want.Model || got.Status != tt.want.Status {
				t.Errorf("identity fields = (%q, %q), want (%q, %q)",
					got.Model, got.Status, tt.want.Model, tt.want.Status)
			}
			if got.InputTokens != tt.want.InputTokens {
				t.Errorf("InputTokens = %d, want %d", got.InputTokens, tt.want.InputTokens)
			}
			if got.OutputTokens != tt.want.OutputTokens {
				t.Errorf("OutputTokens = %d, want %d", got.OutputTokens, tt.want.OutputTokens)
			}
			if got.CachedTokens != tt.want.CachedTokens {
				t.Errorf("CachedTokens = %d, want %d", got.CachedTokens, tt.want.CachedTokens)
			}
			if !got.StorageHours.Equal(tt.want.StorageHours) {
				t.Errorf("StorageHours = %s, want %s", got.StorageHours, tt.want.StorageHours)
			}
		})
	}
}

func TestFormatUSD8(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.00025", "0.00025000"},
		{"9.75", "9.75000000"},
		{"0", "0.00000000"},
		{"0.000000005", "0.00000001"}, // half rounds up
		{"0.000000004", "0.00000000"},
		{"1.123456789", "1.12345679"},
	}

	for _, tt := range tests {
		if got := FormatUSD8(dec(tt.in)); got != tt.want {
			t.Errorf("FormatUSD8(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKindForProvider(t *testing.T) {
	if kind, err := KindForProvider("openai"); err != nil || kind != KindFlatRate {
		t.Errorf("KindForProvider(openai) = (%v, %v), want flat rate", kind, err)
	}
	if kind, err := KindForProvider("google"); err != nil || kind != KindTiered {
		t.Errorf("KindForProvider(google) = (%v, %v), want tiered", kind, err)
	}
	if _, err := KindForProvider("anthropic"); err == nil {
		t.Error("KindForProvider(anthropic) should fail")
	}
}
