package costing

import (
	"testing"

	"nooko-hq/tally/pkg/pricing"
)

func tieredConfig() *pricing.ModelConfig {
	return &pricing.ModelConfig{
		Tiers: []pricing.Tier{
			{
				MaxInputTokens: int64Ptr(200_000),
				Input:          dec("1.25"),
				Output:         dec("10.0"),
				ContextCache:   dec("0.125"),
				StoragePerHour: dec("4.5"),
			},
			{
				MaxInputTokens: nil,
				Input:          dec("2.5"),
				Output:         dec("15.0"),
				ContextCache:   dec("0.25"),
				StoragePerHour: dec("4.5"),
			},
		},
	}
}

func TestTiered_HighTierWithStorage(t *testing.T) {
	// 300000 tokens exceed the first tier, so the catch-all applies:
	// input: (300000/1e6)*2.5 = 0.75; storage: 2*4.5 = 9.0
	breakdown, err := KindTiered.Estimate(Request{
		Provider:   pricing.ProviderGoogle,
		Model:      "gemini-2.5-pro",
		UnitTokens: 1_000_000,
		Config:     tieredConfig(),
		Usage:      Fields{InputTokens: 300_000, StorageHours: dec("2")},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if got := FormatUSD8(breakdown.Total); got != "9.75000000" {
		t.Errorf("total = %q, want %q", got, "9.75000000")
	}

	// Storage line item appended because storage_hours != 0.
	if len(breakdown.LineItems) != 4 {
		t.Fatalf("len(LineItems) = %d, want 4", len(breakdown.LineItems))
	}
	last := breakdown.LineItems[3]
	if last.Name != "storage_hours" || last.Unit != "hours" {
		t.Errorf("storage line item = %+v", last)
	}
	if got := FormatUSD8(last.Cost); got != "9.00000000" {
		t.Errorf("storage cost = %q, want %q", got, "9.00000000")
	}
}

func TestTiered_BoundaryIsInclusive(t *testing.T) {
	// Input exactly at max_input_tokens selects that tier, not the next.
	breakdown, err := KindTiered.Estimate(Request{
		Provider:   pricing.ProviderGoogle,
		Model:      "gemini-2.5-pro",
		UnitTokens: 1_000_000,
		Config:     tieredConfig(),
		Usage:      Fields{InputTokens: 200_000},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	// (200000/1e6)*1.25 = 0.25 at the low tier; the high tier would give 0.5.
	if got := FormatUSD8(breakdown.Total); got != "0.25000000" {
		t.Errorf("total = %q, want low-tier %q", got, "0.25000000")
	}
}

func TestTiered_TierSelectionIsMonotonic(t *testing.T) {
	cfg := tieredConfig()

	prev := dec("-1")
	for _, inputTokens := range []int64{0, 100, 200_000, 200_001, 500_000, 2_000_000} {
		breakdown, err := KindTiered.Estimate(Request{
			Provider:   pricing.ProviderGoogle,
			Model:      "gemini-2.5-pro",
			UnitTokens: 1_000_000,
			Config:     cfg,
			Usage:      Fields{InputTokens: inputTokens},
		})
		if err != nil {
			t.Fatalf("Estimate(%d) failed: %v", inputTokens, err)
		}
		if breakdown.Total.LessThan(prev) {
			t.Errorf("cost decreased at input_tokens=%d: %s < %s",
				inputTokens, breakdown.Total, prev)
		}
		prev = breakdown.Total
	}
}

func TestTiered_NoStorageLineWhenZeroHours(t *testing.T) {
	breakdown, err := KindTiered.Estimate(Request{
		Provider:   pricing.ProviderGoogle,
		Model:      "gemini-2.5-pro",
		UnitTokens: 1_000_000,
		Config:     tieredConfig(),
		Usage:      Fields{InputTokens: 1000, OutputTokens: 500},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if len(breakdown.LineItems) != 3 {
		t.Errorf("len(LineItems) = %d, want 3 without storage", len(breakdown.LineItems))
	}
}

func TestTiered_CachedTokensReduceBillableInput(t *testing.T) {
	// billable: (800/1e6)*1.25 = 0.001; cache: (200/1e6)*0.125 = 0.000025
	breakdown, err := KindTiered.Estimate(Request{
		Provider:   pricing.ProviderGoogle,
		Model:      "gemini-2.5-pro",
		UnitTokens: 1_000_000,
		Config:     tieredConfig(),
		Usage:      Fields{InputTokens: 1000, CachedTokens: 200},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if breakdown.Tokens.BillableInput != 800 {
		t.Errorf("billable input = %d, want 800", breakdown.Tokens.BillableInput)
	}
	if got := FormatUSD8(breakdown.Total); got != "0.00102500" {
		t.Errorf("total = %q, want %q", got, "0.00102500")
	}
}

func TestTiered_BillableInputNeverNegative(t *testing.T) {
	breakdown, err := KindTiered.Estimate(Request{
		Provider:   pricing.ProviderGoogle,
		Model:      "gemini-2.5-pro",
		UnitTokens: 1_000_000,
		Config:     tieredConfig(),
		Usage:      Fields{InputTokens: 100, CachedTokens: 100_000},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if breakdown.Tokens.BillableInput != 0 {
		t.Errorf("billable input = %d, want 0", breakdown.Tokens.BillableInput)
	}
}

func TestTiered_NoTiers(t *testing.T) {
	_, err := KindTiered.Estimate(Request{
		Provider: pricing.ProviderGoogle,
		Model:    "gemini-x",
		Config:   &pricing.ModelConfig{},
	})
	if err == nil {
		t.Fatal("expected error for missing tiers")
	}

	_, err = KindTiered.Estimate(Request{
		Provider: pricing.ProviderGoogle,
		Model:    "gemini-x",
		Config:   nil,
	})
	if err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestTiered_LadderWithoutCatchAllFallsBackToLast(t *testing.T) {
	cfg := &pricing.ModelConfig{
		Tiers: []pricing.Tier{
			{MaxInputTokens: int64Ptr(1000), Input: dec("1.0"), Output: dec("2.0")},
			{MaxInputTokens: int64Ptr(2000), Input: dec("3.0"), Output: dec("4.0")},
		},
	}

	breakdown, err := KindTiered.Estimate(Request{
		Provider:   pricing.ProviderGoogle,
		Model:      "m",
		UnitTokens: 1_000_000,
		Config:     cfg,
		Usage:      Fields{InputTokens: 10_000},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	// (10000/1e6)*3.0 = 0.03 from the last tier.
	if got := FormatUSD8(breakdown.Total); got != "0.03000000" {
		t.Errorf("total = %q, want %q", got, "0.03000000")
	}
}
