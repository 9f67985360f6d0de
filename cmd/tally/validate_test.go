package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommandBundledTable(t *testing.T) {
	out, err := runCommand(t, "validate")
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}
	if !strings.Contains(out, "Pricing table valid") {
		t.Errorf("output = %q", out)
	}

	validateFlags.pricingPath = ""
}

func TestValidateCommandBadTable(t *testing.T) {
	dir := t.TempDir()
	pricingFile := filepath.Join(dir, "pricing.json")
	// Negative price must be rejected.
	pricingJSON := `{
		"openai": {
			"models": {
				"broken": {"input": -1.0, "output": 2.0}
			}
		}
	}`
	if err := os.WriteFile(pricingFile, []byte(pricingJSON), 0o644); err != nil {
		t.Fatalf("failed to write pricing file: %v", err)
	}

	_, err := runCommand(t, "validate", "--pricing", pricingFile)
	if err == nil {
		t.Error("validate command should fail on a negative price")
	}

	validateFlags.pricingPath = ""
}

func TestValidateCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, "validate", "--pricing", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("validate command should fail on a missing file")
	}

	validateFlags.pricingPath = ""
}
