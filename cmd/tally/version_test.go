package main

import (
	"strings"
	"testing"
)

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestVersionOutput(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if strings.TrimSpace(out) != "tally "+Version {
		t.Errorf("output = %q, want single line %q", out, "tally "+Version)
	}
}

func TestVersionOutputVerbose(t *testing.T) {
	out, err := runCommand(t, "--verbose", "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	for _, want := range []string{"tally " + Version, "commit:", "built:", "runtime:"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q: %s", want, out)
		}
	}

	verbose = false
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"run", "price", "validate", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestRunDryRun(t *testing.T) {
	out, err := runCommand(t, "run", "--dry-run")
	if err != nil {
		t.Fatalf("run --dry-run error = %v", err)
	}
	_ = out // banner goes to the process stdout, not the command writer

	runFlags.dryRun = false
}
