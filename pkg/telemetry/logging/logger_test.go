package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"nooko-hq/tally/pkg/config"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("started", "port", 8480)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "started" {
		t.Errorf("msg = %v, want %q", entry["msg"], "started")
	}
	if entry["port"] != float64(8480) {
		t.Errorf("port = %v, want 8480", entry["port"])
	}
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("probing")
	if !strings.Contains(buf.String(), "msg=probing") {
		t.Errorf("text output missing message: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Errorf("info log should be filtered at warn level, got %q", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn log should pass at warn level")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud"}, nil); err == nil {
		t.Error("New() should reject unknown level")
	}
	if _, err := New(config.LoggingConfig{Format: "yaml"}, nil); err == nil {
		t.Error("New() should reject unknown format")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	Component(logger, "pricing").Info("table loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "pricing" {
		t.Errorf("component = %v, want %q", entry["component"], "pricing")
	}
}
