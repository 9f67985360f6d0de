package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"nooko-hq/tally/pkg/batch"
	"nooko-hq/tally/pkg/config"
	"nooko-hq/tally/pkg/pricing"
)

type stubProcessor struct {
	out []byte
	err error
}

func (s *stubProcessor) ProcessJSON(_ context.Context, data []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.out != nil {
		return s.out, nil
	}
	return data, nil
}

func testServerConfig() config.ServerConfig {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return cfg.Server
}

func TestHandleCosts(t *testing.T) {
	srv := NewServer(testServerConfig(), &stubProcessor{}, nil, nil)

	payload := `{"ai_usage":[]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/costs", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != payload {
		t.Errorf("body = %q, want echo of payload", rec.Body.String())
	}
}

func TestHandleCostsMethodNotAllowed(t *testing.T) {
	srv := NewServer(testServerConfig(), &stubProcessor{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/costs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleCostsInvalidPayload(t *testing.T) {
	srv := NewServer(testServerConfig(), &stubProcessor{err: errors.New("bad json")}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/costs", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error body should carry a message")
	}
}

func TestHandleCostsBodyTooLarge(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxBodyBytes = 16
	srv := NewServer(cfg, &stubProcessor{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/costs", bytes.NewReader(make([]byte, 64)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(testServerConfig(), &stubProcessor{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestMetricsRouteOptional(t *testing.T) {
	srv := NewServer(testServerConfig(), &stubProcessor{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status without metrics handler = %d, want 404", rec.Code)
	}

	served := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv = NewServer(testServerConfig(), &stubProcessor{}, served, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with metrics handler = %d, want 200", rec.Code)
	}
}

func TestCostsEndToEnd(t *testing.T) {
	table := pricing.Table{
		pricing.ProviderOpenAI: {
			Models: map[string]*pricing.ModelConfig{
				"gpt-5-nano": {
					Input:  decimal.RequireFromString("0.05"),
					Output: decimal.RequireFromString("0.40"),
				},
			},
		},
	}
	processor := batch.NewProcessor(batch.ProcessorConfig{
		Table:   table,
		Options: batch.DefaultOptions(),
	})
	srv := NewServer(testServerConfig(), processor, nil, nil)

	payload := `{"ai_usage":[{"model":"gpt-5-nano","status":"success","input_tokens":1000000,"output_tokens":0}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/costs", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"cost_usd":"0.05000000"`) {
		t.Errorf("response missing priced record: %s", rec.Body.String())
	}
}
