package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"nooko-hq/tally/pkg/costing"
	"nooko-hq/tally/pkg/pricing"
)

// Processor applies the cost engine to usage payloads against a pricing
// table. SetTable swaps the table when pricing reloads; each batch runs
// against a single snapshot of the table.
type Processor struct {
	mu          sync.RWMutex
	table       pricing.Table
	opts        Options
	notifier    Notifier
	recorder    Recorder
	onBreakdown func(costing.Fields, *costing.Breakdown)
	logger      *slog.Logger
}

// ProcessorConfig configures a batch processor. Table is required; everything
// else is optional.
type ProcessorConfig struct {
	// Table is the pricing table to resolve and price against.
	Table pricing.Table

	// Options are the processing options (DefaultOptions when zero-valued
	// fields are what you want, pass it explicitly).
	Options Options

	// Notifier receives the unknown-model collection once per batch.
	Notifier Notifier

	// Recorder receives per-record outcomes (metrics).
	Recorder Recorder

	// OnBreakdown is invoked with each successfully computed breakdown
	// (audit trail). It runs inside the record loop and must not block.
	OnBreakdown func(costing.Fields, *costing.Breakdown)

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// NewProcessor creates a batch processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		table:       cfg.Table,
		opts:        cfg.Options,
		notifier:    cfg.Notifier,
		recorder:    cfg.Recorder,
		onBreakdown: cfg.OnBreakdown,
		logger:      logger.With("component", "batch.processor"),
	}
}

// SetTable replaces the pricing table for subsequent batches. Batches
// already in flight keep the table they started with.
func (p *Processor) SetTable(table pricing.Table) {
	p.mu.Lock()
	p.table = table
	p.mu.Unlock()
}

func (p *Processor) currentTable() pricing.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// Process walks the payload's ai_usage records, writing computed costs back
// in place, and returns the same payload. Payloads without a usable ai_usage
// key pass through unmodified. Record order is preserved; no per-record
// problem aborts the batch.
func (p *Processor) Process(ctx context.Context, payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}

	var records []map[string]any
	switch v := payload["ai_usage"].(type) {
	case map[string]any:
		records = []map[string]any{v}
	case []any:
		records = make([]map[string]any, 0, len(v))
		for _, item := range v {
			if rec, ok := item.(map[string]any); ok {
				records = append(records, rec)
			} else {
				p.record(OutcomeMalformed)
			}
		}
	default:
		return payload
	}

	table := p.currentTable()
	unknown := newUnknownSet()

	for _, rec := range records {
		p.processRecord(table, rec, unknown)
	}

	if p.recorder != nil {
		p.recorder.RecordBatch()
	}

	if p.opts.AlertUnknown && p.notifier != nil && unknown.len() > 0 {
		// One notification per batch, after all records, so notifier
		// behavior can never interleave with record processing.
		if err := p.notifier.NotifyUnknownModels(ctx, unknown.list()); err != nil {
			p.logger.Warn("unknown-model notification failed",
				"models", unknown.len(),
				"error", err,
			)
		}
	}

	return payload
}

// ProcessJSON is Process for serialized payloads: a JSON string in, the
// re-serialized processed payload out. Payloads that Process would leave
// untouched, whether non-objects or objects without a usable ai_usage key,
// pass through byte-identical.
func (p *Processor) ProcessJSON(ctx context.Context, raw []byte) ([]byte, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	doc, ok := decoded.(map[string]any)
	if !ok {
		return raw, nil
	}
	switch doc["ai_usage"].(type) {
	case map[string]any, []any:
	default:
		return raw, nil
	}

	out, err := json.Marshal(p.Process(ctx, doc))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}
	return out, nil
}

// processRecord applies the skip rules and estimation to a single record,
// mutating it in place on success.
func (p *Processor) processRecord(table pricing.Table, rec map[string]any, unknown *unknownSet) {
	fields := costing.ExtractFields(rec)

	if p.opts.SkipNonSuccess && fields.Status != "success" {
		p.record(OutcomeSkippedState)
		return
	}

	if !isBlankCost(rec["cost_usd"]) {
		p.record(OutcomeSkippedCost)
		return
	}

	if fields.Model == "" {
		p.record(OutcomeSkippedModel)
		return
	}

	provider, key, cfg, ok := table.Resolve(fields.Model)
	if !ok {
		unknown.add(fields.Model, rec, fields)
		p.record(OutcomeUnknownModel)
		return
	}

	kind, err := costing.KindForProvider(provider)
	if err != nil {
		// A provider in the table without an estimator kind is a
		// configuration problem; treat like any estimation failure.
		p.logger.Warn("no estimator for resolved provider",
			"provider", provider, "model", fields.Model)
		p.record(OutcomeEstimateFail)
		return
	}

	breakdown, err := kind.Estimate(costing.Request{
		Provider:   provider,
		Model:      key,
		UnitTokens: table.UnitTokens(provider),
		Config:     cfg,
		Usage:      fields,
	})
	if err != nil {
		p.logger.Warn("cost estimation failed; record left unmodified",
			"model", fields.Model, "provider", provider, "error", err)
		p.record(OutcomeEstimateFail)
		return
	}

	rec["cost_usd"] = costing.FormatUSD8(breakdown.Total)
	p.record(OutcomePriced)

	if p.recorder != nil {
		usd, _ := breakdown.Total.Float64()
		p.recorder.RecordCost(provider, key, usd)
	}
	if p.onBreakdown != nil {
		p.onBreakdown(fields, breakdown)
	}
}

func (p *Processor) record(outcome Outcome) {
	if p.recorder != nil {
		p.recorder.RecordOutcome(outcome)
	}
}

// isBlankCost reports whether a cost_usd value counts as absent: nil, or a
// string that is empty after trimming whitespace. Any other value (including
// a numeric zero) counts as present and blocks recomputation.
func isBlankCost(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// unknownSet collects unknown models keyed by model name, first occurrence
// wins, preserving first-seen order for the notification payload.
type unknownSet struct {
	seen  map[string]struct{}
	order []UnknownModel
}

func newUnknownSet() *unknownSet {
	return &unknownSet{seen: make(map[string]struct{})}
}

func (u *unknownSet) add(model string, rec map[string]any, fields costing.Fields) {
	if _, dup := u.seen[model]; dup {
		return
	}
	u.seen[model] = struct{}{}
	u.order = append(u.order, UnknownModel{
		Model:         model,
		ProviderGuess: nil,
		Usage: UnknownUsage{
			Timestamp:    stringField(rec, "timestamp"),
			Module:       stringField(rec, "module"),
			Status:       fields.Status,
			InputTokens:  fields.InputTokens,
			OutputTokens: fields.OutputTokens,
		},
	})
}

func (u *unknownSet) len() int { return len(u.order) }

func (u *unknownSet) list() []UnknownModel { return u.order }

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}
