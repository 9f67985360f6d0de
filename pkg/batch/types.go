package batch

import (
	"context"
)

// Options controls batch processing behavior.
type Options struct {
	// SkipNonSuccess leaves records whose status is not "success" untouched.
	SkipNonSuccess bool

	// AlertUnknown invokes the notifier with the unknown-model collection
	// after the batch when the collection is non-empty.
	AlertUnknown bool
}

// DefaultOptions returns the standard processing options: skip non-success
// records and alert on unknown models.
func DefaultOptions() Options {
	return Options{
		SkipNonSuccess: true,
		AlertUnknown:   true,
	}
}

// UnknownModel is one entry of the unknown-model collection handed to the
// notifier. ProviderGuess is always nil today; the field exists so the alert
// payload shape stays stable if resolution ever produces partial guesses.
type UnknownModel struct {
	Model         string       `json:"model"`
	ProviderGuess *string      `json:"provider_guess"`
	Usage         UnknownUsage `json:"usage"`
}

// UnknownUsage is the usage excerpt attached to an unknown-model entry.
type UnknownUsage struct {
	Timestamp    string `json:"timestamp"`
	Module       string `json:"module"`
	Status       string `json:"status"`
	InputTokens  int64  `json:"input_tokens"`
	OutputTokens int64  `json:"output_tokens"`
}

// Notifier receives the unknown-model collection once per batch. Delivery is
// entirely the notifier's concern and must not affect batch results; the
// processor logs a returned error and moves on.
type Notifier interface {
	NotifyUnknownModels(ctx context.Context, models []UnknownModel) error
}

// Outcome classifies what happened to a single record.
type Outcome string

const (
	OutcomePriced       Outcome = "priced"
	OutcomeSkippedState Outcome = "skipped_status"
	OutcomeSkippedCost  Outcome = "skipped_existing_cost"
	OutcomeSkippedModel Outcome = "skipped_no_model"
	OutcomeUnknownModel Outcome = "unknown_model"
	OutcomeEstimateFail Outcome = "estimate_failed"
	OutcomeMalformed    Outcome = "malformed_record"
)

// Recorder receives processing outcomes, typically for metrics.
// RecordOutcome and RecordCost are called inside the record loop and must
// be cheap; RecordBatch is called once after each payload whose ai_usage
// was walked (pass-through payloads are not counted).
type Recorder interface {
	RecordOutcome(outcome Outcome)
	RecordCost(provider, model string, usd float64)
	RecordBatch()
}
