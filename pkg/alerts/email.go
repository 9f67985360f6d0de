package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"nooko-hq/tally/pkg/batch"
)

// DefaultEndpoint is the internal email API endpoint used when the
// configuration does not override it.
const DefaultEndpoint = "https://app.nooko.ai/internal/email/send"

// EmailConfig configures the email notifier.
type EmailConfig struct {
	// Endpoint is the internal email API URL. Default: DefaultEndpoint.
	Endpoint string

	// Token is the X-Internal-Token value. Required unless DryRun is set.
	Token string

	// Recipients are the alert destinations. An empty list disables sending.
	Recipients []string

	// DryRun renders and logs the digest without calling the API.
	DryRun bool

	// Timeout bounds each API call. Default: 10s.
	Timeout time.Duration
}

// EmailNotifier posts unknown-model digests to the internal email API. It
// implements batch.Notifier.
type EmailNotifier struct {
	cfg    EmailConfig
	client *http.Client
	logger *slog.Logger
}

// NewEmailNotifier creates an email notifier.
func NewEmailNotifier(cfg EmailConfig, logger *slog.Logger) *EmailNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EmailNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "alerts.email"),
	}
}

// emailRequest is the internal email API payload ("generic" template).
type emailRequest struct {
	ToEmail  string       `json:"to_email"`
	Subject  string       `json:"subject"`
	Template string       `json:"template"`
	Context  emailContext `json:"context"`
}

type emailContext struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NotifyUnknownModels renders the digest and sends it to every configured
// recipient. Per-recipient failures are logged and skipped; the first
// rendering or configuration problem is returned so the caller can log it,
// but partial delivery is not an error.
func (n *EmailNotifier) NotifyUnknownModels(ctx context.Context, models []batch.UnknownModel) error {
	if len(models) == 0 {
		return nil
	}
	if len(n.cfg.Recipients) == 0 {
		n.logger.Debug("no alert recipients configured; skipping notification")
		return nil
	}

	digest, err := BuildDigest(models)
	if err != nil {
		return err
	}

	if n.cfg.DryRun {
		n.logger.Info("dry run: unknown-model alert not sent",
			"subject", digest.Subject,
			"recipients", len(n.cfg.Recipients),
			"models", len(models),
		)
		return nil
	}

	if n.cfg.Token == "" {
		return fmt.Errorf("alert email token not configured")
	}

	for _, to := range n.cfg.Recipients {
		if err := n.send(ctx, to, digest); err != nil {
			n.logger.Warn("failed to send unknown-model alert",
				"recipient", to,
				"error", err,
			)
			continue
		}
		n.logger.Info("unknown-model alert sent",
			"recipient", to,
			"models", len(models),
		)
	}

	return nil
}

func (n *EmailNotifier) send(ctx context.Context, to string, digest Digest) error {
	body, err := json.Marshal(emailRequest{
		ToEmail:  to,
		Subject:  digest.Subject,
		Template: "generic",
		Context: emailContext{
			Subject: digest.Subject,
			Body:    digest.BodyHTML,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Token", n.cfg.Token)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("email API connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API HTTP %d: %s", resp.StatusCode, snippet)
	}

	return nil
}

// LogNotifier writes the unknown-model collection to the structured log. It
// implements batch.Notifier and is the default when no email channel is
// configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "alerts.log")}
}

// NotifyUnknownModels logs the distinct unknown model names.
func (n *LogNotifier) NotifyUnknownModels(_ context.Context, models []batch.UnknownModel) error {
	if len(models) == 0 {
		return nil
	}
	n.logger.Warn("unknown models encountered; pricing table needs entries",
		"models", distinctNames(models),
		"count", len(models),
	)
	return nil
}
