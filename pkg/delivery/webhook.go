package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/contact"
)

// IdempotencyHeader carries the submission ID so receivers can drop retries.
const IdempotencyHeader = "Idempotency-Key"

// Webhook POSTs each submission as JSON to an HTTP endpoint. 5xx responses,
// 429 and transport errors are retried; other non-2xx responses fail at once.
type Webhook struct {
	endpoint string
	client   *http.Client
	retry    RetryConfig
	headers  http.Header
	logger   *zap.Logger
}

// WebhookOption configures a Webhook.
type WebhookOption func(*Webhook)

// WithHTTPClient overrides the HTTP client (default: 10s timeout).
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *Webhook) {
		if client != nil {
			w.client = client
		}
	}
}

// WithRetry overrides the retry policy.
func WithRetry(cfg RetryConfig) WebhookOption {
	return func(w *Webhook) {
		w.retry = cfg
	}
}

// WithHeader adds a static header (for example an Authorization token).
func WithHeader(name, value string) WebhookOption {
	return func(w *Webhook) {
		if strings.TrimSpace(name) != "" {
			w.headers.Set(name, value)
		}
	}
}

// WithWebhookLogger logs failed attempts.
func WithWebhookLogger(logger *zap.Logger) WebhookOption {
	return func(w *Webhook) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWebhook validates endpoint and returns a Webhook deliverer.
func NewWebhook(endpoint string, options ...WebhookOption) (*Webhook, error) {
	parsed, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("delivery: invalid webhook url %q", endpoint)
	}
	w := &Webhook{
		endpoint: parsed.String(),
		client:   &http.Client{Timeout: 10 * time.Second},
		retry:    DefaultRetryConfig(),
		headers:  make(http.Header),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

type webhookPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Deliver implements contact.Deliverer.
func (w *Webhook) Deliver(ctx context.Context, submission contact.Submission) error {
	body, err := json.Marshal(webhookPayload(submission))
	if err != nil {
		return fmt.Errorf("delivery: encode submission: %w", err)
	}

	attempt := 0
	return retry(ctx, w.retry, func() error {
		attempt++
		err := w.post(ctx, submission.ID, body)
		if err != nil {
			w.logger.Warn("webhook delivery attempt failed",
				zap.String("submission_id", submission.ID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
}

func (w *Webhook) post(ctx context.Context, id string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return permanent(fmt.Errorf("delivery: build request: %w", err))
	}
	for name, values := range w.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdempotencyHeader, id)

	resp, err := w.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return permanent(err)
		}
		return fmt.Errorf("delivery: post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("delivery: webhook responded %d", resp.StatusCode)
	default:
		return permanent(fmt.Errorf("delivery: webhook responded %d", resp.StatusCode))
	}
}
