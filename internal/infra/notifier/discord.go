package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	// Enabled indicates whether Discord notifications are enabled
	Enabled bool

	// WebhookURL is the Discord webhook URL
	WebhookURL string

	// Timeout is the HTTP request timeout for Discord API calls
	Timeout time.Duration
}

// DiscordNotifier delivers validation alerts to Discord via webhook embeds.
type DiscordNotifier struct {
	config      DiscordConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewDiscordNotifier creates a new DiscordNotifier with the specified configuration.
// Discord webhooks allow roughly 5 requests per 2 seconds per webhook, so the
// limiter is set a little below that.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(2.0, 5),
	}
}

// DiscordWebhookPayload represents the JSON payload sent to a Discord webhook.
type DiscordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord rich embed.
type DiscordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

// DiscordEmbedField represents a field within a Discord embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const (
	maxEmbedDescriptionLength = 4096

	discordAlertColor = 0xE74C3C // red

	discordTruncationSuffix = "..."
)

// buildEmbedPayload creates a Discord webhook payload from a validation alert.
func (d *DiscordNotifier) buildEmbedPayload(alert *Alert) DiscordWebhookPayload {
	description := alertSummary(alert.Result, maxListedFindings)
	description = truncateText(description, maxEmbedDescriptionLength, discordTruncationSuffix)

	embed := DiscordEmbed{
		Title:       fmt.Sprintf("Feed %s failed validation", alert.Slug),
		URL:         alert.FeedURL,
		Description: description,
		Color:       discordAlertColor,
		Fields: []DiscordEmbedField{
			{Name: "Format", Value: string(alert.Format), Inline: true},
			{Name: "Errors", Value: fmt.Sprintf("%d", len(alert.Result.Errors)), Inline: true},
			{Name: "Warnings", Value: fmt.Sprintf("%d", len(alert.Result.Warnings)), Inline: true},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return DiscordWebhookPayload{
		Embeds: []DiscordEmbed{embed},
	}
}

// sendWebhookRequest performs one webhook POST and classifies the response.
func (d *DiscordNotifier) sendWebhookRequest(ctx context.Context, alert *Alert) error {
	payload := d.buildEmbedPayload(alert)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	// Discord returns 204 No Content on success
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    "Discord rate limit exceeded",
			RetryAfter: extractRetryAfter(resp),
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API client error: %s", string(body)),
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// NotifyValidationFailure sends a Discord notification for a failed validation run.
// This method implements the Notifier interface.
func (d *DiscordNotifier) NotifyValidationFailure(ctx context.Context, alert *Alert) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("starting Discord validation alert",
		slog.String("request_id", requestID),
		slog.String("feed", alert.Slug),
		slog.String("format", string(alert.Format)))

	if err := d.rateLimiter.Allow(ctx); err != nil {
		slog.Error("rate limiter error",
			slog.String("request_id", requestID),
			slog.String("feed", alert.Slug),
			slog.Any("error", err))
		return fmt.Errorf("rate limiter error: %w", err)
	}

	return deliverWithRetry(ctx, "discord", alert, func(ctx context.Context) error {
		return d.sendWebhookRequest(ctx, alert)
	})
}

// Name implements the Notifier interface.
func (d *DiscordNotifier) Name() string { return "discord" }
