package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"feedgate/internal/domain/entity"
)

func testAlert() *Alert {
	result := entity.NewValidationResult()
	result.AddError("channel missing required <title> element")
	result.AddError("item 3 has neither <title> nor <description>")
	result.AddWarning("channel missing recommended <lastBuildDate>")

	return &Alert{
		Slug:    "main",
		Format:  entity.FormatRSS2,
		FeedURL: "https://example.com/feed/main/",
		Result:  result,
	}
}

func TestNoOpNotifier(t *testing.T) {
	n := NewNoOpNotifier()
	if err := n.NotifyValidationFailure(context.Background(), testAlert()); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestSlackNotifier_buildBlockKitPayload(t *testing.T) {
	n := NewSlackNotifier(SlackConfig{
		Enabled:    true,
		WebhookURL: "https://hooks.slack.com/services/test",
		Timeout:    10 * time.Second,
	})

	payload := n.buildBlockKitPayload(testAlert())

	if len(payload.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(payload.Blocks))
	}
	if !strings.Contains(payload.Text, "main") {
		t.Errorf("fallback text missing feed slug: %q", payload.Text)
	}
	if !strings.Contains(payload.Blocks[0].Text.Text, "channel missing required <title> element") {
		t.Errorf("section text missing first error: %q", payload.Blocks[0].Text.Text)
	}
	if !strings.Contains(payload.Blocks[1].Elements[0].Text, "2 errors, 1 warnings") {
		t.Errorf("context text missing counts: %q", payload.Blocks[1].Elements[0].Text)
	}
}

func TestSlackNotifier_Success(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		var payload SlackWebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	n := NewSlackNotifier(SlackConfig{Enabled: true, WebhookURL: server.URL, Timeout: 5 * time.Second})
	if err := n.NotifyValidationFailure(context.Background(), testAlert()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 webhook call, got %d", calls.Load())
	}
}

func TestSlackNotifier_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid_payload"))
	}))
	defer server.Close()

	n := NewSlackNotifier(SlackConfig{Enabled: true, WebhookURL: server.URL, Timeout: 5 * time.Second})
	err := n.NotifyValidationFailure(context.Background(), testAlert())

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected ClientError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 call for 4xx, got %d", calls.Load())
	}
}

func TestDiscordNotifier_buildEmbedPayload(t *testing.T) {
	n := NewDiscordNotifier(DiscordConfig{
		Enabled:    true,
		WebhookURL: "https://discord.com/api/webhooks/test",
		Timeout:    10 * time.Second,
	})

	payload := n.buildEmbedPayload(testAlert())

	if len(payload.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(payload.Embeds))
	}
	embed := payload.Embeds[0]
	if embed.Title != "Feed main failed validation" {
		t.Errorf("unexpected embed title: %q", embed.Title)
	}
	if embed.URL != "https://example.com/feed/main/" {
		t.Errorf("unexpected embed URL: %q", embed.URL)
	}
	if len(embed.Fields) != 3 {
		t.Errorf("expected 3 fields, got %d", len(embed.Fields))
	}
}

func TestDiscordNotifier_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewDiscordNotifier(DiscordConfig{Enabled: true, WebhookURL: server.URL, Timeout: 5 * time.Second})
	if err := n.NotifyValidationFailure(context.Background(), testAlert()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestExtractRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"missing header", "", 5 * time.Second},
		{"integer seconds", "3", 3 * time.Second},
		{"fractional seconds", "1.5", 1500 * time.Millisecond},
		{"malformed", "soon", 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := extractRetryAfter(resp); got != tt.want {
				t.Errorf("extractRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello", 10, "..."); got != "hello" {
		t.Errorf("expected untouched text, got %q", got)
	}
	got := truncateText("hello world", 8, "...")
	if got != "hello..." {
		t.Errorf("expected truncated text, got %q", got)
	}
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	// Drain the single burst token.
	if err := limiter.Allow(context.Background()); err != nil {
		t.Fatalf("first token should be available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Allow(ctx); err == nil {
		t.Error("expected context error when no tokens available")
	}
}

func TestIsRetryableError(t *testing.T) {
	if isRetryableError(&ClientError{StatusCode: 400}) {
		t.Error("4xx should not be retryable")
	}
	if !isRetryableError(&ServerError{StatusCode: 502}) {
		t.Error("5xx should be retryable")
	}
	if isRetryableError(&RateLimitError{RetryAfter: time.Second}) {
		t.Error("rate limit errors are handled separately")
	}
	if !isRetryableError(errors.New("connection reset")) {
		t.Error("generic network errors should be retryable")
	}
}
