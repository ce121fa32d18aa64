package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedgate/internal/domain/entity"
)

// deliverWithRetry runs a single webhook send with the shared retry strategy:
//   - Max attempts: 2
//   - 429 errors: honor the service's retry_after before the next attempt
//   - Server errors (5xx) and network errors: linear backoff (5s, 10s)
//   - Client errors (4xx, non-429): no retry, fail immediately
//
// All attempts are logged with the request_id stored in ctx.
func deliverWithRetry(ctx context.Context, service string, alert *Alert, send func(context.Context) error) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := send(ctx)

		if err == nil {
			slog.Info("validation alert delivered",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.String("feed", alert.Slug),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("webhook rate limit hit, backing off",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.String("feed", alert.Slug),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("validation alert failed with non-retryable error",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.String("feed", alert.Slug),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("webhook request failed, retrying",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.String("feed", alert.Slug),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	slog.Error("validation alert failed after all retries",
		slog.String("service", service),
		slog.String("request_id", requestID),
		slog.String("feed", alert.Slug),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("%s notification failed after %d attempts: %w", service, maxAttempts, lastErr)
}

// alertSummary renders the alert's findings as a short plain-text block,
// capped at maxErrors lines per severity.
func alertSummary(result *entity.ValidationResult, maxErrors int) string {
	out := ""
	for i, msg := range result.Errors {
		if i >= maxErrors {
			out += fmt.Sprintf("… and %d more errors\n", len(result.Errors)-maxErrors)
			break
		}
		out += "• " + msg + "\n"
	}
	for i, msg := range result.Warnings {
		if i >= maxErrors {
			out += fmt.Sprintf("… and %d more warnings\n", len(result.Warnings)-maxErrors)
			break
		}
		out += "⚠ " + msg + "\n"
	}
	return out
}
