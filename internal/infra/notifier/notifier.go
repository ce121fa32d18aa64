// Package notifier provides abstraction for delivering feed validation alerts.
// It defines the Notifier interface which allows different notification
// mechanisms (Slack, Discord, email, etc.) to be used interchangeably through
// dependency injection.
//
// The package includes webhook implementations for Slack and Discord and a
// no-op notifier for when alerting is disabled.
package notifier

import (
	"context"

	"feedgate/internal/domain/entity"
)

// Alert describes a validation failure for one feed endpoint.
type Alert struct {
	// Slug identifies the feed whose validation failed.
	Slug string

	// Format is the wire format that was validated.
	Format entity.FeedFormat

	// FeedURL is the endpoint that was fetched.
	FeedURL string

	// Result carries the structural findings from the validation run.
	Result *entity.ValidationResult
}

// Notifier is an interface for delivering validation alerts.
// Implementations should handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// NotifyValidationFailure reports that a feed endpoint failed validation.
	// It returns a non-nil error if delivery failed after all retry attempts.
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent webhook abuse
	//   - Retry transient failures with backoff
	//   - Respect context cancellation
	NotifyValidationFailure(ctx context.Context, alert *Alert) error

	// Name identifies the delivery channel for logs and metrics.
	Name() string
}
