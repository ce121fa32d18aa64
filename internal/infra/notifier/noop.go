package notifier

import "context"

// NoOpNotifier is a no-operation implementation of the Notifier interface.
// It is used when alerting is disabled to avoid nil checks in the code.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyValidationFailure does nothing and returns nil immediately.
func (n *NoOpNotifier) NotifyValidationFailure(ctx context.Context, alert *Alert) error {
	return nil
}

// Name implements the Notifier interface.
func (n *NoOpNotifier) Name() string { return "noop" }
