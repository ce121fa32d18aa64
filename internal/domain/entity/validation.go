package entity

import "time"

// ValidationResult accumulates the outcome of one validator run over a feed.
// Errors are spec violations that make the feed invalid; warnings are soft
// issues worth fixing; info entries are advisory hints. A result is produced
// fresh on every run and never persisted by the engine.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string

	Performance PerformanceStats
}

// PerformanceStats records transport-level measurements of a validation fetch.
type PerformanceStats struct {
	LoadTime     time.Duration
	SizeBytes    int64
	ResponseCode int
}

// AddError records a fatal conformance problem and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning records a non-fatal issue. Warnings never affect Valid.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddInfo records an advisory hint.
func (r *ValidationResult) AddInfo(msg string) {
	r.Info = append(r.Info, msg)
}

// NewValidationResult returns a result that is valid until an error is added.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}
