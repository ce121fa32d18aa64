package validate

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"feedgate/internal/domain/entity"
	"feedgate/internal/infra/notifier"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/settings"
)

// defaultSweepConcurrency bounds how many feeds are validated at once.
const defaultSweepConcurrency = 4

// SweepTarget is one feed endpoint scheduled for validation.
type SweepTarget struct {
	Slug   string
	Format entity.FeedFormat
	URL    string
}

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Checked int
	Invalid int
	Results map[string]*entity.ValidationResult
}

// Sweeper validates every enabled feed on a schedule and pushes alerts for
// invalid ones. One feed's transport failure never aborts the rest of the
// sweep; failures are recorded per feed in the report.
type Sweeper struct {
	Settings    settings.Store
	Validator   *Validator
	Notifiers   []notifier.Notifier
	Concurrency int
}

// NewSweeper creates a Sweeper. Zero concurrency falls back to the default.
func NewSweeper(store settings.Store, validator *Validator, notifiers []notifier.Notifier, concurrency int) *Sweeper {
	if concurrency <= 0 {
		concurrency = defaultSweepConcurrency
	}
	return &Sweeper{
		Settings:    store,
		Validator:   validator,
		Notifiers:   notifiers,
		Concurrency: concurrency,
	}
}

// Run validates all enabled feeds concurrently and returns the report.
// The returned error reflects target discovery only; individual validation
// failures live in the report.
func (s *Sweeper) Run(ctx context.Context) (*SweepReport, error) {
	targets, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}

	report := &SweepReport{
		Checked: len(targets),
		Results: make(map[string]*entity.ValidationResult, len(targets)),
	}

	results := make([]*entity.ValidationResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = s.Validator.ValidateURL(gctx, target.URL, target.Format)
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	_ = g.Wait()

	for i, target := range targets {
		result := results[i]
		if result == nil {
			continue
		}
		report.Results[target.Slug] = result
		if result.Valid {
			continue
		}
		report.Invalid++

		slog.Warn("feed failed validation sweep",
			slog.String("feed", target.Slug),
			slog.String("format", string(target.Format)),
			slog.Int("errors", len(result.Errors)),
			slog.Int("warnings", len(result.Warnings)))

		s.alert(ctx, target, result)
	}

	slog.Info("validation sweep finished",
		slog.Int("checked", report.Checked),
		slog.Int("invalid", report.Invalid))
	return report, nil
}

// alert fans the failure out to every configured notifier. Delivery failures
// are logged, not propagated; alerting is best-effort.
func (s *Sweeper) alert(ctx context.Context, target SweepTarget, result *entity.ValidationResult) {
	alert := &notifier.Alert{
		Slug:    target.Slug,
		Format:  target.Format,
		FeedURL: target.URL,
		Result:  result,
	}
	for _, n := range s.Notifiers {
		err := n.NotifyValidationFailure(ctx, alert)
		metrics.RecordValidationAlert(n.Name(), err == nil)
		if err != nil {
			slog.Error("validation alert delivery failed",
				slog.String("feed", target.Slug),
				slog.Any("error", err))
		}
	}
}

// targets enumerates the enabled built-in formats plus every enabled custom
// definition, each rendered as its public feed URL.
func (s *Sweeper) targets(ctx context.Context) ([]SweepTarget, error) {
	siteURL := strings.TrimRight(s.Settings.GetString(settings.KeySiteURL, ""), "/")

	var targets []SweepTarget

	builtins := []struct {
		format entity.FeedFormat
		key    string
	}{
		{entity.FormatRSS2, settings.KeyRSS2Enabled},
		{entity.FormatAtom, settings.KeyAtomEnabled},
		{entity.FormatJSONFeed, settings.KeyJSONEnabled},
	}
	for _, b := range builtins {
		if !s.Settings.GetBool(b.key, true) {
			continue
		}
		slug := string(b.format)
		targets = append(targets, SweepTarget{
			Slug:   slug,
			Format: b.format,
			URL:    siteURL + "/feed/" + slug + "/",
		})
	}

	defs, err := s.Settings.Definitions()
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		if !def.Enabled {
			continue
		}
		targets = append(targets, SweepTarget{
			Slug:   def.Slug,
			Format: entity.FormatRSS2,
			URL:    siteURL + "/feed/" + def.Slug + "/",
		})
	}

	return targets, nil
}
