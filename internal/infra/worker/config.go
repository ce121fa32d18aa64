// Package worker holds the runtime configuration and health surface of the
// scheduled validation sweeper process.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"feedgate/pkg/config"
)

// SweeperConfig controls the scheduled validation sweep: when it runs, how
// long a full sweep may take and how many feeds are checked concurrently.
type SweeperConfig struct {
	// CronSchedule is the standard 5-field cron expression for the sweep.
	// Default: "0 6 * * *" (every day at 06:00).
	CronSchedule string

	// Timezone is the IANA timezone name the schedule is evaluated in.
	Timezone string

	// SweepTimeout bounds one full sweep across all feeds.
	SweepTimeout time.Duration

	// Concurrency is the number of feeds validated in parallel. Range 1-16.
	Concurrency int

	// HealthPort is the port for the sweeper's health check HTTP server.
	HealthPort int
}

// DefaultConfig returns a SweeperConfig with production defaults.
func DefaultConfig() SweeperConfig {
	return SweeperConfig{
		CronSchedule: "0 6 * * *",
		Timezone:     "UTC",
		SweepTimeout: 10 * time.Minute,
		Concurrency:  4,
		HealthPort:   9091,
	}
}

// Validate checks the configuration. All violations are collected and
// returned together.
func (c *SweeperConfig) Validate() error {
	var errs []error

	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.SweepTimeout); err != nil {
		errs = append(errs, fmt.Errorf("sweep timeout: %w", err))
	}
	if c.Concurrency < 1 || c.Concurrency > 16 {
		errs = append(errs, fmt.Errorf("concurrency %d out of range [1,16]", c.Concurrency))
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		errs = append(errs, fmt.Errorf("health port %d out of range [1024,65535]", c.HealthPort))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the sweeper configuration from environment
// variables, falling back to defaults field by field when a value is missing
// or invalid. It never returns an unusable configuration.
//
// Environment variables:
//   - SWEEP_CRON_SCHEDULE (default "0 6 * * *")
//   - SWEEP_TIMEZONE      (default "UTC")
//   - SWEEP_TIMEOUT       (default "10m")
//   - SWEEP_CONCURRENCY   (default 4)
//   - SWEEP_HEALTH_PORT   (default 9091)
func LoadConfigFromEnv(logger *slog.Logger) SweeperConfig {
	defaults := DefaultConfig()
	cfg := SweeperConfig{
		CronSchedule: config.GetEnvString("SWEEP_CRON_SCHEDULE", defaults.CronSchedule),
		Timezone:     config.GetEnvString("SWEEP_TIMEZONE", defaults.Timezone),
		SweepTimeout: config.GetEnvDuration("SWEEP_TIMEOUT", defaults.SweepTimeout),
		Concurrency:  config.GetEnvInt("SWEEP_CONCURRENCY", defaults.Concurrency),
		HealthPort:   config.GetEnvInt("SWEEP_HEALTH_PORT", defaults.HealthPort),
	}

	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		logger.Warn("invalid cron schedule, using default",
			slog.String("value", cfg.CronSchedule),
			slog.String("default", defaults.CronSchedule),
			slog.String("error", err.Error()))
		cfg.CronSchedule = defaults.CronSchedule
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		logger.Warn("invalid timezone, using default",
			slog.String("value", cfg.Timezone),
			slog.String("default", defaults.Timezone),
			slog.String("error", err.Error()))
		cfg.Timezone = defaults.Timezone
	}
	if cfg.SweepTimeout <= 0 {
		logger.Warn("invalid sweep timeout, using default",
			slog.Duration("value", cfg.SweepTimeout),
			slog.Duration("default", defaults.SweepTimeout))
		cfg.SweepTimeout = defaults.SweepTimeout
	}
	if cfg.Concurrency < 1 || cfg.Concurrency > 16 {
		logger.Warn("sweep concurrency out of range, using default",
			slog.Int("value", cfg.Concurrency),
			slog.Int("default", defaults.Concurrency))
		cfg.Concurrency = defaults.Concurrency
	}
	if cfg.HealthPort < 1024 || cfg.HealthPort > 65535 {
		logger.Warn("health port out of range, using default",
			slog.Int("value", cfg.HealthPort),
			slog.Int("default", defaults.HealthPort))
		cfg.HealthPort = defaults.HealthPort
	}

	return cfg
}
