package worker

import (
	"log/slog"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := SweeperConfig{
		CronSchedule: "not a schedule",
		Timezone:     "Mars/Olympus",
		SweepTimeout: -time.Second,
		Concurrency:  0,
		HealthPort:   80,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	cfg := LoadConfigFromEnv(slog.Default())
	if cfg.CronSchedule != "0 6 * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
}

func TestLoadConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("SWEEP_CRON_SCHEDULE", "*/30 * * * *")
	t.Setenv("SWEEP_TIMEZONE", "Asia/Tokyo")
	t.Setenv("SWEEP_TIMEOUT", "5m")
	t.Setenv("SWEEP_CONCURRENCY", "8")

	cfg := LoadConfigFromEnv(slog.Default())
	if cfg.CronSchedule != "*/30 * * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.SweepTimeout != 5*time.Minute {
		t.Errorf("SweepTimeout = %v", cfg.SweepTimeout)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
}

func TestLoadConfigFromEnvFallsBackOnInvalid(t *testing.T) {
	t.Setenv("SWEEP_CRON_SCHEDULE", "every day at noon")
	t.Setenv("SWEEP_CONCURRENCY", "400")

	cfg := LoadConfigFromEnv(slog.Default())
	if cfg.CronSchedule != "0 6 * * *" {
		t.Errorf("CronSchedule = %q, want default", cfg.CronSchedule)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want default", cfg.Concurrency)
	}
}
