package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"feedgate/internal/infra/notifier"
	workerPkg "feedgate/internal/infra/worker"
	"feedgate/internal/observability/logging"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/validate"
	"feedgate/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := workerPkg.LoadConfigFromEnv(logger)
	logger.Info("sweeper configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("sweep_timeout", cfg.SweepTimeout),
		slog.Int("concurrency", cfg.Concurrency),
		slog.Int("health_port", cfg.HealthPort))

	store := loadSettings(logger)
	notifiers := setupNotifiers(logger)

	validator := validate.NewValidator(validate.NewHTTPFetcher(
		config.GetEnvDuration("VALIDATION_FETCH_TIMEOUT", 15*time.Second)))
	sweeper := validate.NewSweeper(store, validator, notifiers, cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startCron(ctx, logger, sweeper, store, cfg, healthServer)
}

// loadSettings opens the YAML configuration store shared with the API.
func loadSettings(logger *slog.Logger) settings.Store {
	path := config.GetEnvString("SETTINGS_FILE", "settings.yaml")
	store, err := settings.NewFileStore(path)
	if err != nil {
		logger.Error("failed to load settings", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	return store
}

// setupNotifiers builds the alert channels from environment configuration.
// With no webhook configured, alerts go to the no-op notifier so sweep
// results still land in the logs.
func setupNotifiers(logger *slog.Logger) []notifier.Notifier {
	var notifiers []notifier.Notifier

	if url := config.GetEnvString("SLACK_WEBHOOK_URL", ""); url != "" {
		notifiers = append(notifiers, notifier.NewSlackNotifier(notifier.SlackConfig{
			Enabled:    true,
			WebhookURL: url,
			Timeout:    config.GetEnvDuration("SLACK_TIMEOUT", 10*time.Second),
		}))
		logger.Info("Slack notifier enabled")
	}
	if url := config.GetEnvString("DISCORD_WEBHOOK_URL", ""); url != "" {
		notifiers = append(notifiers, notifier.NewDiscordNotifier(notifier.DiscordConfig{
			Enabled:    true,
			WebhookURL: url,
			Timeout:    config.GetEnvDuration("DISCORD_TIMEOUT", 10*time.Second),
		}))
		logger.Info("Discord notifier enabled")
	}
	if len(notifiers) == 0 {
		notifiers = append(notifiers, &notifier.NoOpNotifier{})
		logger.Warn("no alert channels configured, validation failures are log-only")
	}
	return notifiers
}

// startCron schedules the sweep and blocks until a termination signal.
func startCron(ctx context.Context, logger *slog.Logger, sweeper *validate.Sweeper, store settings.Store, cfg workerPkg.SweeperConfig, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runSweep(ctx, logger, sweeper, store, cfg.SweepTimeout)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("sweeper started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down sweeper...")
	healthServer.SetReady(false)
	cronCtx := c.Stop()
	<-cronCtx.Done()
	logger.Info("sweeper stopped")
}

// runSweep executes a single validation sweep with a timeout. The settings
// file is re-read first so the sweep sees definitions added or disabled
// since the last run.
func runSweep(ctx context.Context, logger *slog.Logger, sweeper *validate.Sweeper, store settings.Store, timeout time.Duration) {
	start := time.Now()
	logger.Info("validation sweep started")

	if reloader, ok := store.(settings.Reloader); ok {
		if err := reloader.Reload(); err != nil {
			logger.Warn("settings reload failed, sweeping with previous configuration", slog.Any("error", err))
		}
	}

	sweepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	report, err := sweeper.Run(sweepCtx)
	if err != nil {
		logger.Error("validation sweep failed", slog.Any("error", err))
		return
	}

	logger.Info("validation sweep completed",
		slog.Int("checked", report.Checked),
		slog.Int("invalid", report.Invalid),
		slog.Duration("duration", time.Since(start)))
}
