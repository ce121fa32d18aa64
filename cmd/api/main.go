package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	pgRepo "feedgate/internal/infra/adapter/persistence/postgres"
	"feedgate/internal/infra/cache"
	"feedgate/internal/infra/db"
	"feedgate/internal/observability/logging"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/deliver"
	"feedgate/internal/usecase/resolve"
	"feedgate/internal/usecase/selection"
	"feedgate/internal/usecase/validate"
	"feedgate/pkg/config"

	hhttp "feedgate/internal/handler/http"
	hadmin "feedgate/internal/handler/http/admin"
	hauth "feedgate/internal/handler/http/auth"
	"feedgate/internal/handler/http/requestid"
	"feedgate/internal/observability/tracing"

	_ "feedgate/docs" // swagger docs
)

// @title           Feedgate API
// @version         1.0
// @description     Feed delivery engine: cached syndication feeds with
// @description     conditional requests, plus an administrative validation surface.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token. Supply as "Bearer {token}".

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	validateAdminCredentials(logger)
	validateJWTSecret(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	store := loadSettings(logger)
	handler := setupServer(logger, database, store)

	runServer(logger, handler, getVersion())
}

// validateAdminCredentials refuses to start with missing or weak admin
// credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateJWTSecret enforces a minimum secret strength at startup.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value")
			os.Exit(1)
		}
	}
}

// loadSettings opens the YAML configuration store shared with the
// administrative layer.
func loadSettings(logger *slog.Logger) settings.Store {
	path := config.GetEnvString("SETTINGS_FILE", "settings.yaml")
	store, err := settings.NewFileStore(path)
	if err != nil {
		logger.Error("failed to load settings", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("settings loaded", slog.String("path", path))
	return store
}

func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

// setupServer wires the delivery pipeline and returns the root handler with
// the full middleware chain applied.
func setupServer(logger *slog.Logger, database *sql.DB, store settings.Store) http.Handler {
	repo := pgRepo.NewContentRepo(database)

	ttl := time.Duration(store.GetInt(settings.KeySelectionTTL, settings.DefaultSelectionTTL)) * time.Second
	selCache := cache.NewMemory(ttl, 5*time.Minute)
	metrics.RegisterSelectionCacheSize(selCache.Len)
	sel := selection.NewService(repo, selCache, ttl)

	resolver := resolve.NewResolver(store)
	negotiator := deliver.NewNegotiator(store, repo)
	feedHandler := hhttp.NewFeedHandler(resolver, negotiator, sel, store)
	hookHandler := hhttp.NewHookHandler(sel)
	validator := validate.NewValidator(validate.NewHTTPFetcher(0))

	healthHandler := &hhttp.HealthHandler{DB: database, Settings: store, Version: getVersion()}

	authRateLimiter := hhttp.NewRateLimiter(
		config.GetEnvInt("AUTH_RATE_LIMIT", 5),
		config.GetEnvDuration("AUTH_RATE_WINDOW", time.Minute),
	)
	feedRateLimiter := hhttp.NewRateLimiter(
		config.GetEnvInt("FEED_RATE_LIMIT", 120),
		config.GetEnvDuration("FEED_RATE_WINDOW", time.Minute),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /feed/{feed}", feedRateLimiter.Limit(feedHandler))
	mux.Handle("GET /feed/{feed}/{$}", feedRateLimiter.Limit(feedHandler))
	mux.HandleFunc("POST /hooks/content-changed", hookHandler.ContentChanged)

	mux.Handle("POST /auth/token", authRateLimiter.Limit(hauth.TokenHandler(hauth.EnvProvider{})))
	hadmin.Register(mux, resolver, sel, validator, store)

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the mux in the shared middleware chain.
// Order: request ID → tracing → metrics → logging → recovery → body limit.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	h := hhttp.LimitRequestBody(1 << 20)(handler)
	h = hhttp.Recover(logger)(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.MetricsMiddleware(h)
	h = tracing.Middleware(h)
	return requestid.Middleware(h)
}

func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
