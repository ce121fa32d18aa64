package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "feedgate/internal/handler/http"
	"feedgate/internal/observability/logging"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecover_PanicBeforeWrite(t *testing.T) {
	h := handler.Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed/rss2/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("body = %q, want generic error message", rec.Body.String())
	}
}

func TestRecover_PanicAfterWriteKeepsResponse(t *testing.T) {
	h := handler.Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed/rss2/", nil))

	// The status and partial body already on the wire must stand.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want the flushed 200", rec.Code)
	}
	if got := rec.Body.String(); got != "partial" {
		t.Errorf("body = %q, want only the pre-panic bytes", got)
	}
}

func TestLogging_InjectsRequestLogger(t *testing.T) {
	base := discardLogger()

	var got *slog.Logger
	h := handler.Logging(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed/rss2/", nil))

	if got == nil || got == slog.Default() {
		t.Error("request-scoped logger not found in context")
	}
}
