package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledExposesScorecardMetrics(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "the-score-card-test",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()
	if handler == nil {
		t.Fatalf("expected handler when enabled")
	}

	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordRoundSaved(18)
	rec.RecordImport("csv", 2, nil)
	rec.RecordImport("xlsx", 0, errors.New("broken"))
	rec.RecordAuthAttempt("login", false)

	srv := httptest.NewServer(handler)
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	for _, name := range []string{
		"http_requests_total",
		"rounds_saved_total",
		"round_completed_holes",
		"course_imports_total",
		"course_import_errors_total",
		"courses_imported_total",
		"auth_attempts_total",
	} {
		if !strings.Contains(text, name) {
			t.Fatalf("expected %s in scrape output", name)
		}
	}
}

func TestSetupPropagatesFactoryErrors(t *testing.T) {
	origProm, origOTLP, origInst := promReaderFactory, otlpReaderFactory, instrumentFactory
	t.Cleanup(func() {
		promReaderFactory, otlpReaderFactory, instrumentFactory = origProm, origOTLP, origInst
	})

	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("prom")
	}
	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected prometheus factory error")
	}

	promReaderFactory = origProm
	otlpReaderFactory = func(context.Context, string, bool) (sdkmetric.Reader, error) {
		return nil, errors.New("otlp")
	}
	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true, OtlpEndpoint: "collector:4318"}); err == nil {
		t.Fatalf("expected otlp factory error")
	}

	otlpReaderFactory = origOTLP
	instrumentFactory = func(metric.MeterProvider) (*otelInstruments, error) {
		return nil, errors.New("instruments")
	}
	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected instrument factory error")
	}
}

func TestNilInstrumentsAreSafe(t *testing.T) {
	var o *otelInstruments
	o.recordHTTPRequest("GET", "/", 200, time.Millisecond)
	o.recordRoundSaved(9)
	o.recordImport("json", 1, nil)
	o.recordAuthAttempt("register", true)
}
