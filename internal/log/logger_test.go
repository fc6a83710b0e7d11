// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func captureBase(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "vidcat-test", Version: "v0.0.0"})
	t.Cleanup(func() { Configure(Config{}) })
	return &buf
}

func TestConfigure_AttachesServiceAndVersion(t *testing.T) {
	buf := captureBase(t)

	l := WithComponent("unit")
	l.Info().Msg("configured")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["service"] != "vidcat-test" {
		t.Errorf("expected service vidcat-test, got %v", entry["service"])
	}
	if entry["version"] != "v0.0.0" {
		t.Errorf("expected version v0.0.0, got %v", entry["version"])
	}
	if entry[FieldComponent] != "unit" {
		t.Errorf("expected component unit, got %v", entry[FieldComponent])
	}
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "shouting", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", zerolog.GlobalLevel())
	}
}

func TestDerive(t *testing.T) {
	buf := captureBase(t)

	logger := Derive(func(ctx *zerolog.Context) {
		ctx.Str("custom_field", "test_value")
	})
	logger.Info().Msg("derived")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["custom_field"] != "test_value" {
		t.Errorf("expected custom_field, got %v", entry["custom_field"])
	}

	if l := Derive(nil); l.GetLevel() > zerolog.PanicLevel {
		t.Error("expected valid logger from Derive with nil builder")
	}
}

func TestFromContext_FallsBackToBase(t *testing.T) {
	if l := FromContext(nil); l == nil { //nolint:staticcheck // nil context is part of the contract
		t.Fatal("expected logger for nil context")
	}
	if l := FromContext(context.Background()); l.GetLevel() == zerolog.Disabled {
		t.Fatal("expected base logger when context carries none")
	}
}

func TestMiddleware_LogsRoutePatternAndStatus(t *testing.T) {
	buf := captureBase(t)

	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/videos/42", nil)
	req = req.WithContext(ContextWithRequestID(req.Context(), "rid-7"))
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, buf.String())
	}
	if entry[FieldEvent] != "http.request" {
		t.Errorf("expected http.request event, got %v", entry[FieldEvent])
	}
	if entry[FieldPath] != "/videos/{id}" {
		t.Errorf("expected route pattern, got %v", entry[FieldPath])
	}
	if entry[FieldStatus] != float64(http.StatusNotFound) {
		t.Errorf("expected status 404, got %v", entry[FieldStatus])
	}
	if entry["level"] != "warn" {
		t.Errorf("expected warn level for 4xx, got %v", entry["level"])
	}
	if entry[FieldRequestID] != "rid-7" {
		t.Errorf("expected request id rid-7, got %v", entry[FieldRequestID])
	}
}
