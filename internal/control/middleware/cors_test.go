// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_WildcardReflectsOrigin(t *testing.T) {
	cors := CORS([]string{"*"}, false)(okHandler())

	// Case 1: With Origin
	req := httptest.NewRequest("GET", "/videos", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()

	cors.ServeHTTP(w, req)

	if val := w.Header().Get("Access-Control-Allow-Origin"); val != "http://example.com" {
		t.Errorf("expected reflected origin http://example.com, got %q", val)
	}
	if val := w.Header().Get("Vary"); !strings.Contains(val, "Origin") {
		t.Errorf("expected Vary header to contain Origin, got %q", val)
	}

	// Case 2: No Origin
	req = httptest.NewRequest("GET", "/videos", nil)
	w = httptest.NewRecorder()

	cors.ServeHTTP(w, req)

	if val := w.Header().Get("Access-Control-Allow-Origin"); val != "" {
		t.Errorf("expected no Access-Control-Allow-Origin when Origin header is missing, got %q", val)
	}
}

func TestCORS_UnlistedOriginBlocked(t *testing.T) {
	cors := CORS([]string{"http://allowed.test"}, true)(okHandler())

	req := httptest.NewRequest("GET", "/videos", nil)
	req.Header.Set("Origin", "http://evil.test")
	w := httptest.NewRecorder()
	cors.ServeHTTP(w, req)

	if val := w.Header().Get("Access-Control-Allow-Origin"); val != "" {
		t.Errorf("expected no Allow-Origin for unlisted origin, got %q", val)
	}
	if val := w.Header().Get("Access-Control-Allow-Credentials"); val != "" {
		t.Errorf("expected no Allow-Credentials for unlisted origin, got %q", val)
	}
}

func TestCORS_CredentialsToggle(t *testing.T) {
	req := httptest.NewRequest("GET", "/videos", nil)
	req.Header.Set("Origin", "http://example.com")

	w := httptest.NewRecorder()
	CORS([]string{"*"}, false)(okHandler()).ServeHTTP(w, req)
	if val := w.Header().Get("Access-Control-Allow-Credentials"); val != "" {
		t.Errorf("expected no Access-Control-Allow-Credentials when disabled, got %q", val)
	}

	w = httptest.NewRecorder()
	CORS([]string{"*"}, true)(okHandler()).ServeHTTP(w, req)
	if val := w.Header().Get("Access-Control-Allow-Credentials"); val != "true" {
		t.Errorf("expected Access-Control-Allow-Credentials: true when enabled, got %q", val)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/videos/1", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	CORS([]string{"*"}, false)(next).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if called {
		t.Fatal("preflight must not reach the handler")
	}
	if !strings.Contains(w.Header().Get("Allow"), "PUT") {
		t.Errorf("expected Allow to list PUT, got %q", w.Header().Get("Allow"))
	}
}
