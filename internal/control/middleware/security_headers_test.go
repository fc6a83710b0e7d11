// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeaders_ProxyAwareness(t *testing.T) {
	trustedProxies, err := ParseCIDRs([]string{"10.0.0.1/32"})
	if err != nil {
		t.Fatalf("Failed to parse trusted CIDRs: %v", err)
	}

	checkHSTS := func(t *testing.T, desc string, r *http.Request, expectHSTS bool) {
		t.Helper()
		rec := httptest.NewRecorder()
		SecurityHeaders("", trustedProxies)(okHandler()).ServeHTTP(rec, r)

		hsts := rec.Header().Get("Strict-Transport-Security")
		if expectHSTS && hsts == "" {
			t.Errorf("%s: Expected HSTS header, got none", desc)
		}
		if !expectHSTS && hsts != "" {
			t.Errorf("%s: Expected NO HSTS header, got %q", desc, hsts)
		}
	}

	req1 := httptest.NewRequest("GET", "http://example.com", nil)
	req1.RemoteAddr = "192.168.1.50:1234"
	req1.Header.Set("X-Forwarded-Proto", "https")
	checkHSTS(t, "Untrusted IP with X-Forwarded-Proto", req1, false)

	req2 := httptest.NewRequest("GET", "http://example.com", nil)
	req2.RemoteAddr = "10.0.0.1:5678"
	req2.Header.Set("X-Forwarded-Proto", "https")
	checkHSTS(t, "Trusted IP with X-Forwarded-Proto", req2, true)

	req3 := httptest.NewRequest("GET", "https://example.com", nil)
	req3.RemoteAddr = "192.168.1.50:1234"
	req3.TLS = &tls.ConnectionState{}
	checkHSTS(t, "Direct TLS connection", req3, true)
}

func TestSecurityHeaders_Defaults(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders("", nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/videos", nil))

	want := map[string]string{
		"Content-Security-Policy": DefaultCSP,
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "no-referrer",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestParseCIDRs(t *testing.T) {
	nets, err := ParseCIDRs([]string{"192.168.0.0/16", " 10.1.2.3 ", "", "::1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nets) != 3 {
		t.Fatalf("expected 3 networks, got %d", len(nets))
	}

	if _, err := ParseCIDRs([]string{"not-an-ip"}); err == nil {
		t.Error("expected error for invalid IP")
	}
	if _, err := ParseCIDRs([]string{"10.0.0.0/99"}); err == nil {
		t.Error("expected error for invalid CIDR")
	}
}
