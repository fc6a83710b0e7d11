// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/vidcat/internal/config"
	"github.com/ManuGH/vidcat/internal/health"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, config.EnvPrefix) {
			_ = os.Unsetenv(key)
		}
	}
	os.Exit(m.Run())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:     "valid",
			body:     "listenAddr: \"127.0.0.1:9000\"\nvalidation:\n  minAgeMax: 21\n",
			wantCode: 0,
			wantOut:  "is valid",
		},
		{
			name:     "unknown_key",
			body:     "bogus: true\n",
			wantCode: 1,
			wantErr:  "Configuration error",
		},
		{
			name:     "relative_path",
			body:     "paths:\n  videos: videos\n",
			wantCode: 1,
			wantErr:  "paths.videos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := configCLI([]string{"validate", "--config", writeConfig(t, tt.body)}, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code, stderr.String())
			if tt.wantOut != "" {
				assert.Contains(t, stdout.String(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestConfigValidate_RequiresPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, configCLI([]string{"validate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--config is required")
}

func TestConfigCLI_UnknownSubcommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, configCLI([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown subcommand")
}

func TestConfigDump_JSON(t *testing.T) {
	path := writeConfig(t, "listenAddr: \"127.0.0.1:9000\"\nstore:\n  resetIDs: true\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, configCLI([]string{"dump", "--config", path, "--format", "json"}, &stdout, &stderr), stderr.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "127.0.0.1:9000", out["ListenAddr"])
	store, ok := out["Store"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, store["ResetIDs"])
}

func TestConfigDump_YAMLRoundTrips(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, configCLI([]string{"dump"}, &stdout, &stderr), stderr.String())

	path := writeConfig(t, stdout.String())
	var vout, verr bytes.Buffer
	assert.Equal(t, 0, configCLI([]string{"validate", "--config", path}, &vout, &verr), verr.String())
}

func TestConfigDump_BadFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, configCLI([]string{"dump", "--format", "toml"}, &stdout, &stderr))
}

func TestHealthcheck(t *testing.T) {
	hm := health.NewManager("v-test")
	srv := httptest.NewServer(http.HandlerFunc(hm.ServeHealth))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := healthcheckCLI(context.Background(), []string{"--url", srv.URL}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "v-test")
}

func TestHealthcheck_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := healthcheckCLI(context.Background(), []string{"--url", srv.URL, "--timeout", "1s"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unexpected status 503")
}

func TestBuildApp_ServesCatalogue(t *testing.T) {
	cfg := config.Defaults()
	cfg.Version = "v-test"
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = 2 * time.Second
	require.NoError(t, config.Validate(cfg))

	app, err := buildApp(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
