// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/vidcat/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").Load()
	require.NoError(t, err)

	want := Defaults()
	want.Version = "v1.2.3"
	assert.Equal(t, want, cfg)
	assert.Equal(t, []string{"/testing/all-data", "/__test__/data"}, cfg.Paths.ResetRoutes())
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := writeConfig(t, "vidcat.yaml", `
listenAddr: ":9090"
logLevel: debug
paths:
  videos: /api/videos
  resetAliases: []
validation:
  minAgeMax: 21
  requireOnUpdate: true
store:
  resetIDs: true
  publicationOffset: 48h
server:
  readTimeout: 5s
rateLimit:
  enabled: true
  requests: 10
tracing:
  samplingRate: 0.5
`)
	t.Setenv("VIDCAT_LISTEN", ":7070")
	t.Setenv("VIDCAT_MIN_AGE_MAX", "16")

	l := NewLoader(path, "test")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr, "env beats file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/api/videos", cfg.Paths.Videos)
	assert.Empty(t, cfg.Paths.ResetAliases)
	assert.Equal(t, 16, cfg.Validation.MinAgeMax)
	assert.True(t, cfg.Validation.RequireOnUpdate)
	assert.True(t, cfg.Store.ResetIDs)
	assert.Equal(t, 48*time.Hour, cfg.Store.PublicationOffset)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout, "unset file keys keep defaults")
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 0.5, cfg.Tracing.SamplingRate)
	assert.Contains(t, l.ConsumedEnvKeys, "VIDCAT_LISTEN")
}

func TestLoad_ExplicitFalseInFile(t *testing.T) {
	path := writeConfig(t, "vidcat.yml", "testing:\n  enabled: false\nmetrics:\n  enabled: false\n")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.False(t, cfg.Testing.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFile_Strict(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown key", "c.yaml", "listenAddr: \":1\"\nbogus: true\n", "strict config parse error"},
		{"multiple documents", "c.yaml", "logLevel: info\n---\nlogLevel: debug\n", "multiple documents"},
		{"wrong extension", "c.json", "{}", "unsupported config format"},
		{"bad duration", "c.yaml", "server:\n  idleTimeout: soon\n", "server.idleTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, tt.file, tt.content), "").Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	fc, err := LoadFileConfig(writeConfig(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, fc)
}

func TestLoad_InvalidEnvSurfacesValidationError(t *testing.T) {
	t.Setenv("VIDCAT_MIN_AGE_MAX", "-1")

	_, err := NewLoader("", "").Load()
	require.Error(t, err)

	var verr validate.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors(), 1)
	assert.Equal(t, "validation.minAgeMax", verr.Errors()[0].Field)
}
