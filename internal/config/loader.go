// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, def string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, def)
}

func (l *Loader) envBool(key string, def bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, def)
}

func (l *Loader) envInt(key string, def int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, def)
}

func (l *Loader) envInt64(key string, def int64) int64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt64(key, def)
}

func (l *Loader) envFloat(key string, def float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, def)
}

func (l *Loader) envDuration(key string, def time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, def)
}

func (l *Loader) envList(key string, def []string) []string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseStringList(key, def)
}

// Load loads configuration with precedence: ENV > File > Defaults,
// then validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	l.mergeEnvConfig(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFileConfig loads a YAML config file without applying defaults or env overrides.
func LoadFileConfig(path string) (*FileConfig, error) {
	return NewLoader(path, "").loadFile(path)
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	if src.ListenAddr != "" {
		dst.ListenAddr = expandEnv(src.ListenAddr)
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogService != "" {
		dst.LogService = src.LogService
	}

	if src.Paths.Videos != "" {
		dst.Paths.Videos = src.Paths.Videos
	}
	if src.Paths.Reset != "" {
		dst.Paths.Reset = src.Paths.Reset
	}
	if src.Paths.ResetAliases != nil {
		dst.Paths.ResetAliases = append([]string(nil), src.Paths.ResetAliases...)
	}

	setBool(&dst.Testing.Enabled, src.Testing.Enabled)

	if src.Validation.MinAgeMax != nil {
		dst.Validation.MinAgeMax = *src.Validation.MinAgeMax
	}
	setBool(&dst.Validation.RequireOnUpdate, src.Validation.RequireOnUpdate)

	setBool(&dst.Store.ResetIDs, src.Store.ResetIDs)
	if err := setDuration(&dst.Store.PublicationOffset, "store.publicationOffset", src.Store.PublicationOffset); err != nil {
		return err
	}

	for _, d := range []struct {
		dst  *time.Duration
		name string
		raw  string
	}{
		{&dst.Server.ReadTimeout, "server.readTimeout", src.Server.ReadTimeout},
		{&dst.Server.WriteTimeout, "server.writeTimeout", src.Server.WriteTimeout},
		{&dst.Server.IdleTimeout, "server.idleTimeout", src.Server.IdleTimeout},
		{&dst.Server.ShutdownTimeout, "server.shutdownTimeout", src.Server.ShutdownTimeout},
		{&dst.RateLimit.Window, "rateLimit.window", src.RateLimit.Window},
	} {
		if err := setDuration(d.dst, d.name, d.raw); err != nil {
			return err
		}
	}
	if src.Server.MaxBodyBytes != nil {
		dst.Server.MaxBodyBytes = *src.Server.MaxBodyBytes
	}
	if src.Server.TrustedProxies != nil {
		dst.Server.TrustedProxies = append([]string(nil), src.Server.TrustedProxies...)
	}

	setBool(&dst.CORS.Enabled, src.CORS.Enabled)
	if src.CORS.AllowedOrigins != nil {
		dst.CORS.AllowedOrigins = append([]string(nil), src.CORS.AllowedOrigins...)
	}

	setBool(&dst.RateLimit.Enabled, src.RateLimit.Enabled)
	if src.RateLimit.Requests != nil {
		dst.RateLimit.Requests = *src.RateLimit.Requests
	}

	setBool(&dst.Metrics.Enabled, src.Metrics.Enabled)
	if src.Metrics.ListenAddr != "" {
		dst.Metrics.ListenAddr = expandEnv(src.Metrics.ListenAddr)
	}

	setBool(&dst.Tracing.Enabled, src.Tracing.Enabled)
	if src.Tracing.Exporter != "" {
		dst.Tracing.Exporter = src.Tracing.Exporter
	}
	if src.Tracing.Endpoint != "" {
		dst.Tracing.Endpoint = expandEnv(src.Tracing.Endpoint)
	}
	if src.Tracing.SamplingRate != nil {
		dst.Tracing.SamplingRate = *src.Tracing.SamplingRate
	}
	return nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, name, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", name, raw, err)
	}
	*dst = d
	return nil
}

// mergeEnvConfig overlays VIDCAT_* variables. The current value is the default,
// so an unset variable leaves file and default values untouched.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.ListenAddr = l.envString(EnvPrefix+"LISTEN", cfg.ListenAddr)
	cfg.LogLevel = l.envString(EnvPrefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = l.envString(EnvPrefix+"LOG_SERVICE", cfg.LogService)

	cfg.Paths.Videos = l.envString(EnvPrefix+"PATH_VIDEOS", cfg.Paths.Videos)
	cfg.Paths.Reset = l.envString(EnvPrefix+"PATH_RESET", cfg.Paths.Reset)
	cfg.Testing.Enabled = l.envBool(EnvPrefix+"TESTING_ENABLED", cfg.Testing.Enabled)

	cfg.Validation.MinAgeMax = l.envInt(EnvPrefix+"MIN_AGE_MAX", cfg.Validation.MinAgeMax)
	cfg.Validation.RequireOnUpdate = l.envBool(EnvPrefix+"REQUIRE_ON_UPDATE", cfg.Validation.RequireOnUpdate)

	cfg.Store.ResetIDs = l.envBool(EnvPrefix+"STORE_RESET_IDS", cfg.Store.ResetIDs)
	cfg.Store.PublicationOffset = l.envDuration(EnvPrefix+"PUBLICATION_OFFSET", cfg.Store.PublicationOffset)

	cfg.Server.ReadTimeout = l.envDuration(EnvPrefix+"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration(EnvPrefix+"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = l.envDuration(EnvPrefix+"SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = l.envDuration(EnvPrefix+"SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.MaxBodyBytes = l.envInt64(EnvPrefix+"SERVER_MAX_BODY_BYTES", cfg.Server.MaxBodyBytes)
	cfg.Server.TrustedProxies = l.envList(EnvPrefix+"TRUSTED_PROXIES", cfg.Server.TrustedProxies)

	cfg.CORS.Enabled = l.envBool(EnvPrefix+"CORS_ENABLED", cfg.CORS.Enabled)
	cfg.CORS.AllowedOrigins = l.envList(EnvPrefix+"CORS_ORIGINS", cfg.CORS.AllowedOrigins)

	cfg.RateLimit.Enabled = l.envBool(EnvPrefix+"RATELIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Requests = l.envInt(EnvPrefix+"RATELIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.Window = l.envDuration(EnvPrefix+"RATELIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.Metrics.Enabled = l.envBool(EnvPrefix+"METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.ListenAddr = l.envString(EnvPrefix+"METRICS_LISTEN", cfg.Metrics.ListenAddr)

	cfg.Tracing.Enabled = l.envBool(EnvPrefix+"TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvPrefix+"TRACING_EXPORTER", cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvPrefix+"TRACING_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvPrefix+"TRACING_SAMPLING_RATE", cfg.Tracing.SamplingRate)
}
