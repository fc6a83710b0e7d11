// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// AppConfig is the fully resolved runtime configuration.
type AppConfig struct {
	Version    string
	ListenAddr string
	LogLevel   string
	LogService string

	Paths      PathsConfig
	Testing    TestingConfig
	Validation ValidationConfig
	Store      StoreConfig
	Server     ServerConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Metrics    MetricsConfig
	Tracing    TracingConfig
}

// PathsConfig holds the externally visible route roots.
type PathsConfig struct {
	Videos       string
	Reset        string
	ResetAliases []string
}

// ResetRoutes returns the primary reset route followed by its aliases.
func (p PathsConfig) ResetRoutes() []string {
	routes := make([]string, 0, 1+len(p.ResetAliases))
	routes = append(routes, p.Reset)
	return append(routes, p.ResetAliases...)
}

// TestingConfig controls the test-support surface.
type TestingConfig struct {
	Enabled bool
}

// ValidationConfig tunes the payload rules.
type ValidationConfig struct {
	MinAgeMax       int
	RequireOnUpdate bool
}

// StoreConfig tunes the in-memory catalogue.
type StoreConfig struct {
	ResetIDs          bool
	PublicationOffset time.Duration
}

// ServerConfig holds http.Server settings.
type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	TrustedProxies  []string
}

// CORSConfig controls cross-origin access.
type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
}

// RateLimitConfig controls the per-IP limiter.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// MetricsConfig controls Prometheus exposition.
// An empty ListenAddr mounts /metrics on the API router.
type MetricsConfig struct {
	Enabled    bool
	ListenAddr string
}

// TracingConfig controls OTLP tracing.
type TracingConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// FileConfig mirrors the YAML layout. Pointer fields distinguish "unset"
// from an explicit zero value.
type FileConfig struct {
	ListenAddr string `yaml:"listenAddr,omitempty"`
	LogLevel   string `yaml:"logLevel,omitempty"`
	LogService string `yaml:"logService,omitempty"`

	Paths      PathsFileConfig      `yaml:"paths,omitempty"`
	Testing    TestingFileConfig    `yaml:"testing,omitempty"`
	Validation ValidationFileConfig `yaml:"validation,omitempty"`
	Store      StoreFileConfig      `yaml:"store,omitempty"`
	Server     ServerFileConfig     `yaml:"server,omitempty"`
	CORS       CORSFileConfig       `yaml:"cors,omitempty"`
	RateLimit  RateLimitFileConfig  `yaml:"rateLimit,omitempty"`
	Metrics    MetricsFileConfig    `yaml:"metrics,omitempty"`
	Tracing    TracingFileConfig    `yaml:"tracing,omitempty"`
}

type PathsFileConfig struct {
	Videos       string   `yaml:"videos,omitempty"`
	Reset        string   `yaml:"reset,omitempty"`
	ResetAliases []string `yaml:"resetAliases,omitempty"`
}

type TestingFileConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

type ValidationFileConfig struct {
	MinAgeMax       *int  `yaml:"minAgeMax,omitempty"`
	RequireOnUpdate *bool `yaml:"requireOnUpdate,omitempty"`
}

type StoreFileConfig struct {
	ResetIDs          *bool  `yaml:"resetIDs,omitempty"`
	PublicationOffset string `yaml:"publicationOffset,omitempty"`
}

type ServerFileConfig struct {
	ReadTimeout     string   `yaml:"readTimeout,omitempty"`
	WriteTimeout    string   `yaml:"writeTimeout,omitempty"`
	IdleTimeout     string   `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout string   `yaml:"shutdownTimeout,omitempty"`
	MaxBodyBytes    *int64   `yaml:"maxBodyBytes,omitempty"`
	TrustedProxies  []string `yaml:"trustedProxies,omitempty"`
}

type CORSFileConfig struct {
	Enabled        *bool    `yaml:"enabled,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

type RateLimitFileConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Requests *int   `yaml:"requests,omitempty"`
	Window   string `yaml:"window,omitempty"`
}

type MetricsFileConfig struct {
	Enabled    *bool  `yaml:"enabled,omitempty"`
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

type TracingFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}
