// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// Default values.
const (
	DefaultListenAddr        = ":8080"
	DefaultLogLevel          = "info"
	DefaultLogService        = "vidcat"
	DefaultVideosPath        = "/videos"
	DefaultResetPath         = "/testing/all-data"
	DefaultMinAgeMax         = 18
	DefaultPublicationOffset = 24 * time.Hour
	DefaultMaxBodyBytes      = 1 << 20
	DefaultRateLimitRequests = 600
	DefaultRateLimitWindow   = time.Minute
	DefaultTracingExporter   = "grpc"
	DefaultTracingEndpoint   = "localhost:4317"
)

// Defaults returns the configuration used when neither file nor env set a value.
func Defaults() AppConfig {
	return AppConfig{
		ListenAddr: DefaultListenAddr,
		LogLevel:   DefaultLogLevel,
		LogService: DefaultLogService,
		Paths: PathsConfig{
			Videos:       DefaultVideosPath,
			Reset:        DefaultResetPath,
			ResetAliases: []string{"/__test__/data"},
		},
		Testing: TestingConfig{Enabled: true},
		Validation: ValidationConfig{
			MinAgeMax: DefaultMinAgeMax,
		},
		Store: StoreConfig{
			PublicationOffset: DefaultPublicationOffset,
		},
		Server: ServerConfig{
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		RateLimit: RateLimitConfig{
			Requests: DefaultRateLimitRequests,
			Window:   DefaultRateLimitWindow,
		},
		Metrics: MetricsConfig{Enabled: true},
		Tracing: TracingConfig{
			Exporter:     DefaultTracingExporter,
			Endpoint:     DefaultTracingEndpoint,
			SamplingRate: 1.0,
		},
	}
}
