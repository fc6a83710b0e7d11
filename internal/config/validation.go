// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/vidcat/internal/validate"
)

// Upper bounds for integer settings.
const (
	MaxMinAgeMax         = 150
	MaxRateLimitRequests = 1_000_000
)

// Validate checks a resolved configuration and returns a validate.ValidationError
// listing every problem found.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.ListenAddr("listenAddr", cfg.ListenAddr)
	if _, err := validate.ParseLogLevel(cfg.LogLevel); err != nil {
		v.AddError("logLevel", "must be one of trace, debug, info, warn, error", cfg.LogLevel)
	}

	validatePaths(v, cfg.Paths, cfg.Testing.Enabled)

	v.Range("validation.minAgeMax", cfg.Validation.MinAgeMax, 0, MaxMinAgeMax)
	if cfg.Store.PublicationOffset < 0 {
		v.AddError("store.publicationOffset", "must not be negative", cfg.Store.PublicationOffset.String())
	}

	for _, t := range []struct {
		name string
		d    time.Duration
	}{
		{"server.readTimeout", cfg.Server.ReadTimeout},
		{"server.writeTimeout", cfg.Server.WriteTimeout},
		{"server.idleTimeout", cfg.Server.IdleTimeout},
		{"server.shutdownTimeout", cfg.Server.ShutdownTimeout},
	} {
		if t.d <= 0 {
			v.AddError(t.name, "must be positive", t.d.String())
		}
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		v.AddError("server.maxBodyBytes", "must be positive", cfg.Server.MaxBodyBytes)
	}

	if cfg.RateLimit.Enabled {
		v.Range("rateLimit.requests", cfg.RateLimit.Requests, 1, MaxRateLimitRequests)
		if cfg.RateLimit.Window <= 0 {
			v.AddError("rateLimit.window", "must be positive", cfg.RateLimit.Window.String())
		}
	}

	if cfg.Metrics.ListenAddr != "" {
		v.ListenAddr("metrics.listenAddr", cfg.Metrics.ListenAddr)
		if cfg.Metrics.ListenAddr == cfg.ListenAddr {
			v.AddError("metrics.listenAddr", "must differ from listenAddr", cfg.Metrics.ListenAddr)
		}
	}

	if cfg.Tracing.Enabled {
		v.OneOf("tracing.exporter", cfg.Tracing.Exporter, []string{"grpc", "http"})
		v.NotEmpty("tracing.endpoint", cfg.Tracing.Endpoint)
	}
	v.Custom("tracing.samplingRate", cfg.Tracing.SamplingRate, func(val interface{}) error {
		if rate, _ := val.(float64); rate < 0 || rate > 1 {
			return fmt.Errorf("must be between 0 and 1, got %g", rate)
		}
		return nil
	})

	return v.Err()
}

func validatePaths(v *validate.Validator, p PathsConfig, testing bool) {
	seen := map[string]string{}
	check := func(field, path string) {
		if !strings.HasPrefix(path, "/") {
			v.AddError(field, "must be an absolute path", path)
			return
		}
		if len(path) > 1 && strings.HasSuffix(path, "/") {
			v.AddError(field, "must not end with a slash", path)
			return
		}
		if other, dup := seen[path]; dup {
			v.AddError(field, fmt.Sprintf("duplicates %s", other), path)
			return
		}
		seen[path] = field
	}

	// Reserved by the probe and metrics routes.
	for _, reserved := range []string{"/", "/healthz", "/readyz", "/metrics"} {
		seen[reserved] = "a reserved route"
	}
	check("paths.videos", p.Videos)
	if !testing {
		return
	}
	check("paths.reset", p.Reset)
	for i, alias := range p.ResetAliases {
		check(fmt.Sprintf("paths.resetAliases[%d]", i), alias)
	}
}
