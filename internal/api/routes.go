// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"

	"github.com/ManuGH/vidcat/internal/control/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// route is one entry of the static route table.
type route struct {
	method  string
	path    string
	opID    string
	handler http.HandlerFunc
}

// routeTable lists every route the server exposes. It is resolved once at startup.
func (s *Server) routeTable() []route {
	videos := s.cfg.Paths.Videos
	item := videos + "/{id}"

	table := []route{
		{http.MethodGet, "/", "GetVersion", s.handleVersion},
		{http.MethodGet, videos, "ListVideos", s.handleList},
		{http.MethodPost, videos, "CreateVideo", s.handleCreate},
		{http.MethodGet, item, "GetVideo", s.handleGet},
		{http.MethodPut, item, "UpdateVideo", s.handleUpdate},
		{http.MethodDelete, item, "DeleteVideo", s.handleDelete},
	}

	if s.cfg.Testing.Enabled {
		for _, p := range s.cfg.Paths.ResetRoutes() {
			table = append(table, route{http.MethodDelete, p, "ResetData", s.handleReset})
		}
	}

	if s.health != nil {
		table = append(table,
			route{http.MethodGet, "/healthz", "GetHealth", s.health.ServeHealth},
			route{http.MethodGet, "/readyz", "GetReady", s.health.ServeReady},
		)
	}

	if s.cfg.Metrics.Enabled && s.cfg.Metrics.ListenAddr == "" {
		table = append(table, route{http.MethodGet, "/metrics", "GetMetrics", promhttp.Handler().ServeHTTP})
	}

	return table
}

func (s *Server) routes() http.Handler {
	trusted, err := middleware.ParseCIDRs(s.cfg.Server.TrustedProxies)
	if err != nil {
		s.logger.Warn().Err(err).Str("event", "config.trusted_proxies_invalid").Msg("ignoring trusted proxies")
		trusted = nil
	}

	tracingService := ""
	if s.cfg.Tracing.Enabled {
		tracingService = s.cfg.LogService
	}

	r := middleware.NewRouter(middleware.StackConfig{
		EnableCORS:            s.cfg.CORS.Enabled,
		AllowedOrigins:        s.cfg.CORS.AllowedOrigins,
		EnableSecurityHeaders: true,
		TrustedProxies:        trusted,
		MaxBodyBytes:          s.cfg.Server.MaxBodyBytes,
		EnableMetrics:         s.cfg.Metrics.Enabled,
		TracingService:        tracingService,
		EnableLogging:         true,
		EnableRateLimit:       s.cfg.RateLimit.Enabled,
		RateLimitRequests:     s.cfg.RateLimit.Requests,
		RateLimitWindow:       s.cfg.RateLimit.Window,
	})

	register := func(method, path, opID string, handler http.HandlerFunc) {
		r.Method(method, path, handler)
		s.logger.Debug().
			Str("method", method).
			Str("path", path).
			Str("operation", opID).
			Msg("route registered")
	}
	for _, rt := range s.routeTable() {
		register(rt.method, rt.path, rt.opID, rt.handler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not Found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	return r
}
