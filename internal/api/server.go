// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api implements the HTTP surface of the video catalogue.
package api

import (
	"net/http"

	"github.com/ManuGH/vidcat/internal/config"
	"github.com/ManuGH/vidcat/internal/health"
	"github.com/ManuGH/vidcat/internal/log"
	"github.com/ManuGH/vidcat/internal/metrics"
	"github.com/ManuGH/vidcat/internal/telemetry"
	"github.com/ManuGH/vidcat/internal/video"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Catalogue is the record store the handlers operate on.
type Catalogue interface {
	Insert(d video.Draft) video.Video
	FindByID(id int64) (video.Video, error)
	UpdateByID(id int64, p video.Patch) error
	DeleteByID(id int64) error
	List() []video.Video
	Len() int
	Clear() int
}

// Server binds a Catalogue to the HTTP route table.
type Server struct {
	cfg    config.AppConfig
	store  Catalogue
	health *health.Manager
	policy video.Policy
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewServer creates a Server and binds the stored-videos gauge to store. hm may be nil, in which case the probe routes
// are not mounted.
func NewServer(cfg config.AppConfig, store Catalogue, hm *health.Manager) *Server {
	metrics.ObserveStore(store)
	return &Server{
		cfg:    cfg,
		store:  store,
		health: hm,
		policy: video.Policy{
			MinAgeMax:       cfg.Validation.MinAgeMax,
			RequireOnUpdate: cfg.Validation.RequireOnUpdate,
		},
		tracer: telemetry.Tracer("vidcat/api"),
		logger: log.WithComponent("api"),
	}
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.routes()
}
