// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/vidcat/internal/api"
	"github.com/ManuGH/vidcat/internal/config"
	"github.com/ManuGH/vidcat/internal/daemon"
	"github.com/ManuGH/vidcat/internal/health"
	vclog "github.com/ManuGH/vidcat/internal/log"
	"github.com/ManuGH/vidcat/internal/telemetry"
	"github.com/ManuGH/vidcat/internal/version"
	"github.com/ManuGH/vidcat/internal/video"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:]))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:]))
		case "version":
			fmt.Println(version.String())
			os.Exit(0)
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Safe defaults until config is loaded
	vclog.Configure(vclog.Config{
		Level:   "info",
		Service: config.DefaultLogService,
		Version: version.Version,
	})
	logger := vclog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := strings.TrimSpace(*configPath)
	cfg, err := config.NewLoader(path, version.Version).Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(vclog.FieldEvent, "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
	}

	vclog.Configure(vclog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = vclog.WithComponent("daemon")

	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str(vclog.FieldEvent, "config.loaded").
		Str("source", source).
		Str("path", path).
		Msg("loaded configuration")

	app, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(vclog.FieldEvent, "startup.failed").
			Msg("failed to build daemon")
	}

	logger.Info().
		Str(vclog.FieldEvent, "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("addr", cfg.ListenAddr).
		Str("videos_path", cfg.Paths.Videos).
		Bool("testing", cfg.Testing.Enabled).
		Msg("starting vidcat")

	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str(vclog.FieldEvent, "manager.failed").
			Msg("daemon app failed")
	}

	logger.Info().Msg("server exiting")
}

// buildApp wires the store, health, telemetry and HTTP layers into a
// runnable daemon.App.
func buildApp(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger) (*daemon.App, error) {
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    config.ParseString(config.EnvPrefix+"ENVIRONMENT", "production"),
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	store := video.NewStore(
		video.WithPublicationOffset(cfg.Store.PublicationOffset),
		video.WithResetIDs(cfg.Store.ResetIDs),
	)

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewStoreChecker(store))

	srv := api.NewServer(cfg, store, hm)

	deps := daemon.Deps{
		Logger:     logger,
		APIHandler: srv.Handler(),
	}
	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddr != "" {
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsAddr = cfg.Metrics.ListenAddr
	}

	mgr, err := daemon.NewManager(daemon.SettingsFromConfig(cfg), deps)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("create daemon manager: %w", err)
	}
	mgr.RegisterShutdownHook("telemetry", provider.Shutdown)

	return daemon.NewApp(logger, mgr), nil
}
