// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuGH/vidcat/internal/config"
	"github.com/ManuGH/vidcat/internal/version"
	"gopkg.in/yaml.v3"
)

func runConfigCLI(args []string) int {
	return configCLI(args, os.Stdout, os.Stderr)
}

func configCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return configValidate(args[1:], stdout, stderr)
	case "dump":
		return configDump(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  vidcat config validate --config config.yaml")
	fmt.Fprintln(w, "  vidcat config dump [--config config.yaml] [--format=yaml|json]")
}

func configValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vidcat config validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	fs.StringVar(&file, "config", "", "path to YAML configuration file")
	fs.StringVar(&file, "c", "", "path to YAML configuration file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := strings.TrimSpace(file)
	if configPath == "" {
		fmt.Fprintln(stderr, "Error: --config is required")
		return 2
	}

	if _, err := config.NewLoader(configPath, version.Version).Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", configPath, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s is valid\n", configPath)
	return 0
}

// configDump prints the effective configuration (defaults + file + env).
func configDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vidcat config dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file, format string
	fs.StringVar(&file, "config", "", "path to YAML configuration file")
	fs.StringVar(&file, "c", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := strings.TrimSpace(file)
	cfg, err := config.NewLoader(configPath, version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n  %v\n", err)
		return 1
	}

	fileCfg := fileConfigFromAppConfig(cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return 2
	}
}

func fileConfigFromAppConfig(cfg config.AppConfig) config.FileConfig {
	testingEnabled := cfg.Testing.Enabled
	minAgeMax := cfg.Validation.MinAgeMax
	requireOnUpdate := cfg.Validation.RequireOnUpdate
	resetIDs := cfg.Store.ResetIDs
	maxBody := cfg.Server.MaxBodyBytes
	corsEnabled := cfg.CORS.Enabled
	rateEnabled := cfg.RateLimit.Enabled
	rateRequests := cfg.RateLimit.Requests
	metricsEnabled := cfg.Metrics.Enabled
	tracingEnabled := cfg.Tracing.Enabled
	sampling := cfg.Tracing.SamplingRate

	return config.FileConfig{
		ListenAddr: cfg.ListenAddr,
		LogLevel:   cfg.LogLevel,
		LogService: cfg.LogService,
		Paths: config.PathsFileConfig{
			Videos:       cfg.Paths.Videos,
			Reset:        cfg.Paths.Reset,
			ResetAliases: cfg.Paths.ResetAliases,
		},
		Testing: config.TestingFileConfig{Enabled: &testingEnabled},
		Validation: config.ValidationFileConfig{
			MinAgeMax:       &minAgeMax,
			RequireOnUpdate: &requireOnUpdate,
		},
		Store: config.StoreFileConfig{
			ResetIDs:          &resetIDs,
			PublicationOffset: cfg.Store.PublicationOffset.String(),
		},
		Server: config.ServerFileConfig{
			ReadTimeout:     cfg.Server.ReadTimeout.String(),
			WriteTimeout:    cfg.Server.WriteTimeout.String(),
			IdleTimeout:     cfg.Server.IdleTimeout.String(),
			ShutdownTimeout: cfg.Server.ShutdownTimeout.String(),
			MaxBodyBytes:    &maxBody,
			TrustedProxies:  cfg.Server.TrustedProxies,
		},
		CORS: config.CORSFileConfig{
			Enabled:        &corsEnabled,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		RateLimit: config.RateLimitFileConfig{
			Enabled:  &rateEnabled,
			Requests: &rateRequests,
			Window:   cfg.RateLimit.Window.String(),
		},
		Metrics: config.MetricsFileConfig{
			Enabled:    &metricsEnabled,
			ListenAddr: cfg.Metrics.ListenAddr,
		},
		Tracing: config.TracingFileConfig{
			Enabled:      &tracingEnabled,
			Exporter:     cfg.Tracing.Exporter,
			Endpoint:     cfg.Tracing.Endpoint,
			SamplingRate: &sampling,
		},
	}
}
