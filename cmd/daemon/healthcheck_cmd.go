// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ManuGH/vidcat/internal/health"
)

func runHealthcheckCLI(args []string) int {
	return healthcheckCLI(context.Background(), args, os.Stdout, os.Stderr)
}

func healthcheckCLI(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("healthcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	url := fs.String("url", "http://localhost:8080/healthz", "health endpoint to probe")
	timeout := fs.Duration("timeout", health.DefaultProbeTimeout, "check timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	resp, err := health.Probe(ctx, &http.Client{Timeout: *timeout + time.Second}, *url)
	if err != nil {
		fmt.Fprintf(stderr, "Healthcheck failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Healthcheck successful (%s, %s)\n", resp.Status, resp.Version)
	return 0
}
