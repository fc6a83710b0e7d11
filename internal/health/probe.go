// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultProbeTimeout bounds a single Probe call when ctx has no deadline.
const DefaultProbeTimeout = 3 * time.Second

// Probe issues GET url and requires a 200 with a healthy body.
// It backs the daemon's healthcheck subcommand.
func Probe(ctx context.Context, client *http.Client, url string) (HealthResponse, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultProbeTimeout}
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultProbeTimeout)
		defer cancel()
	}

	var out HealthResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, fmt.Errorf("build probe request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return out, fmt.Errorf("probe %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, fmt.Errorf("probe %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("probe %s: decode body: %w", url, err)
	}
	if out.Status != StatusHealthy {
		return out, fmt.Errorf("probe %s: status %s", url, out.Status)
	}
	return out, nil
}
