// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/vidcat/internal/config"
	"github.com/ManuGH/vidcat/internal/health"
	"github.com/ManuGH/vidcat/internal/video"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 891_000_000, time.UTC)

type testEnv struct {
	handler http.Handler
	store   *video.Store
}

func newTestEnv(t *testing.T, mutate ...func(*config.AppConfig)) *testEnv {
	t.Helper()
	cfg := config.Defaults()
	for _, m := range mutate {
		m(&cfg)
	}
	require.NoError(t, config.Validate(cfg))

	store := video.NewStore(
		video.WithClock(func() time.Time { return fixedNow }),
		video.WithPublicationOffset(cfg.Store.PublicationOffset),
		video.WithResetIDs(cfg.Store.ResetIDs),
	)
	hm := health.NewManager("test")
	hm.RegisterChecker(health.NewStoreChecker(store))

	return &testEnv{
		handler: NewServer(cfg, store, hm).Handler(),
		store:   store,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) create(t *testing.T, body string) video.Video {
	t.Helper()
	w := e.do(t, http.MethodPost, "/videos", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var v video.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) []FieldError {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.ErrorsMessages
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}
