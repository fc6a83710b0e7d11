// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"

	"github.com/ManuGH/vidcat/internal/log"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// App owns the process lifecycle around a Manager.
type App struct {
	logger  zerolog.Logger
	manager Manager
	tasks   []func(ctx context.Context) error
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager) *App {
	return &App{logger: logger, manager: manager}
}

// Go adds a background task that runs alongside the servers and must return
// when its ctx is cancelled.
func (a *App) Go(task func(ctx context.Context) error) {
	a.tasks = append(a.tasks, task)
}

// Run starts the manager and background tasks and blocks until ctx is
// cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, task := range a.tasks {
		g.Go(func() error { return task(gctx) })
	}

	g.Go(func() error {
		err := a.manager.Start(gctx)
		if err != nil {
			_ = a.manager.Shutdown(context.WithoutCancel(ctx))
		}
		return err
	})

	err := g.Wait()
	a.logger.Info().Str(log.FieldEvent, "daemon.stopped").Err(err).Msg("daemon stopped")
	return err
}
