// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"fmt"
)

// Counter is satisfied by the video store.
type Counter interface {
	Len() int
}

// StoreChecker reports the catalogue store as reachable along with its size.
type StoreChecker struct {
	store Counter
}

// NewStoreChecker creates a checker for the given store.
func NewStoreChecker(store Counter) *StoreChecker {
	return &StoreChecker{store: store}
}

func (c *StoreChecker) Name() string {
	return "store"
}

func (c *StoreChecker) Check(ctx context.Context) CheckResult {
	if c.store == nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  "store not initialised",
		}
	}
	if err := ctx.Err(); err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}
	return CheckResult{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("%d videos", c.store.Len()),
	}
}
