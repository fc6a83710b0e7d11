// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics exposes Prometheus business metrics for the video catalogue.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	OpCreate = "create"
	OpRead   = "read"
	OpList   = "list"
	OpUpdate = "update"
	OpDelete = "delete"
	OpReset  = "reset"
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
)

// Sizer reports how many records a store holds.
type Sizer interface {
	Len() int
}

type sizerRef struct{ s Sizer }

var storeRef atomic.Pointer[sizerRef]

var (
	// Read at scrape time so the value always reflects the store.
	_ = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vidcat_videos_stored",
		Help: "Number of video records currently held in the store",
	}, func() float64 {
		ref := storeRef.Load()
		if ref == nil || ref.s == nil {
			return 0
		}
		return float64(ref.s.Len())
	})

	videoOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidcat_video_operations_total",
		Help: "Catalogue operations by kind and outcome",
	}, []string{"op", "result"})

	validationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidcat_validation_errors_total",
		Help: "Field validation errors reported to clients, by field",
	}, []string{"field"})
)

// ObserveStore binds the stored-videos gauge to s. The latest binding wins.
func ObserveStore(s Sizer) {
	storeRef.Store(&sizerRef{s: s})
}

// RecordOperation counts one catalogue operation outcome.
func RecordOperation(op, result string) {
	videoOperations.WithLabelValues(op, result).Inc()
}

// RecordValidationErrors counts one error per entry in fields.
func RecordValidationErrors(fields []string) {
	for _, f := range fields {
		validationErrors.WithLabelValues(f).Inc()
	}
}
