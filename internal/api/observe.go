// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ManuGH/vidcat/internal/log"
	"github.com/ManuGH/vidcat/internal/metrics"
	"github.com/ManuGH/vidcat/internal/telemetry"
	"github.com/ManuGH/vidcat/internal/validate"
	"github.com/ManuGH/vidcat/internal/video"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startOp opens the span for one catalogue operation.
func (s *Server) startOp(r *http.Request, op string) (context.Context, trace.Span) {
	return s.tracer.Start(r.Context(), "video."+op, trace.WithSpanKind(trace.SpanKindInternal))
}

// resultOf classifies a non-nil err into a metrics result label.
func resultOf(err error) string {
	if statusFor(err) == http.StatusNotFound {
		return metrics.ResultNotFound
	}
	return metrics.ResultInvalid
}

// observe records the outcome of op on the span, in metrics and in the log.
func (s *Server) observe(ctx context.Context, span trace.Span, op string, id int64, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = resultOf(err)
	}

	metrics.RecordOperation(op, result)
	span.SetAttributes(telemetry.VideoAttributes(op, id, result)...)

	logger := log.WithContext(ctx, s.logger)
	if id != 0 {
		logger = logger.With().Int64(log.FieldVideoID, id).Logger()
	}

	if err == nil {
		return
	}

	span.SetAttributes(telemetry.ErrorAttributes(err, result)...)

	var verr validate.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]string, 0, len(verr.Errors()))
		for _, e := range verr.Errors() {
			fields = append(fields, e.Field)
		}
		metrics.RecordValidationErrors(fields)
		span.SetAttributes(telemetry.ValidationErrorAttribute(len(fields)))
		logger.Warn().
			Str(log.FieldEvent, "video.validation_failed").
			Str("operation", op).
			Strs(log.FieldErrors, fields).
			Msg("payload rejected")
	case errors.Is(err, video.ErrNotFound):
		logger.Info().
			Str(log.FieldEvent, "video.not_found").
			Str("operation", op).
			Msg("video not found")
	case errors.Is(err, video.ErrMalformedPayload):
		logger.Warn().
			Str(log.FieldEvent, "video.validation_failed").
			Str("operation", op).
			Strs(log.FieldErrors, []string{fieldBody}).
			Err(err).
			Msg("malformed request body")
	default:
		span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).Str("operation", op).Msg("unexpected catalogue error")
	}
}
