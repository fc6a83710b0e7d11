// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"
	HTTPRequestIDKey  = "http.request_id"

	// Catalogue attributes
	VideoIDKey          = "video.id"
	VideoOperationKey   = "video.operation"
	VideoResultKey      = "video.result"
	ValidationErrorsKey = "video.validation_errors"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// VideoAttributes creates catalogue span attributes. A zero id is omitted.
func VideoAttributes(operation string, id int64, result string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	attrs = append(attrs, attribute.String(VideoOperationKey, operation))
	if id != 0 {
		attrs = append(attrs, attribute.Int64(VideoIDKey, id))
	}
	if result != "" {
		attrs = append(attrs, attribute.String(VideoResultKey, result))
	}
	return attrs
}

// ValidationErrorAttribute records how many field errors a payload produced.
func ValidationErrorAttribute(count int) attribute.KeyValue {
	return attribute.Int(ValidationErrorsKey, count)
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(err error, errorType string) []attribute.KeyValue {
	if err == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
