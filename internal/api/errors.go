// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/vidcat/internal/validate"
	"github.com/ManuGH/vidcat/internal/video"
)

const contentTypeJSON = "application/json; charset=utf-8"

const (
	msgNotFound      = "Video not found"
	msgMalformedBody = "Body must be a single JSON object."
	msgBodyTooLarge  = "Request body is too large."
	msgInternal      = "internal error"

	fieldID   = "id"
	fieldBody = "body"
)

// FieldError is one entry of the error envelope.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ErrorResponse is the body of every non-2xx catalogue response.
type ErrorResponse struct {
	ErrorsMessages []FieldError `json:"errorsMessages"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeNoContent answers 204 with an empty body.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeMessage(w http.ResponseWriter, code int, message, field string) {
	writeJSON(w, code, ErrorResponse{ErrorsMessages: []FieldError{{Message: message, Field: field}}})
}

// statusFor maps err to the HTTP status writeError answers with.
func statusFor(err error) int {
	var verr validate.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, video.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, video.ErrMalformedPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single place where domain errors become HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr    validate.ValidationError
		tooLong *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		fields := verr.Errors()
		body := ErrorResponse{ErrorsMessages: make([]FieldError, 0, len(fields))}
		for _, f := range fields {
			body.ErrorsMessages = append(body.ErrorsMessages, FieldError{Message: f.Message, Field: f.Field})
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, video.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound, fieldID)
	case errors.As(err, &tooLong):
		writeMessage(w, http.StatusBadRequest, msgBodyTooLarge, fieldBody)
	case errors.Is(err, video.ErrMalformedPayload):
		writeMessage(w, http.StatusBadRequest, msgMalformedBody, fieldBody)
	default:
		writeMessage(w, http.StatusInternalServerError, msgInternal, "")
	}
}
