// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope mirrors the API error body so middleware-generated
// failures look the same as handler failures.
type errorEnvelope struct {
	ErrorsMessages []errorMessage `json:"errorsMessages"`
}

type errorMessage struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		ErrorsMessages: []errorMessage{{Message: message, Field: ""}},
	})
}
