// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package video

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// Payload is a permissively decoded request body: every field is optional and
// untyped until the validation rules have run. Numbers are kept as json.Number.
type Payload map[string]any

// DecodePayload reads a single JSON object from r.
// An empty body decodes to an empty Payload so that validation can report the
// missing fields.
func DecodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Payload{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: body must contain a single JSON object", ErrMalformedPayload)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrMalformedPayload)
	}
	return Payload(obj), nil
}

func (p Payload) lookup(field string) (any, bool) {
	v, ok := p[field]
	return v, ok
}

// asInt reports whether v is an integral JSON number and returns it.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			if i < math.MinInt32 || i > math.MaxInt32 {
				return 0, false
			}
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, false
		}
		return int(f), true
	case float64:
		if f := n; f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			return int(f), true
		}
		return 0, false
	case int:
		return n, true
	default:
		return 0, false
	}
}
