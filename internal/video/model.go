// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package video holds the catalogue domain: the Video record, payload
// decoding and validation, and the in-memory record store.
package video

import (
	"bytes"
	"fmt"
	"slices"
	"time"
)

// Resolution is an enumerated video-quality tag.
type Resolution string

const (
	P144  Resolution = "P144"
	P240  Resolution = "P240"
	P360  Resolution = "P360"
	P480  Resolution = "P480"
	P720  Resolution = "P720"
	P1080 Resolution = "P1080"
	P1440 Resolution = "P1440"
	P2160 Resolution = "P2160"
)

// Resolutions lists every recognised tag in ascending quality.
var Resolutions = []Resolution{P144, P240, P360, P480, P720, P1080, P1440, P2160}

// IsValid reports whether r is one of the recognised tags.
func (r Resolution) IsValid() bool {
	return slices.Contains(Resolutions, r)
}

// TimeLayout is the wire format for record timestamps: UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a point in time serialised with TimeLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalises t to UTC millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses a TimeLayout string.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return NewTimestamp(t), nil
}

// String formats the timestamp with TimeLayout.
func (t Timestamp) String() string {
	return t.UTC().Format(TimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	parsed, err := ParseTimestamp(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Video is one catalogue entry.
type Video struct {
	ID                   int64        `json:"id"`
	Title                string       `json:"title"`
	Author               string       `json:"author"`
	CanBeDownloaded      bool         `json:"canBeDownloaded"`
	MinAgeRestriction    *int         `json:"minAgeRestriction"`
	CreatedAt            Timestamp    `json:"createdAt"`
	PublicationDate      Timestamp    `json:"publicationDate"`
	AvailableResolutions []Resolution `json:"availableResolutions"`
}

// clone returns a deep copy so callers never share slices or pointers with the store.
func (v Video) clone() Video {
	out := v
	out.AvailableResolutions = append([]Resolution(nil), v.AvailableResolutions...)
	if v.MinAgeRestriction != nil {
		age := *v.MinAgeRestriction
		out.MinAgeRestriction = &age
	}
	return out
}

// Optional carries a value together with whether it was supplied at all.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Draft is the validated input for a new record.
type Draft struct {
	Title                string
	Author               string
	AvailableResolutions []Resolution
	CanBeDownloaded      bool
	MinAgeRestriction    *int
	PublicationDate      Optional[Timestamp]
}

// Patch is the validated input for an update. Only set fields are applied.
type Patch struct {
	Title                Optional[string]
	Author               Optional[string]
	AvailableResolutions Optional[[]Resolution]
	CanBeDownloaded      Optional[bool]
	MinAgeRestriction    Optional[*int]
	PublicationDate      Optional[Timestamp]
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return !p.Title.Set && !p.Author.Set && !p.AvailableResolutions.Set &&
		!p.CanBeDownloaded.Set && !p.MinAgeRestriction.Set && !p.PublicationDate.Set
}
