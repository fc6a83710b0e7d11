// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package video

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ManuGH/vidcat/internal/validate"
)

// Mode selects which fields are required.
type Mode int

const (
	// ModeCreate requires title, author and availableResolutions.
	ModeCreate Mode = iota
	// ModeUpdate validates every field only when present, unless the policy
	// asks for create-style requiredness.
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Field names, in canonical evaluation order.
const (
	FieldTitle                = "title"
	FieldAuthor               = "author"
	FieldAvailableResolutions = "availableResolutions"
	FieldCanBeDownloaded      = "canBeDownloaded"
	FieldMinAgeRestriction    = "minAgeRestriction"
	FieldPublicationDate      = "publicationDate"
)

const (
	TitleMaxLen  = 40
	AuthorMaxLen = 20

	// DefaultMinAgeMax is the policy ceiling for minAgeRestriction.
	DefaultMinAgeMax = 18
)

const (
	msgTitle           = "Title is required and must be a string with a maximum length of 40."
	msgAuthor          = "Author is required and must be a string with a maximum length of 20."
	msgResolutions     = "At least one resolution must be provided and it must be an array."
	msgInvalidRes      = "Invalid resolutions: %s"
	msgCanBeDownloaded = "CanBeDownloaded must be a boolean."
	msgMinAge          = "MinAgeRestriction must be an integer between 0 and %d or null."
	msgPublication     = "PublicationDate must be an ISO 8601 date-time string (YYYY-MM-DDTHH:mm:ss.sssZ)."
)

var publicationDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// Policy holds the tunable bounds of the rule set.
type Policy struct {
	MinAgeMax       int
	RequireOnUpdate bool
}

// DefaultPolicy returns the enforced production policy.
func DefaultPolicy() Policy {
	return Policy{MinAgeMax: DefaultMinAgeMax}
}

// Validate runs every rule against p and returns nil or a validate.ValidationError
// holding the violations in canonical field order. It never short-circuits.
func Validate(p Payload, mode Mode, policy Policy) error {
	required := mode == ModeCreate || policy.RequireOnUpdate
	v := validate.New()

	checkBoundedString(v, p, FieldTitle, TitleMaxLen, msgTitle, required)
	checkBoundedString(v, p, FieldAuthor, AuthorMaxLen, msgAuthor, required)
	checkResolutions(v, p, required)

	if raw, ok := p.lookup(FieldCanBeDownloaded); ok {
		if _, isBool := raw.(bool); !isBool {
			v.AddError(FieldCanBeDownloaded, msgCanBeDownloaded, raw)
		}
	}

	if raw, ok := p.lookup(FieldMinAgeRestriction); ok && raw != nil {
		age, isInt := asInt(raw)
		if !isInt || age < 0 || age > policy.MinAgeMax {
			v.AddError(FieldMinAgeRestriction, fmt.Sprintf(msgMinAge, policy.MinAgeMax), raw)
		}
	}

	if raw, ok := p.lookup(FieldPublicationDate); ok {
		if !validPublicationDate(raw) {
			v.AddError(FieldPublicationDate, msgPublication, raw)
		}
	}

	return v.Err()
}

func checkBoundedString(v *validate.Validator, p Payload, field string, maxLen int, msg string, required bool) {
	raw, ok := p.lookup(field)
	if !ok {
		if required {
			v.AddError(field, msg, nil)
		}
		return
	}
	s, isString := raw.(string)
	if !isString || s == "" || utf8.RuneCountInString(s) > maxLen {
		v.AddError(field, msg, raw)
	}
}

func checkResolutions(v *validate.Validator, p Payload, required bool) {
	raw, ok := p.lookup(FieldAvailableResolutions)
	if !ok {
		if required {
			v.AddError(FieldAvailableResolutions, msgResolutions, nil)
		}
		return
	}
	items, isList := raw.([]any)
	if !isList || len(items) == 0 {
		v.AddError(FieldAvailableResolutions, msgResolutions, raw)
		return
	}

	var invalid []string
	for _, item := range items {
		s, isString := item.(string)
		switch {
		case !isString:
			invalid = append(invalid, jsonText(item))
		case !Resolution(s).IsValid():
			invalid = append(invalid, s)
		}
	}
	if len(invalid) > 0 {
		v.AddError(FieldAvailableResolutions, fmt.Sprintf(msgInvalidRes, strings.Join(invalid, ", ")), invalid)
	}
}

// jsonText renders a decoded JSON value the way the client sent it.
func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func validPublicationDate(raw any) bool {
	s, ok := raw.(string)
	if !ok || !publicationDatePattern.MatchString(s) {
		return false
	}
	_, err := ParseTimestamp(s)
	return err == nil
}

// PrepareCreate validates p in create mode and builds the Draft.
func PrepareCreate(p Payload, policy Policy) (Draft, error) {
	if err := Validate(p, ModeCreate, policy); err != nil {
		return Draft{}, err
	}

	d := Draft{
		Title:                p[FieldTitle].(string),
		Author:               p[FieldAuthor].(string),
		AvailableResolutions: resolutionsOf(p[FieldAvailableResolutions]),
	}
	if b, ok := p[FieldCanBeDownloaded].(bool); ok {
		d.CanBeDownloaded = b
	}
	if age, ok := asInt(p[FieldMinAgeRestriction]); ok {
		d.MinAgeRestriction = &age
	}
	if s, ok := p[FieldPublicationDate].(string); ok {
		ts, _ := ParseTimestamp(s)
		d.PublicationDate = Some(ts)
	}
	return d, nil
}

// PrepareUpdate validates p in update mode and builds the Patch.
func PrepareUpdate(p Payload, policy Policy) (Patch, error) {
	if err := Validate(p, ModeUpdate, policy); err != nil {
		return Patch{}, err
	}

	var patch Patch
	if s, ok := p[FieldTitle].(string); ok {
		patch.Title = Some(s)
	}
	if s, ok := p[FieldAuthor].(string); ok {
		patch.Author = Some(s)
	}
	if raw, ok := p.lookup(FieldAvailableResolutions); ok {
		patch.AvailableResolutions = Some(resolutionsOf(raw))
	}
	if b, ok := p[FieldCanBeDownloaded].(bool); ok {
		patch.CanBeDownloaded = Some(b)
	}
	if raw, ok := p.lookup(FieldMinAgeRestriction); ok {
		if raw == nil {
			patch.MinAgeRestriction = Some[*int](nil)
		} else if age, isInt := asInt(raw); isInt {
			patch.MinAgeRestriction = Some(&age)
		}
	}
	if s, ok := p[FieldPublicationDate].(string); ok {
		ts, _ := ParseTimestamp(s)
		patch.PublicationDate = Some(ts)
	}
	return patch, nil
}

func resolutionsOf(raw any) []Resolution {
	items, _ := raw.([]any)
	out := make([]Resolution, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, Resolution(s))
	}
	return out
}
