package normalize

import (
	"time"

	"live-sports-service/internal/timeutil"
)

// asMap returns v as a JSON object, or nil when it is anything else.
// Reads from the nil result are safe, which keeps probe chains short.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asString returns v when it is a string, else the empty string.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// isNumber reports whether a decoded JSON value is numeric.
func isNumber(v any) bool {
	switch v.(type) {
	case float64, int, int64:
		return true
	}
	return false
}

// first returns the first non-nil value among the candidates.
func first(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// firstMap returns the first candidate that is a JSON object.
func firstMap(values ...any) map[string]any {
	for _, v := range values {
		if m := asMap(v); m != nil {
			return m
		}
	}
	return nil
}

// stringOr returns v as a string when possible, else the fallback.
func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

// idOr returns an upstream identifier, defaulting to the sentinel when
// the record carries none.
func idOr(v any, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

// yearOf derives the calendar year from an upstream timestamp, used as
// the season fallback. Returns nil when the date cannot be parsed.
func yearOf(date string) any {
	if date == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Year()
	}
	if t, err := timeutil.ParseDate(date); err == nil {
		return t.Year()
	}
	return nil
}
