package utils

import (
	"strings"
	"time"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for a nil or blank string.
func NonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// Coalesce returns the first non-empty string.
func Coalesce(vals ...*string) *string {
	for _, v := range vals {
		if NonEmpty(v) != nil {
			return v
		}
	}
	return nil
}

// ParseTime parses an RFC 3339 timestamp. Blank or malformed input yields nil.
func ParseTime(s *string) *time.Time {
	if NonEmpty(s) == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &t
}
