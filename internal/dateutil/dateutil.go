// Package dateutil turns user-friendly date patterns (YYYY, MM, D...) into
// Go layouts and resolves the "auto" syntax used for the report header date.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultFormat is the en-US short date used by the report header.
const DefaultFormat = "M/D/YYYY"

// Auto is the value that asks for the render date in DefaultFormat.
const Auto = "auto"

// tokens is ordered longest first so "MMMM" wins over "MM".
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts accepted wherever a pattern is.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "M/D/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout converts a pattern or preset name into a Go time layout.
// Text inside brackets is copied literally: "[Issued] YYYY" -> "Issued 2006".
func Layout(pattern string) (string, error) {
	if preset, ok := Presets[strings.ToLower(pattern)]; ok {
		pattern = preset
	}
	if pattern == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(pattern) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var out strings.Builder
	out.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			out.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(pattern[i:], &out)
		if n == 0 {
			out.WriteByte(pattern[i])
			n = 1
		}
		i += n
	}

	return out.String(), nil
}

// matchToken writes the layout for the token at the start of s and returns
// how many bytes it consumed, or 0 when s does not start with a token.
func matchToken(s string, out *strings.Builder) int {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			out.WriteString(t.layout)
			return len(t.token)
		}
	}
	return 0
}

// Format renders t with a pattern or preset name.
func Format(t time.Time, pattern string) (string, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Resolve interprets a configured date value against the render time t:
//   - "auto"          -> t in DefaultFormat
//   - "auto:PATTERN"  -> t in PATTERN (tokens or preset name)
//   - anything else   -> returned unchanged, a literal date
func Resolve(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	switch {
	case lower == Auto:
		return Format(t, DefaultFormat)
	case strings.HasPrefix(lower, Auto+":"):
		pattern := value[len(Auto)+1:]
		if pattern == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		return Format(t, pattern)
	case strings.HasPrefix(lower, Auto):
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	default:
		return value, nil
	}
}
