package dateutil

import (
	"errors"
	"testing"
	"time"
)

var fixed = time.Date(2026, time.March, 7, 14, 30, 0, 0, time.UTC)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    string
		wantErr error
	}{
		{name: "year", pattern: "YYYY", want: "2006"},
		{name: "short year", pattern: "YY", want: "06"},
		{name: "full month wins over MM", pattern: "MMMM", want: "January"},
		{name: "short month", pattern: "MMM", want: "Jan"},
		{name: "padded day", pattern: "DD", want: "02"},
		{name: "us preset", pattern: "us", want: "1/2/2006"},
		{name: "preset is case-insensitive", pattern: "ISO", want: "2006-01-02"},
		{name: "literal separators kept", pattern: "DD.MM.YYYY", want: "02.01.2006"},
		{name: "bracket escapes literal", pattern: "[Date:] D MMM", want: "Date: 2 Jan"},
		{name: "empty", pattern: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", pattern: "[oops YYYY", wantErr: ErrInvalidDateFormat},
		{name: "too long", pattern: "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.pattern)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Layout(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "auto uses default format", value: "auto", want: "3/7/2026"},
		{name: "AUTO is case-insensitive", value: "AUTO", want: "3/7/2026"},
		{name: "auto with preset", value: "auto:long", want: "March 7, 2026"},
		{name: "auto with pattern", value: "auto:YYYY-MM-DD", want: "2026-03-07"},
		{name: "literal passthrough", value: "Q1 2026", want: "Q1 2026"},
		{name: "empty passthrough", value: "", want: ""},
		{name: "auto with empty pattern", value: "auto:", wantErr: true},
		{name: "malformed auto", value: "automatic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, fixed)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("Resolve(%q) error = %v, want ErrInvalidDateFormat", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	got, err := Format(fixed, "european")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "07/03/2026" {
		t.Errorf("Format = %q, want %q", got, "07/03/2026")
	}
}
