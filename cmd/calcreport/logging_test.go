package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     commonFlags
		wantInfo  bool
		wantDebug bool
		wantWarn  bool
	}{
		{"default is warn", commonFlags{}, false, false, true},
		{"verbose is debug", commonFlags{verbose: true}, true, true, true},
		{"quiet is error", commonFlags{quiet: true}, false, false, false},
		{"quiet wins", commonFlags{quiet: true, verbose: true}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := newLogger(&buf, tt.flags)

			log.Debug().Msg("debug-line")
			log.Info().Msg("info-line")
			log.Warn().Msg("warn-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "warn-line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, commonFlags{logJSON: true})
	log.Warn().Str("stage", "pdf").Msg("export failed")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if line["level"] != "warn" || line["stage"] != "pdf" || line["message"] != "export failed" {
		t.Errorf("unexpected JSON line: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Error("JSON line should carry a timestamp")
	}
}
