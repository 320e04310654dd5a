package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the CLI logger on w. Console output by default, JSON
// lines with --log-json. Level is warn, debug with --verbose and error with
// --quiet; --quiet wins over --verbose.
func newLogger(w io.Writer, f commonFlags) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case f.quiet:
		level = zerolog.ErrorLevel
	case f.verbose:
		level = zerolog.DebugLevel
	}

	out := w
	if !f.logJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
