package calcreport

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Engine converts a complete HTML document into PDF bytes. Implementations
// must be safe for concurrent Render calls and release every browser
// resource on Close.
type Engine interface {
	Render(ctx context.Context, html string, page PageSettings) ([]byte, error)
	Close() error
}

// Engine names accepted by NewEngine.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// defaultTimeout bounds a single page load and print.
const defaultTimeout = 30 * time.Second

// NewEngine returns the headless Chrome engine called name. Browsers are
// started lazily on the first Render.
func NewEngine(name string, timeout time.Duration) (Engine, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	switch strings.ToLower(name) {
	case "", EngineRod:
		return newRodEngine(timeout), nil
	case EngineChromedp:
		return newChromedpEngine(timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, name, EngineRod, EngineChromedp)
	}
}

// remaining returns the time left before ctx's deadline, capped at max.
func remaining(ctx context.Context, max time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return max, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	if left < max {
		return left, nil
	}
	return max, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
