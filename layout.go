package calcreport

import (
	"fmt"
	"strings"

	"github.com/alnah/go-calcreport/internal/logo"
)

// LogoStyle selects the corner shape of the header logo.
type LogoStyle string

// Logo styles.
const (
	LogoSquare LogoStyle = "square"
	LogoRound  LogoStyle = "round"
)

// Grid bounds accepted by Layout.Validate.
const (
	MinColumns     = 1
	MinGridColumns = 2
	MaxColumns     = 4
)

// Layout controls the density and grid shapes of the rendered report.
type Layout struct {
	Compact         bool      // tighter spacing and smaller type
	Columns         int       // output-section grid columns, 1..4
	HeadlineColumns int       // final results grid columns, 2..4
	InputColumns    int       // inputs grid columns, 2..4
	LogoStyle       LogoStyle // square or round
}

// StandardLayout is the default two-column layout with a three-column
// inputs strip.
func StandardLayout() Layout {
	return Layout{
		Columns:         2,
		HeadlineColumns: 2,
		InputColumns:    3,
		LogoStyle:       LogoSquare,
	}
}

// CompactLayout fits more results per page: four-wide headline and inputs
// grids, smaller type and a round logo.
func CompactLayout() Layout {
	return Layout{
		Compact:         true,
		Columns:         2,
		HeadlineColumns: 4,
		InputColumns:    4,
		LogoStyle:       LogoRound,
	}
}

// LayoutByName returns the preset called name ("standard" or "compact").
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case "", "standard":
		return StandardLayout(), nil
	case "compact":
		return CompactLayout(), nil
	default:
		return Layout{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidLayout, name)
	}
}

// Validate checks grid bounds and the logo style.
func (l Layout) Validate() error {
	if l.Columns < MinColumns || l.Columns > MaxColumns {
		return fmt.Errorf("%w: columns %d (must be between %d and %d)", ErrInvalidColumns, l.Columns, MinColumns, MaxColumns)
	}
	if l.HeadlineColumns < MinGridColumns || l.HeadlineColumns > MaxColumns {
		return fmt.Errorf("%w: headline columns %d (must be between %d and %d)", ErrInvalidColumns, l.HeadlineColumns, MinGridColumns, MaxColumns)
	}
	if l.InputColumns < MinGridColumns || l.InputColumns > MaxColumns {
		return fmt.Errorf("%w: input columns %d (must be between %d and %d)", ErrInvalidColumns, l.InputColumns, MinGridColumns, MaxColumns)
	}
	switch l.LogoStyle {
	case LogoSquare, LogoRound:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogoStyle, l.LogoStyle)
	}
}

// Branding defaults.
const (
	DefaultBrandName    = "Enzo CoolCalc"
	DefaultBrandCaption = "Professional Heat Load Calculations - Powered by Enzo"
	DefaultBrandColor   = "#2563eb"
)

// Branding is the identity printed in the header and footer.
type Branding struct {
	Name    string // header title
	Initial string // logo glyph, defaults to the first letter of Name
	Caption string // footer caption
	Color   string // accent colour, #rgb or #rrggbb
}

// DefaultBranding returns the built-in header and footer identity.
func DefaultBranding() Branding {
	return Branding{
		Name:    DefaultBrandName,
		Initial: "E",
		Caption: DefaultBrandCaption,
		Color:   DefaultBrandColor,
	}
}

// withDefaults fills empty fields from DefaultBranding.
func (b Branding) withDefaults() Branding {
	d := DefaultBranding()
	if b.Name == "" {
		b.Name = d.Name
	}
	if b.Initial == "" {
		if b.Name == d.Name {
			b.Initial = d.Initial
		} else {
			b.Initial = firstLetter(b.Name)
		}
	}
	if b.Caption == "" {
		b.Caption = d.Caption
	}
	if b.Color == "" {
		b.Color = d.Color
	}
	return b
}

// Validate checks the accent colour.
func (b Branding) Validate() error {
	if b.Color == "" {
		return nil
	}
	if _, err := logo.ParseHex(b.Color); err != nil {
		return fmt.Errorf("%w: brand %v", ErrInvalidColor, err)
	}
	return nil
}

func firstLetter(s string) string {
	for _, r := range strings.TrimSpace(s) {
		return strings.ToUpper(string(r))
	}
	return ""
}

// Watermark defaults.
const (
	DefaultWatermarkText    = "EXPO"
	DefaultWatermarkOpacity = 0.08
	DefaultWatermarkAngle   = -45.0
)

// Watermark is the faint diagonal text behind the report.
type Watermark struct {
	Text    string  // empty disables the watermark
	Color   string  // #rgb or #rrggbb, defaults to the brand colour
	Opacity float64 // 0..1, print output uses 5/8 of it
	Angle   float64 // degrees, -90..90
}

// DefaultWatermark returns the built-in watermark.
func DefaultWatermark() Watermark {
	return Watermark{
		Text:    DefaultWatermarkText,
		Opacity: DefaultWatermarkOpacity,
		Angle:   DefaultWatermarkAngle,
	}
}

// Validate checks colour, opacity and angle.
func (w Watermark) Validate() error {
	if w.Color != "" {
		if _, err := logo.ParseHex(w.Color); err != nil {
			return fmt.Errorf("%w: watermark %v", ErrInvalidColor, err)
		}
	}
	if w.Opacity < 0 || w.Opacity > 1 {
		return fmt.Errorf("%w: opacity %.2f (must be between 0 and 1)", ErrInvalidWatermark, w.Opacity)
	}
	if w.Angle < -90 || w.Angle > 90 {
		return fmt.Errorf("%w: angle %.1f (must be between -90 and 90)", ErrInvalidWatermark, w.Angle)
	}
	return nil
}
