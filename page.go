package calcreport

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Margin bounds in millimetres.
const (
	MinMarginMM     = 0.0
	MaxMarginMM     = 50.0
	DefaultMarginMM = 10.0
)

const mmPerInch = 25.4

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeA4:     {8.27, 11.69},
	PageSizeLetter: {8.5, 11},
	PageSizeLegal:  {8.5, 14},
}

// cssPageSizes names each size the way @page expects.
var cssPageSizes = map[string]string{
	PageSizeA4:     "A4",
	PageSizeLetter: "letter",
	PageSizeLegal:  "legal",
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size     string  // "a4", "letter", "legal"
	MarginMM float64 // applied to all sides
}

// DefaultPageSettings returns A4 with 10 mm margins.
func DefaultPageSettings() PageSettings {
	return PageSettings{Size: PageSizeA4, MarginMM: DefaultMarginMM}
}

// Validate checks that page settings are valid. Size is case-insensitive.
func (p PageSettings) Validate() error {
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if p.MarginMM < MinMarginMM || p.MarginMM > MaxMarginMM {
		return fmt.Errorf("%w: %.2f (must be between %.0f and %.0f mm)", ErrInvalidMargin, p.MarginMM, MinMarginMM, MaxMarginMM)
	}
	return nil
}

// Dimensions returns the paper width and height in inches.
// Unknown sizes fall back to A4.
func (p PageSettings) Dimensions() (width, height float64) {
	dims, ok := paperSizes[strings.ToLower(p.Size)]
	if !ok {
		dims = paperSizes[PageSizeA4]
	}
	return dims[0], dims[1]
}

// MarginInches returns the margin converted to inches.
func (p PageSettings) MarginInches() float64 {
	return p.MarginMM / mmPerInch
}

// contentHeightMM is the printable height, used to cap the body height.
func (p PageSettings) contentHeightMM() float64 {
	_, h := p.Dimensions()
	return h*mmPerInch - 2*p.MarginMM
}

func (p PageSettings) cssSize() string {
	if name, ok := cssPageSizes[strings.ToLower(p.Size)]; ok {
		return name
	}
	return cssPageSizes[PageSizeA4]
}
