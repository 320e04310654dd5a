package calcreport

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/alnah/go-calcreport/internal/logo"
)

// defaultFontFamily is the generic stack used by generated rules.
const defaultFontFamily = "Arial, Helvetica, sans-serif"

// printOpacityRatio dims the watermark further on paper (0.08 -> 0.05).
const printOpacityRatio = 0.625

// buildPageCSS generates the @page rule and caps the body at the printable
// height so a one-page report never spills.
func buildPageCSS(p PageSettings) string {
	return fmt.Sprintf(`
@page {
  size: %s;
  margin: %gmm;
}

body {
  max-height: %.0fmm;
}
`, p.cssSize(), p.MarginMM, p.contentHeightMM())
}

// buildLayoutCSS overrides the stylesheet variables for grids, accent colour
// and logo shape, then adds the compact density rules when asked.
func buildLayoutCSS(l Layout, brand color.RGBA) string {
	radius := "4px"
	if l.LogoStyle == LogoRound {
		radius = "50%"
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, `
:root {
  --brand: %s;
  --headline-columns: %d;
  --main-columns: %d;
  --input-columns: %d;
  --logo-radius: %s;
}
`, hexColor(brand), l.HeadlineColumns, l.Columns, l.InputColumns, radius)

	if l.Compact {
		buf.WriteString(`
/* Compact density */
body { font-size: 10px; line-height: 1.2; }
.header { margin-bottom: 4mm; padding-bottom: 2mm; }
.logo { width: 28px; height: 28px; }
.brand-title { font-size: 16px; }
.main-title { font-size: 15px; margin-bottom: 4mm; }
.final-results-section { margin-bottom: 3mm; }
.final-result-item { padding: 1mm; }
.main-content { gap: 2mm; }
.section { margin-bottom: 2mm; }
.section-content, .input-group-content { padding: 1mm 1.5mm; }
.table-label, .table-value { padding: 0.6mm 1mm; font-size: 7.5px; }
.footer-note { margin-top: 2mm; padding: 1.5mm; }

@media print {
  .brand-title { font-size: 14px; }
  .main-title { font-size: 12px; }
  .table-label, .table-value { font-size: 6.5px; }
}
`)
	}

	return buf.String()
}

// buildWatermarkCSS positions the watermark element diagonally. The text
// itself lives in the markup, so no CSS string escaping is involved.
func buildWatermarkCSS(w Watermark, c color.RGBA) string {
	if w.Text == "" {
		return ""
	}

	return fmt.Sprintf(`
/* Watermark */
.watermark {
  transform: translate(-50%%, -50%%) rotate(%.1fdeg);
  color: %s;
  white-space: nowrap;
  font-family: %s;
}

@media print {
  .watermark {
    display: block;
    color: %s;
  }
}
`, w.Angle, rgba(c, w.Opacity), defaultFontFamily, rgba(c, w.Opacity*printOpacityRatio))
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rgba(c color.RGBA, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)", c.R, c.G, c.B, alpha)
}

// mustColor parses a colour that has already been validated, falling back
// to the default brand colour.
func mustColor(s string) color.RGBA {
	c, err := logo.ParseHex(s)
	if err != nil {
		c, _ = logo.ParseHex(DefaultBrandColor)
	}
	return c
}
