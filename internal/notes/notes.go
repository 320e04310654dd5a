// Package notes converts the optional Markdown notes of a report (assumptions,
// disclaimers, formulas) into an HTML fragment that is safe to embed.
package notes

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates the Markdown could not be converted.
var ErrConversion = errors.New("notes conversion failed")

// MaxLength bounds the Markdown accepted for a single report.
const MaxLength = 20000

// Converter renders Markdown notes. Safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter builds a Converter with GFM tables and inline-styled
// highlighting for fenced blocks, so the fragment needs no extra stylesheet.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// No html.WithUnsafe: raw HTML in notes is dropped.
		),
	)
	return &Converter{md: md}
}

// Convert returns the HTML fragment for source. Blank input yields "".
func (c *Converter) Convert(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	if len(source) > MaxLength {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrConversion, len(source), MaxLength)
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	// #nosec G203 -- goldmark output without WithUnsafe escapes raw HTML
	return template.HTML(buf.String()), nil
}
