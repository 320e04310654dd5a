// Package logo rasterises the brand initial into the small PNG that the
// report header embeds as a base64 data URI. Output depends only on the
// inputs, so rendered documents stay byte-for-byte reproducible.
package logo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidColor indicates a color that is not #rgb or #rrggbb.
var ErrInvalidColor = errors.New("invalid hex color")

const (
	// cell is the unscaled canvas edge; Face7x13 glyphs fit with a margin.
	cell = 15
	// Scale is the nearest-neighbour upscaling factor applied to the cell.
	Scale = 3
	// Size is the edge of the produced PNG in pixels.
	Size = cell * Scale
)

// Params describes the logo to draw.
type Params struct {
	Initial    string // first rune is drawn; empty or non-ASCII draws a plain tile
	Background color.Color
	Foreground color.Color
}

// PNG renders p as PNG bytes.
func PNG(p Params) ([]byte, error) {
	bg := p.Background
	if bg == nil {
		bg = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	}
	fg := p.Foreground
	if fg == nil {
		fg = color.White
	}

	small := image.NewRGBA(image.Rect(0, 0, cell, cell))
	draw.Draw(small, small.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if r, _ := utf8.DecodeRuneInString(p.Initial); drawable(r) {
		d := &font.Drawer{
			Dst:  small,
			Src:  image.NewUniform(fg),
			Face: basicfont.Face7x13,
			Dot:  fixed.P((cell-7)/2, cell-3),
		}
		d.DrawString(string(r))
	}

	big := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, big); err != nil {
		return nil, fmt.Errorf("encoding logo: %w", err)
	}
	return buf.Bytes(), nil
}

// drawable reports whether Face7x13 has a real glyph for r. Other runes
// would come out as the font's fallback box.
func drawable(r rune) bool {
	return r > ' ' && r <= '~'
}

// DataURI renders p and wraps it as a data:image/png;base64 URI.
func DataURI(p Params) (string, error) {
	raw, err := PNG(p)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
