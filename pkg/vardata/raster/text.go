package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultTextSize is the font size of text layers that set none.
const DefaultTextSize = 16

type faceKey struct {
	bold bool
	size float64
}

// fontCache holds parsed Go fonts and the faces built from them. Faces are
// not safe for concurrent use; the host is single-threaded.
type fontCache struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

func newFontCache() (*fontCache, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &fontCache{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (c *fontCache) face(bold bool, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultTextSize
	}
	key := faceKey{bold: bold, size: size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	src := c.regular
	if bold {
		src = c.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[key] = f
	return f, nil
}

func (c *fontCache) close() {
	for k, f := range c.faces {
		f.Close()
		delete(c.faces, k)
	}
}

// renderText draws the layer text into a transparent image covering the
// layer bounds. Lines are split on '\n'; glyphs outside the bounds are
// clipped.
func (c *fontCache) renderText(l *Layer) (*image.RGBA, error) {
	dst := image.NewRGBA(l.bounds)
	if l.text == "" {
		return dst, nil
	}

	face, err := c.face(l.bold, l.size)
	if err != nil {
		return nil, err
	}

	col := l.textColor
	if col == nil {
		col = color.Black
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}

	metrics := face.Metrics()
	y := fixed.I(l.bounds.Min.Y) + metrics.Ascent
	for _, line := range strings.Split(l.text, "\n") {
		width := d.MeasureString(line)
		x := fixed.I(l.bounds.Min.X)
		switch l.align {
		case "center":
			x += (fixed.I(l.bounds.Dx()) - width) / 2
		case "right":
			x = fixed.I(l.bounds.Max.X) - width
		}
		d.Dot = fixed.Point26_6{X: x, Y: y}
		d.DrawString(line)
		y += metrics.Height
	}

	return dst, nil
}
