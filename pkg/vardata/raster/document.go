// Package raster is an in-memory raster editing host for the vardata engine.
// Documents hold a stack of raster and text layers plus named vector paths;
// they can be duplicated, filled through path selections, flattened and
// exported as PNG, JPEG or PDF.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ukaji3/vardata-go/pkg/vardata"
	"github.com/ukaji3/vardata-go/pkg/vardata/models"
)

var (
	// ErrDestroyed is returned by every operation on a destroyed document.
	ErrDestroyed = errors.New("document has been destroyed")
	// ErrForeignElement is returned when a layer or path of another document
	// is passed to a document operation.
	ErrForeignElement = errors.New("element belongs to another document")
)

// Document is an editable raster document.
type Document struct {
	width, height int
	background    color.Color // nil: transparent
	layers        []*Layer    // top-most first
	paths         []*Path
	selection     *image.Alpha // nil: nothing selected
	destroyed     bool
}

var _ vardata.Document = (*Document)(nil)

// Size returns the canvas size in pixels.
func (d *Document) Size() (width, height int) {
	return d.width, d.height
}

// Layers lists every layer, top-most first.
func (d *Document) Layers() []vardata.Layer {
	out := make([]vardata.Layer, len(d.layers))
	for i, l := range d.layers {
		out[i] = l
	}
	return out
}

// Paths lists every path in template order.
func (d *Document) Paths() []vardata.Path {
	out := make([]vardata.Path, len(d.paths))
	for i, p := range d.paths {
		out[i] = p
	}
	return out
}

// Selection returns the active selection mask, or nil.
func (d *Document) Selection() *image.Alpha {
	return d.selection
}

// Destroyed reports whether the document has been released.
func (d *Document) Destroyed() bool {
	return d.destroyed
}

// SelectPath replaces the selection with the area enclosed by p.
func (d *Document) SelectPath(p vardata.Path) error {
	if d.destroyed {
		return ErrDestroyed
	}
	rp, ok := p.(*Path)
	if !ok || rp.doc != d {
		return ErrForeignElement
	}
	d.selection = rp.mask(d.width, d.height)
	return nil
}

// SelectNone clears the selection.
func (d *Document) SelectNone() {
	d.selection = nil
}

// FillSelection fills target inside the active selection, or the whole
// layer when nothing is selected.
func (d *Document) FillSelection(target vardata.Layer, paint vardata.PaintContext, src vardata.FillSource) error {
	if d.destroyed {
		return ErrDestroyed
	}
	l, ok := target.(*Layer)
	if !ok || l.doc != d {
		return ErrForeignElement
	}
	if l.IsText() {
		return fmt.Errorf("cannot fill a selection on text layer %q", l.name)
	}
	l.paint(paint.Color(src), paint, d.selection)
	return nil
}

// clone returns a deep copy with no selection.
func (d *Document) clone() *Document {
	c := &Document{
		width:      d.width,
		height:     d.height,
		background: d.background,
		layers:     make([]*Layer, len(d.layers)),
		paths:      make([]*Path, len(d.paths)),
	}
	for i, l := range d.layers {
		c.layers[i] = l.clone(c)
	}
	for i, p := range d.paths {
		c.paths[i] = p.clone(c)
	}
	return c
}

// release drops pixel buffers so a destroyed document holds no image memory.
func (d *Document) release() {
	for _, l := range d.layers {
		l.pixels = nil
		l.doc = nil
	}
	for _, p := range d.paths {
		p.doc = nil
	}
	d.layers = nil
	d.paths = nil
	d.selection = nil
	d.destroyed = true
}

// Layer is a raster or text layer.
type Layer struct {
	doc       *Document
	name      string
	kind      models.LayerType
	visible   bool
	opacity   float64
	bounds    image.Rectangle // canvas coordinates
	pixels    *image.RGBA     // raster layers; Rect equals bounds
	lockAlpha bool

	text      string
	textColor color.Color
	size      float64
	bold      bool
	align     string
}

var _ vardata.Layer = (*Layer)(nil)

func (l *Layer) Name() string { return l.name }

func (l *Layer) IsText() bool { return l.kind == models.LayerText }

// IsDrawable reports true: both raster and text layers take fills.
func (l *Layer) IsDrawable() bool { return true }

func (l *Layer) Visible() bool { return l.visible }

func (l *Layer) Bounds() image.Rectangle { return l.bounds }

func (l *Layer) Text() string { return l.text }

func (l *Layer) TextColor() color.Color { return l.textColor }

// Pixels returns the raster content, nil for text layers.
func (l *Layer) Pixels() *image.RGBA { return l.pixels }

func (l *Layer) SetVisible(visible bool) error {
	if l.doc == nil {
		return ErrDestroyed
	}
	l.visible = visible
	return nil
}

func (l *Layer) SetText(text string) error {
	if l.doc == nil {
		return ErrDestroyed
	}
	if !l.IsText() {
		return fmt.Errorf("layer %q is not a text layer", l.name)
	}
	l.text = text
	return nil
}

// Fill fills the whole layer. Text layers take the color as their text color.
func (l *Layer) Fill(paint vardata.PaintContext, src vardata.FillSource) error {
	if l.doc == nil {
		return ErrDestroyed
	}
	c := paint.Color(src)
	if l.IsText() {
		l.textColor = withOpacity(c, paint.Opacity)
		return nil
	}
	l.paint(c, paint, nil)
	return nil
}

// paint composites c over the layer, restricted to mask when non-nil.
// mask is in canvas coordinates.
func (l *Layer) paint(c color.Color, paint vardata.PaintContext, mask *image.Alpha) {
	if l.lockAlpha {
		l.paintLockAlpha(c, paint.Opacity, mask)
		return
	}

	src := image.NewUniform(withOpacity(c, paint.Opacity))
	op := draw.Over
	if paint.Mode == vardata.PaintReplace {
		op = draw.Src
	}
	if mask == nil {
		draw.Draw(l.pixels, l.bounds, src, image.Point{}, op)
		return
	}
	draw.DrawMask(l.pixels, l.bounds, src, image.Point{}, mask, l.bounds.Min, op)
}

// paintLockAlpha recolors existing pixels while keeping their alpha.
func (l *Layer) paintLockAlpha(c color.Color, opacity float64, mask *image.Alpha) {
	nc := withOpacity(c, opacity)
	k0 := float64(nc.A) / 255
	if k0 == 0 {
		return
	}

	b := l.pixels.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			k := k0
			if mask != nil {
				k *= float64(mask.AlphaAt(x, y).A) / 255
			}
			if k == 0 {
				continue
			}
			px := color.NRGBAModel.Convert(l.pixels.RGBAAt(x, y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			px.R = lerp(px.R, nc.R, k)
			px.G = lerp(px.G, nc.G, k)
			px.B = lerp(px.B, nc.B, k)
			l.pixels.Set(x, y, px)
		}
	}
}

func lerp(a, b uint8, k float64) uint8 {
	return uint8(float64(a)*(1-k) + float64(b)*k + 0.5)
}

func (l *Layer) clone(doc *Document) *Layer {
	c := *l
	c.doc = doc
	if l.pixels != nil {
		c.pixels = image.NewRGBA(l.pixels.Rect)
		copy(c.pixels.Pix, l.pixels.Pix)
	}
	return &c
}

// Path is a named set of closed polygons.
type Path struct {
	doc      *Document
	name     string
	polygons [][][2]float64
}

var _ vardata.Path = (*Path)(nil)

func (p *Path) Name() string { return p.name }

func (p *Path) clone(doc *Document) *Path {
	polys := make([][][2]float64, len(p.polygons))
	for i, poly := range p.polygons {
		polys[i] = append([][2]float64(nil), poly...)
	}
	return &Path{doc: doc, name: p.name, polygons: polys}
}
