package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // template images
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/vardata-go/pkg/vardata"
	"github.com/ukaji3/vardata-go/pkg/vardata/models"
)

// Options configures a Host.
type Options struct {
	// JPEGQuality is used for .jpg/.jpeg exports (1-100, default 90).
	JPEGQuality int
	// DPI maps canvas pixels to PDF points (default 72).
	DPI float64
	// Logger receives progress lines (default slog.Default()).
	Logger *slog.Logger
	// OnProgress, when set, is called for every progress report.
	OnProgress func(fraction float64, label string)
}

// Host implements vardata.Host and vardata.CombinedExporter over in-memory
// raster documents.
type Host struct {
	opts  Options
	fonts *fontCache
	live  int
}

var (
	_ vardata.Host             = (*Host)(nil)
	_ vardata.CombinedExporter = (*Host)(nil)
)

// NewHost creates a host with its fonts loaded.
func NewHost(opts Options) (*Host, error) {
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 90
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fonts, err := newFontCache()
	if err != nil {
		return nil, err
	}
	return &Host{opts: opts, fonts: fonts}, nil
}

// Close releases cached font faces.
func (h *Host) Close() error {
	h.fonts.close()
	return nil
}

// Live returns the number of duplicates not yet destroyed.
func (h *Host) Live() int {
	return h.live
}

// Open builds a document from a template. Relative image paths resolve
// against baseDir.
func (h *Host) Open(tpl *models.Template, baseDir string) (*Document, error) {
	doc := &Document{width: tpl.Width, height: tpl.Height}

	if tpl.Background != "" {
		c, err := ParseColor(tpl.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		doc.background = c
	}

	for i, spec := range tpl.Layers {
		l, err := h.newLayer(doc, spec, baseDir)
		if err != nil {
			return nil, fmt.Errorf("layers[%d] %q: %w", i, spec.Name, err)
		}
		doc.layers = append(doc.layers, l)
	}

	for _, spec := range tpl.Paths {
		doc.paths = append(doc.paths, &Path{doc: doc, name: spec.Name, polygons: spec.Polygons()})
	}

	return doc, nil
}

func (h *Host) newLayer(doc *Document, spec models.Layer, baseDir string) (*Layer, error) {
	l := &Layer{
		doc:       doc,
		name:      spec.Name,
		kind:      spec.Type,
		visible:   !spec.Hidden,
		opacity:   1,
		lockAlpha: spec.LockAlpha,
		text:      spec.Text,
		size:      spec.Size,
		bold:      spec.Bold,
		align:     spec.Align,
	}
	if l.kind == "" {
		l.kind = models.LayerRaster
	}
	if spec.Opacity != nil {
		l.opacity = *spec.Opacity
	}

	var img image.Image
	if spec.Image != "" {
		var err error
		if img, err = loadImage(resolvePath(baseDir, spec.Image)); err != nil {
			return nil, err
		}
	}

	width, height := doc.width-spec.L, doc.height-spec.T
	if img != nil {
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	if spec.W != nil {
		width = *spec.W
	}
	if spec.H != nil {
		height = *spec.H
	}
	l.bounds = image.Rect(spec.L, spec.T, spec.L+max(width, 0), spec.T+max(height, 0))

	if l.IsText() {
		l.textColor = color.Black
		if spec.Color != "" {
			c, err := ParseColor(spec.Color)
			if err != nil {
				return nil, fmt.Errorf("color: %w", err)
			}
			l.textColor = c
		}
		return l, nil
	}

	l.pixels = image.NewRGBA(l.bounds)
	if spec.Fill != "" {
		c, err := ParseColor(spec.Fill)
		if err != nil {
			return nil, fmt.Errorf("fill: %w", err)
		}
		draw.Draw(l.pixels, l.bounds, image.NewUniform(c), image.Point{}, draw.Src)
	}
	if img != nil {
		draw.Draw(l.pixels, l.bounds, img, img.Bounds().Min, draw.Over)
	}
	return l, nil
}

// Duplicate returns a deep copy of a document created by this host.
func (h *Host) Duplicate(tpl vardata.Document) (vardata.Document, error) {
	d, ok := tpl.(*Document)
	if !ok {
		return nil, fmt.Errorf("unsupported document type %T", tpl)
	}
	if d.destroyed {
		return nil, ErrDestroyed
	}
	h.live++
	return d.clone(), nil
}

// Destroy releases a document. Destroying twice is an error.
func (h *Host) Destroy(doc vardata.Document) error {
	d, ok := doc.(*Document)
	if !ok {
		return fmt.Errorf("unsupported document type %T", doc)
	}
	if d.destroyed {
		return ErrDestroyed
	}
	d.release()
	h.live--
	return nil
}

// ParseColor parses a color value; see the package-level ParseColor.
func (h *Host) ParseColor(spec string) (color.Color, error) {
	return ParseColor(spec)
}

// ReportProgress logs the progress and forwards it to Options.OnProgress.
func (h *Host) ReportProgress(fraction float64, label string) {
	h.opts.Logger.Info("progress", "fraction", fraction, "label", label)
	if h.opts.OnProgress != nil {
		h.opts.OnProgress(fraction, label)
	}
}

// Flatten composites the visible layers, bottom to top, over the
// background.
func (h *Host) Flatten(doc *Document) (*image.RGBA, error) {
	if doc.destroyed {
		return nil, ErrDestroyed
	}

	canvas := image.NewRGBA(image.Rect(0, 0, doc.width, doc.height))
	if doc.background != nil {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(doc.background), image.Point{}, draw.Src)
	}

	for i := len(doc.layers) - 1; i >= 0; i-- {
		l := doc.layers[i]
		if !l.visible || l.opacity <= 0 {
			continue
		}

		src := l.pixels
		if l.IsText() {
			var err error
			if src, err = h.fonts.renderText(l); err != nil {
				return nil, fmt.Errorf("render text layer %q: %w", l.name, err)
			}
		}
		if l.opacity >= 1 {
			draw.Draw(canvas, l.bounds, src, l.bounds.Min, draw.Over)
			continue
		}
		mask := image.NewUniform(color.Alpha{A: uint8(l.opacity*255 + 0.5)})
		draw.DrawMask(canvas, l.bounds, src, l.bounds.Min, mask, image.Point{}, draw.Over)
	}

	return canvas, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
