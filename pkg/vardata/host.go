package vardata

import "image/color"

// Host is the editing environment the engine drives. Implementations own
// document storage, rendering and file output.
type Host interface {
	// Duplicate returns an independent copy of tpl. Elements of the copy
	// never alias elements of tpl.
	Duplicate(tpl Document) (Document, error)
	// ParseColor parses a color in the host's syntax.
	ParseColor(spec string) (color.Color, error)
	// Export writes doc to path as a single file.
	Export(doc Document, path string) error
	// Destroy releases every resource held by doc.
	Destroy(doc Document) error
	// ReportProgress is called once per exported row with a fraction in [0, 1].
	ReportProgress(fraction float64, label string)
}

// CombinedExporter is implemented by hosts that can gather every generated
// variant into one multi-page file.
type CombinedExporter interface {
	BeginCombined(path string) (CombinedWriter, error)
}

// OutputChecker is implemented by hosts that can reject an output name,
// such as one with an unsupported extension, without touching a document.
type OutputChecker interface {
	CheckOutput(name string) error
}

// CombinedWriter accumulates pages. Add is called before the row's document
// is destroyed; Commit writes the file; Discard drops everything and is a
// no-op after Commit.
type CombinedWriter interface {
	Add(doc Document) error
	Commit() error
	Discard()
}

// ColorParser parses cell values for fill properties.
type ColorParser interface {
	ParseColor(spec string) (color.Color, error)
}

// Document is one editable document: the template or a duplicate of it.
type Document interface {
	// Layers lists every layer, top-most first.
	Layers() []Layer
	Paths() []Path
	// SelectPath replaces the active selection with the area enclosed by p.
	SelectPath(p Path) error
	// FillSelection fills target inside the active selection.
	FillSelection(target Layer, paint PaintContext, src FillSource) error
}

// Layer is a named layer of a document.
type Layer interface {
	Name() string
	IsText() bool
	IsDrawable() bool
	SetVisible(visible bool) error
	SetText(text string) error
	// Fill fills the whole layer. Text layers take the color as text color.
	Fill(paint PaintContext, src FillSource) error
}

// Path is a named vector path of a document.
type Path interface {
	Name() string
}

// ElementKind tags the variant held by an Element.
type ElementKind int

const (
	ElementLayer ElementKind = iota + 1
	ElementPath
)

func (k ElementKind) String() string {
	switch k {
	case ElementLayer:
		return "layer"
	case ElementPath:
		return "path"
	default:
		return "unknown"
	}
}

// Element is a resolved binding: exactly one of Layer or Path is set,
// according to Kind.
type Element struct {
	Kind  ElementKind
	Name  string
	Layer Layer
	Path  Path
}

// FillSource picks which paint context color a fill uses.
type FillSource int

const (
	FillForeground FillSource = iota
	FillBackground
)

// PaintMode is the blend mode used when filling.
type PaintMode int

const (
	// PaintNormal composites the fill over existing pixels.
	PaintNormal PaintMode = iota
	// PaintReplace overwrites existing pixels, alpha included.
	PaintReplace
)

// PaintContext carries the active colors and fill settings. The engine
// creates a fresh one for each row and passes it explicitly to every fill.
type PaintContext struct {
	Foreground color.Color
	Background color.Color
	Opacity    float64 // 0..1
	Mode       PaintMode
}

// DefaultPaintContext returns black on white at full opacity in normal mode.
func DefaultPaintContext() PaintContext {
	return PaintContext{
		Foreground: color.Black,
		Background: color.White,
		Opacity:    1,
		Mode:       PaintNormal,
	}
}

// Color returns the color selected by src.
func (p PaintContext) Color(src FillSource) color.Color {
	if src == FillBackground {
		return p.Background
	}
	return p.Foreground
}

// TopmostDrawable returns the first layer, in stacking order, that is
// drawable and not a text layer.
func TopmostDrawable(doc Document) (Layer, bool) {
	for _, l := range doc.Layers() {
		if l.IsDrawable() && !l.IsText() {
			return l, true
		}
	}
	return nil, false
}
