package models

// LayerType is the kind of a template layer.
type LayerType string

const (
	LayerRaster LayerType = "raster"
	LayerText   LayerType = "text"
)

// Template describes a template document: a canvas with a stack of layers
// and a set of named vector paths.
type Template struct {
	// Width is the canvas width in pixels.
	Width int `yaml:"width" json:"width"`
	// Height is the canvas height in pixels.
	Height int `yaml:"height" json:"height"`
	// Background is the canvas color under every layer (empty: transparent).
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	// Layers is the layer stack, top-most first.
	Layers []Layer `yaml:"layers" json:"layers"`
	// Paths lists named vector paths.
	Paths []Path `yaml:"paths,omitempty" json:"paths,omitempty"`
}

// Layer represents one layer including position, size, content and styling.
type Layer struct {
	// Name is the element name datasets bind to.
	Name string `yaml:"name" json:"name"`
	// Type is raster or text (default raster).
	Type LayerType `yaml:"type,omitempty" json:"type,omitempty"`
	// L is the left offset in pixels.
	L int `yaml:"l" json:"l"`
	// T is the top offset in pixels.
	T int `yaml:"t" json:"t"`
	// W is the layer width in pixels (nil: extends to the canvas edge).
	W *int `yaml:"w,omitempty" json:"w,omitempty"`
	// H is the layer height in pixels (nil: extends to the canvas edge).
	H *int `yaml:"h,omitempty" json:"h,omitempty"`
	// Hidden starts the layer invisible.
	Hidden bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	// Opacity is the layer opacity in [0, 1] (nil: 1).
	Opacity *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`

	// Fill is the initial color of a raster layer.
	Fill string `yaml:"fill,omitempty" json:"fill,omitempty"`
	// Image is a PNG or JPEG drawn into a raster layer, relative to the template file.
	Image string `yaml:"image,omitempty" json:"image,omitempty"`
	// LockAlpha keeps existing transparency when the layer is filled.
	LockAlpha bool `yaml:"lock_alpha,omitempty" json:"lock_alpha,omitempty"`

	// Text is the initial content of a text layer.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	// Color is the text color.
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
	// Size is the font size in points.
	Size float64 `yaml:"size,omitempty" json:"size,omitempty"`
	// Bold selects the bold face.
	Bold bool `yaml:"bold,omitempty" json:"bold,omitempty"`
	// Align is left, center or right.
	Align string `yaml:"align,omitempty" json:"align,omitempty"`
}

// Path represents a named closed polygon. Multiple subpaths are allowed;
// filling uses the non-zero winding rule.
type Path struct {
	Name string `yaml:"name" json:"name"`
	// Points is a single closed polygon, as [x, y] pairs.
	Points [][2]float64 `yaml:"points,omitempty" json:"points,omitempty"`
	// Subpaths holds additional closed polygons.
	Subpaths [][][2]float64 `yaml:"subpaths,omitempty" json:"subpaths,omitempty"`
}

// Polygons returns every closed polygon of the path.
func (p Path) Polygons() [][][2]float64 {
	var out [][][2]float64
	if len(p.Points) > 0 {
		out = append(out, p.Points)
	}
	for _, sp := range p.Subpaths {
		if len(sp) > 0 {
			out = append(out, sp)
		}
	}
	return out
}

// IsText reports whether the layer holds text.
func (l Layer) IsText() bool {
	return l.Type == LayerText
}
