package vardata

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
)

// fakeHost records every capability call. Documents are fakeDoc values;
// Export writes a small marker file so tests can check what reached disk.
type fakeHost struct {
	calls     []string
	live      int
	destroyed int
	progress  []string

	failExport map[int]bool // 1-based export call number
	combined   *fakeCombined
	exports    int
}

type fakeHostCombined struct {
	*fakeHost
}

func (h *fakeHostCombined) BeginCombined(path string) (CombinedWriter, error) {
	h.combined = &fakeCombined{path: path}
	h.calls = append(h.calls, "begin-combined "+path)
	return h.combined, nil
}

// fakeHostChecked accepts only .png and .pdf output names.
type fakeHostChecked struct {
	*fakeHost
}

func (h *fakeHostChecked) CheckOutput(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".pdf":
		return nil
	}
	return fmt.Errorf("unsupported format %q", filepath.Ext(name))
}

func (h *fakeHost) Duplicate(tpl Document) (Document, error) {
	d := tpl.(*fakeDoc)
	h.live++
	h.calls = append(h.calls, "duplicate")
	return d.clone(), nil
}

func (h *fakeHost) ParseColor(spec string) (color.Color, error) {
	switch strings.ToLower(spec) {
	case "red":
		return color.RGBA{R: 255, A: 255}, nil
	case "blue":
		return color.RGBA{B: 255, A: 255}, nil
	case "green":
		return color.RGBA{G: 255, A: 255}, nil
	}
	return nil, fmt.Errorf("unknown color %q", spec)
}

func (h *fakeHost) Export(doc Document, path string) error {
	h.exports++
	h.calls = append(h.calls, "export "+path)
	if h.failExport[h.exports] {
		return errors.New("disk full")
	}
	return os.WriteFile(path, []byte(doc.(*fakeDoc).describe()), 0o644)
}

func (h *fakeHost) Destroy(doc Document) error {
	d := doc.(*fakeDoc)
	if d.destroyed {
		return errors.New("already destroyed")
	}
	d.destroyed = true
	h.live--
	h.destroyed++
	h.calls = append(h.calls, "destroy")
	return nil
}

func (h *fakeHost) ReportProgress(fraction float64, label string) {
	h.progress = append(h.progress, label)
}

type fakeCombined struct {
	path      string
	pages     []string
	committed bool
	discarded bool
}

func (c *fakeCombined) Add(doc Document) error {
	c.pages = append(c.pages, doc.(*fakeDoc).describe())
	return nil
}

func (c *fakeCombined) Commit() error {
	c.committed = true
	return os.WriteFile(c.path, []byte(strings.Join(c.pages, "\n---\n")), 0o644)
}

func (c *fakeCombined) Discard() {
	if !c.committed {
		c.discarded = true
	}
}

type fakeDoc struct {
	layers    []*fakeLayer
	paths     []*fakePath
	selection Path
	fills     []string
	destroyed bool
}

func newFakeDoc() *fakeDoc { return &fakeDoc{} }

func (d *fakeDoc) addLayer(name string, text bool) *fakeDoc {
	d.layers = append(d.layers, &fakeLayer{name: name, text: text, drawable: true, visible: true})
	return d
}

func (d *fakeDoc) addPath(name string) *fakeDoc {
	d.paths = append(d.paths, &fakePath{name: name})
	return d
}

func (d *fakeDoc) Layers() []Layer {
	out := make([]Layer, len(d.layers))
	for i, l := range d.layers {
		out[i] = l
	}
	return out
}

func (d *fakeDoc) Paths() []Path {
	out := make([]Path, len(d.paths))
	for i, p := range d.paths {
		out[i] = p
	}
	return out
}

func (d *fakeDoc) SelectPath(p Path) error {
	d.selection = p
	return nil
}

func (d *fakeDoc) FillSelection(target Layer, paint PaintContext, src FillSource) error {
	sel := "<none>"
	if d.selection != nil {
		sel = d.selection.Name()
	}
	d.fills = append(d.fills, fmt.Sprintf("%s@%s=%v", target.Name(), sel, paint.Color(src)))
	return nil
}

func (d *fakeDoc) layer(name string) *fakeLayer {
	for _, l := range d.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (d *fakeDoc) clone() *fakeDoc {
	c := &fakeDoc{}
	for _, l := range d.layers {
		cp := *l
		c.layers = append(c.layers, &cp)
	}
	for _, p := range d.paths {
		cp := *p
		c.paths = append(c.paths, &cp)
	}
	c.fills = append(c.fills, d.fills...)
	return c
}

func (d *fakeDoc) describe() string {
	var b strings.Builder
	for _, l := range d.layers {
		fmt.Fprintf(&b, "%s visible=%v text=%q fill=%v\n", l.name, l.visible, l.content, l.fill)
	}
	for _, f := range d.fills {
		fmt.Fprintf(&b, "fill %s\n", f)
	}
	return b.String()
}

type fakeLayer struct {
	name     string
	text     bool
	drawable bool
	visible  bool
	content  string
	fill     color.Color
}

func (l *fakeLayer) Name() string     { return l.name }
func (l *fakeLayer) IsText() bool     { return l.text }
func (l *fakeLayer) IsDrawable() bool { return l.drawable }

func (l *fakeLayer) SetVisible(v bool) error {
	l.visible = v
	return nil
}

func (l *fakeLayer) SetText(s string) error {
	l.content = s
	return nil
}

func (l *fakeLayer) Fill(paint PaintContext, src FillSource) error {
	l.fill = paint.Color(src)
	return nil
}

type fakePath struct {
	name string
}

func (p *fakePath) Name() string { return p.name }
