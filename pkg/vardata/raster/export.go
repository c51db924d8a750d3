package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ukaji3/vardata-go/pkg/vardata"
)

// Format is an export file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// FormatFor picks the export format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use .png, .jpg or .pdf)", filepath.Ext(path))
	}
}

// CheckOutput rejects names whose extension maps to no export format.
func (h *Host) CheckOutput(name string) error {
	_, err := FormatFor(name)
	return err
}

// Export flattens doc and writes it to path in the format chosen by the
// extension. The file appears only once fully written.
func (h *Host) Export(doc vardata.Document, path string) error {
	d, ok := doc.(*Document)
	if !ok {
		return fmt.Errorf("unsupported document type %T", doc)
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	img, err := h.Flatten(d)
	if err != nil {
		return err
	}

	return writeAtomic(path, func(w io.Writer) error {
		switch format {
		case FormatPNG:
			return png.Encode(w, img)
		case FormatJPEG:
			return jpeg.Encode(w, opaque(img), &jpeg.Options{Quality: h.opts.JPEGQuality})
		default:
			pw := newPDFWriter(h.opts.DPI)
			if err := pw.AddImage(img); err != nil {
				return err
			}
			return pw.Output(w)
		}
	})
}

// BeginCombined starts a multi-page PDF at path. Each added document
// becomes one page sized to its canvas.
func (h *Host) BeginCombined(path string) (vardata.CombinedWriter, error) {
	if format, err := FormatFor(path); err != nil || format != FormatPDF {
		return nil, fmt.Errorf("combined output %q must be a .pdf file", filepath.Base(path))
	}
	return &combinedPDF{host: h, path: path, pdf: newPDFWriter(h.opts.DPI)}, nil
}

type combinedPDF struct {
	host *Host
	path string
	pdf  *pdfWriter
	done bool
}

func (c *combinedPDF) Add(doc vardata.Document) error {
	if c.done {
		return fmt.Errorf("combined document already finished")
	}
	d, ok := doc.(*Document)
	if !ok {
		return fmt.Errorf("unsupported document type %T", doc)
	}
	img, err := c.host.Flatten(d)
	if err != nil {
		return err
	}
	return c.pdf.AddImage(img)
}

func (c *combinedPDF) Commit() error {
	if c.done {
		return fmt.Errorf("combined document already finished")
	}
	c.done = true
	return writeAtomic(c.path, c.pdf.Output)
}

func (c *combinedPDF) Discard() {
	c.done = true
	c.pdf = nil
}

// pdfWriter is an append-only PDF writer that places one image per page.
type pdfWriter struct {
	pdf   *fpdf.Fpdf
	dpi   float64
	pages int
}

func newPDFWriter(dpi float64) *pdfWriter {
	pdf := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt", SizeStr: "A4"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("vardata", true)
	return &pdfWriter{pdf: pdf, dpi: dpi}
}

// AddImage appends a page the size of img.
func (w *pdfWriter) AddImage(img image.Image) error {
	b := img.Bounds()
	wPt := PixelsToPoints(b.Dx(), w.dpi)
	hPt := PixelsToPoints(b.Dy(), w.dpi)

	var buf bytes.Buffer
	if err := png.Encode(&buf, opaque(img)); err != nil {
		return err
	}

	w.pdf.AddPageFormat("P", fpdf.SizeType{Wd: wPt, Ht: hPt})
	name := fmt.Sprintf("page-%d", w.pages)
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opt, &buf)
	w.pdf.ImageOptions(name, 0, 0, wPt, hPt, false, opt, 0, "")
	w.pages++
	return w.pdf.Error()
}

// Output writes the finished document.
func (w *pdfWriter) Output(out io.Writer) error {
	if w.pages == 0 {
		return fmt.Errorf("pdf has no pages")
	}
	return w.pdf.Output(out)
}

// opaque composites img over white.
func opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// writeAtomic writes through a temporary file in the target directory and
// renames it into place.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
