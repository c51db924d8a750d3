package raster

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.png", FormatPNG},
		{"a.PNG", FormatPNG},
		{"a.jpg", FormatJPEG},
		{"a.jpeg", FormatJPEG},
		{"a.pdf", FormatPDF},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFor("a.gif")
	assert.Error(t, err)
	_, err = FormatFor("noext")
	assert.Error(t, err)
}

func TestCheckOutput(t *testing.T) {
	h := newTestHost(t)

	assert.NoError(t, h.CheckOutput("card_1.png"))
	assert.NoError(t, h.CheckOutput("card_1.PDF"))
	assert.Error(t, h.CheckOutput("card_1.txt"))
	assert.Equal(t, 0, h.Live())
}

func TestExport(t *testing.T) {
	h := newTestHost(t)
	doc := openCard(t, h)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "card.png")
	require.NoError(t, h.Export(doc, pngPath))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	img, err := png.Decode(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())

	jpgPath := filepath.Join(dir, "card.jpg")
	require.NoError(t, h.Export(doc, jpgPath))
	data, err := os.ReadFile(jpgPath)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	pdfPath := filepath.Join(dir, "card.pdf")
	require.NoError(t, h.Export(doc, pdfPath))
	data, err = os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Error(t, h.Export(doc, filepath.Join(dir, "card.gif")))
	assert.NoFileExists(t, filepath.Join(dir, "card.gif"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary files are left behind")
}

func TestExport_MissingDirectory(t *testing.T) {
	h := newTestHost(t)
	doc := openCard(t, h)
	assert.Error(t, h.Export(doc, filepath.Join(t.TempDir(), "missing", "card.png")))
}

func TestCombined(t *testing.T) {
	h := newTestHost(t)
	tpl := openCard(t, h)
	path := filepath.Join(t.TempDir(), "all.pdf")

	w, err := h.BeginCombined(path)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		dup, err := h.Duplicate(tpl)
		require.NoError(t, err)
		require.NoError(t, w.Add(dup))
		require.NoError(t, h.Destroy(dup))
	}
	assert.NoFileExists(t, path, "nothing is written before commit")

	require.NoError(t, w.Commit())
	w.Discard()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Error(t, w.Commit(), "commit twice")
}

func TestCombined_Discard(t *testing.T) {
	h := newTestHost(t)
	doc := openCard(t, h)
	path := filepath.Join(t.TempDir(), "all.pdf")

	w, err := h.BeginCombined(path)
	require.NoError(t, err)
	require.NoError(t, w.Add(doc))
	w.Discard()

	assert.Error(t, w.Add(doc))
	assert.NoFileExists(t, path)
}

func TestCombined_Errors(t *testing.T) {
	h := newTestHost(t)

	_, err := h.BeginCombined(filepath.Join(t.TempDir(), "all.png"))
	assert.Error(t, err)

	w, err := h.BeginCombined(filepath.Join(t.TempDir(), "empty.pdf"))
	require.NoError(t, err)
	assert.Error(t, w.Commit(), "a combined document needs at least one page")
}

func TestPixelsToPoints(t *testing.T) {
	assert.InDelta(t, 72.0, PixelsToPoints(72, 72), 1e-9)
	assert.InDelta(t, 36.0, PixelsToPoints(150, 300), 1e-9)
	assert.InDelta(t, 100.0, PixelsToPoints(100, 0), 1e-9)
}
