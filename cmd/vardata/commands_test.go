package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/vardata-go/internal/config"
	"github.com/ukaji3/vardata-go/pkg/vardata"
)

const cardTemplate = `
width: 20
height: 10
background: white
layers:
  - name: Title
    type: text
    size: 6
  - name: Badge
    fill: "#00ff00"
paths:
  - name: Frame
    points: [[0, 0], [5, 0], [5, 5], [0, 5]]
`

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd(loadConfig(t))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildJob(t *testing.T) {
	cfg := loadConfig(t)

	j, err := buildJob(cfg, &batchFlags{
		outputDir: "out",
		filename:  "card_$n.jpg",
		schema:    "legacy",
		delimiter: "semicolon",
		sheet:     "Data",
		cellRange: "Cards",
	}, "card.yaml", "data.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "card.yaml", j.TemplatePath)
	assert.Equal(t, "data.xlsx", j.DatasetPath)
	assert.Equal(t, vardata.SchemaLegacy, j.Batch.Schema)
	assert.Equal(t, "card_$n.jpg", j.Batch.FilenameTemplate)
	assert.Equal(t, ';', j.Dataset.Delimiter)
	assert.Equal(t, "Cards", j.Dataset.XLSX.Range)
	assert.Equal(t, cfg.Export.JPEGQuality, j.Raster.JPEGQuality)
	assert.Equal(t, float64(cfg.Export.DPI), j.Raster.DPI)

	_, err = buildJob(cfg, &batchFlags{schema: "v9"}, "a", "b")
	assert.Error(t, err)

	_, err = buildJob(cfg, &batchFlags{delimiter: "||"}, "a", "b")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vardata version "+version)
}

func TestRootCmd_Generates(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "card.yaml")
	data := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(tpl, []byte(cardTemplate), 0o644))
	require.NoError(t, os.WriteFile(data, []byte("Title,Badge,Frame\ntext,visibility,foreground\nA,true,red\nB,false,blue\n"), 0o644))

	out, err := execCmd(t, tpl, data, "-o", dir, "-f", "card_$n.png", "--combined", "all.pdf")
	require.NoError(t, err)

	assert.Contains(t, out, "Generated 2 file(s)")
	assert.FileExists(t, filepath.Join(dir, "card_1.png"))
	assert.FileExists(t, filepath.Join(dir, "card_2.png"))
	assert.FileExists(t, filepath.Join(dir, "all.pdf"))
}

func TestRootCmd_Errors(t *testing.T) {
	_, err := execCmd(t, "only-one-arg")
	assert.Error(t, err)

	dir := t.TempDir()
	_, err = execCmd(t, filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.csv"), "-o", dir)
	assert.Error(t, err)
}

func TestInspectCmd(t *testing.T) {
	tpl := filepath.Join(t.TempDir(), "card.yaml")
	require.NoError(t, os.WriteFile(tpl, []byte(cardTemplate), 0o644))

	out, err := execCmd(t, "inspect", tpl)
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "visibility,foreground,background,text")
	assert.Contains(t, out, "Frame")
	assert.Contains(t, out, "foreground,background")
}
