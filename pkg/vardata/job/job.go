// Package job wires the file readers, the raster host and the batch engine
// into a single call used by the command line.
package job

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/vardata-go/internal/logging"
	"github.com/ukaji3/vardata-go/pkg/vardata"
	"github.com/ukaji3/vardata-go/pkg/vardata/parser"
	"github.com/ukaji3/vardata-go/pkg/vardata/raster"
)

// Job describes one batch: where the inputs are and how to render them.
type Job struct {
	TemplatePath string
	DatasetPath  string

	Batch   vardata.Options
	Dataset parser.DatasetOptions
	Raster  raster.Options
}

// Run loads the template and dataset, then generates every variant. The
// run id is assigned here so that every log line of the job carries it.
func Run(ctx context.Context, j Job) (*vardata.Result, error) {
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.FromContext(ctx)

	tpl, err := parser.LoadTemplate(j.TemplatePath)
	if err != nil {
		return nil, err
	}

	ds, err := parser.ReadDataset(j.DatasetPath, j.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Debug("inputs loaded",
		"template", j.TemplatePath,
		"dataset", ds.Source,
		"rows", ds.DataRows(),
	)

	if j.Raster.Logger == nil {
		j.Raster.Logger = logger
	}
	host, err := raster.NewHost(j.Raster)
	if err != nil {
		return nil, err
	}
	defer host.Close()

	doc, err := host.Open(tpl, filepath.Dir(j.TemplatePath))
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", j.TemplatePath, err)
	}

	res, err := vardata.Run(ctx, host, doc, ds, j.Batch)
	if live := host.Live(); live != 0 {
		logger.Warn("documents left open after batch", "count", live)
	}
	return res, err
}

// ElementInfo describes one bindable element of a template.
type ElementInfo struct {
	Name  string
	Kind  vardata.ElementKind
	Type  string // layer type; empty for paths
	Kinds []vardata.PropertyKind
}

// Inspect lists the elements of a template in resolution order, with the
// property kinds each accepts. Paths shadowed by a layer of the same name
// are omitted.
func Inspect(templatePath string) ([]ElementInfo, error) {
	tpl, err := parser.LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	host, err := raster.NewHost(raster.Options{})
	if err != nil {
		return nil, err
	}
	defer host.Close()

	doc, err := host.Open(tpl, filepath.Dir(templatePath))
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", templatePath, err)
	}

	_, hasDrawable := vardata.TopmostDrawable(doc)

	var out []ElementInfo
	layerNames := make(map[string]bool)
	for _, l := range doc.Layers() {
		layerNames[l.Name()] = true
		info := ElementInfo{Name: l.Name(), Kind: vardata.ElementLayer, Type: "raster"}
		if l.IsText() {
			info.Type = "text"
			info.Kinds = []vardata.PropertyKind{vardata.KindVisibility, vardata.KindForeground, vardata.KindBackground, vardata.KindText}
		} else {
			info.Kinds = []vardata.PropertyKind{vardata.KindVisibility, vardata.KindForeground, vardata.KindBackground}
		}
		out = append(out, info)
	}
	for _, p := range doc.Paths() {
		if layerNames[p.Name()] {
			continue
		}
		info := ElementInfo{Name: p.Name(), Kind: vardata.ElementPath}
		if hasDrawable {
			info.Kinds = []vardata.PropertyKind{vardata.KindForeground, vardata.KindBackground}
		}
		out = append(out, info)
	}
	return out, nil
}
