package vardata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/vardata-go/internal/logging"
	"github.com/ukaji3/vardata-go/pkg/vardata/models"
)

// headerRows is the number of leading dataset rows holding the schema.
const headerRows = 2

var errCombinedUnsupported = errors.New("host cannot write combined documents")

// Result describes a completed batch.
type Result struct {
	RunID    string
	Rows     int
	Files    []string // exported paths in row order
	Combined string   // combined document path, empty when disabled
	Duration time.Duration
}

// batch holds the state of one run.
type batch struct {
	host     Host
	template Document
	schema   *Schema
	opts     Options
	combined CombinedWriter
	total    int
}

// Run generates one document per data row of ds from template.
//
// Rows are processed strictly in order. Any error aborts the run: files
// exported for earlier rows stay on disk, the combined document is not
// written. ctx is checked between rows only; a row in progress always
// completes or fails on its own. A run id already carried by ctx is kept;
// otherwise a new one is assigned.
func Run(ctx context.Context, host Host, template Document, ds *models.Dataset, opts Options) (*Result, error) {
	start := time.Now()
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.FromContext(ctx)

	if err := checkOutputDir(opts.OutputDir); err != nil {
		return nil, err
	}
	if _, ok := TopmostDrawable(template); !ok {
		return nil, &PreconditionError{Kind: ErrTemplate, Detail: "template has no drawable non-text layer"}
	}
	if ds == nil || len(ds.Rows) < headerRows {
		return nil, &SchemaError{Reason: "dataset needs an element-name row and a property-kind row"}
	}

	schema, err := ParseSchema(ds.Rows[0], ds.Rows[1], opts.schema())
	if err != nil {
		return nil, err
	}

	b := &batch{
		host:     host,
		template: template,
		schema:   schema,
		opts:     opts,
		total:    ds.DataRows(),
	}

	if err := b.checkOutputs(ds.Rows[headerRows:]); err != nil {
		return nil, err
	}

	result := &Result{RunID: runID}
	if opts.CombinedFilename != "" {
		path, err := b.beginCombined()
		if err != nil {
			return nil, err
		}
		defer b.combined.Discard()
		result.Combined = path
	}

	logger.Info("batch started",
		"source", ds.Source,
		"rows", b.total,
		"columns", ds.Width(),
		"bound", len(schema.Columns),
		"schema", schema.Version,
	)

	for i, row := range ds.Rows[headerRows:] {
		r := i + 1
		if err := ctx.Err(); err != nil {
			return nil, &RowError{Row: r, Err: fmt.Errorf("batch cancelled: %w", err)}
		}

		path, err := b.processRow(ctx, r, row)
		if err != nil {
			logger.Error("batch aborted", "row", r, "error", err)
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	if b.combined != nil {
		if b.total == 0 {
			logger.Warn("no data rows, combined document not written", "path", result.Combined)
			result.Combined = ""
		} else if err := b.combined.Commit(); err != nil {
			return nil, NewHostError("export combined", err)
		}
	}

	result.Rows = b.total
	result.Duration = time.Since(start)
	logger.Info("batch completed", "rows", result.Rows, "duration", result.Duration)
	return result, nil
}

// processRow runs the duplicate → mutate → export → destroy lifecycle for
// one data row. The duplicate is destroyed on every return path.
func (b *batch) processRow(ctx context.Context, r int, row []string) (path string, err error) {
	logger := logging.WithFields(ctx, "row", r)

	if len(row) != b.schema.Width {
		return "", &RowError{Row: r, Err: &SchemaError{
			Reason: fmt.Sprintf("row has %d cells, header has %d", len(row), b.schema.Width),
		}}
	}

	name, err := FormatFilename(b.filenameTemplateFor(row), r)
	if err != nil {
		return "", &RowError{Row: r, Err: err}
	}
	path = filepath.Join(b.opts.OutputDir, name)

	logger.Debug("row started", "file", name)

	doc, err := b.host.Duplicate(b.template)
	if err != nil {
		return "", &RowError{Row: r, Err: NewHostError("duplicate", err)}
	}
	defer func() {
		if derr := b.host.Destroy(doc); derr != nil && err == nil {
			path, err = "", &RowError{Row: r, Err: NewHostError("destroy", derr)}
		}
	}()

	resolver := NewResolver(doc)
	paint := DefaultPaintContext()
	for _, col := range b.schema.Columns {
		value := row[col.Index]
		el, err := resolver.Resolve(col.Name)
		if err != nil {
			return "", NewCellError(r, col.Index+1, col.Name, value, err)
		}
		if err := Apply(doc, el, col.Kind, value, &paint, b.host); err != nil {
			return "", NewCellError(r, col.Index+1, col.Name, value, err)
		}
	}

	if err := b.host.Export(doc, path); err != nil {
		return "", &RowError{Row: r, Err: NewHostError("export", err)}
	}
	if b.combined != nil {
		if err := b.combined.Add(doc); err != nil {
			return "", &RowError{Row: r, Err: NewHostError("add combined page", err)}
		}
	}

	b.host.ReportProgress(float64(r)/float64(b.total), fmt.Sprintf("%d of %d", r, b.total))
	logger.Info("row exported", "path", path)
	return path, nil
}

// filenameTemplateFor returns the legacy per-row name from column 0 when
// present, else the configured template.
func (b *batch) filenameTemplateFor(row []string) string {
	if b.schema.Version == SchemaLegacy && len(row) > 0 {
		if name := strings.TrimSpace(row[0]); name != "" {
			return name
		}
	}
	return b.opts.filenameTemplate()
}

// checkOutputs vets the output name of every row before any document work:
// the host must accept it and it must differ from the combined name. Names
// that fail to format are left for their row to report.
func (b *batch) checkOutputs(rows [][]string) error {
	checker, _ := b.host.(OutputChecker)
	for i, row := range rows {
		r := i + 1
		name, err := FormatFilename(b.filenameTemplateFor(row), r)
		if err != nil {
			continue
		}
		if checker != nil {
			if err := checker.CheckOutput(name); err != nil {
				return &RowError{Row: r, Err: &FilenameError{Name: name, Reason: err.Error()}}
			}
		}
		if b.opts.CombinedFilename != "" && strings.EqualFold(name, b.opts.CombinedFilename) {
			return &RowError{Row: r, Err: &FilenameError{Name: name, Reason: "same name as the combined output"}}
		}
	}
	return nil
}

func (b *batch) beginCombined() (string, error) {
	if err := ValidateFilename(b.opts.CombinedFilename); err != nil {
		return "", err
	}
	exporter, ok := b.host.(CombinedExporter)
	if !ok {
		return "", NewHostError("begin combined", errCombinedUnsupported)
	}
	path := filepath.Join(b.opts.OutputDir, b.opts.CombinedFilename)
	w, err := exporter.BeginCombined(path)
	if err != nil {
		return "", NewHostError("begin combined", err)
	}
	b.combined = w
	return path, nil
}

func checkOutputDir(dir string) error {
	if dir == "" {
		return &PreconditionError{Kind: ErrOutputDir, Detail: "no output directory given"}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return &PreconditionError{Kind: ErrOutputDir, Detail: dir, Err: err}
	}
	if !info.IsDir() {
		return &PreconditionError{Kind: ErrOutputDir, Detail: dir + " is not a directory"}
	}
	return nil
}
