// Package vardata generates a family of documents from one template document
// and a tabular dataset. Each data row yields one variant whose named layers
// and paths are populated from the row's cells.
package vardata

import (
	"fmt"
	"strings"
)

// SchemaVersion selects how column 0 of the dataset is interpreted.
type SchemaVersion string

const (
	// SchemaCurrent binds every column, column 0 included.
	SchemaCurrent SchemaVersion = "current"
	// SchemaLegacy reserves column 0. Its header cells are ignored and a
	// non-empty data cell replaces the filename template for that row.
	SchemaLegacy SchemaVersion = "legacy"
)

// ParseSchemaVersion converts a configuration string to a SchemaVersion.
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SchemaCurrent):
		return SchemaCurrent, nil
	case string(SchemaLegacy):
		return SchemaLegacy, nil
	default:
		return "", fmt.Errorf("invalid schema version: %s (must be current or legacy)", s)
	}
}

// firstBoundColumn returns the 0-based index of the first column that maps
// to a template element.
func (v SchemaVersion) firstBoundColumn() int {
	if v == SchemaLegacy {
		return 1
	}
	return 0
}

// DefaultFilenameTemplate is used when Options.FilenameTemplate is empty.
const DefaultFilenameTemplate = "variant_$n.pdf"

// Options configures a batch run.
type Options struct {
	// OutputDir receives every exported file. It must already exist.
	OutputDir string
	// FilenameTemplate names each export; "$n" expands to the 1-based data row.
	FilenameTemplate string
	// CombinedFilename, when set, names a multi-page document written into
	// OutputDir after the last row. The host must implement CombinedExporter.
	CombinedFilename string
	// Schema selects column 0 semantics. Empty means SchemaCurrent.
	Schema SchemaVersion
}

// DefaultOptions returns default batch options.
func DefaultOptions() Options {
	return Options{
		FilenameTemplate: DefaultFilenameTemplate,
		Schema:           SchemaCurrent,
	}
}

// filenameTemplate returns the configured template or the default.
func (o Options) filenameTemplate() string {
	if o.FilenameTemplate != "" {
		return o.FilenameTemplate
	}
	return DefaultFilenameTemplate
}

// schema returns the configured schema version or SchemaCurrent.
func (o Options) schema() SchemaVersion {
	if o.Schema != "" {
		return o.Schema
	}
	return SchemaCurrent
}
