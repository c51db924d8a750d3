package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/vardata-go/pkg/vardata/models"
)

// DatasetOptions configures ReadDataset.
type DatasetOptions struct {
	// Delimiter overrides the field separator of delimited files.
	// Zero picks one from the extension: tab for .tsv, comma otherwise.
	Delimiter rune
	// XLSX selects the sheet and range of workbook datasets.
	XLSX XLSXOptions
}

// ReadDataset reads a dataset file, choosing the reader by extension:
// .xlsx/.xlsm are read as workbooks, everything else as delimited text.
func ReadDataset(path string, opts DatasetOptions) (*models.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts.XLSX)
	case ".tsv", ".tab":
		d := opts.Delimiter
		if d == 0 {
			d = '\t'
		}
		return ReadCSV(path, d)
	default:
		return ReadCSV(path, opts.Delimiter)
	}
}

// ParseDelimiter converts a configuration value to a delimiter rune. It
// accepts a single character or the names "tab", "comma" and "semicolon".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
