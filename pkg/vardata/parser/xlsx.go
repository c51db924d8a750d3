package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/vardata-go/pkg/vardata/models"
	"github.com/xuri/excelize/v2"
)

// XLSXOptions selects the part of a workbook holding the dataset.
type XLSXOptions struct {
	// Sheet is the worksheet name (default: first sheet).
	Sheet string
	// Range is an A1:D10 style reference or the name of a workbook-level
	// defined name. A sheet part, given or resolved, takes precedence over
	// Sheet. Empty means the data bounds.
	Range string
}

// ReadXLSX reads a dataset from a worksheet. Without an explicit range the
// rows are cropped to the bounding box of non-empty cells, so leading blank
// rows and columns are ignored. Every row is padded to the same width.
func ReadXLSX(path string, opts XLSXOptions) (*models.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	var area *models.CellRange
	if opts.Range != "" {
		ref, err := resolveDefinedName(f, opts.Range)
		if err != nil {
			return nil, err
		}
		rangeSheet, r, err := ParseRangeReference(ref)
		if err != nil {
			return nil, err
		}
		if rangeSheet != "" {
			sheet = rangeSheet
		}
		area = &r
	}
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
		if list := f.GetSheetList(); sheet == "" && len(list) > 0 {
			sheet = list[0]
		}
	}

	rows, err := ExtractRows(f, sheet, area)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}

	return &models.Dataset{Source: path + "#" + sheet, Rows: rows}, nil
}

// ExtractRows returns the string cells of sheet restricted to area, or to
// the data bounds when area is nil.
func ExtractRows(f *excelize.File, sheetName string, area *models.CellRange) ([][]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	if area == nil {
		minRow, maxRow, minCol, maxCol := findDataBounds(rows)
		if minRow < 0 {
			return nil, nil
		}
		// 0-based bounds to 1-based range
		area = &models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}
	}

	var result [][]string
	for rowNum := area.R1; rowNum <= area.R2 && rowNum <= len(rows); rowNum++ {
		src := rows[rowNum-1]
		out := make([]string, area.Width())
		for colNum := area.C1; colNum <= area.C2 && colNum <= len(src); colNum++ {
			out[colNum-area.C1] = src[colNum-1]
		}
		result = append(result, out)
	}

	return result, nil
}

// findDataBounds finds the bounding box of non-empty cells (0-based).
// All bounds are -1 when every cell is empty.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// resolveDefinedName returns the reference a defined name refers to, or ref
// itself when it already is a cell range.
func resolveDefinedName(f *excelize.File, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, ":") {
		return ref, nil
	}

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, ref) {
			continue
		}
		refersTo := strings.TrimPrefix(strings.TrimSpace(dn.RefersTo), "=")
		if strings.Contains(refersTo, ",") {
			return "", fmt.Errorf("defined name %q refers to more than one area", ref)
		}
		return refersTo, nil
	}

	return "", fmt.Errorf("range %q is neither a cell range nor a defined name", ref)
}
