package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/vardata-go/pkg/vardata/models"
	"github.com/xuri/excelize/v2"
)

// ParseRangeReference parses a range reference with an optional sheet part.
// Accepted forms: A1:D10, $A$1:$D$10, Sheet1!A1:D10, 'My Sheet'!$A$1:$D$10.
// The returned sheet name is empty when the reference has no sheet part.
func ParseRangeReference(ref string) (string, models.CellRange, error) {
	ref = strings.TrimSpace(ref)

	var sheet string
	rangeStr := ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		rangeStr = ref[idx+1:]
	}

	area, err := parseRangeToArea(rangeStr)
	if err != nil {
		return "", models.CellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	return sheet, area, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10 into a CellRange.
// Corners may be given in any order.
func parseRangeToArea(rangeStr string) (models.CellRange, error) {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return models.CellRange{}, fmt.Errorf("expected two corners separated by ':'")
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.CellRange{}, err
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.CellRange{}, err
	}

	return models.CellRange{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}, nil
}
