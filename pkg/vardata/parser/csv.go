package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/vardata-go/pkg/vardata/models"
)

// ReadCSV reads a delimited text dataset. Records may differ in width;
// width checks happen when the batch binds the schema so the error can
// name the offending data row.
func ReadCSV(path string, delimiter rune) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readDelimited(f, delimiter)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &models.Dataset{Source: path, Rows: rows}, nil
}

func readDelimited(r io.Reader, delimiter rune) ([][]string, error) {
	cr := csv.NewReader(skipBOM(r))
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}
