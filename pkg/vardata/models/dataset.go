// Package models defines the template document and dataset structures.
package models

// Dataset is a fully materialized table. Rows[0] holds element names,
// Rows[1] property kinds, and the remaining rows hold data.
type Dataset struct {
	// Source is the file the rows were read from (for messages only).
	Source string `json:"source"`
	// Rows holds every row in file order.
	Rows [][]string `json:"rows"`
}

// DataRows returns the number of rows after the two header rows.
func (d *Dataset) DataRows() int {
	if len(d.Rows) < 2 {
		return 0
	}
	return len(d.Rows) - 2
}

// Width returns the cell count of the first row, or 0 for an empty dataset.
func (d *Dataset) Width() int {
	if len(d.Rows) == 0 {
		return 0
	}
	return len(d.Rows[0])
}
