// Package parser reads datasets (CSV, TSV, XLSX) and template documents (YAML).
package parser

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM wraps r and drops a leading UTF-8 byte order mark, which
// spreadsheet programs on Windows commonly write in front of CSV exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(head, utf8BOM) {
		// Discard cannot fail after a successful Peek of the same length.
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
