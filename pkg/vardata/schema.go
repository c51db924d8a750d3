package vardata

import (
	"fmt"
	"strings"
)

// PropertyKind is the operation a column applies to its element.
type PropertyKind int

const (
	KindVisibility PropertyKind = iota + 1
	KindForeground
	KindBackground
	KindText
)

var kindTokens = map[string]PropertyKind{
	"visibility": KindVisibility,
	"foreground": KindForeground,
	"background": KindBackground,
	"text":       KindText,
}

// ParsePropertyKind parses a property kind token. Matching ignores case and
// surrounding whitespace.
func ParsePropertyKind(token string) (PropertyKind, bool) {
	k, ok := kindTokens[strings.ToLower(strings.TrimSpace(token))]
	return k, ok
}

func (k PropertyKind) String() string {
	switch k {
	case KindVisibility:
		return "visibility"
	case KindForeground:
		return "foreground"
	case KindBackground:
		return "background"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("PropertyKind(%d)", int(k))
	}
}

// Column binds one dataset column to a template element.
type Column struct {
	Index int // 0-based position in each row
	Name  string
	Kind  PropertyKind
}

// Schema is the parsed pair of header rows.
type Schema struct {
	Version SchemaVersion
	Width   int // number of cells in every row
	Columns []Column
}

// ParseSchema reads the element-name and property-kind header rows.
// Any malformed column fails the whole schema.
func ParseSchema(names, kinds []string, version SchemaVersion) (*Schema, error) {
	if len(names) != len(kinds) {
		return nil, &SchemaError{
			Reason: fmt.Sprintf("header rows differ in width: %d names, %d kinds", len(names), len(kinds)),
		}
	}

	first := version.firstBoundColumn()
	if len(names) <= first {
		return nil, &SchemaError{Reason: "no bindable columns in header"}
	}

	s := &Schema{
		Version: version,
		Width:   len(names),
		Columns: make([]Column, 0, len(names)-first),
	}
	for i := first; i < len(names); i++ {
		name := strings.TrimSpace(names[i])
		if name == "" {
			return nil, &SchemaError{Col: i + 1, Token: names[i], Reason: "empty element name"}
		}
		kind, ok := ParsePropertyKind(kinds[i])
		if !ok {
			return nil, &SchemaError{Col: i + 1, Token: kinds[i], Reason: "unknown property kind"}
		}
		s.Columns = append(s.Columns, Column{Index: i, Name: name, Kind: kind})
	}

	return s, nil
}
