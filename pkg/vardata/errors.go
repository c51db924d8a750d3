package vardata

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying each failure kind. Every typed error below
// matches exactly one of them through errors.Is, including when wrapped in
// CellError or RowError.
var (
	// ErrSchema indicates a malformed header row or property kind token.
	ErrSchema = errors.New("schema error")
	// ErrBinding indicates an element name that matches no layer or path.
	ErrBinding = errors.New("binding error")
	// ErrTypeMismatch indicates a property kind the resolved element cannot take.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrValue indicates a cell value that cannot be parsed for its kind.
	ErrValue = errors.New("invalid value")
	// ErrInvalidFilename indicates a formatted output name that breaks file naming rules.
	ErrInvalidFilename = errors.New("invalid filename")
	// ErrOutputDir indicates a missing or non-directory output location.
	ErrOutputDir = errors.New("output directory error")
	// ErrTemplate indicates a template document that cannot drive a batch.
	ErrTemplate = errors.New("template error")
	// ErrHostOperation indicates a failed call into the editing host.
	ErrHostOperation = errors.New("host operation failed")
)

// SchemaError reports a problem with the two header rows.
type SchemaError struct {
	Col    int // 1-based column, 0 when the whole header is at fault
	Token  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Col == 0 {
		return fmt.Sprintf("schema error: %s", e.Reason)
	}
	return fmt.Sprintf("schema error in column %d: %s (token %q)", e.Col, e.Reason, e.Token)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// BindingError reports an element name absent from both layers and paths.
type BindingError struct {
	Name string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding error: no layer or path named %q", e.Name)
}

func (e *BindingError) Is(target error) bool { return target == ErrBinding }

// TypeMismatchError reports a property kind applied to an element that
// lacks the needed capability, e.g. text on a raster layer.
type TypeMismatchError struct {
	Name   string
	Kind   PropertyKind
	Reason string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: cannot apply %s to %q: %s", e.Kind, e.Name, e.Reason)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// ValueError reports a cell value that does not parse for its kind.
type ValueError struct {
	Kind  PropertyKind
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s value %q: %v", e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s value %q", e.Kind, e.Value)
}

func (e *ValueError) Unwrap() error { return e.Err }

func (e *ValueError) Is(target error) bool { return target == ErrValue }

// FilenameError reports a computed output name that violates naming rules.
type FilenameError struct {
	Name   string
	Reason string
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("invalid filename %q: %s", e.Name, e.Reason)
}

func (e *FilenameError) Is(target error) bool { return target == ErrInvalidFilename }

// PreconditionError reports a failed check made once before the batch loop.
// Kind is ErrOutputDir or ErrTemplate.
type PreconditionError struct {
	Kind   error
	Detail string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func (e *PreconditionError) Is(target error) bool { return target == e.Kind }

// HostError wraps a failure returned by the editing host.
type HostError struct {
	Op  string // "duplicate", "select", "fill", "export", ...
	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host %s failed: %v", e.Op, e.Err)
}

func (e *HostError) Unwrap() error { return e.Err }

func (e *HostError) Is(target error) bool { return target == ErrHostOperation }

// NewHostError creates a new HostError.
func NewHostError(op string, err error) *HostError {
	return &HostError{Op: op, Err: err}
}

// CellError attaches the data row and column to an error raised while
// binding or mutating a single cell.
type CellError struct {
	Row   int // 1-based data row
	Col   int // 1-based column
	Name  string
	Value string
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %d (%s): %v", e.Row, e.Col, e.Name, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// NewCellError creates a new CellError.
func NewCellError(row, col int, name, value string, err error) *CellError {
	return &CellError{
		Row:   row,
		Col:   col,
		Name:  name,
		Value: value,
		Err:   err,
	}
}

// RowError attaches the data row to an error that is not specific to one
// cell (filename, export, destroy, cancellation).
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
