package series

import (
	"errors"
	"fmt"
)

// ErrEmpty indicates a data file without any numeric rows.
var ErrEmpty = errors.New("no numeric rows")

// ErrMismatchedColumns indicates a row whose field count differs from the first row.
var ErrMismatchedColumns = errors.New("mismatched column count")

// ErrLengthMismatch indicates X and Y (or a fixed axis and Y) of different length.
var ErrLengthMismatch = errors.New("x/y length mismatch")

// ErrShape indicates a file whose column layout does not fit the requested load.
var ErrShape = errors.New("unexpected column layout")

// ParseError locates a failure inside a data file.
type ParseError struct {
	Path string
	Line int // 1-based; 0 when the error concerns the whole file
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
