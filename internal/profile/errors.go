package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaMismatch is matched by SchemaMismatchError via errors.Is.
var ErrSchemaMismatch = errors.New("schema mismatch")

// ErrMalformedValue is matched by MalformedValueError via errors.Is.
var ErrMalformedValue = errors.New("malformed numeric value")

// SchemaMismatchError reports header columns a sheet must carry but does not.
// It is raised before any data row is scanned.
type SchemaMismatchError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("sheet %q header is missing required column(s): %s",
		e.Sheet, strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// MalformedValueError reports a code cell that is neither a base-10 nor a
// base-16 integer. Row and Column are 0-based sheet coordinates.
type MalformedValueError struct {
	Sheet  string
	Row    int
	Column int
	Text   string
	Err    error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("sheet %q row %d column %d: %q is neither a decimal nor a hexadecimal integer",
		e.Sheet, e.Row+1, e.Column+1, e.Text)
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

func (e *MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}
