// =============================================================================
// Profile Extractor - Shared Types
// =============================================================================
//
// This package contains the row-access types shared by the row sources
// (xlsxparser, csvparser) and the profile scanners. Keeping them here avoids
// an import cycle between the sources and the core.
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// CELL
// =============================================================================

// Cell is a single spreadsheet cell: either text or absent.
//
// Absent covers cells past the end of a jagged row and cells a source
// could not supply. A present cell holding "" is still empty.
type Cell struct {
	text    string
	present bool
}

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{text: s, present: true}
}

// Absent returns a cell with no value.
func Absent() Cell {
	return Cell{}
}

// String returns the cell text, or "" for an absent cell.
func (c Cell) String() string {
	return c.text
}

// Present reports whether the source supplied a value for the cell.
func (c Cell) Present() bool {
	return c.present
}

// Empty reports whether the cell is absent or holds the empty string.
// Whitespace-only text is not empty.
func (c Cell) Empty() bool {
	return !c.present || c.text == ""
}

// =============================================================================
// ROW
// =============================================================================

// Row is an ordered sequence of cells.
type Row []Cell

// NewRow wraps raw cell text as a Row of present cells.
func NewRow(values []string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// At returns the cell at index i, or an absent cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Absent()
	}
	return r[i]
}

// Strings returns the cell text of the row.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// =============================================================================
// ROW SOURCE
// =============================================================================

// RowSource is the minimal row-access capability the scanners consume.
// The whole sheet is available before scanning begins.
type RowSource interface {
	// RowCount is the number of rows in the sheet, header included.
	RowCount() int

	// RowValues returns row i (0-based). Rows may be shorter than the
	// header; callers use Row.At for bounds-safe access.
	RowValues(i int) Row
}

// NamedSource is a RowSource that knows which worksheet it reads.
type NamedSource interface {
	RowSource
	SheetName() string
}

// Rows is an in-memory RowSource.
type Rows []Row

// RowCount implements RowSource.
func (r Rows) RowCount() int { return len(r) }

// RowValues implements RowSource.
func (r Rows) RowValues(i int) Row {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// RowsFromStrings builds an in-memory RowSource from raw cell text.
func RowsFromStrings(raw [][]string) Rows {
	rows := make(Rows, len(raw))
	for i, r := range raw {
		rows[i] = NewRow(r)
	}
	return rows
}

// =============================================================================
// SHEET LOOKUP ERRORS
// =============================================================================

// ErrSheetNotFound is the sentinel wrapped by SheetNotFoundError.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetNotFoundError reports a worksheet missing from a workbook.
type SheetNotFoundError struct {
	Source string
	Sheet  string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in %s", e.Sheet, e.Source)
}

func (e *SheetNotFoundError) Unwrap() error {
	return ErrSheetNotFound
}
