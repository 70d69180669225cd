// =============================================================================
// Profile Extractor - XLSX Row Source
// =============================================================================
//
// This module opens a profile workbook and exposes each worksheet as an
// ordered sequence of rows of cell text. It is the only place that knows
// about the xlsx format; the scanners in internal/profile consume sheets
// through types.RowSource.
//
// SHEET LOADING:
//   Sheets are read whole with excelize's GetRows. excelize trims trailing
//   empty cells, so rows are jagged; types.Row.At hides that from callers.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/ginjaninja78/profile-extractor/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an open xlsx profile.
type Workbook struct {
	// Path is the file the workbook was opened from.
	Path string

	file *excelize.File
}

// Open opens the workbook at path.
//
// RETURNS:
//   - The open workbook. Callers must Close it.
//   - An error if the file cannot be opened or is not a valid xlsx file.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	return &Workbook{Path: path, file: f}, nil
}

// SheetNames lists the worksheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet loads the named worksheet into memory.
//
// A sheet that does not exist yields a *types.SheetNotFoundError.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	index, err := w.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", name, err)
	}
	if index < 0 {
		return nil, &types.SheetNotFoundError{Source: w.Path, Sheet: name}
	}

	raw, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", name, err)
	}

	return &Sheet{Name: name, rows: types.RowsFromStrings(raw)}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// =============================================================================
// SHEET
// =============================================================================

// Sheet is a fully loaded worksheet. It implements types.NamedSource.
type Sheet struct {
	// Name is the worksheet name.
	Name string

	rows types.Rows
}

// SheetName returns the worksheet name.
func (s *Sheet) SheetName() string {
	return s.Name
}

// RowCount returns the number of rows, header included.
func (s *Sheet) RowCount() int {
	return s.rows.RowCount()
}

// RowValues returns row i.
func (s *Sheet) RowValues(i int) types.Row {
	return s.rows.RowValues(i)
}
