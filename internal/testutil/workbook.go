// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetData is one worksheet of a fixture workbook.
type SheetData struct {
	Name string
	Rows [][]string
}

// WriteWorkbook saves the given sheets, in order, to an xlsx file in a
// per-test temp directory and returns its path.
func WriteWorkbook(t testing.TB, sheets ...SheetData) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("new sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write row %d of %q: %v", r, sheet.Name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "Profile.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// MessagesHeader is the Messages header row used across tests.
var MessagesHeader = []string{"#", "Field Name", "Field Code", "Ref Field Name", "Ref Field Value", "Comment"}

// TypesHeader is the Types header row used across tests.
var TypesHeader = []string{"Type Name", "Base Type", "Value Name", "Value", "Comment"}
