package profile

import (
	"fmt"

	"github.com/ginjaninja78/profile-extractor/internal/xlsxparser"
)

// LoadMessages reads the Messages sheet of the workbook at path.
func LoadMessages(path string) (*MessageDocument, error) {
	wb, err := xlsxparser.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(MessagesSheet)
	if err != nil {
		return nil, err
	}

	doc, err := ParseMessages(sheet, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// LoadTypes reads the Types sheet of the workbook at path.
func LoadTypes(path string) (*TypeDocument, error) {
	wb, err := xlsxparser.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(TypesSheet)
	if err != nil {
		return nil, err
	}

	doc, err := ParseTypes(sheet, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
