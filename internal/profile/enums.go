package profile

import (
	"log/slog"

	"github.com/ginjaninja78/profile-extractor/internal/logging"
	"github.com/ginjaninja78/profile-extractor/internal/types"
)

// TypesSheet is the default name of the type-enumeration worksheet.
const TypesSheet = "Types"

// Fixed column positions of the Types sheet.
const (
	typeNameColumn  = 0
	baseTypeColumn  = 1
	valueNameColumn = 2
	valueColumn     = 3
)

// typeScanner walks the Types sheet. A row with a type name opens a type;
// the value rows below it (column 0 empty) append one name/code pair each
// until a blank row or the next type name.
type typeScanner struct {
	src   types.RowSource
	sheet string
	log   *slog.Logger
	doc   *TypeDocument

	row     int
	state   scanState
	current *TypeDef
}

// ParseTypes builds the type-enumeration catalogue from a Types sheet. The
// header must name every column the scanner reads; otherwise nothing is
// scanned and a *SchemaMismatchError is returned.
func ParseTypes(src types.RowSource, log *slog.Logger) (*TypeDocument, error) {
	sheet := sheetName(src, TypesSheet)

	if err := CheckTypeHeader(sheet, src.RowValues(0)); err != nil {
		return nil, err
	}

	s := &typeScanner{
		src:   src,
		sheet: sheet,
		log:   logging.OrDiscard(log).With("sheet", sheet),
		doc:   NewTypeDocument(),
		row:   1,
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.doc, nil
}

func (s *typeScanner) run() error {
	for n := s.src.RowCount(); s.row < n; {
		row := s.src.RowValues(s.row)
		if s.state == scanForRecord {
			s.scanForType(row)
			continue
		}
		if err := s.scanValueRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *typeScanner) scanForType(row types.Row) {
	s.row++
	if skippable(row) {
		return
	}

	name := row.At(typeNameColumn).String()
	s.log.Debug("gathering type information", "type", name)

	s.current = s.doc.Define(name)
	s.current.BaseType = row.At(baseTypeColumn).String()
	s.state = inRecord
}

func (s *typeScanner) scanValueRow(row types.Row) error {
	if !row.At(typeNameColumn).Empty() {
		s.state = scanForRecord
		return nil
	}

	index := s.row
	s.row++
	switch {
	case IsBlankRow(row):
		s.state = scanForRecord
	case IsBannerRow(row):
	default:
		text := row.At(valueColumn).String()
		code, err := DecodeCode(text)
		if err != nil {
			return &MalformedValueError{Sheet: s.sheet, Row: index, Column: valueColumn, Text: text, Err: err}
		}
		s.current.Add(row.At(valueNameColumn).String(), code)
	}
	return nil
}
