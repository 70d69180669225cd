package profile

import (
	"log/slog"

	"github.com/ginjaninja78/profile-extractor/internal/logging"
	"github.com/ginjaninja78/profile-extractor/internal/types"
)

// MessagesSheet is the default name of the message-field worksheet.
const MessagesSheet = "Messages"

type scanState int

const (
	scanForRecord scanState = iota
	inRecord
)

// messageScanner walks the Messages sheet. Records start at a row with a
// non-empty column 0 and run over the following rows whose column 0 is
// empty. A blank or banner row ends a record early.
//
// Sub-field grouping: a row without a field code opens a dynamic group.
// The field before it is marked is_dynamic and the row takes the last
// regular field as dynamic_parent. The row after it closes the group
// whatever its field code, so a run of code-less rows alternates between
// opening and closing groups.
type messageScanner struct {
	src    types.RowSource
	schema Schema
	log    *slog.Logger
	doc    *MessageDocument

	row   int
	state scanState

	current        *Message
	inSubfield     bool
	previous       int
	lastRegular    string
	hasLastRegular bool
}

// ParseMessages builds the message-field catalogue from a Messages sheet.
// Row 0 is the header.
func ParseMessages(src types.RowSource, log *slog.Logger) (*MessageDocument, error) {
	sheet := sheetName(src, MessagesSheet)

	schema, err := MessageSchema(sheet, src.RowValues(0))
	if err != nil {
		return nil, err
	}

	s := &messageScanner{
		src:    src,
		schema: schema,
		log:    logging.OrDiscard(log).With("sheet", sheet),
		doc:    NewMessageDocument(),
		row:    1,
	}
	s.run()
	return s.doc, nil
}

func (s *messageScanner) run() {
	for n := s.src.RowCount(); s.row < n; {
		row := s.src.RowValues(s.row)
		switch s.state {
		case scanForRecord:
			s.scanForRecord(row)
		case inRecord:
			s.scanRecordRow(row)
		}
	}
}

func (s *messageScanner) scanForRecord(row types.Row) {
	s.row++
	if skippable(row) {
		return
	}

	name := row.At(0).String()
	s.log.Debug("gathering message information", "message", name)

	s.current = s.doc.Start(name)
	s.state = inRecord
	s.inSubfield = false
	s.previous = -1
	s.lastRegular, s.hasLastRegular = "", false
}

func (s *messageScanner) scanRecordRow(row types.Row) {
	if !row.At(0).Empty() {
		// Start of the next record; reexamined without advancing.
		s.state = scanForRecord
		return
	}

	s.row++
	if skippable(row) {
		s.state = scanForRecord
		return
	}
	s.addField(buildField(s.schema, row))
}

func (s *messageScanner) addField(f Field) {
	switch {
	case f.code() == "" && !s.inSubfield:
		s.inSubfield = true
		if s.previous >= 0 {
			s.current.Fields[s.previous].IsDynamic = true
		}
		if s.hasLastRegular {
			f.DynamicParent, f.HasParent = s.lastRegular, true
		}
	case s.inSubfield:
		s.inSubfield = false
	}

	s.previous = s.current.Put(f)

	if !s.inSubfield {
		s.lastRegular, s.hasLastRegular = f.Name, true
	}
}

// sheetName reports the worksheet name of src when it has one.
func sheetName(src types.RowSource, fallback string) string {
	if named, ok := src.(types.NamedSource); ok {
		return named.SheetName()
	}
	return fallback
}
