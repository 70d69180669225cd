package converter

import (
	"fmt"
	"log/slog"

	"github.com/ginjaninja78/profile-extractor/internal/csvparser"
	"github.com/ginjaninja78/profile-extractor/internal/docwriter"
	"github.com/ginjaninja78/profile-extractor/internal/profile"
	"github.com/ginjaninja78/profile-extractor/internal/types"
	"github.com/ginjaninja78/profile-extractor/internal/validation"
	"github.com/ginjaninja78/profile-extractor/internal/xlsxparser"
	"github.com/ginjaninja78/profile-extractor/pkg/utils"
)

// =============================================================================
// ROW SOURCES
// =============================================================================

// sheetSource is an open profile, either format.
type sheetSource interface {
	sheet(name string) (types.NamedSource, error)
	Close() error
}

type xlsxSource struct{ *xlsxparser.Workbook }

func (s xlsxSource) sheet(name string) (types.NamedSource, error) {
	sh, err := s.Sheet(name)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

type csvSource struct{ *csvparser.Workbook }

func (s csvSource) sheet(name string) (types.NamedSource, error) {
	sh, err := s.Sheet(name)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// openSource opens the configured input. A directory is read as per-sheet
// CSV exports, anything else as an xlsx workbook.
func (c *Converter) openSource() (sheetSource, error) {
	path := c.config.InputPath

	if utils.IsDir(path) {
		wb, err := csvparser.OpenDir(path, c.config.CSV)
		if err != nil {
			return nil, err
		}
		return csvSource{wb}, nil
	}

	wb, err := xlsxparser.Open(path)
	if err != nil {
		return nil, err
	}
	return xlsxSource{wb}, nil
}

// =============================================================================
// PIPELINES
// =============================================================================

// scanned is a built document with its counts.
type scanned struct {
	document profile.Document
	records  int
	items    int
}

// pipeline turns one sheet into one document.
type pipeline struct {
	kind  string
	sheet string
	scan  func(src types.NamedSource, log *slog.Logger) (scanned, *validation.ValidationResult, error)
}

// selectPipelines returns the pipelines of the run in output order.
func (c *Converter) selectPipelines() ([]pipeline, error) {
	messages := pipeline{kind: OnlyMessages, sheet: c.config.Sheets.Messages, scan: scanMessages}
	typeDefs := pipeline{kind: OnlyTypes, sheet: c.config.Sheets.Types, scan: scanTypes}

	switch c.options.Only {
	case "":
		return []pipeline{messages, typeDefs}, nil
	case OnlyMessages:
		return []pipeline{messages}, nil
	case OnlyTypes:
		return []pipeline{typeDefs}, nil
	default:
		return nil, fmt.Errorf("unknown document %q, expected %q or %q", c.options.Only, OnlyMessages, OnlyTypes)
	}
}

func scanMessages(src types.NamedSource, log *slog.Logger) (scanned, *validation.ValidationResult, error) {
	doc, err := profile.ParseMessages(src, log)
	if err != nil {
		return scanned{}, nil, err
	}

	fields := 0
	for _, m := range doc.Messages() {
		fields += len(m.Fields)
	}

	return scanned{document: doc, records: doc.Len(), items: fields},
		validation.CheckMessages(src.SheetName(), doc), nil
}

func scanTypes(src types.NamedSource, log *slog.Logger) (scanned, *validation.ValidationResult, error) {
	doc, err := profile.ParseTypes(src, log)
	if err != nil {
		return scanned{}, nil, err
	}

	values := 0
	for _, td := range doc.Types() {
		values += len(td.Values.Names)
	}

	return scanned{document: doc, records: doc.Len(), items: values},
		validation.CheckTypes(src.SheetName(), doc), nil
}

// build loads, scans, checks and encodes one document.
func (c *Converter) build(src sheetSource, p pipeline, result *Result, log *slog.Logger) (DocumentResult, error) {
	sheet, err := src.sheet(p.sheet)
	if err != nil {
		return DocumentResult{}, err
	}
	result.Stats.RowsScanned += sheet.RowCount()

	log.Debug("scanning sheet", "sheet", p.sheet, "rows", sheet.RowCount())

	doc, checks, err := p.scan(sheet, log)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("failed to parse sheet %q: %w", p.sheet, err)
	}

	for _, problem := range checks.Errors {
		log.Warn("structural check", "problem", problem.Error())
	}
	result.Validation.Merge(checks)

	content, err := docwriter.Encode(doc.document, docwriter.OptionsFrom(c.config.Output))
	if err != nil {
		return DocumentResult{}, fmt.Errorf("failed to encode %s: %w", p.sheet, err)
	}

	switch p.kind {
	case OnlyMessages:
		result.Stats.Messages += doc.records
		result.Stats.Fields += doc.items
	case OnlyTypes:
		result.Stats.Types += doc.records
		result.Stats.Values += doc.items
	}

	fileName := utils.GenerateOutputFileName(
		c.config.Output.FileNameFormat,
		map[string]string{"sheet": p.sheet},
		c.config.Output.Extension(),
	)

	return DocumentResult{
		Sheet:      p.sheet,
		Records:    doc.records,
		Items:      doc.items,
		OutputFile: c.files.OutputPath(fileName),
		content:    content,
	}, nil
}
