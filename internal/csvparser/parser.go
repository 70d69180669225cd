// =============================================================================
// Profile Extractor - CSV Row Source
// =============================================================================
//
// This module reads a profile that was exported sheet by sheet to CSV. The
// exports live side by side in one directory and are named after their
// worksheet:
//
//   profile/
//     Messages.csv
//     Types.csv
//
// It handles the export variations seen in practice:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Different encodings (UTF-8 with or without BOM, ISO-8859-1, Windows-1252)
//   - Rows with fewer fields than the header
//
// Cell text is kept exactly as exported. Unlike a data import, no trimming
// happens here: the scanners decide what counts as empty.
//
// BLANK ROWS:
//   encoding/csv drops lines with no characters at all. Spreadsheet exports
//   write a blank row as bare delimiters (",,,,,"), which is kept and still
//   ends a record.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/profile-extractor/internal/config"
	"github.com/ginjaninja78/profile-extractor/internal/types"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extension is the file extension of a sheet export.
const Extension = ".csv"

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is a directory of per-sheet CSV exports.
type Workbook struct {
	// Dir is the export directory.
	Dir string

	settings config.CSVSettings
	decoder  func() transform.Transformer
}

// OpenDir prepares the export directory at dir for reading.
//
// PARAMETERS:
//   - dir: The directory holding <Sheet>.csv files.
//   - settings: The delimiter and encoding of the exports.
//
// RETURNS:
//   - The workbook. Sheets are read on demand by Sheet.
//   - An error if dir is not a directory or the encoding is unknown.
func OpenDir(dir string, settings config.CSVSettings) (*Workbook, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open export directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open export directory: %s is not a directory", dir)
	}

	decoder, err := getDecoder(settings.Encoding)
	if err != nil {
		return nil, err
	}

	return &Workbook{Dir: dir, settings: settings, decoder: decoder}, nil
}

// SheetNames lists the sheet exports in the directory, sorted by name.
func (w *Workbook) SheetNames() []string {
	matches, err := filepath.Glob(filepath.Join(w.Dir, "*"+Extension))
	if err != nil {
		return nil
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(filepath.Base(m), Extension)
	}
	return names
}

// Sheet reads the export of the named worksheet.
//
// A missing export yields a *types.SheetNotFoundError, the same as a
// missing worksheet in an xlsx workbook.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	path := filepath.Join(w.Dir, name+Extension)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.SheetNotFoundError{Source: w.Dir, Sheet: name}
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	raw, err := w.read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}

	return &Sheet{Name: name, rows: types.RowsFromStrings(raw)}, nil
}

// Close is a no-op. Each sheet export is closed once read.
func (w *Workbook) Close() error {
	return nil
}

func (w *Workbook) read(r io.Reader) ([][]string, error) {
	decoded := transform.NewReader(bufio.NewReader(r), w.decoder())

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, w.settings)

	return csvReader.ReadAll()
}

// =============================================================================
// READER CONFIGURATION
// =============================================================================

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon", "SEMICOLON":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Exports drop trailing empty cells on some rows.
	reader.FieldsPerRecord = -1

	// Comment cells contain stray quotes.
	reader.LazyQuotes = true
}

// getDecoder returns a factory for the transformer that turns the export
// encoding into UTF-8. A fresh transformer is needed per file.
func getDecoder(encoding string) (func() transform.Transformer, error) {
	switch strings.ToUpper(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "UTF-8", "UTF8":
		return func() transform.Transformer {
			return unicode.BOMOverride(unicode.UTF8.NewDecoder())
		}, nil
	case "ISO-8859-1", "LATIN1", "LATIN-1":
		return func() transform.Transformer {
			return charmap.ISO8859_1.NewDecoder()
		}, nil
	case "WINDOWS-1252", "CP1252":
		return func() transform.Transformer {
			return charmap.Windows1252.NewDecoder()
		}, nil
	default:
		return nil, fmt.Errorf("unsupported CSV encoding %q", encoding)
	}
}

// =============================================================================
// SHEET
// =============================================================================

// Sheet is a fully loaded sheet export. It implements types.NamedSource.
type Sheet struct {
	// Name is the worksheet name the export was made from.
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
