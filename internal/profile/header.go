package profile

import (
	"slices"
	"strings"

	"github.com/ginjaninja78/profile-extractor/internal/types"
)

// Normalized column names the scanners depend on.
const (
	ColumnFieldName     = "field_name"
	ColumnFieldCode     = "field_code"
	ColumnRefFieldName  = "ref_field_name"
	ColumnRefFieldValue = "ref_field_value"
	ColumnComment       = "comment"

	ColumnTypeName  = "type_name"
	ColumnBaseType  = "base_type"
	ColumnValueName = "value_name"
	ColumnValue     = "value"
)

// requiredTypeColumns must all appear in the Types header.
var requiredTypeColumns = []string{ColumnTypeName, ColumnBaseType, ColumnValueName, ColumnValue, ColumnComment}

// requiredMessageColumns must appear between column 0 and the "comment"
// column of the Messages header.
var requiredMessageColumns = []string{ColumnFieldName, ColumnFieldCode}

// NormalizeHeader canonicalizes a header label into a field-name key:
// trimmed, spaces replaced by underscores, lowercased. A label containing
// "#" names the field code column whatever else it says.
func NormalizeHeader(label string) string {
	cleaned := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
	if strings.Contains(cleaned, "#") {
		return ColumnFieldCode
	}
	return cleaned
}

// NormalizeHeaderRow normalizes every cell of a header row.
func NormalizeHeaderRow(row types.Row) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = NormalizeHeader(cell.String())
	}
	return out
}

// Schema is the ordered list of normalized column names that describes a
// Messages data row from column 1 onwards.
type Schema []string

// MessageSchema derives the Messages schema from the header row. Column 0
// (the record-name column) is dropped and the header is cut at the first
// "comment" column; what follows it is free-text commentary.
func MessageSchema(sheet string, header types.Row) (Schema, error) {
	normalized := NormalizeHeaderRow(header)

	end := slices.Index(normalized, ColumnComment)
	cut := end
	if cut < 0 {
		cut = len(normalized)
	}

	var schema Schema
	if cut > 1 {
		schema = Schema(normalized[1:cut])
	}

	missing := missingColumns(schema, requiredMessageColumns)
	if end < 0 {
		missing = append(missing, ColumnComment)
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Sheet: sheet, Missing: missing}
	}

	return schema, nil
}

// CheckTypeHeader verifies the Types header carries every column the type
// scanner reads.
func CheckTypeHeader(sheet string, header types.Row) error {
	if missing := missingColumns(NormalizeHeaderRow(header), requiredTypeColumns); len(missing) > 0 {
		return &SchemaMismatchError{Sheet: sheet, Missing: missing}
	}
	return nil
}

func missingColumns(have []string, want []string) []string {
	var missing []string
	for _, name := range want {
		if !slices.Contains(have, name) {
			missing = append(missing, name)
		}
	}
	return missing
}
