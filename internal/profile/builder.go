package profile

import "github.com/ginjaninja78/profile-extractor/internal/types"

// fieldTransforms post-process a raw cell by normalized column name.
// Columns without an entry keep their raw text.
var fieldTransforms = map[string]func(text string) Attribute{
	ColumnRefFieldName:  splitReference(ColumnRefFieldName),
	ColumnRefFieldValue: splitReference(ColumnRefFieldValue),
}

// splitReference turns a non-empty reference cell into a list; an empty
// cell stays empty text rather than becoming an empty list.
func splitReference(key string) func(string) Attribute {
	return func(text string) Attribute {
		if text == "" {
			return Attribute{Key: key}
		}
		return Attribute{Key: key, List: SplitList(text), IsList: true}
	}
}

// buildField zips the schema against columns 1..N of row. Column 0 is the
// record-name column and never belongs to a field. Cells missing from a
// short row read as "".
func buildField(schema Schema, row types.Row) Field {
	var f Field
	for i, key := range schema {
		text := row.At(i + 1).String()

		if key == ColumnFieldName {
			f.Name = text
			continue
		}

		if transform, ok := fieldTransforms[key]; ok {
			f.setAttr(transform(text))
		} else {
			f.setAttr(Attribute{Key: key, Text: text})
		}
	}
	return f
}

// code returns the field_code text of a field.
func (f Field) code() string {
	a, _ := f.Attr(ColumnFieldCode)
	return a.Text
}
