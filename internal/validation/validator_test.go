package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/profile-extractor/internal/profile"
	"github.com/ginjaninja78/profile-extractor/internal/testutil"
	"github.com/ginjaninja78/profile-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(c string) []profile.Attribute {
	return []profile.Attribute{{Key: profile.ColumnFieldCode, Text: c}}
}

func rules(result *ValidationResult) []string {
	var out []string
	for _, e := range result.Errors {
		out = append(out, e.Rule)
	}
	return out
}

func TestCheckMessagesParsedSheetIsValid(t *testing.T) {
	doc, err := profile.ParseMessages(types.RowsFromStrings([][]string{
		testutil.MessagesHeader,
		{"event", "", "", "", "", ""},
		{"", "event", "0", "", "", ""},
		{"", "data", "3", "", "", ""},
		{"", "timer_trigger", "", "event", "timer", ""},
		{"", "timestamp", "253", "", "", ""},
	}), nil)
	require.NoError(t, err)

	result := CheckMessages("Messages", doc)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, result.RecordsValidated)
}

func TestCheckMessagesRowClosingGroupIsOrphan(t *testing.T) {
	doc, err := profile.ParseMessages(types.RowsFromStrings([][]string{
		testutil.MessagesHeader,
		{"event", "", "", "", "", ""},
		{"", "data", "3", "", "", ""},
		{"", "timer_trigger", "", "event", "timer", ""},
		{"", "course_point_index", "", "event", "course_point", ""},
		{"", "battery_level", "", "event", "battery", ""},
	}), nil)
	require.NoError(t, err)

	result := CheckMessages("Messages", doc)
	assert.True(t, result.IsValid)
	assert.Equal(t, []string{"orphan_subfield"}, rules(result))
	assert.Equal(t, "course_point_index", result.Errors[0].Item)
}

func TestCheckMessagesDynamicWithoutChild(t *testing.T) {
	doc := profile.NewMessageDocument()
	msg := doc.Start("m")
	msg.Put(profile.Field{Name: "data", Attributes: code("0"), IsDynamic: true})
	msg.Put(profile.Field{Name: "timestamp", Attributes: code("253")})

	result := CheckMessages("Messages", doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"dynamic_has_child"}, rules(result))
	assert.Equal(t, "data", result.Errors[0].Item)
}

func TestCheckMessagesParentProblems(t *testing.T) {
	doc := profile.NewMessageDocument()
	msg := doc.Start("m")
	msg.Put(profile.Field{Name: "regular", Attributes: code("1")})
	msg.Put(profile.Field{Name: "a", Attributes: code(""), DynamicParent: "later", HasParent: true})
	msg.Put(profile.Field{Name: "b", Attributes: code(""), DynamicParent: "regular", HasParent: true})
	msg.Put(profile.Field{Name: "later", Attributes: code("2")})

	result := CheckMessages("Messages", doc)
	assert.Equal(t, []string{"parent_precedes", "parent_dynamic"}, rules(result))
	assert.Equal(t, 2, result.ErrorCount)
}

func TestCheckMessagesWarnings(t *testing.T) {
	doc := profile.NewMessageDocument()
	doc.Start("empty")
	doc.Start("odd").Put(profile.Field{Name: "orphan", Attributes: code("")})

	result := CheckMessages("Messages", doc)
	assert.True(t, result.IsValid)
	assert.Equal(t, 2, result.WarningCount)
	assert.Equal(t, []string{"empty_message", "orphan_subfield"}, rules(result))
}

func TestCheckTypes(t *testing.T) {
	doc := profile.NewTypeDocument()
	good := doc.Define("file")
	good.Add("device", 1)
	good.Add("settings", 2)

	dup := doc.Define("sport")
	dup.Add("running", 1)
	dup.Add("running", 2)

	broken := doc.Define("broken")
	broken.Values.Names = append(broken.Values.Names, "lonely")

	result := CheckTypes("Types", doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, 3, result.RecordsValidated)
	assert.Equal(t, []string{"duplicate_value_name", "names_codes_parity"}, rules(result))
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
}

func TestMergeAndReport(t *testing.T) {
	messages := profile.NewMessageDocument()
	messages.Start("empty")
	typesDoc := profile.NewTypeDocument()
	typesDoc.Define("t").Values.Codes = []int64{1}

	result := NewResult()
	result.Merge(CheckMessages("Messages", messages))
	result.Merge(CheckTypes("Types", typesDoc))

	assert.False(t, result.IsValid)
	assert.Equal(t, 2, result.RecordsValidated)
	assert.Len(t, result.Errors, 2)

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteErrorLog(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Records: 2, errors: 1, warnings: 1")
	assert.Contains(t, string(data), "[ERROR] Types t (names_codes_parity)")
	assert.Contains(t, string(data), "[WARNING] Messages empty (empty_message)")
}

func TestFormatErrorsEmpty(t *testing.T) {
	assert.Equal(t, "No validation errors.", FormatErrors(nil))
}
