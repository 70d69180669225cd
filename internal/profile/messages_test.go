package profile

import (
	"encoding/json"
	"testing"

	"github.com/ginjaninja78/profile-extractor/internal/testutil"
	"github.com/ginjaninja78/profile-extractor/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageRows(rows ...[]string) types.Rows {
	return types.RowsFromStrings(append([][]string{testutil.MessagesHeader}, rows...))
}

func parseMessages(t *testing.T, rows ...[]string) *MessageDocument {
	t.Helper()
	doc, err := ParseMessages(messageRows(rows...), nil)
	require.NoError(t, err)
	return doc
}

func fieldNames(m *Message) []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

func TestParseMessagesRecordPower(t *testing.T) {
	doc := parseMessages(t,
		[]string{"record_power", "", "", "", "", ""},
		[]string{"", "data", "0", "", "", "raw"},
		[]string{"", "data_sub", "", "event,event", "timer,\nstart", ""},
		[]string{"", "timestamp", "253", "", "", ""},
	)

	require.Equal(t, 1, doc.Len())
	msg, ok := doc.Get("record_power")
	require.True(t, ok)
	assert.Equal(t, []string{"data", "data_sub", "timestamp"}, fieldNames(msg))

	data, _ := msg.Field("data")
	assert.True(t, data.IsDynamic)
	assert.False(t, data.HasParent)

	sub, _ := msg.Field("data_sub")
	assert.True(t, sub.HasParent)
	assert.Equal(t, "data", sub.DynamicParent)
	assert.False(t, sub.IsDynamic)

	ts, _ := msg.Field("timestamp")
	assert.False(t, ts.IsDynamic)
	assert.False(t, ts.HasParent)

	got, err := json.Marshal(doc)
	require.NoError(t, err)

	want := `{"record_power":{` +
		`"data":{"field_code":"0","ref_field_name":"","ref_field_value":"","is_dynamic":true},` +
		`"data_sub":{"field_code":"","ref_field_name":["event","event"],"ref_field_value":["timer","start"],"dynamic_parent":"data"},` +
		`"timestamp":{"field_code":"253","ref_field_name":"","ref_field_value":""}}}`
	assert.JSONEq(t, want, string(got))
	assert.Equal(t, want, string(got), "key order follows row order")
}

func TestParseMessagesSubfieldRunAlternates(t *testing.T) {
	doc := parseMessages(t,
		[]string{"event", "", "", "", "", ""},
		[]string{"", "event", "0", "", "", ""},
		[]string{"", "data", "3", "", "", ""},
		[]string{"", "timer_trigger", "", "event", "timer", ""},
		[]string{"", "course_point_index", "", "event", "course_point", ""},
		[]string{"", "battery_level", "", "event", "battery", ""},
		[]string{"", "timestamp", "253", "", "", ""},
		[]string{"", "data16", "2", "", "", ""},
	)

	msg, _ := doc.Get("event")
	assert.Equal(t, []string{"event", "data", "timer_trigger", "course_point_index", "battery_level", "timestamp", "data16"}, fieldNames(msg))

	var dynamic []string
	parents := map[string]string{}
	for _, f := range msg.Fields {
		if f.IsDynamic {
			dynamic = append(dynamic, f.Name)
		}
		if f.HasParent {
			parents[f.Name] = f.DynamicParent
		}
	}

	// The second code-less row closes the group and becomes the parent of
	// the third.
	assert.Equal(t, []string{"data", "course_point_index"}, dynamic)
	want := map[string]string{"timer_trigger": "data", "battery_level": "course_point_index"}
	if diff := cmp.Diff(want, parents); diff != "" {
		t.Errorf("dynamic parents mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMessagesRowAfterGroupCloses(t *testing.T) {
	doc := parseMessages(t,
		[]string{"hr", "", "", "", "", ""},
		[]string{"", "event_timestamp", "9", "", "", ""},
		[]string{"", "event_timestamp_12", "", "", "", ""},
		[]string{"", "filtered_bpm", "", "", "", ""},
		[]string{"", "timestamp", "253", "", "", ""},
	)

	msg, _ := doc.Get("hr")
	closing, _ := msg.Field("filtered_bpm")
	assert.False(t, closing.HasParent)
	assert.False(t, closing.IsDynamic)

	ts, _ := msg.Field("timestamp")
	assert.False(t, ts.HasParent)
	assert.False(t, ts.IsDynamic)
}

func TestParseMessagesSecondGroupUsesNewParent(t *testing.T) {
	doc := parseMessages(t,
		[]string{"device_info", "", "", "", "", ""},
		[]string{"", "device_type", "1", "", "", ""},
		[]string{"", "antplus_device_type", "", "source_type", "antplus", ""},
		[]string{"", "product", "4", "", "", ""},
		[]string{"", "favero_product", "", "manufacturer", "favero_electronics", ""},
	)

	msg, _ := doc.Get("device_info")
	deviceType, _ := msg.Field("device_type")
	product, _ := msg.Field("product")
	assert.True(t, deviceType.IsDynamic)
	assert.True(t, product.IsDynamic)

	first, _ := msg.Field("antplus_device_type")
	second, _ := msg.Field("favero_product")
	assert.Equal(t, "device_type", first.DynamicParent)
	assert.Equal(t, "product", second.DynamicParent)
}

func TestParseMessagesLeadingSubfieldHasNoParent(t *testing.T) {
	doc := parseMessages(t,
		[]string{"odd", "", "", "", "", ""},
		[]string{"", "orphan", "", "", "", ""},
		[]string{"", "regular", "1", "", "", ""},
	)

	msg, _ := doc.Get("odd")
	orphan, _ := msg.Field("orphan")
	assert.False(t, orphan.HasParent)
	assert.False(t, orphan.IsDynamic)
}

func TestParseMessagesSeparators(t *testing.T) {
	doc := parseMessages(t,
		[]string{"", "", "", "", "", ""},
		[]string{"", "", "", "COMMON MESSAGES", "", ""},
		[]string{"file_id", "", "", "", "", ""},
		[]string{"", "type", "0", "", "", ""},
		[]string{"", "manufacturer", "1", "", "", ""},
		[]string{"", "", "", "", "", ""},
		[]string{"", "", "", "", "", ""},
		[]string{"", "", "", "DEVICE FILE MESSAGES", "", ""},
		[]string{"software", "", "", "", "", ""},
		[]string{"", "version", "3", "", "", ""},
	)

	assert.Equal(t, 2, doc.Len())

	fileID, _ := doc.Get("file_id")
	assert.Equal(t, []string{"type", "manufacturer"}, fieldNames(fileID))

	software, _ := doc.Get("software")
	assert.Equal(t, []string{"version"}, fieldNames(software))
}

func TestParseMessagesBannerEndsRecord(t *testing.T) {
	doc := parseMessages(t,
		[]string{"event", "", "", "", "", ""},
		[]string{"", "event", "0", "", "", ""},
		[]string{"", "", "", "BANNER", "", ""},
		[]string{"", "after", "5", "", "", ""},
		[]string{"record", "", "", "", "", ""},
		[]string{"", "timestamp", "253", "", "", ""},
	)

	msg, _ := doc.Get("event")
	assert.Equal(t, []string{"event"}, fieldNames(msg))

	// The row after the banner is read as a record name, and its column 0
	// is empty.
	var names []string
	for _, m := range doc.Messages() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"event", "", "record"}, names)

	unnamed, _ := doc.Get("")
	assert.Empty(t, unnamed.Fields)

	record, _ := doc.Get("record")
	assert.Equal(t, []string{"timestamp"}, fieldNames(record))
}

func TestParseMessagesNextRecordWithoutSeparator(t *testing.T) {
	doc := parseMessages(t,
		[]string{"file_id", "", "", "", "", ""},
		[]string{"", "type", "0", "", "", ""},
		[]string{"file_creator", "", "", "", "", ""},
		[]string{"", "software_version", "0", "", "", ""},
	)

	var names []string
	for _, m := range doc.Messages() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"file_id", "file_creator"}, names)
}

func TestParseMessagesEndOfSheet(t *testing.T) {
	t.Run("after record name", func(t *testing.T) {
		doc := parseMessages(t, []string{"pad", "", "", "", "", ""})
		msg, ok := doc.Get("pad")
		require.True(t, ok)
		assert.Empty(t, msg.Fields)

		got, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.Equal(t, `{"pad":{}}`, string(got))
	})

	t.Run("mid record", func(t *testing.T) {
		doc := parseMessages(t,
			[]string{"hr", "", "", "", "", ""},
			[]string{"", "timestamp", "253", "", "", ""},
			[]string{"", "fractional", "", "", "", ""},
		)
		msg, _ := doc.Get("hr")
		assert.Equal(t, []string{"timestamp", "fractional"}, fieldNames(msg))
	})

	t.Run("header only", func(t *testing.T) {
		doc := parseMessages(t)
		assert.Equal(t, 0, doc.Len())
	})
}

func TestParseMessagesJaggedRows(t *testing.T) {
	doc := parseMessages(t,
		[]string{"file_id"},
		[]string{"", "serial_number", "3"},
	)

	msg, _ := doc.Get("file_id")
	f, ok := msg.Field("serial_number")
	require.True(t, ok)

	ref, ok := f.Attr(ColumnRefFieldName)
	require.True(t, ok)
	assert.False(t, ref.IsList)
	assert.Equal(t, "", ref.Text)
}

func TestParseMessagesDuplicateRecordResets(t *testing.T) {
	doc := parseMessages(t,
		[]string{"a", "", "", "", "", ""},
		[]string{"", "x", "0", "", "", ""},
		[]string{"b", "", "", "", "", ""},
		[]string{"", "y", "0", "", "", ""},
		[]string{"a", "", "", "", "", ""},
		[]string{"", "z", "1", "", "", ""},
	)

	require.Equal(t, 2, doc.Len())
	assert.Equal(t, "a", doc.Messages()[0].Name)
	assert.Equal(t, []string{"z"}, fieldNames(doc.Messages()[0]))
}

func TestParseMessagesSchemaMismatch(t *testing.T) {
	src := types.RowsFromStrings([][]string{{"#", "Field Name", "Field Code"}})
	_, err := ParseMessages(src, nil)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestParseMessagesIdempotent(t *testing.T) {
	rows := messageRows(
		[]string{"file_id", "", "", "", "", ""},
		[]string{"", "type", "0", "", "", ""},
		[]string{"", "product", "2", "", "", ""},
		[]string{"", "garmin_product", "", "manufacturer,manufacturer", "garmin,dynastream", ""},
	)

	first, err := ParseMessages(rows, nil)
	require.NoError(t, err)
	second, err := ParseMessages(rows, nil)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseMessagesRecordCount(t *testing.T) {
	rows := [][]string{
		{"a", "", "", "", "", ""},
		{"", "f", "0", "", "", ""},
		{"", "", "", "", "", ""},
		{"", "", "", "BANNER", "", ""},
		{"b", "", "", "", "", ""},
		{"c", "", "", "", "", ""},
		{"", "g", "1", "", "", ""},
	}

	want := 0
	for _, r := range rows {
		row := types.NewRow(r)
		if !row.At(0).Empty() && !IsBannerRow(row) {
			want++
		}
	}

	doc := parseMessages(t, rows...)
	assert.Equal(t, want, doc.Len())
}
