package xlsxparser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/profile-extractor/internal/testutil"
	"github.com/ginjaninja78/profile-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetRows(t *testing.T) {
	path := testutil.WriteWorkbook(t,
		testutil.SheetData{Name: "Messages", Rows: [][]string{
			{"#", "Field Name"},
			{"file_id", ""},
			{"", "type", "0"},
		}},
		testutil.SheetData{Name: "Types", Rows: [][]string{{"Type Name"}}},
	)

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Messages", "Types"}, wb.SheetNames())

	sheet, err := wb.Sheet("Messages")
	require.NoError(t, err)

	require.Equal(t, 3, sheet.RowCount())
	assert.Equal(t, "file_id", sheet.RowValues(1).At(0).String())
	assert.True(t, sheet.RowValues(1).At(1).Empty())
	assert.Equal(t, "type", sheet.RowValues(2).At(1).String())
	assert.Equal(t, "0", sheet.RowValues(2).At(2).String())
	assert.True(t, sheet.RowValues(2).At(9).Empty())
}

func TestSheetNotFound(t *testing.T) {
	path := testutil.WriteWorkbook(t, testutil.SheetData{Name: "Messages", Rows: [][]string{{"#"}}})

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Sheet("Types")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSheetNotFound))

	var notFound *types.SheetNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Types", notFound.Sheet)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
