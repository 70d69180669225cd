package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestGenerateOutputFileName(t *testing.T) {
	fixClock(t, time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC))

	tests := []struct {
		format string
		ext    string
		want   string
	}{
		{"{sheet}", ".json", "Messages.json"},
		{"{sheet}_{date}", ".yaml", "Messages_20240115.yaml"},
		{"{sheet}_{timestamp}", ".json", "Messages_20240115_143022.json"},
		{"profile_{sheet}.json", ".json", "profile_Messages.json"},
		{"{sheet}", "", "Messages"},
	}

	for _, tt := range tests {
		got := GenerateOutputFileName(tt.format, map[string]string{"sheet": "Messages"}, tt.ext)
		assert.Equal(t, tt.want, got, "format %q", tt.format)
	}
}

func TestGenerateOutputFileNameUUID(t *testing.T) {
	got := GenerateOutputFileName("{sheet}_{uuid}", map[string]string{"sheet": "Types"}, ".json")
	assert.Regexp(t, regexp.MustCompile(`^Types_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.json$`), got)
}

func TestArchiveExisting(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "out"), filepath.Join(root, "archive"))
	require.NoError(t, fm.EnsureDirectories(true))
	assert.True(t, IsDir(fm.ArchiveDir))

	path := fm.OutputPath("Messages.json")

	archived, err := fm.ArchiveExisting(path)
	require.NoError(t, err)
	assert.Empty(t, archived, "nothing to archive on first run")

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	modTime := time.Date(2023, 12, 31, 23, 59, 58, 0, time.Local)
	require.NoError(t, os.Chtimes(path, modTime, modTime))

	archived, err = fm.ArchiveExisting(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.ArchiveDir, "Messages_20231231_235958.json"), archived)
	assert.False(t, FileExists(path))

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestArchiveTimestampSubdirs(t *testing.T) {
	fm := &FileManager{ArchiveDir: "archive", UseTimestampSubdirs: true}
	got := fm.getArchivePath("out/Types.yaml", time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, filepath.Join("archive", "2024", "03", "05", "Types_20240305_080000.yaml"), got)
}

func TestEnsureDirectoriesWithoutArchive(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "out"), filepath.Join(root, "archive"))
	require.NoError(t, fm.EnsureDirectories(false))

	assert.True(t, IsDir(fm.OutputDir))
	assert.False(t, FileExists(fm.ArchiveDir))
}
