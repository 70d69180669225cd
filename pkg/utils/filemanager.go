// =============================================================================
// Profile Extractor - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the extractor:
//   - Directory management
//   - Output file naming
//   - Archival of the previous output before it is overwritten
//
// ARCHIVAL STRATEGY:
//   - Only output files are archived; the profile itself is never moved
//   - An existing output is moved to archive_dir with its modification
//     time appended, so repeated runs never overwrite an earlier archive
//   - Missing outputs (first run) are not an error
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// now is replaced in tests.
var now = time.Now

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the extractor.
type FileManager struct {
	// OutputDir is the directory where documents are written.
	OutputDir string

	// ArchiveDir is the directory for archived outputs.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: archive/2024/01/15/Messages_20240115_143022.json
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory, and the archive directory
// when archive is true.
func (fm *FileManager) EnsureDirectories(archive bool) error {
	dirs := []string{fm.OutputDir}
	if archive {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// OutputPath joins fileName onto the output directory.
func (fm *FileManager) OutputPath(fileName string) string {
	return filepath.Join(fm.OutputDir, fileName)
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveExisting moves the file at filePath into the archive directory.
//
// PARAMETERS:
//   - filePath: The output file about to be overwritten.
//
// RETURNS:
//   - The path to the archived file, or "" if filePath does not exist.
//   - An error if archival fails.
func (fm *FileManager) ArchiveExisting(filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	archivePath := fm.getArchivePath(filePath, info.ModTime())

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file last modified at
// modTime.
func (fm *FileManager) getArchivePath(filePath string, modTime time.Time) string {
	ext := filepath.Ext(filePath)
	base := strings.TrimSuffix(filepath.Base(filePath), ext)
	fileName := fmt.Sprintf("%s_%s%s", base, modTime.Format("20060102_150405"), ext)

	dir := fm.ArchiveDir
	if fm.UseTimestampSubdirs {
		dir = filepath.Join(dir,
			fmt.Sprintf("%d", modTime.Year()),
			fmt.Sprintf("%02d", modTime.Month()),
			fmt.Sprintf("%02d", modTime.Day()),
		)
	}

	return filepath.Join(dir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {sheet}     - The sheet the document was built from
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//   - params: Values for custom placeholders such as {sheet}.
//   - ext: The extension to ensure, including the dot.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//
//	format: "{sheet}_{date}"
//	params: {"sheet": "Messages"}
//	ext:    ".json"
//	output: "Messages_20240115.json"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	t := now()

	replacements := map[string]string{
		"{timestamp}": t.Format("20060102_150405"),
		"{date}":      t.Format("20060102"),
		"{time}":      t.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
