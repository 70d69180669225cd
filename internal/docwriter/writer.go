// =============================================================================
// Profile Extractor - Document Writer Module
// =============================================================================
//
// This module serializes the message and type catalogues and writes them to
// disk. Key order always follows sheet row order; the documents marshal
// themselves in order and this module only controls layout.
//
// OUTPUT FORMATS:
//   json (default)
//     {"file_id":{"type":{"field_code":"0","ref_field_name":""}}}
//   json with Indent "  "
//     {
//       "file_id": {
//         "type": {
//   yaml
//     file_id:
//       type:
//         field_code: "0"
//
// =============================================================================

package docwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/profile-extractor/internal/config"
	"github.com/ginjaninja78/profile-extractor/internal/profile"
	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of YAML output.
const yamlIndent = 2

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls document layout.
type Options struct {
	// Format is config.FormatJSON or config.FormatYAML.
	// Default: json
	Format string

	// Indent is the per-level JSON indentation. Empty produces compact
	// output on a single line.
	Indent string
}

// OptionsFrom builds writer options from the output settings.
func OptionsFrom(settings config.OutputSettings) Options {
	return Options{Format: settings.Format, Indent: settings.Indent}
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode serializes doc.
//
// PARAMETERS:
//   - doc: The message or type document.
//   - options: Format and indentation.
//
// RETURNS:
//   - The encoded document. JSON output has no trailing newline; YAML
//     output ends with one.
//   - An error if the document cannot be encoded or the format is unknown.
func Encode(doc profile.Document, options Options) ([]byte, error) {
	switch options.Format {
	case "", config.FormatJSON:
		return encodeJSON(doc, options.Indent)
	case config.FormatYAML:
		return encodeYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported output format %q", options.Format)
	}
}

func encodeJSON(doc profile.Document, indent string) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	if indent == "" {
		return raw, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeYAML(doc profile.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// WriteFile writes already-encoded content to path, creating the parent
// directory if needed. The file is written under a temporary name and
// renamed into place, so a failed write never leaves a truncated document.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}
