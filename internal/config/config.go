// =============================================================================
// Profile Extractor - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Everything has a default,
// so the tool runs without a configuration file: `profile-extractor convert`
// reads ./Profile.xlsx and writes Messages.json and Types.json to the current
// directory.
//
// CONFIGURATION FILE (config.yaml):
//   input_path: ./Profile.xlsx
//   output_dir: ./out
//   sheets:
//     messages: Messages
//     types: Types
//   output:
//     format: json
//     indent: "  "
//     file_name_format: "{sheet}"
//   csv:
//     delimiter: ","
//     encoding: UTF-8
//   log_level: info
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// InputPath is the profile workbook, or a directory of per-sheet CSV
	// exports.
	// Default: "./Profile.xlsx"
	InputPath string `yaml:"input_path"`

	// OutputDir is where the generated documents are written.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives the previous output files when
	// Output.ArchivePrevious is set.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// Sheets names the worksheets to read.
	Sheets SheetNames `yaml:"sheets"`

	// Output controls serialization of the documents.
	Output OutputSettings `yaml:"output"`

	// CSV applies when InputPath is a directory of CSV exports.
	CSV CSVSettings `yaml:"csv"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// SheetNames holds the worksheet names of the two pipelines.
type SheetNames struct {
	// Messages is the message-field sheet. Default: "Messages"
	Messages string `yaml:"messages"`

	// Types is the type-enumeration sheet. Default: "Types"
	Types string `yaml:"types"`
}

// OutputSettings controls how documents are written.
type OutputSettings struct {
	// Format is "json" or "yaml".
	// Default: "json"
	Format string `yaml:"format"`

	// Indent is the per-level indentation of JSON output. Empty produces
	// compact JSON. YAML output always indents.
	Indent string `yaml:"indent"`

	// FileNameFormat names output files. Placeholders:
	//   {sheet}     - The sheet name (Messages, Types)
	//   {date}      - Current date (YYYYMMDD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// The extension of Format is appended.
	// Default: "{sheet}"
	FileNameFormat string `yaml:"file_name_format"`

	// ArchivePrevious moves an existing output file into ArchiveDir
	// before it is overwritten.
	ArchivePrevious bool `yaml:"archive_previous"`
}

// CSVSettings contains settings for reading per-sheet CSV exports.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the exports.
	// Valid values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - optional: When true, a missing file yields the defaults instead of
//     an error. The root command sets this for the implicit config.yaml.
//
// RETURNS:
//   - A pointer to the Config struct, defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string, optional bool) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputPath == "" {
		config.InputPath = "./Profile.xlsx"
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./archive"
	}
	if config.Sheets.Messages == "" {
		config.Sheets.Messages = "Messages"
	}
	if config.Sheets.Types == "" {
		config.Sheets.Types = "Types"
	}
	if config.Output.Format == "" {
		config.Output.Format = FormatJSON
	}
	if config.Output.FileNameFormat == "" {
		config.Output.FileNameFormat = "{sheet}"
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.Encoding == "" {
		config.CSV.Encoding = "UTF-8"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
}

// Validate checks option values. It is called by Load and again by the
// commands after flag overrides.
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(c.Output.Format)
	switch c.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatJSON, FormatYAML, c.Output.Format)
	}

	if strings.TrimSpace(c.Output.Indent) != "" {
		return fmt.Errorf("output.indent must contain only whitespace")
	}

	if c.Sheets.Messages == c.Sheets.Types {
		return fmt.Errorf("sheets.messages and sheets.types must differ, both are %q", c.Sheets.Messages)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat)
	}

	return nil
}

// Extension returns the output file extension for the configured format.
func (o OutputSettings) Extension() string {
	if o.Format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}
