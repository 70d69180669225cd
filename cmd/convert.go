// =============================================================================
// Profile Extractor - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool. It
// runs the extraction pipeline and prints a summary.
//
// COMMAND USAGE:
//   profile-extractor convert [profile.xlsx | csv-dir] [flags]
//
// FLAGS:
//   --output-dir, -o : Directory for the generated documents
//   --pretty         : Indent JSON output by two spaces
//   --format         : json (default) or yaml
//   --only           : Build only "messages" or "types"
//   --dry-run        : Build and check the documents without writing them
//   --archive        : Move previous outputs to the archive directory first
//   --strict         : Fail when structural checks report errors
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/profile-extractor/internal/config"
	"github.com/ginjaninja78/profile-extractor/internal/converter"
	"github.com/spf13/cobra"
)

// prettyIndent is the JSON indentation used by --pretty.
const prettyIndent = "  "

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	outputDir    string
	pretty       bool
	outputFormat string
	only         string
	dryRun       bool
	archive      bool
	strict       bool
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert [profile.xlsx | csv-dir]",
	Short: "Convert the Messages and Types sheets to catalogues",
	Long: `The convert command reads the profile, scans the Messages and Types sheets
and writes one document per sheet to the output directory.

The profile defaults to input_path from the configuration (./Profile.xlsx).
If it is a directory, <dir>/Messages.csv and <dir>/Types.csv are read
using the csv settings from the configuration.

Nothing is written unless both documents are built successfully.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the convert command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the generated documents (default from config)")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	convertCmd.Flags().StringVar(&outputFormat, "format", "", "Output format: json or yaml (default from config)")
	convertCmd.Flags().StringVar(&only, "only", "", "Build only one document: messages or types")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build and check the documents without writing them")
	convertCmd.Flags().BoolVar(&archive, "archive", false, "Move previous outputs to the archive directory before writing")
	convertCmd.Flags().BoolVar(&strict, "strict", false, "Fail when structural checks report errors")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	applyInput(&cfg, args)

	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if pretty && cfg.Output.Indent == "" {
		cfg.Output.Indent = prettyIndent
	}
	if archive {
		cfg.Output.ArchivePrevious = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	conv := converter.New(&cfg, converter.Options{Only: only, DryRun: dryRun, Strict: strict}, logger)
	result := conv.Run(cmd.Context())

	fmt.Fprint(cmd.OutOrStdout(), result.Summary())

	if result.Error != nil {
		return result.Error
	}
	return nil
}

// applyInput takes the profile path from the positional argument, if any.
func applyInput(cfg *config.Config, args []string) {
	if len(args) == 1 {
		cfg.InputPath = args[0]
	}
}
