// =============================================================================
// Profile Extractor - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It builds both documents without
// writing them and reports structural problems. The exit status is non-zero
// when the profile cannot be read or a check reports an error; warnings are
// printed but do not fail the command.
//
// COMMAND USAGE:
//   profile-extractor validate [profile.xlsx | csv-dir] [--report file]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/profile-extractor/internal/converter"
	"github.com/ginjaninja78/profile-extractor/internal/validation"
	"github.com/spf13/cobra"
)

// reportPath is where the validation report is written, if set.
var reportPath string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate [profile.xlsx | csv-dir]",
	Short: "Check a profile without writing any documents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&reportPath, "report", "", "Also write the validation report to this file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	applyInput(&cfg, args)

	conv := converter.New(&cfg, converter.Options{DryRun: true}, logger)
	result := conv.Run(cmd.Context())
	if result.Error != nil {
		return result.Error
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Checked %d message(s) and %d type(s).\n", result.Stats.Messages, result.Stats.Types)
	fmt.Fprint(out, validation.FormatErrors(result.Validation.Errors))
	fmt.Fprintln(out)

	if reportPath != "" {
		if err := validation.WriteErrorLog(result.Validation, reportPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", reportPath)
	}

	if !result.Validation.IsValid {
		return fmt.Errorf("structural checks found %d error(s)", result.Validation.ErrorCount)
	}
	return nil
}
