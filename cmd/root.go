// =============================================================================
// Profile Extractor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (profile-extractor)
//   ├── convertCmd  (profile-extractor convert)
//   ├── validateCmd (profile-extractor validate)
//   └── versionCmd  (profile-extractor version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration file (config.yaml is optional; an explicit
//      --config must exist)
//   2. Sets up structured logging on stderr
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ginjaninja78/profile-extractor/internal/config"
	"github.com/ginjaninja78/profile-extractor/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logFormat overrides the configured log format.
var logFormat string

// appConfig is loaded by the root command before any subcommand runs.
var appConfig *config.Config

// logger is set up alongside appConfig.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "profile-extractor",
	Short: "Profile Extractor - Convert profile spreadsheet sheets to JSON catalogues",
	Long: `Profile Extractor reads the Messages and Types worksheets of a profile
spreadsheet and writes two catalogues:

  Messages.json  message name -> field name -> field descriptor
  Types.json     type name -> base type and enumerated values

The profile can be an xlsx workbook or a directory of per-sheet CSV exports
(Messages.csv, Types.csv).

Example Usage:
  profile-extractor convert                       # ./Profile.xlsx -> ./Messages.json, ./Types.json
  profile-extractor convert Profile.xlsx -o out   # Write into ./out
  profile-extractor convert --format yaml         # Write YAML instead of JSON
  profile-extractor validate Profile.xlsx         # Check the profile without writing`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main(). An interrupt
// cancels the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// initConfig loads the configuration and sets up logging.
func initConfig(cmd *cobra.Command) error {
	optional := !cmd.Flags().Changed("config")

	cfg, err := config.Load(cfgFile, optional)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = logFormat
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	appConfig = cfg
	logger = logging.Setup(level, cfg.LogFormat, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "config", cfgFile, "default", optional)

	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file; used only if present unless set explicitly",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"text",
		"Log format: text or json",
	)
}
