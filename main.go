// =============================================================================
// Profile Extractor - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Profile Extractor CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   profile-extractor convert       - Write Messages.json and Types.json
//   profile-extractor validate      - Check the profile without writing
//   profile-extractor version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Row sources, scanners, documents and the pipeline
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/profile-extractor/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
