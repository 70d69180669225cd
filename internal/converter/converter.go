// =============================================================================
// Profile Extractor - Converter Module
// =============================================================================
//
// This module orchestrates one extraction run, from opening the profile to
// writing the two catalogues.
//
// CONVERSION PIPELINE:
//   1. Open the row source (xlsx workbook, or a directory of CSV exports)
//   2. For each selected sheet (Messages, Types):
//      a. Load the sheet
//      b. Scan it into a document
//      c. Check the document structure
//      d. Encode the document
//   3. Archive the previous outputs (optional)
//   4. Write the output files
//
// Nothing is written until every selected document has been built and
// encoded, so a failed run leaves earlier outputs untouched.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/profile-extractor/internal/config"
	"github.com/ginjaninja78/profile-extractor/internal/docwriter"
	"github.com/ginjaninja78/profile-extractor/internal/logging"
	"github.com/ginjaninja78/profile-extractor/internal/validation"
	"github.com/ginjaninja78/profile-extractor/pkg/utils"
	"github.com/google/uuid"
)

// Document selectors for Options.Only.
const (
	OnlyMessages = "messages"
	OnlyTypes    = "types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string

	// InputPath is the workbook or CSV directory that was read.
	InputPath string

	// Documents holds one entry per built document, in pipeline order.
	Documents []DocumentResult

	// Validation merges the structural checks of every document.
	Validation *validation.ValidationResult

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// DocumentResult describes one built document.
type DocumentResult struct {
	// Sheet is the worksheet the document was built from.
	Sheet string

	// Records is the number of messages or types.
	Records int

	// Items is the number of fields (messages) or values (types).
	Items int

	// OutputFile is the target file. It is not written on a dry run.
	OutputFile string

	// ArchivedFile is where the previous output was moved, if anywhere.
	ArchivedFile string

	// Written is set once OutputFile is in place.
	Written bool

	content []byte
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// RowsScanned is the number of sheet rows read, headers included.
	RowsScanned int

	// Messages and Fields count the message document.
	Messages int
	Fields   int

	// Types and Values count the type document.
	Types  int
	Values int

	// ValidationErrors and ValidationWarnings count structural problems.
	ValidationErrors   int
	ValidationWarnings int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options selects what a run does beyond the configuration.
type Options struct {
	// Only restricts the run to OnlyMessages or OnlyTypes. Empty runs both.
	Only string

	// DryRun builds and checks the documents without writing them.
	DryRun bool

	// Strict fails the run when structural checks report errors.
	Strict bool
}

// Converter runs the extraction pipeline.
type Converter struct {
	config  *config.Config
	options Options
	files   *utils.FileManager
	logger  *slog.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The validated configuration.
//   - options: Per-run options from the command line.
//   - logger: Where progress is logged. Nil discards it.
func New(cfg *config.Config, options Options, logger *slog.Logger) *Converter {
	return &Converter{
		config:  cfg,
		options: options,
		files:   utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir),
		logger:  logging.OrDiscard(logger),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline. Cancellation of ctx is honored between
// documents and before anything is written.
func (c *Converter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{
		RunID:      uuid.New().String(),
		InputPath:  c.config.InputPath,
		Validation: validation.NewResult(),
	}
	log := c.logger.With("run_id", result.RunID)

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Error("run failed", "error", err)
		return result
	}

	pipelines, err := c.selectPipelines()
	if err != nil {
		return fail(err)
	}

	// =========================================================================
	// STEP 1: OPEN ROW SOURCE
	// =========================================================================

	log.Info("reading profile", "input", c.config.InputPath)

	src, err := c.openSource()
	if err != nil {
		return fail(err)
	}
	defer src.Close()

	// =========================================================================
	// STEP 2: BUILD DOCUMENTS
	// =========================================================================

	for _, p := range pipelines {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		doc, err := c.build(src, p, &result, log)
		if err != nil {
			return fail(err)
		}
		result.Documents = append(result.Documents, doc)
	}

	if len(result.Documents) == 2 && result.Documents[0].OutputFile == result.Documents[1].OutputFile {
		return fail(fmt.Errorf("both documents would be written to %s, add {sheet} to output.file_name_format",
			result.Documents[0].OutputFile))
	}

	result.Stats.ValidationErrors = result.Validation.ErrorCount
	result.Stats.ValidationWarnings = result.Validation.WarningCount

	if c.options.Strict && !result.Validation.IsValid {
		return fail(fmt.Errorf("structural checks failed with %d error(s)", result.Validation.ErrorCount))
	}

	if c.options.DryRun {
		log.Info("dry run, nothing written")
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	// =========================================================================
	// STEP 3: ARCHIVE AND WRITE
	// =========================================================================

	if err := c.files.EnsureDirectories(c.config.Output.ArchivePrevious); err != nil {
		return fail(err)
	}

	for i := range result.Documents {
		doc := &result.Documents[i]

		if c.config.Output.ArchivePrevious {
			archived, err := c.files.ArchiveExisting(doc.OutputFile)
			if err != nil {
				return fail(fmt.Errorf("failed to archive previous output: %w", err))
			}
			if archived != "" {
				doc.ArchivedFile = archived
				log.Info("archived previous output", "file", archived)
			}
		}

		if err := docwriter.WriteFile(doc.OutputFile, doc.content); err != nil {
			return fail(err)
		}
		doc.Written = true
		log.Info("wrote document", "sheet", doc.Sheet, "file", doc.OutputFile, "records", doc.Records)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

