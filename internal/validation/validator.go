// =============================================================================
// Profile Extractor - Validation Engine
// =============================================================================
//
// This module checks the structure of the built catalogues. It does not judge
// profile content (whether a base type exists, whether a code is in range);
// it only confirms the documents are internally consistent:
//
//   Messages
//     - every is_dynamic field has at least one sub-field naming it
//     - every dynamic_parent names an earlier field of the same message
//       that is marked is_dynamic
//     - a sub-field with no dynamic_parent is reported as a warning
//     - a message without fields is reported as a warning
//
//   Types
//     - names and codes have the same length
//     - a value name repeated within a type is reported as a warning
//
// ERROR HANDLING:
//   - Problems are collected, not returned one at a time
//   - Each problem names the sheet, record and field or value involved
//   - "error" problems make the result invalid; "warning" problems do not
//
// =============================================================================

package validation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/profile-extractor/internal/profile"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single structural problem.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Sheet is the worksheet the record came from.
	Sheet string

	// Record is the message or type name.
	Record string

	// Item is the field or value name, empty for record-level problems.
	Item string

	// Rule is a short identifier of the violated rule.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	location := e.Record
	if e.Item != "" {
		location += "." + e.Item
	}
	return fmt.Sprintf("[%s] %s %s (%s): %s",
		strings.ToUpper(e.Severity), e.Sheet, location, e.Rule, e.Message)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no error-severity problems.
	IsValid bool

	// Errors contains all problems, warnings included, in document order.
	Errors []*ValidationError

	// ErrorCount is the number of error-severity problems.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// RecordsValidated is the number of messages and types checked.
	RecordsValidated int
}

// NewResult returns an empty, valid result.
func NewResult() *ValidationResult {
	return &ValidationResult{IsValid: true, Errors: make([]*ValidationError, 0)}
}

// add records a problem and updates the counters.
func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
	} else {
		r.WarningCount++
	}
}

// Merge folds other into r.
func (r *ValidationResult) Merge(other *ValidationResult) {
	for _, e := range other.Errors {
		r.add(e)
	}
	r.RecordsValidated += other.RecordsValidated
}

// =============================================================================
// MESSAGE CHECKS
// =============================================================================

// CheckMessages validates the dynamic-field structure of every message.
//
// PARAMETERS:
//   - sheet: The worksheet name used in problem reports.
//   - doc: The message document.
//
// RETURNS:
//   - The collected problems.
func CheckMessages(sheet string, doc *profile.MessageDocument) *ValidationResult {
	result := NewResult()

	for _, msg := range doc.Messages() {
		result.RecordsValidated++
		checkMessage(result, sheet, msg)
	}

	return result
}

func checkMessage(result *ValidationResult, sheet string, msg *profile.Message) {
	if len(msg.Fields) == 0 {
		result.add(&ValidationError{
			Severity: SeverityWarning,
			Sheet:    sheet,
			Record:   msg.Name,
			Rule:     "empty_message",
			Message:  "message has no fields",
		})
		return
	}

	// seen maps each field name to whether it is dynamic, for fields
	// before the current one.
	seen := make(map[string]bool, len(msg.Fields))
	children := make(map[string]int)

	for _, f := range msg.Fields {
		switch {
		case f.HasParent:
			dynamic, ok := seen[f.DynamicParent]
			switch {
			case !ok:
				result.add(&ValidationError{
					Severity: SeverityError,
					Sheet:    sheet,
					Record:   msg.Name,
					Item:     f.Name,
					Rule:     "parent_precedes",
					Message:  fmt.Sprintf("dynamic_parent %q is not an earlier field", f.DynamicParent),
				})
			case !dynamic:
				result.add(&ValidationError{
					Severity: SeverityError,
					Sheet:    sheet,
					Record:   msg.Name,
					Item:     f.Name,
					Rule:     "parent_dynamic",
					Message:  fmt.Sprintf("dynamic_parent %q is not marked is_dynamic", f.DynamicParent),
				})
			}
			children[f.DynamicParent]++

		case fieldCode(f) == "":
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Sheet:    sheet,
				Record:   msg.Name,
				Item:     f.Name,
				Rule:     "orphan_subfield",
				Message:  "field has no field_code and no dynamic_parent",
			})
		}

		seen[f.Name] = f.IsDynamic
	}

	for _, f := range msg.Fields {
		if f.IsDynamic && children[f.Name] == 0 {
			result.add(&ValidationError{
				Severity: SeverityError,
				Sheet:    sheet,
				Record:   msg.Name,
				Item:     f.Name,
				Rule:     "dynamic_has_child",
				Message:  "field is marked is_dynamic but no sub-field names it",
			})
		}
	}
}

func fieldCode(f profile.Field) string {
	a, _ := f.Attr(profile.ColumnFieldCode)
	return a.Text
}

// =============================================================================
// TYPE CHECKS
// =============================================================================

// CheckTypes validates the value lists of every type.
func CheckTypes(sheet string, doc *profile.TypeDocument) *ValidationResult {
	result := NewResult()

	for _, td := range doc.Types() {
		result.RecordsValidated++

		if len(td.Values.Names) != len(td.Values.Codes) {
			result.add(&ValidationError{
				Severity: SeverityError,
				Sheet:    sheet,
				Record:   td.Name,
				Rule:     "names_codes_parity",
				Message: fmt.Sprintf("%d names but %d codes",
					len(td.Values.Names), len(td.Values.Codes)),
			})
		}

		names := make(map[string]bool, len(td.Values.Names))
		for _, name := range td.Values.Names {
			if names[name] {
				result.add(&ValidationError{
					Severity: SeverityWarning,
					Sheet:    sheet,
					Record:   td.Name,
					Item:     name,
					Rule:     "duplicate_value_name",
					Message:  "value name appears more than once",
				})
			}
			names[name] = true
		}
	}

	return result
}

// =============================================================================
// ERROR OUTPUT FUNCTIONS
// =============================================================================

// FormatErrors formats validation problems for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d problem(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes a validation report to filePath.
//
// PARAMETERS:
//   - result: The validation result to write.
//   - filePath: The path to the report file. It is overwritten.
//
// RETURNS:
//   - An error if writing fails.
func WriteErrorLog(result *ValidationResult, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create validation report: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Validation report generated %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(writer, "Records: %d, errors: %d, warnings: %d\n\n",
		result.RecordsValidated, result.ErrorCount, result.WarningCount)
	writer.WriteString(FormatErrors(result.Errors))

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write validation report: %w", err)
	}
	return file.Close()
}
