package converter

import (
	"fmt"
	"strings"
)

// Summary renders the run for the console.
func (r Result) Summary() string {
	var b strings.Builder

	b.WriteString("Profile Extractor - Run Summary\n")
	b.WriteString("================================================================================\n")
	fmt.Fprintf(&b, "  Run ID:       %s\n", r.RunID)
	fmt.Fprintf(&b, "  Input:        %s\n", r.InputPath)
	fmt.Fprintf(&b, "  Duration:     %s\n", r.Stats.ProcessingTime)
	fmt.Fprintf(&b, "  Rows scanned: %d\n\n", r.Stats.RowsScanned)

	for _, doc := range r.Documents {
		fmt.Fprintf(&b, "  %s\n", doc.Sheet)
		fmt.Fprintf(&b, "    Records: %d\n", doc.Records)
		fmt.Fprintf(&b, "    Items:   %d\n", doc.Items)
		if doc.Written {
			fmt.Fprintf(&b, "    Output:  %s\n", doc.OutputFile)
		}
		if doc.ArchivedFile != "" {
			fmt.Fprintf(&b, "    Archive: %s\n", doc.ArchivedFile)
		}
	}

	fmt.Fprintf(&b, "\n  Structural errors:   %d\n", r.Stats.ValidationErrors)
	fmt.Fprintf(&b, "  Structural warnings: %d\n", r.Stats.ValidationWarnings)

	if r.Error != nil {
		fmt.Fprintf(&b, "\n  FAILED: %v\n", r.Error)
	}
	b.WriteString("================================================================================\n")

	return b.String()
}
