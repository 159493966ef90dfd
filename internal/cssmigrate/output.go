package cssmigrate

import (
	"io"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	default:
		return OutputText
	}
}

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, summary *Summary, format OutputFormat, useColors bool) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, summary)

	default:
		reporter := NewReporter(w, useColors)
		reporter.PrintStart(summary)
		reporter.PrintChanges(summary)
		reporter.PrintSummary(summary)
		reporter.PrintNextSteps(summary)
		return nil
	}
}
