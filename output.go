package tachywind

import (
	"io"
	"strings"
)

// OutputFormat selects how results are written.
type OutputFormat string

// Output formats.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format    OutputFormat
	UseColors bool // Force colors even without a terminal
}

// DetermineOutputFormat maps a requested format name to an OutputFormat.
// Unknown or empty names fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(formatFlag)) {
	case "json":
		return OutputJSON
	default:
		return OutputText
	}
}

// WriteParseResult writes a Parse result in the configured format.
func WriteParseResult(w io.Writer, result *ParseResult, config OutputConfig) error {
	if config.Format == OutputJSON {
		return writeJSON(w, buildParseJSON(result))
	}
	NewReporter(w, config).PrintParse(result)
	return nil
}

// WriteReplaceResult writes a Replace result in the configured format.
func WriteReplaceResult(w io.Writer, result *ReplaceResult, config OutputConfig) error {
	if config.Format == OutputJSON {
		return writeJSON(w, buildReplaceJSON(result))
	}
	NewReporter(w, config).PrintReplace(result)
	return nil
}

// WriteStatus writes a registry summary in the configured format.
func WriteStatus(w io.Writer, status *StatusResult, config OutputConfig) error {
	if config.Format == OutputJSON {
		return writeJSON(w, buildStatusJSON(status))
	}
	NewReporter(w, config).PrintStatus(status)
	return nil
}

// WriteScan writes a single-file scan report in the configured format.
func WriteScan(w io.Writer, report *ScanReport, config OutputConfig) error {
	if config.Format == OutputJSON {
		return writeJSON(w, buildScanJSON(report))
	}
	NewReporter(w, config).PrintScan(report)
	return nil
}
