package tachywind

import (
	"encoding/json"
	"io"
	"time"
)

// jsonSchemaVersion versions every JSON document written by this package.
const jsonSchemaVersion = "1.0"

// JSONHeader is embedded in every JSON document.
type JSONHeader struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONFailure is a file that could not be processed.
type JSONFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONParse is the JSON form of a ParseResult.
type JSONParse struct {
	JSONHeader
	Stylesheets      []string       `json:"stylesheets"`
	ClassesDefined   int            `json:"classes_defined"`
	FilesScanned     int            `json:"files_scanned"`
	FilesWithClasses int            `json:"files_with_classes"`
	ClassesUsed      []string       `json:"classes_used"`
	Languages        map[string]int `json:"languages"`
	Failures         []JSONFailure  `json:"failures"`
	DurationMS       int64          `json:"duration_ms"`
}

// JSONRejection is a refused string rewrite.
type JSONRejection struct {
	Original  string `json:"original"`
	Attempted string `json:"attempted"`
	Words     int    `json:"words"`
	Replaced  int    `json:"replaced"`
}

// JSONFileRewrite is the JSON form of a FileRewrite.
type JSONFileRewrite struct {
	Path       string          `json:"path"`
	Output     string          `json:"output"`
	Spans      int             `json:"spans"`
	Stale      bool            `json:"stale"`
	Written    bool            `json:"written"`
	Rejections []JSONRejection `json:"rejections"`
}

// JSONReplace is the JSON form of a ReplaceResult.
type JSONReplace struct {
	JSONHeader
	DryRun       bool              `json:"dry_run"`
	FilesChanged int               `json:"files_changed"`
	SpansChanged int               `json:"spans_changed"`
	Rejections   int               `json:"rejections"`
	Files        []JSONFileRewrite `json:"files"`
	Failures     []JSONFailure     `json:"failures"`
	DurationMS   int64             `json:"duration_ms"`
}

// JSONStatus is the JSON form of a StatusResult.
type JSONStatus struct {
	JSONHeader
	Classes  int      `json:"classes"`
	Mapped   int      `json:"mapped"`
	Used     int      `json:"used"`
	Files    int      `json:"files"`
	Unmapped []string `json:"unmapped"`
	Ready    bool     `json:"ready"`
}

// JSONSpan is a scanned region.
type JSONSpan struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Content string `json:"content"`
}

// JSONScan is the JSON form of a ScanReport.
type JSONScan struct {
	JSONHeader
	Path       string          `json:"path"`
	Strings    []JSONSpan      `json:"strings"`
	Comments   []JSONSpan      `json:"comments"`
	Classes    []string        `json:"classes"`
	Rewritten  *string         `json:"rewritten,omitempty"`
	Rejections []JSONRejection `json:"rejections,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newJSONHeader() JSONHeader {
	return JSONHeader{
		Version:   jsonSchemaVersion,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func buildParseJSON(result *ParseResult) JSONParse {
	return JSONParse{
		JSONHeader:       newJSONHeader(),
		Stylesheets:      nonNil(result.Stylesheets),
		ClassesDefined:   result.ClassesDefined,
		FilesScanned:     result.FilesScanned,
		FilesWithClasses: result.FilesWithClasses,
		ClassesUsed:      nonNil(result.ClassesUsed),
		Languages:        result.Languages,
		Failures:         buildFailuresJSON(result.Failures),
		DurationMS:       result.Duration.Milliseconds(),
	}
}

func buildReplaceJSON(result *ReplaceResult) JSONReplace {
	files := make([]JSONFileRewrite, len(result.Files))
	for i, f := range result.Files {
		files[i] = JSONFileRewrite{
			Path:       f.Path,
			Output:     f.Output,
			Spans:      f.Spans,
			Stale:      f.Stale,
			Written:    f.Written,
			Rejections: buildRejectionsJSON(f.Rejections),
		}
	}

	return JSONReplace{
		JSONHeader:   newJSONHeader(),
		DryRun:       result.DryRun,
		FilesChanged: result.FilesChanged(),
		SpansChanged: result.SpansChanged(),
		Rejections:   result.RejectionCount(),
		Files:        files,
		Failures:     buildFailuresJSON(result.Failures),
		DurationMS:   result.Duration.Milliseconds(),
	}
}

func buildStatusJSON(status *StatusResult) JSONStatus {
	return JSONStatus{
		JSONHeader: newJSONHeader(),
		Classes:    status.Classes,
		Mapped:     status.Mapped,
		Used:       status.Used,
		Files:      status.Files,
		Unmapped:   nonNil(status.Unmapped),
		Ready:      status.Ready(),
	}
}

func buildScanJSON(report *ScanReport) JSONScan {
	out := JSONScan{
		JSONHeader: newJSONHeader(),
		Path:       report.Path,
		Strings:    buildSpansJSON(report.Strings),
		Comments:   buildSpansJSON(report.Comments),
		Classes:    nonNil(report.Classes),
	}
	if report.Rewrite {
		rewritten := report.Rewritten
		out.Rewritten = &rewritten
		out.Rejections = buildRejectionsJSON(report.Rejections)
	}
	return out
}

func buildSpansJSON(spans []Span) []JSONSpan {
	out := make([]JSONSpan, len(spans))
	for i, s := range spans {
		out[i] = JSONSpan{Start: s.Start, End: s.End, Content: s.Content}
	}
	return out
}

func buildRejectionsJSON(rejections []Rejection) []JSONRejection {
	out := make([]JSONRejection, len(rejections))
	for i, r := range rejections {
		out[i] = JSONRejection{
			Original:  r.Original,
			Attempted: r.Attempted,
			Words:     r.Words,
			Replaced:  r.Replaced,
		}
	}
	return out
}

func buildFailuresJSON(failures []*FileError) []JSONFailure {
	out := make([]JSONFailure, len(failures))
	for i, f := range failures {
		out[i] = JSONFailure{Path: f.Path, Error: f.Err.Error()}
	}
	return out
}

// nonNil keeps empty lists as [] rather than null in the output.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
