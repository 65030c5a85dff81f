package tachywind

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter formats results for a terminal.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, config OutputConfig) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(config),
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config OutputConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintParse outputs the outcome of a Parse run.
func (r *Reporter) PrintParse(result *ParseResult) {
	fmt.Fprintf(r.w, "Registered %s from %s\n",
		pluralizeCount(result.ClassesDefined, "class", "classes"),
		pluralizeCount(len(result.Stylesheets), "stylesheet", "stylesheets"))
	fmt.Fprintf(r.w, "Scanned %s (%d with classes) in %s\n",
		pluralizeCount(result.FilesScanned, "file", "files"),
		result.FilesWithClasses,
		result.Duration.Round(time.Millisecond))
	fmt.Fprintf(r.w, "Classes in use: %d\n", len(result.ClassesUsed))

	if len(result.Languages) > 0 {
		r.printHeader(StyleCyan, "Languages")

		langs := make([]string, 0, len(result.Languages))
		width := 0
		for lang := range result.Languages {
			langs = append(langs, lang)
			width = max(width, len(lang))
		}
		sort.Slice(langs, func(i, j int) bool {
			ci, cj := result.Languages[langs[i]], result.Languages[langs[j]]
			if ci != cj {
				return ci > cj
			}
			return langs[i] < langs[j]
		})
		for _, lang := range langs {
			fmt.Fprintf(r.w, "%-*s %d\n", width+1, lang+":", result.Languages[lang])
		}
	}

	r.printFailures(result.Failures)
}

// PrintReplace outputs the outcome of a Replace run.
func (r *Reporter) PrintReplace(result *ReplaceResult) {
	verb := "Rewrote"
	if result.DryRun {
		verb = "Would rewrite"
	}
	fmt.Fprintf(r.w, "%s %s in %d of %s\n",
		verb,
		pluralizeCount(result.SpansChanged(), "string literal", "string literals"),
		result.FilesChanged(),
		pluralizeCount(len(result.Files), "file", "files"))

	if rejected := result.RejectionCount(); rejected > 0 {
		r.printHeader(StyleYellow, fmt.Sprintf("Rejected rewrites (%d)", rejected))
		for _, f := range result.Files {
			for _, rej := range f.Rejections {
				fmt.Fprintf(r.w, "%s %q → %q\n",
					RenderStyle(StyleCyan, f.Path+":", r.useColors), rej.Original, rej.Attempted)
			}
		}
	}

	if stale := result.StaleFiles(); len(stale) > 0 {
		r.printHeader(StyleYellow, fmt.Sprintf("Changed since parse (%d)", len(stale)))
		for _, path := range stale {
			fmt.Fprintf(r.w, "• %s\n", path)
		}
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: run parse again to refresh the registry", r.useColors))
	}

	r.printFailures(result.Failures)

	fmt.Fprintln(r.w, "")
	if result.DryRun {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Dry run: no files written", r.useColors))
	} else {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Rewritten files end in "+NewFileSuffix, r.useColors))
	}
}

// PrintStatus outputs a registry summary.
func (r *Reporter) PrintStatus(status *StatusResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Registry Status", r.useColors))
	fmt.Fprintln(r.w, "---------------")
	fmt.Fprintf(r.w, "Classes: %d\n", status.Classes)
	fmt.Fprintf(r.w, "Mapped:  %d (%.1f%%)\n", status.Mapped, percentage(status.Mapped, status.Classes))
	fmt.Fprintf(r.w, "Used:    %d\n", status.Used)
	fmt.Fprintf(r.w, "Files:   %d\n", status.Files)

	if status.Ready() {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Every used class has a mapping", r.useColors))
		return
	}

	r.printHeader(StyleRed, fmt.Sprintf("Unmapped classes (%d)", len(status.Unmapped)))
	for _, name := range status.Unmapped {
		fmt.Fprintf(r.w, "• %s\n", name)
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: tachywind map <class> <replacement>", r.useColors))
}

// PrintScan outputs the spans and classes of a single file.
func (r *Reporter) PrintScan(report *ScanReport) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, report.Path, r.useColors))

	r.printHeader(StyleCyan, fmt.Sprintf("Strings (%d)", len(report.Strings)))
	for _, s := range report.Strings {
		r.printSpan(s)
	}

	r.printHeader(StyleCyan, fmt.Sprintf("Comments (%d)", len(report.Comments)))
	for _, s := range report.Comments {
		r.printSpan(s)
	}

	fmt.Fprintln(r.w, "")
	if len(report.Classes) == 0 {
		fmt.Fprintln(r.w, "Classes: none")
	} else {
		fmt.Fprintf(r.w, "Classes: %s\n", strings.Join(report.Classes, ", "))
	}

	if !report.Rewrite {
		return
	}

	for _, rej := range report.Rejections {
		fmt.Fprintf(r.w, "%s %q → %q\n", RenderStyle(StyleYellow, "rejected:", r.useColors), rej.Original, rej.Attempted)
	}
	r.printHeader(StyleGreen, "Rewritten")
	fmt.Fprint(r.w, report.Rewritten)
	if !strings.HasSuffix(report.Rewritten, "\n") {
		fmt.Fprintln(r.w, "")
	}
}

func (r *Reporter) printSpan(s Span) {
	offsets := fmt.Sprintf("[%d,%d)", s.Start, s.End)
	fmt.Fprintf(r.w, "%s %q\n", RenderStyle(StyleGray, offsets, r.useColors), s.Content)
}

func (r *Reporter) printFailures(failures []*FileError) {
	if len(failures) == 0 {
		return
	}
	r.printHeader(StyleRed, fmt.Sprintf("Skipped files (%d)", len(failures)))
	for _, f := range failures {
		fmt.Fprintf(r.w, "• %s\n", f.Error())
	}
}

func (r *Reporter) printHeader(style lipgloss.Style, title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(style, title, r.useColors))
	fmt.Fprintln(r.w, strings.Repeat("-", len([]rune(title))))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
