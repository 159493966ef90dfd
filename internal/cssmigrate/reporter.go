package cssmigrate

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter handles formatting and outputting migration results
type Reporter struct {
	w         io.Writer
	useColors bool
}

var _ Progress = (*Reporter)(nil)

// NewReporter creates a new reporter
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: useColors,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintStart announces the run
func (r *Reporter) PrintStart(summary *Summary) {
	if summary.BackupDir != "" {
		fmt.Fprintln(r.w, RenderStyle(StyleBlue, "Backup created: "+summary.BackupDir, r.useColors))
	}
	if summary.DryRun {
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Dry run: no files will be written", r.useColors))
	}
	fmt.Fprintln(r.w, RenderStyle(StyleBlue, "Starting design system migration...", r.useColors))
	fmt.Fprintln(r.w, "")
}

// PrintChanges prints one status line per modified file, followed by its diff if any
func (r *Reporter) PrintChanges(summary *Summary) {
	for _, change := range summary.Changes {
		r.FileChanged(change)
	}

	for _, fe := range summary.Errors {
		r.FileFailed(fe)
	}
}

// Started prints the run header as soon as the backup exists
func (r *Reporter) Started(summary *Summary) {
	r.PrintStart(summary)
}

// FileChanged prints the status line of a rewritten file
func (r *Reporter) FileChanged(change FileChange) {
	fmt.Fprintf(r.w, "%s %s (%s)\n",
		RenderStyle(StyleGreen, "✓", r.useColors),
		change.Path,
		pluralizeCount(change.Replacements, "replacement", "replacements"))

	if change.Diff != "" {
		r.printDiff(change.Diff)
	}
}

// FileFailed prints a per-file error
func (r *Reporter) FileFailed(fe FileError) {
	fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleRed, "✗", r.useColors), fe.Error())
}

// printDiff colors removed and added lines
func (r *Reporter) printDiff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		style := StyleGreen
		if strings.HasPrefix(line, "-") {
			style = StyleRed
		}
		fmt.Fprintf(r.w, "    %s\n", RenderStyle(style, line, r.useColors))
	}
}

// PrintSummary outputs the statistics block and the error list
func (r *Reporter) PrintSummary(summary *Summary) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, strings.Repeat("=", 60), r.useColors))
	if summary.DryRun {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Dry run complete!", r.useColors))
	} else {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Migration complete!", r.useColors))
	}
	fmt.Fprintln(r.w, "")

	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Statistics:", r.useColors))
	fmt.Fprintf(r.w, "   • Files scanned:         %d\n", summary.FilesScanned)
	fmt.Fprintf(r.w, "   • Files modified:        %d\n", summary.FilesModified)
	fmt.Fprintf(r.w, "   • Total replacements:    %d\n", summary.TotalReplacements)
	if summary.TotalSkipped > 0 {
		fmt.Fprintf(r.w, "   • Kept by exceptions:    %d\n", summary.TotalSkipped)
	}
	if summary.DesignSystemPath != "" {
		fmt.Fprintf(r.w, "   • Design system created: %s\n", summary.DesignSystemPath)
	}
	if summary.BackupDir != "" {
		fmt.Fprintf(r.w, "   • Backup created:        %s\n", summary.BackupDir)
	}

	if len(summary.Errors) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleRed, "Errors occurred:", r.useColors))
		for _, fe := range summary.Errors {
			fmt.Fprintf(r.w, "   • %s\n", fe.Error())
		}
	}
}

// PrintNextSteps prints the manual follow-up after a real run
func (r *Reporter) PrintNextSteps(summary *Summary) {
	if summary.DryRun {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run without --dry-run to apply the changes", r.useColors))
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Next steps:", r.useColors))
	fmt.Fprintln(r.w, "   1. Review changes: git diff")
	fmt.Fprintln(r.w, "   2. Test the app: pnpm dev")
	fmt.Fprintln(r.w, "   3. Commit: git add -A && git commit -m 'feat: design system migration'")
	fmt.Fprintf(r.w, "   4. On problems: restore from %s\n", summary.BackupDir)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
