package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmigrate/internal/cssmigrate"
	"gitlab.com/tozd/go/errors"
)

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"run"},
	Short:   "Back up src/, rewrite utility classes and generate the design system",
	Long: `Copy src/ to src_backup_<timestamp>, rewrite every .ts/.tsx/.js/.jsx file
with the configured rules and write the design system module.
Files that fail to read or write are reported and skipped.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigrate(cmd)
	},
}

// runMigrate is shared between `cssmigrate` and `cssmigrate migrate`.
func runMigrate(cmd *cobra.Command) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}
	_, err = migrate(cmd.OutOrStdout(), opts)
	return err
}

// migrate runs the migration and writes the report. Per-file errors are part of the
// report and do not fail the command. Text output streams file lines while the run progresses.
func migrate(w io.Writer, opts cssmigrate.Options) (*cssmigrate.Summary, error) {
	logger := newLogger()
	opts.Logger = &logger

	quiet := getBool("quiet", false)
	format := cssmigrate.DetermineOutputFormat(getString("output-format", ""))
	useColors := cssmigrate.ShouldUseColors(getBool("color", false))

	var reporter *cssmigrate.Reporter
	if !quiet && format == cssmigrate.OutputText {
		reporter = cssmigrate.NewReporter(w, useColors)
		opts.Progress = reporter
	}

	summary, err := cssmigrate.Run(opts)
	if err != nil {
		if errors.Is(err, cssmigrate.ErrSourceDirMissing) {
			return nil, errors.Errorf("%w (run cssmigrate from the project root, where %s/ lives)", err, opts.SourceDir)
		}
		return nil, err
	}

	switch {
	case quiet:
	case reporter != nil:
		reporter.PrintSummary(summary)
		reporter.PrintNextSteps(summary)
	default:
		if err := cssmigrate.WriteOutput(w, summary, format, useColors); err != nil {
			return summary, errors.Errorf("writing output: %w", err)
		}
	}

	return summary, nil
}
