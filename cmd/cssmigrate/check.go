package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var errChangesPending = errors.Base("files still use deprecated utility classes")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry run that fails when any file would change (CI mode)",
	Long: `Compute the migration without writing anything.
Exits 1 when at least one file still contains a class the rules would rewrite.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		opts.DryRun = true

		summary, err := migrate(cmd.OutOrStdout(), opts)
		if err != nil {
			return err
		}
		if summary.FilesModified > 0 {
			return errors.Errorf("%w: %d file(s)", errChangesPending, summary.FilesModified)
		}
		return nil
	},
}
