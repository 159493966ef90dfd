package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssmigrate",
	Short: "Migrate CSS utility classes onto a canonical design system",
	Long: `Rewrite radius, gray-scale and shadow utility classes in src/ onto a smaller
canonical set, then generate src/lib/design-system.ts with the canonical tokens.
A timestamped copy of src/ is made before any file is touched.`,
	// Default behavior: run migrate when no subcommand is given.
	// We must call loadConfig here because PreRunE of migrateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runMigrate(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "Enable verbose logging")
	f.Bool("quiet", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("config", defaultConfigPath, "Config file path")
	f.String("src", "src", "Source directory, relative to the working directory")
	f.String("output", "lib/design-system.ts", "Design system file, relative to the source directory")
	f.StringSlice("extensions", []string{".tsx", ".jsx", ".ts", ".js"}, "File extensions to rewrite")
	f.StringSlice("exclude", nil, "Glob patterns (relative to the source directory) to leave alone")
	f.Bool("respect-gitignore", false, "Skip files ignored by .gitignore")
	f.Bool("dry-run", false, "Report changes without writing anything")
	f.Bool("diff", false, "Print a line diff for every changed file")
	f.String("output-format", "text", "Output format: text|json")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
