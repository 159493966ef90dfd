package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssmigrate.yaml config file",
	Long:  `Create a .cssmigrate.yaml configuration file in the current directory with the built-in rules.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return errors.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return errors.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created "+defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssmigrate configuration

src: src
output: lib/design-system.ts   # relative to src
extensions: [".tsx", ".jsx", ".ts", ".js"]
exclude: []                    # globs relative to src, e.g. "generated/**"
respect-gitignore: false
output-format: text            # text | json

# Rules run top to bottom over the already rewritten text.
# Dark mode rules must come before the generic gray rules.
rules:
  - { pattern: '\brounded-sm\b', replacement: rounded-lg }
  - { pattern: '\brounded-md\b', replacement: rounded-lg }
  - { pattern: '\brounded-xl\b', replacement: rounded-lg }
  - { pattern: '\brounded-2xl\b', replacement: rounded-lg }
  - { pattern: '\brounded-3xl\b', replacement: rounded-lg }
  - { pattern: '\bdark:bg-gray-(?:50|100|200|300|400|500|600|700|800|900)\b', replacement: 'dark:bg-card' }
  - { pattern: '\bdark:text-gray-(?:50|100|200|300|400|500|600|700|800|900)\b', replacement: 'dark:text-muted-foreground' }
  - { pattern: '\bdark:border-gray-(?:50|100|200|300|400|500|600|700|800|900)\b', replacement: 'dark:border-border' }
  - { pattern: '\bbg-gray-(?:50|100|200|300|400|500|600|700|800|900)\b', replacement: bg-muted }
  - { pattern: '\btext-gray-(?:50|100|200|300|400|500|600|700|800|900)\b', replacement: text-muted-foreground }
  - { pattern: '\bborder-gray-(?:50|100|200|300|400|500|600|700|800|900)\b', replacement: border-border }
  - { pattern: '\bshadow-(?:md|lg|xl|2xl)\b', replacement: shadow-sm }

# A match containing any of these is never rewritten
exceptions:
  - rounded-full
  - rounded-none
  - shadow-none
  - shadow-xs
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
