package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmigrate/internal/cssmigrate"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active rewrite rules and exceptions",
	Long:  `Print the rules in the order they are applied, followed by the exception list.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		set, err := buildRuleSet()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), cssmigrate.RenderRules(set, cssmigrate.ShouldUseColors(getBool("color", false))))
		return nil
	},
}
