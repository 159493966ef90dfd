// Package main provides the cssmigrate CLI tool for migrating CSS utility classes
// onto a canonical design system.
package main

import (
	"fmt"
	"os"

	"github.com/yacobolo/cssmigrate/internal/cssmigrate"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cssmigrate.RenderStyle(cssmigrate.StyleRed, "✗ "+err.Error(), cssmigrate.ShouldUseColors(false)))
		os.Exit(1)
	}
}
