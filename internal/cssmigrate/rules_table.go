package cssmigrate

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderRules renders the active rules and exceptions as a table
func RenderRules(set *RuleSet, useColors bool) string {
	rows := make([][]string, 0, len(set.Rules))
	for i, rule := range set.Rules {
		rows = append(rows, []string{strconv.Itoa(i + 1), rule.Pattern, rule.Replacement})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "PATTERN", "REPLACEMENT").
		Rows(rows...)
	if useColors {
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleCyan
			}
			return lipgloss.NewStyle()
		})
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n\nExceptions: ")
	if len(set.Exceptions) == 0 {
		b.WriteString("none")
	} else {
		b.WriteString(strings.Join(set.Exceptions, ", "))
	}
	b.WriteString("\n")
	return b.String()
}
