package cssmigrate

import (
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidRule is returned for rules with an empty or malformed pattern
	ErrInvalidRule = errors.Base("invalid rule")
	// ErrNotIdempotent is returned when a replacement would be matched again on a second run
	ErrNotIdempotent = errors.Base("rule set is not idempotent")
)

// CompiledRule is a Rule with its pattern compiled
type CompiledRule struct {
	Rule
	re *regexp.Regexp
}

// grayShades is the numeric suffix alternation shared by every gray-scale rule
const grayShades = `(?:50|100|200|300|400|500|600|700|800|900)`

// DefaultRules returns the built-in rule list.
//
// Order matters: the dark-mode gray rules run before the generic ones, otherwise
// `\bbg-gray-700\b` rewrites the tail of "dark:bg-gray-700" first.
func DefaultRules() []Rule {
	return []Rule{
		// Border radius
		{Pattern: `\brounded-sm\b`, Replacement: "rounded-lg"},
		{Pattern: `\brounded-md\b`, Replacement: "rounded-lg"},
		{Pattern: `\brounded-xl\b`, Replacement: "rounded-lg"},
		{Pattern: `\brounded-2xl\b`, Replacement: "rounded-lg"},
		{Pattern: `\brounded-3xl\b`, Replacement: "rounded-lg"},

		// Dark mode grays
		{Pattern: `\bdark:bg-gray-` + grayShades + `\b`, Replacement: "dark:bg-card"},
		{Pattern: `\bdark:text-gray-` + grayShades + `\b`, Replacement: "dark:text-muted-foreground"},
		{Pattern: `\bdark:border-gray-` + grayShades + `\b`, Replacement: "dark:border-border"},

		// Grays
		{Pattern: `\bbg-gray-` + grayShades + `\b`, Replacement: "bg-muted"},
		{Pattern: `\btext-gray-` + grayShades + `\b`, Replacement: "text-muted-foreground"},
		{Pattern: `\bborder-gray-` + grayShades + `\b`, Replacement: "border-border"},

		// Shadows
		{Pattern: `\bshadow-(?:md|lg|xl|2xl)\b`, Replacement: "shadow-sm"},
	}
}

// DefaultExceptions returns the tokens that must never be rewritten
func DefaultExceptions() []string {
	return []string{
		"rounded-full",
		"rounded-none",
		"shadow-none",
		"shadow-xs",
	}
}

// CompileRules compiles rules in order and verifies the set is idempotent:
// no replacement may itself be rewritten by any rule.
func CompileRules(rules []Rule, exceptions []string) (*RuleSet, error) {
	set := &RuleSet{
		Rules:      make([]CompiledRule, 0, len(rules)),
		Exceptions: append([]string(nil), exceptions...),
	}

	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, errors.Errorf("%w: rule %d: pattern is required", ErrInvalidRule, i+1)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("%w: rule %d: %s", ErrInvalidRule, i+1, err.Error())
		}
		set.Rules = append(set.Rules, CompiledRule{Rule: rule, re: re})
	}

	for i, producer := range set.Rules {
		for j, consumer := range set.Rules {
			for _, m := range consumer.re.FindAllString(producer.Replacement, -1) {
				if set.isException(m) {
					continue
				}
				return nil, errors.Errorf("%w: replacement %q of rule %d matches pattern %q of rule %d",
					ErrNotIdempotent, producer.Replacement, i+1, consumer.Pattern, j+1)
			}
		}
	}

	return set, nil
}

// MustDefaultRuleSet compiles the built-in rules; they are known to be valid
func MustDefaultRuleSet() *RuleSet {
	set, err := CompileRules(DefaultRules(), DefaultExceptions())
	if err != nil {
		panic(fmt.Sprintf("default rules: %v", err))
	}
	return set
}

// isException reports whether a matched token contains any exception substring
func (s *RuleSet) isException(match string) bool {
	for _, exc := range s.Exceptions {
		if exc != "" && strings.Contains(match, exc) {
			return true
		}
	}
	return false
}
