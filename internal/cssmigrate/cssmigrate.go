// Package cssmigrate rewrites CSS utility classes in a JS/TS source tree onto a
// smaller canonical set and emits a design system module exposing those tokens.
//
// # Rules
//
// A rule is a regular expression matching a whole utility class token and a fixed
// replacement:
//
//	\brounded-md\b                        → rounded-lg
//	\bbg-gray-(?:50|100|...|900)\b        → bg-muted
//	\bshadow-(?:md|lg|xl|2xl)\b           → shadow-sm
//
// Rules run in order over the evolving buffer, so a later rule sees what earlier rules
// produced. A match containing an exception substring (rounded-full, shadow-xs, ...) is
// left alone. CompileRules rejects rule sets whose replacements would be rewritten again,
// which keeps a second run a no-op.
//
// # Running
//
//	summary, err := cssmigrate.Run(cssmigrate.Options{SourceDir: "src"})
//
// Run copies src to a timestamped sibling directory, rewrites every eligible file and
// writes src/lib/design-system.ts. Per-file failures end up in Summary.Errors.
package cssmigrate
