package cssmigrate

import (
	"io"
	"os"
	"path/filepath"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"gitlab.com/tozd/go/errors"
)

// ErrUnbalancedTemplate is returned when the design system source has mismatched brackets
var ErrUnbalancedTemplate = errors.Base("unbalanced brackets in design system template")

// DesignSystemTemplate is the canonical token module written after a migration.
// It is static: nothing in it depends on the scan.
const DesignSystemTemplate = `// Central design system (generated by cssmigrate)

import { cn } from "~/lib/utils";

// Border radius
export const borderRadius = {
  default: "rounded-lg",
  avatar: "rounded-full",
  none: "rounded-none",
} as const;

// Shadows
export const shadows = {
  default: "shadow-sm",
  none: "shadow-none",
  xs: "shadow-xs",
} as const;

// Spacing
export const spacing = {
  xs: "p-1",
  sm: "p-2",
  md: "p-3",
  lg: "p-4",
  xl: "p-6",
  "2xl": "p-8",
  "3xl": "p-12",
} as const;

// Component presets
export const components = {
  button: {
    base: cn(borderRadius.default, shadows.default, "transition-all hover:shadow-md"),
    variants: {
      primary: "bg-primary text-primary-foreground",
      secondary: "bg-secondary text-secondary-foreground",
      outline: "border border-border bg-background",
      ghost: "bg-transparent hover:bg-accent",
      destructive: "bg-destructive text-destructive-foreground",
    },
  },
  card: {
    base: cn(borderRadius.default, shadows.default, "bg-card text-card-foreground border border-border"),
  },
} as const;

export const getDesignToken = <T extends keyof typeof borderRadius>(
  token: T,
): typeof borderRadius[T] => borderRadius[token];

export const getShadow = <T extends keyof typeof shadows>(
  token: T,
): typeof shadows[T] => shadows[token];

export const getSpacing = <T extends keyof typeof spacing>(
  token: T,
): typeof spacing[T] => spacing[token];

export type BorderRadius = keyof typeof borderRadius;
export type Shadow = keyof typeof shadows;
export type Spacing = keyof typeof spacing;
`

var closers = map[string]string{
	"}": "{",
	")": "(",
	"]": "[",
}

// VerifyDesignSystem tokenizes source with the JS lexer and checks that braces,
// parentheses and brackets are balanced. WriteDesignSystem runs it on the template
// before every write.
func VerifyDesignSystem(source string) error {
	lexer := js.NewLexer(parse.NewInputString(source))
	var stack []string

	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return errors.Errorf("lex design system: %w", err)
			}
			break
		}

		switch tok := string(text); tok {
		case "{", "(", "[":
			stack = append(stack, tok)
		case "}", ")", "]":
			if len(stack) == 0 || stack[len(stack)-1] != closers[tok] {
				return errors.Errorf("%w: unexpected %q", ErrUnbalancedTemplate, tok)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return errors.Errorf("%w: %d unclosed", ErrUnbalancedTemplate, len(stack))
	}
	return nil
}

// WriteDesignSystem writes the template to path, creating parent directories.
// Any existing file is overwritten.
func WriteDesignSystem(path string) error {
	if err := VerifyDesignSystem(DesignSystemTemplate); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	// #nosec G306 - generated source file, same mode as hand-written sources
	if err := os.WriteFile(path, []byte(DesignSystemTemplate), 0o644); err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}

	return nil
}
