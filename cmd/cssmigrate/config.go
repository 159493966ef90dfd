package main

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmigrate/internal/cssmigrate"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigPath = ".cssmigrate.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set
	// override keys the file or env already provided)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return errors.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return errors.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSMIGRATE_* prefix)
	if err := k.Load(env.Provider("CSSMIGRATE_", ".", func(s string) string {
		// CSSMIGRATE_DRY_RUN -> dry-run
		// CSSMIGRATE_RESPECT_GITIGNORE -> respect-gitignore
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSMIGRATE_")),
			"_", "-",
		)
	}), nil); err != nil {
		return errors.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildOptions constructs the migration options from koanf state.
func buildOptions() (cssmigrate.Options, error) {
	opts := cssmigrate.Options{
		SourceDir:        getString("src", cssmigrate.DefaultSourceDir),
		OutputPath:       getString("output", cssmigrate.DefaultOutputPath),
		Extensions:       getStrings("extensions", cssmigrate.DefaultExtensions),
		Excludes:         getStrings("exclude", nil),
		RespectGitignore: getBool("respect-gitignore", false),
		DryRun:           getBool("dry-run", false),
		Diff:             getBool("diff", false),
	}

	// Rules and exceptions replace the built-in lists as a whole
	if k.Exists("rules") {
		var rules []cssmigrate.Rule
		if err := k.Unmarshal("rules", &rules); err != nil {
			return opts, errors.Errorf("reading rules: %w", err)
		}
		opts.Rules = rules
	}
	if k.Exists("exceptions") {
		opts.Exceptions = append([]string{}, k.Strings("exceptions")...)
	}

	return opts, nil
}

// buildRuleSet compiles the configured rules, falling back to the defaults.
func buildRuleSet() (*cssmigrate.RuleSet, error) {
	opts, err := buildOptions()
	if err != nil {
		return nil, err
	}
	rules, exceptions := opts.Rules, opts.Exceptions
	if rules == nil {
		rules = cssmigrate.DefaultRules()
	}
	if exceptions == nil {
		exceptions = cssmigrate.DefaultExceptions()
	}
	return cssmigrate.CompileRules(rules, exceptions)
}

// newLogger returns the diagnostic logger; debug events only show with --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if getBool("verbose", false) {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().
		Level(level)
}

// getString returns the value for key, or defaultVal when unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBool returns the value for key, or defaultVal when unset.
func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getStrings returns the list for key, or defaultVal when unset or empty.
// A comma-separated string (from env) is split.
func getStrings(key string, defaultVal []string) []string {
	if !k.Exists(key) {
		return defaultVal
	}
	values := k.Strings(key)
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultVal
	}
	return result
}
