package cssmigrate

import (
	"time"

	"github.com/rs/zerolog"
)

// Rule maps every match of Pattern to the literal Replacement
type Rule struct {
	Pattern     string `koanf:"pattern" json:"pattern"`         // `\brounded-md\b`
	Replacement string `koanf:"replacement" json:"replacement"` // "rounded-lg"
}

// RuleSet is an ordered, compiled list of rules plus the global exceptions
type RuleSet struct {
	Rules      []CompiledRule
	Exceptions []string // Literal substrings that suppress a replacement
}

// FileRecord holds the state of one file while it is being rewritten
type FileRecord struct {
	Path         string
	Original     string
	Modified     string
	Replacements int // Matches actually replaced
	Skipped      int // Matches left alone because of an exception
}

// Changed reports whether the rewrite altered the file
func (f FileRecord) Changed() bool {
	return f.Original != f.Modified
}

// FileError is a recoverable failure on a single file
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// FileChange summarizes one modified file for reporting
type FileChange struct {
	Path         string // Relative to the project root
	Replacements int
	Skipped      int
	Diff         string // Only populated when diffs are requested
}

// Summary aggregates one invocation
type Summary struct {
	FilesScanned      int
	FilesModified     int
	TotalReplacements int
	TotalSkipped      int
	Changes           []FileChange
	Errors            []FileError
	BackupDir         string // Empty on dry runs
	DesignSystemPath  string // Empty on dry runs
	DryRun            bool
}

// Options configures a migration run
type Options struct {
	ProjectRoot      string   // Working directory of the run (default ".")
	SourceDir        string   // Relative to ProjectRoot unless absolute (default "src")
	OutputPath       string   // Design system file, relative to SourceDir (default "lib/design-system.ts")
	Extensions       []string // Eligible file extensions (default .ts .tsx .js .jsx)
	Excludes         []string // Doublestar globs relative to SourceDir
	RespectGitignore bool     // Skip files ignored by ProjectRoot/.gitignore
	Rules            []Rule   // Ordered; nil means DefaultRules
	Exceptions       []string // nil means DefaultExceptions
	DryRun           bool     // Compute changes without touching the disk
	Diff             bool     // Attach line diffs to each FileChange
	Now              func() time.Time
	Backup           func(sourceDir string, t time.Time) (string, error) // nil means CreateBackup
	Progress         Progress                                            // nil reports nothing while running
	Logger           *zerolog.Logger                                     // nil disables diagnostic logging
}

// Progress receives events while a run is in flight.
// Started fires once the backup exists, before the first file is read.
type Progress interface {
	Started(summary *Summary)
	FileChanged(change FileChange)
	FileFailed(fe FileError)
}

// Defaults used when Options fields are left empty
const (
	DefaultSourceDir  = "src"
	DefaultOutputPath = "lib/design-system.ts"
)

// DefaultExtensions are the script and markup-in-script extensions eligible for rewriting
var DefaultExtensions = []string{".tsx", ".jsx", ".ts", ".js"}

// OutputFormat represents the report format
type OutputFormat string

const (
	// OutputText prints progress lines and a human summary
	OutputText OutputFormat = "text"
	// OutputJSON exports the summary as JSON (tooling integration)
	OutputJSON OutputFormat = "json"
)
