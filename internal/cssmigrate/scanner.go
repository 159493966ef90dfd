package cssmigrate

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"gitlab.com/tozd/go/errors"
)

// ScanConfig controls which files under SourceDir are eligible for rewriting
type ScanConfig struct {
	ProjectRoot      string   // Where .gitignore is looked up
	SourceDir        string   // Directory to walk
	Extensions       []string // Exact, case-sensitive suffixes including the dot
	Excludes         []string // Doublestar globs relative to SourceDir
	RespectGitignore bool
	Skip             []string // Paths never returned (the generated design system file)
	Logger           zerolog.Logger
}

// ScanResult lists eligible files in lexical order
type ScanResult struct {
	Files      []string
	Discovered int         // Regular files seen under SourceDir
	Skipped    int         // Eligible by extension but excluded by glob, gitignore or Skip
	Errors     []FileError // Entries that could not be visited
}

// ScanFiles walks SourceDir and returns the files to rewrite.
//
// Filtering runs in three layers:
//  1. Extension check against the eligible set
//  2. Explicit skips and doublestar exclude globs
//  3. The project .gitignore, only when RespectGitignore is set
func ScanFiles(cfg ScanConfig) (*ScanResult, error) {
	for _, pattern := range cfg.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[ext] = true
	}

	skip := make(map[string]bool, len(cfg.Skip))
	for _, p := range cfg.Skip {
		skip[filepath.Clean(p)] = true
	}

	var gi *ignore.GitIgnore
	if cfg.RespectGitignore {
		gi = loadGitIgnore(cfg.ProjectRoot)
	}

	result := &ScanResult{}
	err := filepath.WalkDir(cfg.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == cfg.SourceDir {
				return err
			}
			result.Errors = append(result.Errors, FileError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		result.Discovered++
		if !extensions[filepath.Ext(path)] {
			return nil
		}

		if reason := shouldSkipFile(cfg, path, skip, gi); reason != "" {
			result.Skipped++
			cfg.Logger.Debug().Str("file", path).Str("reason", reason).Msg("skipping file")
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walk %s: %w", cfg.SourceDir, err)
	}

	return result, nil
}

// shouldSkipFile returns a non-empty reason when an eligible file must not be rewritten
func shouldSkipFile(cfg ScanConfig, path string, skip map[string]bool, gi *ignore.GitIgnore) string {
	if skip[filepath.Clean(path)] {
		return "generated"
	}

	if rel, err := filepath.Rel(cfg.SourceDir, path); err == nil {
		rel = filepath.ToSlash(rel)
		for _, pattern := range cfg.Excludes {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return "excluded"
			}
		}
	}

	if gi != nil {
		if rel, err := filepath.Rel(cfg.ProjectRoot, path); err == nil && gi.MatchesPath(filepath.ToSlash(rel)) {
			return "gitignored"
		}
	}

	return ""
}

// loadGitIgnore loads ProjectRoot/.gitignore.
// Gracefully degrades to nil if the file doesn't exist.
func loadGitIgnore(projectRoot string) *ignore.GitIgnore {
	path := filepath.Join(projectRoot, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
