package cssmigrate

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrSourceDirMissing is returned when the run starts outside a project root
var ErrSourceDirMissing = errors.Base("source directory not found")

// Run is the main entry point: backup, rewrite every eligible file, emit the design system.
//
// Fatal errors (missing source dir, bad rules, failed backup or emission) are returned.
// Per-file failures are collected in Summary.Errors and never stop the run.
func Run(opts Options) (*Summary, error) {
	opts = withDefaults(opts)
	log := *opts.Logger

	root, err := filepath.Abs(opts.ProjectRoot)
	if err != nil {
		return nil, errors.Errorf("resolve project root %s: %w", opts.ProjectRoot, err)
	}
	opts.ProjectRoot = root

	srcDir := opts.SourceDir
	if !filepath.IsAbs(srcDir) {
		srcDir = filepath.Join(root, srcDir)
	}
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Errorf("%w: %s", ErrSourceDirMissing, srcDir)
	}

	// 1. Compile rules before anything touches the disk
	rules, err := CompileRules(opts.Rules, opts.Exceptions)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rules", len(rules.Rules)).Strs("exceptions", rules.Exceptions).Msg("rules compiled")

	summary := &Summary{DryRun: opts.DryRun}
	designSystemPath := filepath.Join(srcDir, opts.OutputPath)

	// 2. Backup
	if !opts.DryRun {
		backupDir, err := opts.Backup(srcDir, opts.Now())
		if err != nil {
			return nil, errors.Errorf("backup failed: %w", err)
		}
		summary.BackupDir = relativeTo(opts.ProjectRoot, backupDir)
		log.Debug().Str("dir", backupDir).Msg("backup created")
	}

	if opts.Progress != nil {
		opts.Progress.Started(summary)
	}

	// 3. Scan
	scan, err := ScanFiles(ScanConfig{
		ProjectRoot:      opts.ProjectRoot,
		SourceDir:        srcDir,
		Extensions:       opts.Extensions,
		Excludes:         opts.Excludes,
		RespectGitignore: opts.RespectGitignore,
		Skip:             []string{designSystemPath},
		Logger:           log,
	})
	if err != nil {
		return nil, errors.Errorf("scan failed: %w", err)
	}
	for _, fe := range scan.Errors {
		summary.addError(opts.Progress, FileError{Path: relativeTo(opts.ProjectRoot, fe.Path), Err: fe.Err})
	}

	// 4. Rewrite
	for _, path := range scan.Files {
		summary.FilesScanned++
		rel := relativeTo(opts.ProjectRoot, path)

		record, err := rules.RewriteFile(path, opts.DryRun)
		if err != nil {
			log.Debug().Str("file", rel).Err(err).Msg("rewrite failed")
			summary.addError(opts.Progress, FileError{Path: rel, Err: err})
			continue
		}

		summary.TotalReplacements += record.Replacements
		summary.TotalSkipped += record.Skipped
		if !record.Changed() {
			continue
		}

		summary.FilesModified++
		change := FileChange{
			Path:         rel,
			Replacements: record.Replacements,
			Skipped:      record.Skipped,
		}
		if opts.Diff {
			change.Diff = LineDiff(record.Original, record.Modified)
		}
		summary.Changes = append(summary.Changes, change)
		if opts.Progress != nil {
			opts.Progress.FileChanged(change)
		}

		log.Debug().
			Str("file", rel).
			Int("replacements", record.Replacements).
			Int("skipped", record.Skipped).
			Bool("dry_run", opts.DryRun).
			Msg("file rewritten")
	}

	// 5. Emit the design system
	if !opts.DryRun {
		if err := WriteDesignSystem(designSystemPath); err != nil {
			return summary, errors.Errorf("design system: %w", err)
		}
		summary.DesignSystemPath = relativeTo(opts.ProjectRoot, designSystemPath)
	}

	return summary, nil
}

// withDefaults fills unset options
func withDefaults(opts Options) Options {
	if opts.ProjectRoot == "" {
		opts.ProjectRoot = "."
	}
	if opts.SourceDir == "" {
		opts.SourceDir = DefaultSourceDir
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Rules == nil {
		opts.Rules = DefaultRules()
	}
	if opts.Exceptions == nil {
		opts.Exceptions = DefaultExceptions()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Backup == nil {
		opts.Backup = CreateBackup
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	return opts
}

// addError records a per-file failure and forwards it to progress
func (s *Summary) addError(progress Progress, fe FileError) {
	s.Errors = append(s.Errors, fe)
	if progress != nil {
		progress.FileFailed(fe)
	}
}

// relativeTo returns path relative to root, or path itself if that fails
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
