package cssmigrate

import (
	"os"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is recorded for files whose content cannot be decoded as UTF-8
var ErrInvalidUTF8 = errors.Base("invalid UTF-8 content")

// Rewrite applies every rule in order over the evolving content.
//
// Each rule sees the output of the rules before it. A match that contains an
// exception substring is kept verbatim and counted as skipped, not replaced.
func (s *RuleSet) Rewrite(content string) (string, int, int) {
	var replaced, skipped int

	for _, rule := range s.Rules {
		content = rule.re.ReplaceAllStringFunc(content, func(match string) string {
			if s.isException(match) {
				skipped++
				return match
			}
			replaced++
			return rule.Replacement
		})
	}

	return content, replaced, skipped
}

// RewriteFile reads path, rewrites it and writes it back when it changed.
// With dryRun set the file is never opened for writing.
func (s *RuleSet) RewriteFile(path string, dryRun bool) (FileRecord, error) {
	record := FileRecord{Path: path}

	// #nosec G304 - path comes from the directory scan
	data, err := os.ReadFile(path)
	if err != nil {
		return record, errors.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return record, errors.WithStack(ErrInvalidUTF8)
	}

	record.Original = string(data)
	record.Modified, record.Replacements, record.Skipped = s.Rewrite(record.Original)

	if !record.Changed() || dryRun {
		return record, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return record, errors.Errorf("stat file: %w", err)
	}
	if err := os.WriteFile(path, []byte(record.Modified), info.Mode().Perm()); err != nil {
		return record, errors.Errorf("write file: %w", err)
	}

	return record, nil
}
