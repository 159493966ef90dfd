package cssmigrate

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	cp "github.com/otiai10/copy"
	"gitlab.com/tozd/go/errors"
)

// ErrBackupInsideSource is returned when the backup directory would land inside the tree it copies
var ErrBackupInsideSource = errors.Base("backup directory is inside the source directory")

// BackupTimeFormat is the timestamp suffix of backup directories (YYYYMMDD_HHMMSS)
const BackupTimeFormat = "20060102_150405"

// BackupDirName returns the sibling directory a backup of sourceDir taken at t goes to
func BackupDirName(sourceDir string, t time.Time) string {
	clean := filepath.Clean(sourceDir)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+"_backup_"+t.Format(BackupTimeFormat))
}

// CreateBackup copies sourceDir to a timestamped sibling directory and returns its absolute path.
// An existing directory with the same name is replaced. Symlinks are copied as links.
// A failed copy leaves nothing behind.
func CreateBackup(sourceDir string, t time.Time) (string, error) {
	// "." has no usable base name, so resolve before naming the sibling
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", errors.Errorf("resolve %s: %w", sourceDir, err)
	}
	backupDir := BackupDirName(absSource, t)

	if isWithin(absSource, backupDir) {
		return "", errors.Errorf("%w: %s", ErrBackupInsideSource, backupDir)
	}

	if _, err := os.Lstat(backupDir); err == nil {
		if err := os.RemoveAll(backupDir); err != nil {
			return "", errors.Errorf("remove stale backup %s: %w", backupDir, err)
		}
	}

	err = cp.Copy(absSource, backupDir, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
	})
	if err != nil {
		_ = os.RemoveAll(backupDir)
		return "", errors.Errorf("copy %s to %s: %w", absSource, backupDir, err)
	}

	return backupDir, nil
}

// isWithin reports whether path is dir or lies below it. Both must be absolute.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
