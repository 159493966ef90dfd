package cssmigrate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

const buttonSource = `export function Button() {
  return <button className="rounded-md shadow-lg bg-gray-700 dark:bg-gray-800">Go</button>;
}

export function Avatar() {
  return <img className="rounded-full shadow-xs" />;
}
`

const buttonMigrated = `export function Button() {
  return <button className="rounded-lg shadow-sm bg-muted dark:bg-card">Go</button>;
}

export function Avatar() {
  return <img className="rounded-full shadow-xs" />;
}
`

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/components/Button.tsx": buttonSource,
		"src/components/plain.ts":   "export const x = 1;\n",
		"src/styles/app.css":        ".card { @apply rounded-md bg-gray-700; }\n",
		"src/index.html":            `<div class="rounded-md"></div>`,
	})
	return root
}

func runOptions(root string) Options {
	return Options{
		ProjectRoot: root,
		Now:         func() time.Time { return fixedTime },
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// chdir switches to dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

// recordingProgress keeps every progress event in arrival order
type recordingProgress struct {
	events []string
}

func (p *recordingProgress) Started(summary *Summary) {
	p.events = append(p.events, "started "+summary.BackupDir)
}

func (p *recordingProgress) FileChanged(change FileChange) {
	p.events = append(p.events, "changed "+change.Path)
}

func (p *recordingProgress) FileFailed(fe FileError) {
	p.events = append(p.events, "failed "+fe.Path)
}

func TestRun(t *testing.T) {
	root := newProject(t)

	summary, err := Run(runOptions(root))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 1, summary.FilesModified)
	assert.Equal(t, 4, summary.TotalReplacements)
	assert.Empty(t, summary.Errors)
	require.Len(t, summary.Changes, 1)
	assert.Equal(t, filepath.Join("src", "components", "Button.tsx"), summary.Changes[0].Path)
	assert.Empty(t, summary.Changes[0].Diff)

	// Rewritten source
	assert.Equal(t, buttonMigrated, readFile(t, filepath.Join(root, "src", "components", "Button.tsx")))

	// Non-eligible files untouched even though they match
	assert.Equal(t, ".card { @apply rounded-md bg-gray-700; }\n", readFile(t, filepath.Join(root, "src", "styles", "app.css")))
	assert.Equal(t, `<div class="rounded-md"></div>`, readFile(t, filepath.Join(root, "src", "index.html")))

	// Backup holds the original content
	assert.Equal(t, "src_backup_20260102_030405", summary.BackupDir)
	assert.Equal(t, buttonSource, readFile(t, filepath.Join(root, summary.BackupDir, "components", "Button.tsx")))

	// Design system emitted
	assert.Equal(t, filepath.Join("src", "lib", "design-system.ts"), summary.DesignSystemPath)
	assert.Equal(t, DesignSystemTemplate, readFile(t, filepath.Join(root, summary.DesignSystemPath)))
}

func TestRun_SecondRunChangesNothing(t *testing.T) {
	root := newProject(t)

	_, err := Run(runOptions(root))
	require.NoError(t, err)
	first := readFile(t, filepath.Join(root, "src", "components", "Button.tsx"))

	opts := runOptions(root)
	opts.Now = func() time.Time { return fixedTime.Add(time.Second) }
	summary, err := Run(opts)
	require.NoError(t, err)

	assert.Zero(t, summary.FilesModified)
	assert.Zero(t, summary.TotalReplacements)
	assert.Empty(t, summary.Changes)
	assert.Equal(t, first, readFile(t, filepath.Join(root, "src", "components", "Button.tsx")))
}

func TestRun_GeneratedFileIsNotRewritten(t *testing.T) {
	root := newProject(t)
	writeTree(t, root, map[string]string{
		"src/lib/design-system.ts": `export const old = "hover:shadow-md";` + "\n",
	})

	summary, err := Run(runOptions(root))
	require.NoError(t, err)

	for _, change := range summary.Changes {
		assert.NotEqual(t, filepath.Join("src", "lib", "design-system.ts"), change.Path)
	}
	assert.Equal(t, DesignSystemTemplate, readFile(t, filepath.Join(root, "src", "lib", "design-system.ts")))
}

func TestRun_MissingSourceDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.tsx": "rounded-md"})

	summary, err := Run(runOptions(root))
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, ErrSourceDirMissing))

	// Zero writes: no backup, no design system, source untouched
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app.tsx", entries[0].Name())
	assert.Equal(t, "rounded-md", readFile(t, filepath.Join(root, "app.tsx")))
}

func TestRun_SourceDirIsAFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src": "not a directory"})

	_, err := Run(runOptions(root))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceDirMissing))
}

func TestRun_InvalidRulesAbortBeforeBackup(t *testing.T) {
	root := newProject(t)
	opts := runOptions(root)
	opts.Rules = []Rule{{Pattern: `\brounded-(md`, Replacement: "rounded-lg"}}

	_, err := Run(opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRule))

	_, err = os.Stat(filepath.Join(root, "src_backup_20260102_030405"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, buttonSource, readFile(t, filepath.Join(root, "src", "components", "Button.tsx")))
}

func TestRun_PerFileErrorsDoNotHalt(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a-binary.ts"), []byte{0xff, 0xfe, 0x00}, 0o644))

	summary, err := Run(runOptions(root))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.FilesScanned)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, filepath.Join("src", "a-binary.ts"), summary.Errors[0].Path)
	assert.True(t, errors.Is(summary.Errors[0], ErrInvalidUTF8))

	// Files after the failing one are still processed
	assert.Equal(t, 1, summary.FilesModified)
	assert.Equal(t, buttonMigrated, readFile(t, filepath.Join(root, "src", "components", "Button.tsx")))
}

func TestRun_DryRun(t *testing.T) {
	root := newProject(t)
	opts := runOptions(root)
	opts.DryRun = true
	opts.Diff = true

	summary, err := Run(opts)
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.FilesModified)
	require.Len(t, summary.Changes, 1)
	assert.Contains(t, summary.Changes[0].Diff, `+  return <button className="rounded-lg shadow-sm bg-muted dark:bg-card">Go</button>;`)
	assert.Empty(t, summary.BackupDir)
	assert.Empty(t, summary.DesignSystemPath)

	// Nothing on disk changed
	assert.Equal(t, buttonSource, readFile(t, filepath.Join(root, "src", "components", "Button.tsx")))
	_, err = os.Stat(filepath.Join(root, "src", "lib", "design-system.ts"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "src_backup_20260102_030405"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_CustomSourceAndOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app/page.jsx":             `<p className="text-gray-500">hi</p>`,
		"app/vendor/legacy.js":     "rounded-md",
		"app/generated/ignored.ts": "rounded-md",
	})

	opts := runOptions(root)
	opts.SourceDir = "app"
	opts.OutputPath = "tokens.ts"
	opts.Excludes = []string{"vendor/**"}
	summary, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 2, summary.FilesModified)
	assert.Equal(t, "rounded-md", readFile(t, filepath.Join(root, "app", "vendor", "legacy.js")))
	assert.Equal(t, `<p className="text-muted-foreground">hi</p>`, readFile(t, filepath.Join(root, "app", "page.jsx")))
	assert.Equal(t, "app_backup_20260102_030405", summary.BackupDir)
	assert.Equal(t, filepath.Join("app", "tokens.ts"), summary.DesignSystemPath)
}

func TestRun_SourceDirIsWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"proj/components/Button.tsx": buttonSource,
	})
	proj := filepath.Join(root, "proj")
	chdir(t, proj)

	summary, err := Run(Options{
		SourceDir: ".",
		Now:       func() time.Time { return fixedTime },
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("..", "proj_backup_20260102_030405"), summary.BackupDir)
	assert.Equal(t, buttonSource, readFile(t, filepath.Join(root, "proj_backup_20260102_030405", "components", "Button.tsx")))
	assert.Equal(t, buttonMigrated, readFile(t, filepath.Join(proj, "components", "Button.tsx")))
	assert.Equal(t, filepath.Join("lib", "design-system.ts"), summary.DesignSystemPath)

	entries, err := os.ReadDir(proj)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"components", "lib"}, names)
}

func TestRun_BackupFailureAbortsBeforeRewrite(t *testing.T) {
	root := newProject(t)
	errDiskFull := errors.Base("disk full")

	opts := runOptions(root)
	opts.Backup = func(string, time.Time) (string, error) {
		return "", errDiskFull
	}
	progress := &recordingProgress{}
	opts.Progress = progress

	summary, err := Run(opts)
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, errDiskFull))
	assert.Contains(t, err.Error(), "backup failed")

	assert.Equal(t, buttonSource, readFile(t, filepath.Join(root, "src", "components", "Button.tsx")))
	_, err = os.Stat(filepath.Join(root, "src", "lib", "design-system.ts"))
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, progress.events)
}

func TestRun_AbsoluteSourceDir(t *testing.T) {
	elsewhere := t.TempDir()
	writeTree(t, elsewhere, map[string]string{
		"app/page.tsx": `<p className="rounded-xl">hi</p>`,
	})

	opts := runOptions(t.TempDir())
	opts.SourceDir = filepath.Join(elsewhere, "app")
	summary, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FilesModified)
	assert.Equal(t, `<p className="rounded-lg">hi</p>`, readFile(t, filepath.Join(elsewhere, "app", "page.tsx")))
	assert.Equal(t, `<p className="rounded-xl">hi</p>`, readFile(t, filepath.Join(elsewhere, "app_backup_20260102_030405", "page.tsx")))
	assert.Equal(t, DesignSystemTemplate, readFile(t, filepath.Join(elsewhere, "app", "lib", "design-system.ts")))
}

func TestRun_ReportsProgressWhileRunning(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a-binary.ts"), []byte{0xff, 0xfe, 0x00}, 0o644))

	progress := &recordingProgress{}
	opts := runOptions(root)
	opts.Progress = progress

	_, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"started src_backup_20260102_030405",
		"failed " + filepath.Join("src", "a-binary.ts"),
		"changed " + filepath.Join("src", "components", "Button.tsx"),
	}, progress.events)
}
