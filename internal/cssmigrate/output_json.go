package cssmigrate

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	DryRun    bool         `json:"dry_run"`
	Stats     JSONStats    `json:"stats"`
	Files     []JSONFile   `json:"files"`
	Errors    []JSONError  `json:"errors"`
	Artifacts JSONArtifact `json:"artifacts"`
}

// JSONStats contains aggregate counts
type JSONStats struct {
	FilesScanned      int `json:"files_scanned"`
	FilesModified     int `json:"files_modified"`
	TotalReplacements int `json:"total_replacements"`
	KeptByExceptions  int `json:"kept_by_exceptions"`
}

// JSONFile represents one modified file
type JSONFile struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Skipped      int    `json:"skipped,omitempty"`
	Diff         string `json:"diff,omitempty"`
}

// JSONError represents a per-file failure
type JSONError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// JSONArtifact lists what the run left on disk
type JSONArtifact struct {
	BackupDir    string `json:"backup_dir,omitempty"`
	DesignSystem string `json:"design_system,omitempty"`
}

// WriteJSON writes the summary as JSON
func WriteJSON(w io.Writer, summary *Summary) error {
	output := buildJSONOutput(summary)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Summary to JSONOutput
func buildJSONOutput(summary *Summary) JSONOutput {
	files := make([]JSONFile, len(summary.Changes))
	for i, change := range summary.Changes {
		files[i] = JSONFile{
			Path:         change.Path,
			Replacements: change.Replacements,
			Skipped:      change.Skipped,
			Diff:         change.Diff,
		}
	}

	errs := make([]JSONError, len(summary.Errors))
	for i, fe := range summary.Errors {
		errs[i] = JSONError{
			Path:    fe.Path,
			Message: fe.Err.Error(),
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		DryRun:    summary.DryRun,
		Stats: JSONStats{
			FilesScanned:      summary.FilesScanned,
			FilesModified:     summary.FilesModified,
			TotalReplacements: summary.TotalReplacements,
			KeptByExceptions:  summary.TotalSkipped,
		},
		Files:  files,
		Errors: errs,
		Artifacts: JSONArtifact{
			BackupDir:    summary.BackupDir,
			DesignSystem: summary.DesignSystemPath,
		},
	}
}
