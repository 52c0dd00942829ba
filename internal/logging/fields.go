// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCount      = "count"

	// Configuration fields.
	FieldWrite  = "write"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Conversion statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// API client fields.
	FieldMethod  = "method"
	FieldURL     = "url"
	FieldAttempt = "attempt"

	// Sync fields.
	FieldProject = "project"
	FieldStatus  = "status"
	FieldRun     = "run"
	FieldCaseID  = "case_id"
	FieldMapping = "mapping"
	FieldCopied  = "copied"
	FieldSkipped = "skipped"
	FieldErrors  = "errors"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
