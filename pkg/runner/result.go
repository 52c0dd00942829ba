package runner

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Output is the converted content. Nil when the file was skipped or
	// errored.
	Output []byte

	// Changed reports whether conversion altered the content.
	Changed bool

	// Written reports whether the file was rewritten in place.
	Written bool

	// Skipped reports whether the file was skipped (binary content).
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesChanged is the number of files whose content changed.
	FilesChanged int

	// FilesWritten is the number of files rewritten in place.
	FilesWritten int

	// FilesSkipped is the number of files skipped (binary content).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to process.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file's content changed.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
