package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/casebridge/pkg/runner"
	"github.com/yaklabco/casebridge/pkg/sync"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatConvertSummary formats a conversion run as a per-file listing plus a
// one-line summary. Example: "2 files changed of 5 processed, 1 error".
func (s *Styles) FormatConvertSummary(result *runner.Result, write bool) string {
	if result == nil {
		return ""
	}

	var builder strings.Builder

	for i := range result.Files {
		file := &result.Files[i]
		switch {
		case file.Error != nil:
			builder.WriteString(s.Failure.Render("error") + "    " +
				s.FilePath.Render(file.Path) +
				s.Dim.Render(": "+file.Error.Error()) + "\n")
		case file.Skipped:
			builder.WriteString(s.Dim.Render("skipped") + "  " +
				s.FilePath.Render(file.Path) + "\n")
		case file.Written:
			builder.WriteString(s.Success.Render("written") + "  " +
				s.FilePath.Render(file.Path) + "\n")
		case file.Changed && write:
			// Dry-run: the file would have been rewritten.
			builder.WriteString(s.Warning.Render("would write") + "  " +
				s.FilePath.Render(file.Path) + "\n")
		case file.Changed:
			builder.WriteString(s.Info.Render("changed") + "  " +
				s.FilePath.Render(file.Path) + "\n")
		}
	}

	builder.WriteString(s.formatConvertOneLine(result.Stats))
	return builder.String()
}

func (s *Styles) formatConvertOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesSkipped == 0 {
		return s.Dim.Render("No convertible files found") + "\n"
	}

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No tables found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, pluralFile(stats.FilesProcessed))) + "\n"
	}

	var parts []string

	changedWord := pluralFile(stats.FilesChanged)
	parts = append(parts, fmt.Sprintf("%d %s changed of %d processed",
		stats.FilesChanged, changedWord, stats.FilesProcessed))

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		errorWord := "errors"
		if stats.FilesErrored == 1 {
			errorWord = "error"
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s", stats.FilesErrored, errorWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

func pluralFile(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSyncSummary formats a copy summary as a single line.
// Example: "4 copied, 1 skipped, 2 errors (7 results)".
func (s *Styles) FormatSyncSummary(summary sync.Summary) string {
	if summary.Total() == 0 {
		return s.Dim.Render("No results to copy") + "\n"
	}

	copied := fmt.Sprintf("%d copied", summary.Copied)
	if summary.Copied > 0 {
		copied = s.Success.Render(copied)
	}

	parts := []string{copied}

	if summary.Skipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", summary.Skipped)))
	}
	if summary.Errors > 0 {
		errorWord := "errors"
		if summary.Errors == 1 {
			errorWord = "error"
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s", summary.Errors, errorWord)))
	}

	resultWord := "results"
	if summary.Total() == 1 {
		resultWord = "result"
	}

	return strings.Join(parts, ", ") +
		s.Dim.Render(fmt.Sprintf(" (%d %s)", summary.Total(), resultWord)) + "\n"
}
