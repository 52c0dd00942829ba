package cli

import "github.com/yaklabco/casebridge/pkg/runner"

// Exit codes for casebridge.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailures indicates the command completed but some work failed
	// (files that could not be converted, results that could not be copied).
	ExitFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a conversion run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitFailures
	}

	return ExitSuccess
}
