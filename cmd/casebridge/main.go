// Package main is the entry point for the casebridge CLI.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/yaklabco/casebridge/internal/cli"
	"github.com/yaklabco/casebridge/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)
	ctx := logging.WithLogger(context.Background(), logging.Default())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Failure sentinels carry no message of their own; the command
		// already reported the details.
		if !errors.Is(err, cli.ErrConvertFailures) && !errors.Is(err, cli.ErrSyncFailures) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitFailures
	}

	return cli.ExitSuccess
}
