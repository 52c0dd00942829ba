package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/casebridge/internal/configloader"
	"github.com/yaklabco/casebridge/internal/logging"
	"github.com/yaklabco/casebridge/internal/ui/pretty"
	"github.com/yaklabco/casebridge/pkg/qase"
	"github.com/yaklabco/casebridge/pkg/sync"
)

// ErrSyncFailures is returned when some results could not be copied.
var ErrSyncFailures = errors.New("sync failures")

type syncFlags struct {
	projectA      string
	runA          int
	projectB      string
	runB          int
	mappingField  int
	convertTables bool
	summaryFile   string
	throttleMs    int
}

func newSyncCommand() *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy run results between tracking projects",
		Long:  syncLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.projectA, "project-a", "", "target project code (results are copied into it)")
	cmd.Flags().IntVar(&flags.runA, "run-a", 0, "target run ID")
	cmd.Flags().StringVar(&flags.projectB, "project-b", "", "source project code (results are read from it)")
	cmd.Flags().IntVar(&flags.runB, "run-b", 0, "source run ID")
	cmd.Flags().IntVar(&flags.mappingField, "mapping-field", 0,
		"custom-field ID correlating cases between projects")
	cmd.Flags().BoolVar(&flags.convertTables, "convert-tables", false,
		"convert HTML tables in copied comments to Markdown")
	cmd.Flags().StringVar(&flags.summaryFile, "summary-file", "",
		"write a JSON copy summary to this file")
	cmd.Flags().IntVar(&flags.throttleMs, "throttle-ms", 0,
		"pause between result writes in milliseconds")

	for _, name := range []string{"project-a", "run-a", "project-b", "run-b"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

const syncLongDescription = `Copy test-run results from project B into project A.

Results are read from project B (filtered to --run-b) and re-created
in project A under --run-a. Cases are correlated through a shared
custom field: every case in project A carries its project-B
counterpart's ID in that field. Results whose source case has no
counterpart in project A are skipped.

The API token is read from the QASE_API_TOKEN environment variable
(or CASEBRIDGE_API_TOKEN); it is never read from config files.

Examples:
  casebridge sync --project-a CORE --run-a 12 --project-b LEGACY --run-b 4
  casebridge sync --project-a A --run-a 1 --project-b B --run-b 2 --convert-tables
  casebridge sync --project-a A --run-a 1 --project-b B --run-b 2 --summary-file summary.json`

func runSync(cmd *cobra.Command, flags *syncFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if cfg.API.Token == "" {
		return errors.New("no API token: set QASE_API_TOKEN in the environment")
	}

	client, err := qase.New(qase.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout(),
		Retries: cfg.API.Retries,
		Backoff: cfg.API.Backoff(),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	// CLI flags win over config for the copy parameters.
	mappingField := cfg.Sync.MappingFieldID
	if flags.mappingField != 0 {
		mappingField = flags.mappingField
	}
	throttle := cfg.Sync.Throttle()
	if flags.throttleMs != 0 {
		throttle = time.Duration(flags.throttleMs) * time.Millisecond
	}
	summaryFile := cfg.Sync.SummaryFile
	if flags.summaryFile != "" {
		summaryFile = flags.summaryFile
	}
	convertTables := cfg.Sync.ConvertTables || flags.convertTables

	// Results flow B -> A: project-b/run-b is read, project-a/run-a is
	// written.
	syncer := sync.New(client, sync.Options{
		SourceProject:  flags.projectB,
		SourceRun:      flags.runB,
		TargetProject:  flags.projectA,
		TargetRun:      flags.runA,
		MappingFieldID: mappingField,
		ConvertTables:  convertTables,
		Throttle:       throttle,
	})
	syncer.SetLogger(logger)

	summary, err := syncer.Run(ctx)
	if err != nil {
		return errors.Join(errors.New("sync run failed"), err)
	}

	if summaryFile != "" {
		if err := summary.WriteFile(ctx, summaryFile); err != nil {
			return fmt.Errorf("write summary file: %w", err)
		}
		logger.Info("wrote summary", logging.FieldPath, summaryFile)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	fmt.Fprint(out, styles.FormatSyncSummary(*summary))

	if summary.Errors > 0 {
		return ErrSyncFailures
	}

	return nil
}
