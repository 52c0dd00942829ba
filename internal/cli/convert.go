package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/casebridge/internal/configloader"
	"github.com/yaklabco/casebridge/internal/logging"
	"github.com/yaklabco/casebridge/internal/ui/pretty"
	"github.com/yaklabco/casebridge/pkg/config"
	"github.com/yaklabco/casebridge/pkg/fsutil"
	"github.com/yaklabco/casebridge/pkg/htmltable"
	"github.com/yaklabco/casebridge/pkg/runner"
)

// ErrConvertFailures is returned when some files could not be converted.
var ErrConvertFailures = errors.New("conversion failures")

type convertFlags struct {
	ignore     []string
	extensions []string
	noBackups  bool
}

func newConvertCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert embedded HTML tables to Markdown",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &cfg, flags)
		},
	}

	addConvertFlags(cmd, &cfg, flags)

	return cmd
}

const convertLongDescription = `Convert HTML table fragments embedded in text documents to Markdown tables.

Prose around the tables is preserved byte for byte; documents without
tables pass through unchanged. With no paths, reads from stdin and
writes the converted document to stdout. With paths, the converted
documents are printed to stdout; --write rewrites the files in place
instead, and --dry-run only reports which files would change.

Examples:
  casebridge convert < export.md         # Filter stdin to stdout
  casebridge convert notes.md            # Print the converted document
  casebridge convert docs/ --dry-run     # Report files that would change
  casebridge convert docs/ --write       # Rewrite files in place
  casebridge convert --ignore 'vendor/**' . --write`

func runConvert(cmd *cobra.Command, args []string, cfg *config.Config, flags *convertFlags) error {
	// With no paths and piped input, act as a plain stdin-to-stdout filter.
	// An interactive terminal means the user ran "casebridge convert" bare;
	// treat that as converting the current directory rather than hanging on
	// stdin.
	if len(args) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return convertStream(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		args = []string{"."}
	}

	cfg.Convert.Ignore = flags.ignore
	cfg.Convert.Extensions = flags.extensions

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
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
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldWrite, finalCfg.Write,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Convert.Jobs,
	)

	backup := fsutil.BackupConfig{
		Enabled: finalCfg.Convert.Backups.Enabled && !flags.noBackups,
		Mode:    fsutil.BackupMode(finalCfg.Convert.Backups.Mode),
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   finalCfg.Convert.Extensions,
		ExcludeGlobs: finalCfg.Convert.Ignore,
		Jobs:         finalCfg.Convert.Jobs,
		Write:        finalCfg.Write,
		DryRun:       finalCfg.DryRun,
		Backup:       backup,
	}

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	out := cmd.OutOrStdout()

	// Default mode prints the converted documents; --write and --dry-run
	// report what happened to the files instead.
	if !finalCfg.Write && !finalCfg.DryRun {
		if err := printConverted(out, result, logger); err != nil {
			return err
		}
		if ExitCodeFromResult(result) != ExitSuccess {
			return ErrConvertFailures
		}
		return nil
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	fmt.Fprint(out, styles.FormatConvertSummary(result, finalCfg.Write))

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConvertFailures
	}

	return nil
}

// printConverted writes the converted content of every processed file to w,
// in discovery order. Per-file errors are logged and reflected in the exit
// code by the caller.
func printConverted(w io.Writer, result *runner.Result, logger *log.Logger) error {
	for i := range result.Files {
		file := &result.Files[i]
		if file.Error != nil {
			logger.Error("conversion failed",
				logging.FieldPath, file.Path,
				logging.FieldError, file.Error,
			)
			continue
		}
		if file.Skipped {
			continue
		}
		if _, err := w.Write(file.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// convertStream converts a single document read from r and writes it to w.
func convertStream(r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	output, err := htmltable.ConvertBytes(input)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	return nil
}

func addConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	cmd.Flags().BoolVar(&cfg.Write, "write", false, "rewrite converted files in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show what --write would change without writing")
	cmd.Flags().IntVar(&cfg.Convert.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		"file extensions to convert (default .md, .markdown, .txt)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
}
