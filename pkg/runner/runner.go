package runner

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/casebridge/pkg/fsutil"
	"github.com/yaklabco/casebridge/pkg/htmltable"
)

// ConvertFunc transforms file content. The default is htmltable.ConvertBytes.
type ConvertFunc func([]byte) ([]byte, error)

// Runner orchestrates multi-file conversion.
type Runner struct {
	// Convert is the per-file transformation.
	Convert ConvertFunc
}

// New creates a Runner using the HTML-table converter.
func New() *Runner {
	return &Runner{Convert: htmltable.ConvertBytes}
}

// Run discovers files under opts.Paths and converts them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. Per-file errors are recorded in the outcomes; Run itself only fails
// on discovery errors or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; rebuild deterministic ordering by path.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile converts a single file and optionally rewrites it in place.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	// Extension filtering catches most non-text files, but migrated trees
	// sometimes carry binaries with text extensions.
	if enry.IsBinary(content) {
		outcome.Skipped = true
		return outcome
	}

	converted, err := r.Convert(content)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}

	outcome.Output = converted
	outcome.Changed = !bytes.Equal(content, converted)

	if !opts.Write || opts.DryRun || !outcome.Changed {
		return outcome
	}

	// Refuse to clobber a file that changed underneath us between read and
	// write.
	if modified, checkErr := fsutil.CheckModified(ctx, info); checkErr != nil {
		outcome.Error = fmt.Errorf("check %s: %w", path, checkErr)
		return outcome
	} else if modified {
		outcome.Error = fmt.Errorf("write %s: file changed during conversion", path)
		return outcome
	}

	if _, err := fsutil.CreateBackup(ctx, path, opts.Backup); err != nil {
		outcome.Error = fmt.Errorf("backup %s: %w", path, err)
		return outcome
	}

	if err := fsutil.WriteAtomic(ctx, path, converted, info.Mode.Perm()); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
		return outcome
	}

	outcome.Written = true
	return outcome
}
