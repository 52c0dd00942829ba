// Package sync copies automated test results from a run in one tracking
// project into a run in another. Cases in the two projects are correlated
// through a shared custom field ("mapping_id"): the target project's cases
// are indexed by that field's value, and each source result is re-created
// against the target case that carries the same value.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/casebridge/internal/logging"
	"github.com/yaklabco/casebridge/pkg/htmltable"
	"github.com/yaklabco/casebridge/pkg/qase"
)

// DefaultMappingFieldID is the custom-field ID of "mapping_id".
const DefaultMappingFieldID = 1

// DefaultThrottle is the pause between result writes, keeping the tool under
// the API's rate limits.
const DefaultThrottle = 100 * time.Millisecond

// Client is the slice of the tracking API the syncer needs.
type Client interface {
	Cases(ctx context.Context, project string) ([]qase.Case, error)
	Case(ctx context.Context, project string, caseID int) (*qase.Case, error)
	Results(ctx context.Context, project string) ([]qase.Result, error)
	PostResult(ctx context.Context, project string, runID int, payload qase.ResultPayload) error
}

// Options configures one copy operation.
type Options struct {
	// SourceProject and SourceRun identify where results are read from.
	SourceProject string
	SourceRun     int

	// TargetProject and TargetRun identify where results are written.
	TargetProject string
	TargetRun     int

	// MappingFieldID is the custom-field ID used to correlate cases.
	// Zero means DefaultMappingFieldID.
	MappingFieldID int

	// ConvertTables passes result comments through the HTML-table converter
	// before posting.
	ConvertTables bool

	// Throttle is the pause between writes. Negative disables throttling;
	// zero means DefaultThrottle.
	Throttle time.Duration
}

// Summary counts the outcome of one copy operation.
type Summary struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Total returns the number of results considered.
func (s Summary) Total() int {
	return s.Copied + s.Skipped + s.Errors
}

// ErrNoMapping is returned when the target project has no cases carrying the
// mapping field, which makes every copy impossible.
var ErrNoMapping = errors.New("sync: no mapping values found in target project")

// Syncer performs the copy.
type Syncer struct {
	client Client
	opts   Options
	logger *log.Logger
}

// New creates a Syncer. Zero option fields take their defaults.
func New(client Client, opts Options) *Syncer {
	if opts.MappingFieldID == 0 {
		opts.MappingFieldID = DefaultMappingFieldID
	}
	switch {
	case opts.Throttle < 0:
		opts.Throttle = 0
	case opts.Throttle == 0:
		opts.Throttle = DefaultThrottle
	}
	return &Syncer{
		client: client,
		opts:   opts,
		logger: logging.Default(),
	}
}

// SetLogger replaces the logger used for progress reporting.
func (s *Syncer) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Run copies the source run's results into the target run and returns the
// summary. Per-result failures are counted, not fatal; Run only errors when
// the mapping or the source results cannot be fetched at all.
func (s *Syncer) Run(ctx context.Context) (*Summary, error) {
	mapping, err := s.buildMapping(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.sourceResults(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("sync cancelled: %w", err)
		}
		s.copyResult(ctx, result, mapping, summary)
	}

	s.logger.Info("sync finished",
		logging.FieldCopied, summary.Copied,
		logging.FieldSkipped, summary.Skipped,
		logging.FieldErrors, summary.Errors,
	)
	return summary, nil
}

// buildMapping indexes the target project's cases by mapping-field value.
func (s *Syncer) buildMapping(ctx context.Context) (map[string]int, error) {
	cases, err := s.client.Cases(ctx, s.opts.TargetProject)
	if err != nil {
		return nil, fmt.Errorf("load cases from %s: %w", s.opts.TargetProject, err)
	}
	s.logger.Info("loaded cases",
		logging.FieldProject, s.opts.TargetProject,
		logging.FieldCount, len(cases),
	)

	mapping := make(map[string]int)
	for _, c := range cases {
		if value := c.CustomFieldValue(s.opts.MappingFieldID); value != "" {
			mapping[value] = c.ID
		}
	}
	if len(mapping) == 0 {
		return nil, ErrNoMapping
	}

	s.logger.Debug("mapping built", logging.FieldCount, len(mapping))
	return mapping, nil
}

// sourceResults fetches all results from the source project and filters them
// to the source run. Filtering happens client-side because run-scoped
// endpoints omit UI-generated results.
func (s *Syncer) sourceResults(ctx context.Context) ([]qase.Result, error) {
	all, err := s.client.Results(ctx, s.opts.SourceProject)
	if err != nil {
		return nil, fmt.Errorf("load results from %s: %w", s.opts.SourceProject, err)
	}
	s.logger.Info("fetched results",
		logging.FieldProject, s.opts.SourceProject,
		logging.FieldCount, len(all),
	)

	var filtered []qase.Result
	for _, result := range all {
		if result.RunID == s.opts.SourceRun {
			filtered = append(filtered, result)
		}
	}
	s.logger.Info("filtered results for run",
		logging.FieldRun, s.opts.SourceRun,
		logging.FieldCount, len(filtered),
	)
	return filtered, nil
}

// copyResult copies one result, updating the summary in place.
func (s *Syncer) copyResult(ctx context.Context, result qase.Result, mapping map[string]int, summary *Summary) {
	sourceCase, err := s.client.Case(ctx, s.opts.SourceProject, result.CaseID)
	if err != nil {
		s.logger.Error("fetch source case failed",
			logging.FieldCaseID, result.CaseID,
			logging.FieldError, err,
		)
		summary.Errors++
		return
	}

	mappingValue := sourceCase.CustomFieldValue(s.opts.MappingFieldID)
	if mappingValue == "" {
		s.logger.Info("skipping case without mapping value", logging.FieldCaseID, result.CaseID)
		summary.Skipped++
		return
	}

	targetCaseID, ok := mapping[mappingValue]
	if !ok {
		s.logger.Info("no target case for mapping value", logging.FieldMapping, mappingValue)
		summary.Skipped++
		return
	}

	status := qase.NormalizeStatus(result.Status)
	if qase.ParseStatus(status) == qase.StatusInvalid {
		s.logger.Warn("unrecognized result status",
			logging.FieldCaseID, result.CaseID,
			logging.FieldStatus, result.Status,
		)
	}

	payload := qase.ResultPayload{
		CaseID:  targetCaseID,
		Status:  status,
		Comment: s.comment(result),
	}

	if err := s.client.PostResult(ctx, s.opts.TargetProject, s.opts.TargetRun, payload); err != nil {
		s.logger.Error("post result failed",
			logging.FieldCaseID, targetCaseID,
			logging.FieldError, err,
		)
		summary.Errors++
		return
	}

	s.logger.Info("copied result",
		logging.FieldMapping, mappingValue,
		logging.FieldCaseID, targetCaseID,
	)
	summary.Copied++

	if s.opts.Throttle > 0 {
		timer := time.NewTimer(s.opts.Throttle)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}
}

// comment builds the posted comment: the source comment, converted when
// enabled, followed by a provenance line.
func (s *Syncer) comment(result qase.Result) string {
	provenance := fmt.Sprintf("Copied from %s run %d", s.opts.SourceProject, s.opts.SourceRun)

	body := result.Comment
	if s.opts.ConvertTables {
		body = htmltable.Convert(body)
	}
	if body == "" {
		return provenance
	}
	return body + "\n\n" + provenance
}
