package configloader

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yaklabco/casebridge/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "api.timeout_seconds").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateAPI(cfg, result)
	validateSync(cfg, result)
	validateConvert(cfg, result)

	return result
}

func validateAPI(cfg *config.Config, result *ValidationResult) {
	if cfg.API.BaseURL != "" {
		parsed, err := url.Parse(cfg.API.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "api.base_url",
				Value:   cfg.API.BaseURL,
				Message: fmt.Sprintf("invalid URL %q; must be absolute (e.g. https://api.qase.io/v1)", cfg.API.BaseURL),
			})
		}
	}

	if cfg.API.TimeoutSeconds < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "api.timeout_seconds",
			Value:   cfg.API.TimeoutSeconds,
			Message: "timeout_seconds must be >= 0",
		})
	}

	if cfg.API.Retries < 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "api.retries",
			Value:   cfg.API.Retries,
			Message: "negative retries disables retrying",
		})
	}

	if cfg.API.BackoffMillis < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "api.backoff_ms",
			Value:   cfg.API.BackoffMillis,
			Message: "backoff_ms must be >= 0",
		})
	}
}

func validateSync(cfg *config.Config, result *ValidationResult) {
	if cfg.Sync.MappingFieldID <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "sync.mapping_field_id",
			Value:   cfg.Sync.MappingFieldID,
			Message: "mapping_field_id must be a positive custom-field ID",
		})
	}

	if cfg.Sync.ThrottleMillis < 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "sync.throttle_ms",
			Value:   cfg.Sync.ThrottleMillis,
			Message: "negative throttle_ms disables throttling",
		})
	}
}

func validateConvert(cfg *config.Config, result *ValidationResult) {
	if cfg.Convert.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "convert.jobs",
			Value:   cfg.Convert.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Convert.Backups.Mode != "" && !knownBackupModes[cfg.Convert.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "convert.backups.mode",
			Value:   cfg.Convert.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Convert.Backups.Mode),
		})
	}

	for i, ext := range cfg.Convert.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("convert.extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}

	for i, pattern := range cfg.Convert.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("convert.ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
