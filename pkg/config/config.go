// Package config defines core configuration types for casebridge.
// These types are pure data structures with no dependencies on config loaders.
package config

import "time"

// APIConfig configures the tracking-API client.
type APIConfig struct {
	// BaseURL is the API endpoint. Empty means the client default.
	BaseURL string `yaml:"base_url"`

	// Token is the API token. Never persisted; it comes from the
	// environment or CLI only.
	Token string `yaml:"-"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Retries is the number of retry attempts for failed requests.
	Retries int `yaml:"retries"`

	// BackoffMillis is the initial retry delay, doubled per attempt.
	BackoffMillis int `yaml:"backoff_ms"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Backoff returns the initial retry delay as a duration.
func (a APIConfig) Backoff() time.Duration {
	return time.Duration(a.BackoffMillis) * time.Millisecond
}

// SyncConfig configures the result-copy workflow.
type SyncConfig struct {
	// MappingFieldID is the custom-field ID used to correlate cases
	// between projects.
	MappingFieldID int `yaml:"mapping_field_id"`

	// ThrottleMillis is the pause between result writes.
	ThrottleMillis int `yaml:"throttle_ms"`

	// SummaryFile is where the copy summary is written as JSON.
	// Empty disables the file.
	SummaryFile string `yaml:"summary_file"`

	// ConvertTables passes copied comments through the HTML-table converter.
	ConvertTables bool `yaml:"convert_tables"`
}

// Throttle returns the write throttle as a duration.
func (s SyncConfig) Throttle() time.Duration {
	return time.Duration(s.ThrottleMillis) * time.Millisecond
}

// BackupsConfig controls backup behavior for in-place conversion.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// ConvertConfig configures batch document conversion.
type ConvertConfig struct {
	// Extensions is the set of file extensions considered convertible
	// (lowercase, with leading dot). Empty means the runner defaults.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Jobs is the number of parallel workers (0 = auto).
	Jobs int `yaml:"jobs"`

	// Backups configures backup behavior for --write.
	Backups BackupsConfig `yaml:"backups"`
}

// Config is the root configuration structure for casebridge.
type Config struct {
	// API configures the tracking-API client.
	API APIConfig `yaml:"api"`

	// Sync configures the result-copy workflow.
	Sync SyncConfig `yaml:"sync"`

	// Convert configures batch document conversion.
	Convert ConvertConfig `yaml:"convert"`

	// CLI-level options (not persisted to config files).

	// Write rewrites converted files in place.
	Write bool `yaml:"-"`

	// DryRun shows what would change without writing.
	DryRun bool `yaml:"-"`
}

// Default configuration values.
const (
	DefaultTimeoutSeconds = 30
	DefaultRetries        = 3
	DefaultBackoffMillis  = 500
	DefaultMappingFieldID = 1
	DefaultThrottleMillis = 100
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
			Retries:        DefaultRetries,
			BackoffMillis:  DefaultBackoffMillis,
		},
		Sync: SyncConfig{
			MappingFieldID: DefaultMappingFieldID,
			ThrottleMillis: DefaultThrottleMillis,
		},
		Convert: ConvertConfig{
			Backups: BackupsConfig{
				Enabled: false,
				Mode:    "sidecar",
			},
		},
	}
}
