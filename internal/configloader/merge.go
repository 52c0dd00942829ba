package configloader

import "github.com/yaklabco/casebridge/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// API scalars
	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.Token != "" {
		result.API.Token = override.API.Token
	}
	if override.API.TimeoutSeconds != 0 {
		result.API.TimeoutSeconds = override.API.TimeoutSeconds
	}
	if override.API.Retries != 0 {
		result.API.Retries = override.API.Retries
	}
	if override.API.BackoffMillis != 0 {
		result.API.BackoffMillis = override.API.BackoffMillis
	}

	// Sync scalars
	if override.Sync.MappingFieldID != 0 {
		result.Sync.MappingFieldID = override.Sync.MappingFieldID
	}
	if override.Sync.ThrottleMillis != 0 {
		result.Sync.ThrottleMillis = override.Sync.ThrottleMillis
	}
	if override.Sync.SummaryFile != "" {
		result.Sync.SummaryFile = override.Sync.SummaryFile
	}

	// Convert scalars
	if override.Convert.Jobs != 0 {
		result.Convert.Jobs = override.Convert.Jobs
	}
	if override.Convert.Backups.Mode != "" {
		result.Convert.Backups.Mode = override.Convert.Backups.Mode
	}

	// Booleans: false is the zero value, so only a true override is
	// detectable. CLI flags can enable but config files cannot unset.
	if override.Sync.ConvertTables {
		result.Sync.ConvertTables = true
	}
	if override.Convert.Backups.Enabled {
		result.Convert.Backups.Enabled = true
	}
	if override.Write {
		result.Write = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	// Slices: override replaces base entirely if non-nil
	if override.Convert.Extensions != nil {
		result.Convert.Extensions = override.Convert.Extensions
	}
	if override.Convert.Ignore != nil {
		result.Convert.Ignore = override.Convert.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
