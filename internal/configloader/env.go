package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/casebridge/pkg/config"
)

// envVarPrefix is the prefix for all casebridge environment variables.
const envVarPrefix = "CASEBRIDGE_"

// tokenEnvVar is the unprefixed variable holding the tracking-API token.
// It matches what the hosted API's own tooling expects, so users can share
// one variable across tools.
const tokenEnvVar = "QASE_API_TOKEN"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"API_BASE_URL":        {field: "api.base_url", typ: envTypeString},
	"API_TOKEN":           {field: "api.token", typ: envTypeString},
	"API_TIMEOUT_SECONDS": {field: "api.timeout_seconds", typ: envTypeInt},
	"API_RETRIES":         {field: "api.retries", typ: envTypeInt},
	"MAPPING_FIELD_ID":    {field: "sync.mapping_field_id", typ: envTypeInt},
	"THROTTLE_MS":         {field: "sync.throttle_ms", typ: envTypeInt},
	"SUMMARY_FILE":        {field: "sync.summary_file", typ: envTypeString},
	"CONVERT_TABLES":      {field: "sync.convert_tables", typ: envTypeBool},
	"JOBS":                {field: "convert.jobs", typ: envTypeInt},
	"IGNORE":              {field: "convert.ignore", typ: envTypeSlice},
	"EXTENSIONS":          {field: "convert.extensions", typ: envTypeSlice},
	"BACKUPS_ENABLED":     {field: "convert.backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":        {field: "convert.backups.mode", typ: envTypeString},
	"DRY_RUN":             {field: "dry_run", typ: envTypeBool},
	"WRITE":               {field: "write", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CASEBRIDGE_ (e.g., CASEBRIDGE_JOBS).
// The API token is also read from QASE_API_TOKEN; the prefixed form wins.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if token := os.Getenv(tokenEnvVar); token != "" {
		cfg.API.Token = token
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.token":
		cfg.API.Token = value
	case "sync.summary_file":
		cfg.Sync.SummaryFile = value
	case "convert.backups.mode":
		cfg.Convert.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "sync.convert_tables":
		cfg.Sync.ConvertTables = value
	case "convert.backups.enabled":
		cfg.Convert.Backups.Enabled = value
	case "dry_run":
		cfg.DryRun = value
	case "write":
		cfg.Write = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "api.timeout_seconds":
		cfg.API.TimeoutSeconds = value
	case "api.retries":
		cfg.API.Retries = value
	case "sync.mapping_field_id":
		cfg.Sync.MappingFieldID = value
	case "sync.throttle_ms":
		cfg.Sync.ThrottleMillis = value
	case "convert.jobs":
		cfg.Convert.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "convert.ignore":
		cfg.Convert.Ignore = value
	case "convert.extensions":
		cfg.Convert.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"QASE_API_TOKEN":                 "Tracking-API token (never stored in config files)",
		"CASEBRIDGE_API_BASE_URL":        "Tracking-API endpoint",
		"CASEBRIDGE_API_TOKEN":           "Tracking-API token (overrides QASE_API_TOKEN)",
		"CASEBRIDGE_API_TIMEOUT_SECONDS": "Per-request timeout in seconds",
		"CASEBRIDGE_API_RETRIES":         "Retry attempts for failed requests",
		"CASEBRIDGE_MAPPING_FIELD_ID":    "Custom-field ID correlating cases between projects",
		"CASEBRIDGE_THROTTLE_MS":         "Pause between result writes in milliseconds",
		"CASEBRIDGE_SUMMARY_FILE":        "Path for the JSON copy summary",
		"CASEBRIDGE_CONVERT_TABLES":      "Convert HTML tables in copied comments: true or false",
		"CASEBRIDGE_JOBS":                "Number of parallel workers (0 = auto)",
		"CASEBRIDGE_IGNORE":              "Comma-separated list of ignore patterns",
		"CASEBRIDGE_EXTENSIONS":          "Comma-separated list of convertible extensions",
		"CASEBRIDGE_BACKUPS_ENABLED":     "Enable backups when writing: true or false",
		"CASEBRIDGE_BACKUPS_MODE":        "Backup mode: sidecar or none",
		"CASEBRIDGE_DRY_RUN":             "Dry-run mode: true or false",
		"CASEBRIDGE_WRITE":               "Rewrite files in place: true or false",
	}
}
