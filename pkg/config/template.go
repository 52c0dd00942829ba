package config

// TemplateHeader is the comment block written at the top of generated
// configuration files.
const TemplateHeader = `# casebridge configuration
# See: https://github.com/yaklabco/casebridge
`

// Template returns a commented starter configuration file.
func Template() []byte {
	return []byte(TemplateHeader + `
# Tracking API settings. The token is never read from this file; set
# QASE_API_TOKEN in the environment instead.
api:
  # base_url: https://api.qase.io/v1
  timeout_seconds: 30
  retries: 3
  backoff_ms: 500

# Result-copy workflow.
sync:
  # Custom-field ID used to correlate cases between projects.
  mapping_field_id: 1
  # Pause between result writes, in milliseconds.
  throttle_ms: 100
  # Write a JSON copy summary to this file after each run.
  # summary_file: summary.json
  # Convert HTML tables in copied comments to Markdown.
  convert_tables: false

# Batch document conversion.
convert:
  # File extensions considered convertible.
  # extensions: [".md", ".markdown", ".txt"]
  # Glob patterns to skip.
  # ignore:
  #   - "vendor/**"
  # Number of parallel workers (0 = auto).
  jobs: 0
  backups:
    enabled: false
    mode: sidecar
`)
}
