package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/casebridge/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Convert.Ignore = []string{"vendor/**"}
		original.Convert.Extensions = []string{".md"}

		clone := original.Clone()
		require.NotNil(t, clone)

		clone.Convert.Ignore[0] = "changed/**"
		clone.Convert.Extensions[0] = ".txt"
		assert.Equal(t, "vendor/**", original.Convert.Ignore[0])
		assert.Equal(t, ".md", original.Convert.Extensions[0])
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Write = true
		original.DryRun = true
		original.API.Token = "secret"

		clone := original.Clone()
		assert.True(t, clone.Write)
		assert.True(t, clone.DryRun)
		assert.Equal(t, "secret", clone.API.Token)
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.API.BaseURL = "https://qase.example.test/v1"
	original.Sync.MappingFieldID = 7
	original.Sync.SummaryFile = "summary.json"
	original.Convert.Ignore = []string{"archive/**"}

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, original.API.BaseURL, parsed.API.BaseURL)
	assert.Equal(t, 7, parsed.Sync.MappingFieldID)
	assert.Equal(t, "summary.json", parsed.Sync.SummaryFile)
	assert.Equal(t, []string{"archive/**"}, parsed.Convert.Ignore)
}

func TestConfigYAML_TokenNeverSerialized(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.API.Token = "super-secret"

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret")
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	data, err := cfg.ToYAMLWithHeader("# my header")
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# my header\n\n"))
	assert.Contains(t, text, "api:")
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("api: [not a mapping"))
	require.Error(t, err)
}

func TestTemplate_ParsesAsConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(config.Template())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMappingFieldID, cfg.Sync.MappingFieldID)
	assert.Equal(t, config.DefaultTimeoutSeconds, cfg.API.TimeoutSeconds)
}

func TestDurations(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "30s", cfg.API.Timeout().String())
	assert.Equal(t, "500ms", cfg.API.Backoff().String())
	assert.Equal(t, "100ms", cfg.Sync.Throttle().String())
}
