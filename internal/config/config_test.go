package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, ".credentials.json", cfg.Paths.CredentialsFile)
	assert.Equal(t, ".credential_key", cfg.Paths.KeyFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:7420", cfg.Server.Addr)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.PreferredProvider)
	assert.NotEmpty(t, cfg.LLM.Tiers[TierFast])
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
paths:
  credentials_file: /tmp/creds.json
logging:
  level: debug
  pretty: true
llm:
  preferred_provider: anthropic
`), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/creds.json", cfg.Paths.CredentialsFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.PreferredProvider)
	// Untouched sections keep defaults.
	assert.Equal(t, ".credential_key", cfg.Paths.KeyFile)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [not a map"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTIFYME_CREDENTIALS_FILE", "/override/creds.json")
	t.Setenv("AUTIFYME_LOG_LEVEL", "warn")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "/override/creds.json", cfg.Paths.CredentialsFile)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestModelFor_PrefersConfiguredProvider(t *testing.T) {
	cfg := Default()

	m, ok := cfg.ModelFor(TierBalanced, false)

	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, m.Provider)
	assert.Equal(t, "gpt-4o", m.Name)
}

func TestModelFor_FallsBackWhenPreferredMissing(t *testing.T) {
	cfg := Default()
	cfg.LLM.PreferredProvider = ProviderOllama

	m, ok := cfg.ModelFor(TierFast, false)

	require.True(t, ok)
	// Cheapest overall when the preferred provider has no entry.
	assert.Equal(t, "gpt-4o-mini", m.Name)
}

func TestModelFor_VisionFilter(t *testing.T) {
	cfg := Default()

	m, ok := cfg.ModelFor(TierFast, true)
	assert.False(t, ok, "fast tier has no vision models, got %+v", m)

	m, ok = cfg.ModelFor(TierPremium, true)
	require.True(t, ok)
	assert.True(t, m.Vision)
}

func TestModelFor_UnknownTier(t *testing.T) {
	cfg := Default()
	_, ok := cfg.ModelFor("turbo", false)
	assert.False(t, ok)
}
