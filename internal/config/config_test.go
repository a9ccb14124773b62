package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
catalog:
  genius:
    access_token: "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "genius", cfg.Catalog.Provider)
	assert.Equal(t, "secret", cfg.Catalog.Genius.AccessToken)
	assert.Equal(t, 5, cfg.Search.CandidateLimit)
	assert.Equal(t, 2, cfg.Search.ScorePrecision)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, 24*time.Hour, cfg.Lyrics.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Lyrics.Timeout)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_ParsesDurations(t *testing.T) {
	path := writeConfig(t, `
lyrics:
  timeout: 3s
  cache_ttl: 90m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Lyrics.Timeout)
	assert.Equal(t, 90*time.Minute, cfg.Lyrics.CacheTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SAMMA3NI_SEARCH_CANDIDATE_LIMIT", "8")
	path := writeConfig(t, `
search:
  candidate_limit: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Search.CandidateLimit)
}

func TestLoad_InvalidProvider(t *testing.T) {
	path := writeConfig(t, `
catalog:
  provider: "spotify"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.provider")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestInit_PanicsOnInvalidConfig(t *testing.T) {
	path := writeConfig(t, `
search:
  candidate_limit: -1
`)
	assert.Panics(t, func() { Init(path) })
}
