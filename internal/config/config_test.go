// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:9090"
database:
  path: "/tmp/smhi-test.db"
smhi:
  metobs_base_url: "http://localhost:1234/metobs"
  metfcst_base_url: "http://localhost:1234/metfcst"
cache:
  max_entries: 50
limits:
  daily_max: 1000
logging:
  level: "debug"
  format: "json"
metrics:
  enabled: true
  path: "/internal/metrics"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "/tmp/smhi-test.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:1234/metobs", cfg.SMHI.MetobsBaseURL)
	assert.Equal(t, "http://localhost:1234/metfcst", cfg.SMHI.MetfcstBaseURL)
	assert.Equal(t, 50, cfg.Cache.MaxEntries)
	assert.Equal(t, 1000, cfg.Limits.DailyMax)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "info"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.Equal(t, DefaultCacheEntries, cfg.Cache.MaxEntries)
	assert.Equal(t, DefaultDailyMax, cfg.Limits.DailyMax)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Empty(t, cfg.Database.Path, "database stays optional")
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SMHI_TEST_DB_PATH", "/data/smhi.db")

	path := writeConfig(t, `
database:
  path: "${SMHI_TEST_DB_PATH}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/smhi.db", cfg.Database.Path)
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "${SMHI_TEST_DOES_NOT_EXIST}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: valid")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Cache.MaxEntries = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Limits.DailyMax = -1
	assert.Error(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.Equal(t, DefaultDailyMax, cfg.Limits.DailyMax)
}
