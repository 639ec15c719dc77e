package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTestConfig(t, `
app:
  name: maturity-assessment
storage:
  backend: redis
  session_ttl: 3600
database:
  redis:
    address: localhost:6379
assessment:
  flow: extended
workers:
  calculate-maturity-score:
    enabled: true
    timeout: 5000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, 3600, cfg.Storage.SessionTTL)
	assert.Equal(t, FlowExtended, cfg.Assessment.Flow)
	assert.Equal(t, "assessment_sessions", cfg.Storage.Table)
	assert.Equal(t, ":8080", cfg.Metrics.Address)

	wcfg := GetWorkerConfig(cfg, "calculate-maturity-score")
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 5000, wcfg.Timeout)
	assert.Equal(t, 5, wcfg.MaxJobsActive)
	assert.Equal(t, 3, wcfg.MaxRetries)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("ASSESSMENT_FLOW", FlowExtended)
	path := writeTestConfig(t, `
assessment:
  flow: standard
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, FlowExtended, cfg.Assessment.Flow)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "unknown flow",
			body:          "assessment:\n  flow: sideways\n",
			expectedError: "assessment.flow",
		},
		{
			name:          "unknown backend",
			body:          "storage:\n  backend: s3\n",
			expectedError: "storage.backend",
		},
		{
			name:          "redis without address",
			body:          "storage:\n  backend: redis\n",
			expectedError: "database.redis.address",
		},
		{
			name:          "negative ttl",
			body:          "storage:\n  session_ttl: -1\n",
			expectedError: "storage.session_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeTestConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, FlowStandard, cfg.Assessment.Flow)
	assert.Equal(t, 24*60*60, cfg.Storage.SessionTTL)
	assert.NotNil(t, cfg.Workers)

	wcfg := GetWorkerConfig(cfg, "unknown-worker")
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 30000, wcfg.Timeout)
}
