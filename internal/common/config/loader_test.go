package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
model:
  path: models/xgboost_model.json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "chatbus", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, BackendXGBoost, cfg.Model.Backend)
	assert.Equal(t, DefaultFallbackPrediction, cfg.Pipeline.FallbackPrediction)
	assert.Equal(t, "Africa/Dar_es_Salaam", cfg.Pipeline.Timezone)
	assert.Equal(t, "Africa/Dar_es_Salaam", cfg.Pipeline.Location().String())
	assert.Equal(t, time.Hour, GetDuration(cfg.Cache.TTL))
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Camunda.Enabled)
}

func TestLoadFromFile_Workers(t *testing.T) {
	path := writeConfig(t, `
model:
  path: models/xgboost_model.json
workers:
  predict-passenger-count:
    enabled: true
    timeout: 5000
  compose-passenger-reply:
    enabled: false
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	predict := GetWorkerConfig(cfg, "predict-passenger-count")
	assert.Equal(t, 5000, predict.Timeout)
	assert.Equal(t, 5, predict.MaxJobsActive)
	assert.Equal(t, 3, predict.MaxRetries)
	assert.False(t, IsWorkerEnabled(cfg, "compose-passenger-reply"))
	assert.True(t, IsWorkerEnabled(cfg, "parse-passenger-query"))
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("CHATBUS_TEST_MODEL_URL", "http://scorer:9000")
	path := writeConfig(t, `
model:
  backend: remote
  remote_url: ${CHATBUS_TEST_MODEL_URL}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://scorer:9000", cfg.Model.RemoteURL)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing model path", "model:\n  backend: xgboost\n"},
		{"unknown backend", "model:\n  backend: onnx\n  path: m.json\n"},
		{"remote without url", "model:\n  backend: remote\n"},
		{"short feature list", "model:\n  path: m.json\n  feature_names: [day, weather]\n"},
		{"cache without redis", "model:\n  path: m.json\ncache:\n  enabled: true\n"},
		{"camunda without broker", "model:\n  path: m.json\ncamunda:\n  enabled: true\n"},
		{"bad timezone", "model:\n  path: m.json\npipeline:\n  timezone: Mars/Olympus\n"},
		{"tracing without endpoint", "model:\n  path: m.json\ntracing:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
