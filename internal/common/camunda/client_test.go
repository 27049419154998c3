// internal/common/camunda/client_test.go
package camunda

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatbus/internal/common/config"
	"chatbus/internal/common/logger"
)

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 5000})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, 5*time.Second, cfg.ConnectionTimeout)
	assert.Equal(t, DefaultRetryConfig, cfg.RetryConfig)

	assert.Equal(t, 10*time.Second, ConfigFrom(config.CamundaConfig{}).ConnectionTimeout)
}

func TestBackoff(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, backoff(cfg, 0))
	assert.Equal(t, 2*time.Second, backoff(cfg, 1))
	assert.Equal(t, 4*time.Second, backoff(cfg, 2))
	assert.Equal(t, 5*time.Second, backoff(cfg, 3))
	assert.Equal(t, 5*time.Second, backoff(cfg, 62))
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{errors.New("rpc error: code = Unavailable desc = connection refused"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("read: connection reset by peer"), true},
		{errors.New("permission denied"), false},
		{errors.New("job not found"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isRetryableZeebeError(tt.err), tt.err.Error())
	}
}

func TestRegistry_DisabledWorker(t *testing.T) {
	registry := NewRegistry(logger.NewTestLogger(t))

	started := registry.Start(nil, "predict-passenger-count", config.WorkerConfig{Enabled: false}, nil)

	assert.False(t, started)
	assert.Empty(t, registry.Active())
	registry.Close()
}
