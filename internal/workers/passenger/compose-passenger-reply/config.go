// internal/workers/passenger/compose-passenger-reply/config.go
package composepassengerreply

import (
	"time"

	"chatbus/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := time.Duration(wcfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Config{Timeout: timeout}
}
