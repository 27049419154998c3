// internal/workers/passenger/predict-passenger-count/config.go
package predictpassengercount

import (
	"time"

	"chatbus/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// FailOnDegraded fails the job instead of completing it with the
	// fallback count, so a process can route around a broken model.
	FailOnDegraded bool
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := time.Duration(wcfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Config{Timeout: timeout}
}
