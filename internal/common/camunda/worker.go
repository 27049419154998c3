// internal/common/camunda/worker.go
package camunda

import (
	"sort"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"chatbus/internal/common/config"
	"chatbus/internal/common/logger"
)

// HandlerFunc matches the Zeebe job handler signature.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Registry tracks the job workers opened by the process so they can be
// closed together on shutdown.
type Registry struct {
	mu      sync.Mutex
	workers map[string]worker.JobWorker
	logger  logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		workers: make(map[string]worker.JobWorker),
		logger:  log.WithFields(map[string]interface{}{"component": "camunda"}),
	}
}

// Start opens a job worker for taskType unless it is disabled in config.
// It reports whether a worker was opened.
func (r *Registry) Start(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler HandlerFunc) bool {
	if !wcfg.Enabled {
		r.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	r.mu.Lock()
	r.workers[taskType] = jobWorker
	r.mu.Unlock()

	r.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Active returns the task types with an open worker, sorted.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]string, 0, len(r.workers))
	for taskType := range r.workers {
		types = append(types, taskType)
	}
	sort.Strings(types)
	return types
}

// Close stops every worker and waits for in-flight jobs.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for taskType, w := range r.workers {
		r.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
	}
	r.workers = make(map[string]worker.JobWorker)
}
