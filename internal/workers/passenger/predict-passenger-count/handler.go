// internal/workers/passenger/predict-passenger-count/handler.go
package predictpassengercount

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/metrics"
	"chatbus/internal/common/observability"
	"chatbus/internal/models"
	"chatbus/internal/prediction"
	"chatbus/internal/reply"
)

const TaskType = "predict-passenger-count"

// Predictor is satisfied by *prediction.Service.
type Predictor interface {
	Predict(ctx context.Context, q models.StructuredQuery) prediction.Prediction
}

type Handler struct {
	config       *Config
	predictor    Predictor
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
}

func NewHandler(config *Config, predictor Predictor, log logger.Logger, obs *observability.Observability) *Handler {
	if obs == nil {
		obs = observability.NewNoop()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		predictor:    predictor,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log),
		obs:          obs,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewInvalidRequestError("parse input: "+err.Error()), start)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return
	}

	h.completeJob(ctx, client, job, output, start)
}

// Execute scores the extracted query. Malformed queries are rejected before
// they reach the model; model failures complete with the fallback count
// unless FailOnDegraded is set.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ExtractedData == nil {
		return nil, errors.NewInvalidRequestError("extractedData is required")
	}
	if err := input.ExtractedData.Validate(); err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}

	p := h.predictor.Predict(ctx, *input.ExtractedData)
	if p.Degraded {
		h.logger.Warn("prediction degraded to fallback", map[string]interface{}{
			"fallback":  p.Passengers,
			"requestId": input.RequestID,
		})
		if h.config.FailOnDegraded && p.Err != nil {
			return nil, p.Err
		}
	}

	return &Output{
		PredictedPassengers: p.Passengers,
		CrowdingLevel:       reply.CrowdingLevel(p.Passengers),
		Degraded:            p.Degraded,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output, start time.Time) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"passengers": output.PredictedPassengers,
		"degraded":   output.Degraded,
	})
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := h.errorHandler.HandleJobError(ctx, client, job, err)

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
}
