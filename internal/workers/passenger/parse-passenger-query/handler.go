// internal/workers/passenger/parse-passenger-query/handler.go
package parsepassengerquery

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/metrics"
	"chatbus/internal/common/observability"
	"chatbus/internal/nlp"
)

const TaskType = "parse-passenger-query"

type Handler struct {
	config       *Config
	extractor    *nlp.Extractor
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
}

func NewHandler(config *Config, extractor *nlp.Extractor, log logger.Logger, obs *observability.Observability) *Handler {
	if obs == nil {
		obs = observability.NewNoop()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		extractor:    extractor,
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

// Execute classifies and extracts one prompt. Only a blank prompt fails.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, errors.NewEmptyPromptError()
	}

	_, span := h.obs.StartSpan(ctx, TaskType)
	defer span.End()

	extraction := h.extractor.Extract(prompt)
	for _, field := range extraction.DefaultedFields {
		metrics.ExtractionDefaults.WithLabelValues(field).Inc()
	}
	if extraction.Recovered {
		metrics.ExtractionRecovered.Inc()
		h.logger.Warn("extraction recovered with safe defaults", map[string]interface{}{
			"error":     extraction.Err.Error(),
			"requestId": input.RequestID,
		})
	}

	lang := nlp.DetectLanguage(prompt)
	intent := nlp.ClassifyIntent(prompt)
	metrics.PromptsTotal.WithLabelValues(string(lang), string(intent)).Inc()

	defaulted := extraction.DefaultedFields
	if defaulted == nil {
		defaulted = []string{}
	}

	return &Output{
		Language:            lang,
		MessageType:         intent,
		IsPredictionRequest: nlp.IsPredictionRequest(prompt),
		ExtractedData:       extraction.Query,
		DefaultedFields:     defaulted,
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
