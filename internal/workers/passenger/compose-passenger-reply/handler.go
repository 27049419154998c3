// internal/workers/passenger/compose-passenger-reply/handler.go
package composepassengerreply

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/metrics"
	"chatbus/internal/models"
	"chatbus/internal/reply"
)

const TaskType = "compose-passenger-reply"

type Handler struct {
	config       *Config
	composer     *reply.Composer
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, composer *reply.Composer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		composer:     composer,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewInvalidRequestError("parse input: "+err.Error()))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// Execute renders the reply for an already classified prompt.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	lang := input.Language
	if lang == "" {
		lang = models.LanguageEnglish
	}

	var text string
	switch input.MessageType {
	case models.MessageTypeGreeting:
		text = h.composer.Greeting(lang)
	case models.MessageTypeThankYou:
		text = h.composer.ThankYou(lang)
	case models.MessageTypeFallback:
		text = h.composer.Fallback(lang)
	case models.MessageTypeError:
		text = h.composer.TechnicalError(lang)
	case models.MessageTypePrediction:
		if input.ExtractedData == nil {
			return nil, errors.NewInvalidRequestError("extractedData is required for a prediction reply")
		}
		text = h.composer.Prediction(input.PredictedPassengers, *input.ExtractedData, lang)
	default:
		return nil, errors.NewInvalidRequestError(fmt.Sprintf("unknown messageType %q", input.MessageType))
	}

	return &Output{Response: text}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
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
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
}
