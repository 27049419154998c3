// internal/assistant/service.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/metrics"
	"chatbus/internal/common/observability"
	"chatbus/internal/common/validation"
	"chatbus/internal/models"
	"chatbus/internal/nlp"
	"chatbus/internal/prediction"
	"chatbus/internal/reply"
)

// Predictor scores a structured query. *prediction.Service implements it.
type Predictor interface {
	Predict(ctx context.Context, q models.StructuredQuery) prediction.Prediction
	Fallback() int
}

// Service turns free-text prompts into replies. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	extractor *nlp.Extractor
	predictor Predictor
	validator *validation.Validator
	composer  *reply.Composer
	logger    logger.Logger
	obs       *observability.Observability
}

type Option func(*Service)

func WithComposer(c *reply.Composer) Option {
	return func(s *Service) {
		if c != nil {
			s.composer = c
		}
	}
}

func WithObservability(obs *observability.Observability) Option {
	return func(s *Service) {
		if obs != nil {
			s.obs = obs
		}
	}
}

func NewService(
	extractor *nlp.Extractor,
	predictor Predictor,
	validator *validation.Validator,
	log logger.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		extractor: extractor,
		predictor: predictor,
		validator: validator,
		composer:  reply.NewComposer(),
		logger:    log.WithFields(map[string]interface{}{"component": "assistant"}),
		obs:       observability.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Composer() *reply.Composer { return s.composer }

// Respond answers one prompt. A blank prompt yields EMPTY_PROMPT and no
// response. Any internal fault yields both an error-type response carrying
// the fallback prediction and an INTERNAL_ERROR.
func (s *Service) Respond(ctx context.Context, prompt string) (resp *models.ChatResponse, err error) {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return nil, errors.NewEmptyPromptError()
	}

	lang := nlp.DetectLanguage(text)

	ctx, span := s.obs.StartSpan(ctx, "assistant.Respond", attribute.String("language", string(lang)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			fault := fmt.Errorf("pipeline panicked: %v", r)
			span.RecordError(fault)
			span.SetStatus(codes.Error, "pipeline failure")
			s.logger.Error("prompt handling failed", map[string]interface{}{
				"error":    fault.Error(),
				"language": string(lang),
			})
			resp = s.errorResponse(lang, fault)
			err = errors.NewInternalError(fault)
		}
		if resp != nil {
			metrics.PromptsTotal.WithLabelValues(string(resp.LanguageDetected), string(resp.MessageType)).Inc()
		}
	}()

	intent := nlp.ClassifyIntent(text)
	span.SetAttributes(attribute.String("intent", string(intent)))

	resp = &models.ChatResponse{
		LanguageDetected: lang,
		MessageType:      intent,
	}

	switch intent {
	case models.MessageTypeGreeting:
		resp.Response = s.composer.Greeting(lang)
	case models.MessageTypeThankYou:
		resp.Response = s.composer.ThankYou(lang)
	case models.MessageTypePrediction:
		q := s.extract(text)
		p := s.predictor.Predict(ctx, q)
		resp.PredictedPassengers = p.Passengers
		resp.ExtractedData = &q
		resp.Degraded = p.Degraded
		resp.Response = s.composer.Prediction(p.Passengers, q, lang)
	default:
		resp.MessageType = models.MessageTypeFallback
		resp.Response = s.composer.Fallback(lang)
	}
	return resp, nil
}

// Extract runs extraction only. No model is consulted.
func (s *Service) Extract(ctx context.Context, prompt string) (*models.ExtractionResponse, error) {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return nil, errors.NewEmptyPromptError()
	}

	_, span := s.obs.StartSpan(ctx, "assistant.Extract")
	defer span.End()

	extraction := s.extractor.Extract(text)
	s.recordExtraction(extraction)

	return &models.ExtractionResponse{
		ExtractedData:       extraction.Query,
		LanguageDetected:    nlp.DetectLanguage(text),
		OriginalPrompt:      text,
		IsPredictionRequest: nlp.IsPredictionRequest(text),
		DefaultedFields:     extraction.DefaultedFields,
	}, nil
}

// PredictStructured scores a caller-supplied query. The raw body is checked
// against the query schema before decoding so missing fields are reported by
// name.
func (s *Service) PredictStructured(ctx context.Context, body []byte) (*models.StructuredPredictionResponse, error) {
	result, err := s.validator.ValidateJSON(body)
	if err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("validationErrors", result.Errors)
	}

	var q models.StructuredQuery
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}
	// The schema only checks the date's shape.
	if _, err := q.ParsedDate(); err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}

	p := s.predictor.Predict(ctx, q)
	metrics.PromptsTotal.WithLabelValues("structured", string(models.MessageTypePrediction)).Inc()

	return &models.StructuredPredictionResponse{
		PredictedPassengers: p.Passengers,
		CrowdingLevel:       reply.CrowdingLevel(p.Passengers),
		InputData:           q,
		Degraded:            p.Degraded,
	}, nil
}

func (s *Service) extract(text string) models.StructuredQuery {
	extraction := s.extractor.Extract(text)
	s.recordExtraction(extraction)
	return extraction.Query
}

func (s *Service) recordExtraction(extraction nlp.Extraction) {
	for _, field := range extraction.DefaultedFields {
		metrics.ExtractionDefaults.WithLabelValues(field).Inc()
	}
	if extraction.Recovered {
		metrics.ExtractionRecovered.Inc()
		s.logger.Warn("extraction recovered with safe defaults", map[string]interface{}{
			"error": extraction.Err.Error(),
		})
	}
}

func (s *Service) errorResponse(lang models.Language, fault error) *models.ChatResponse {
	return &models.ChatResponse{
		PredictedPassengers: s.predictor.Fallback(),
		Response:            s.composer.TechnicalError(lang),
		LanguageDetected:    lang,
		MessageType:         models.MessageTypeError,
		Degraded:            true,
		Error:               fmt.Sprintf("Prediction failed: %v", fault),
	}
}
