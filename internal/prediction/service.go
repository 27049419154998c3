// internal/prediction/service.go
package prediction

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"chatbus/internal/common/config"
	"chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/common/metrics"
	"chatbus/internal/common/observability"
	"chatbus/internal/features"
	"chatbus/internal/models"
)

// Prediction is the outcome of one scoring call. A degraded prediction
// carries the fallback value and the error that caused it.
type Prediction struct {
	Passengers int
	Raw        float64
	Degraded   bool
	Err        error
}

type Service struct {
	assembler    *features.Assembler
	model        Model
	fallback     int
	featureNames []string
	logger       logger.Logger
	obs          *observability.Observability
}

type Option func(*Service)

func WithFallback(n int) Option {
	return func(s *Service) { s.fallback = n }
}

// WithFeatureNames overrides the column order Verify checks against.
func WithFeatureNames(names []string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.featureNames = append([]string(nil), names...)
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

func NewService(assembler *features.Assembler, model Model, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		assembler: assembler,
		model:     model,
		fallback:  config.DefaultFallbackPrediction,
		logger:    log.WithFields(map[string]interface{}{"component": "prediction", "backend": model.Name()}),
		obs:       observability.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Fallback() int { return s.fallback }

func (s *Service) Assembler() *features.Assembler { return s.assembler }

// Verify checks the model against the pipeline's column contract. It runs
// once at startup, never per request.
func (s *Service) Verify() error {
	names := s.featureNames
	if names == nil {
		if namer, ok := s.model.(FeatureNamer); ok {
			names = namer.FeatureNames()
		}
	}
	if names != nil {
		if err := features.VerifyFeatureOrder(names); err != nil {
			return errors.NewFeatureOrderMismatchError(err)
		}
	}
	if n := s.model.NumFeatures(); n != features.NumFeatures {
		return errors.NewFeatureOrderMismatchError(
			fmt.Errorf("%w: model expects %d features, pipeline emits %d", features.ErrFeatureOrderMismatch, n, features.NumFeatures))
	}
	return nil
}

// Predict never fails. Any assembly or model error yields the fallback value
// with Degraded set.
func (s *Service) Predict(ctx context.Context, q models.StructuredQuery) Prediction {
	ctx, span := s.obs.StartSpan(ctx, "prediction.Predict",
		attribute.String("query.day", q.Day),
		attribute.String("query.time", q.Time),
	)
	defer span.End()

	start := time.Now()
	raw, err := s.score(ctx, q)
	metrics.PredictionDuration.WithLabelValues(s.model.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("fallback").Inc()
		s.obs.RecordPrediction(ctx, s.model.Name(), true)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fallback prediction")

		s.logger.Error("prediction failed, using fallback", map[string]interface{}{
			"error":     err.Error(),
			"errorCode": string(errors.AsStandardError(err).Code),
			"fallback":  s.fallback,
		})
		return Prediction{Passengers: s.fallback, Degraded: true, Err: err}
	}

	passengers := int(math.RoundToEven(raw))
	metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	s.obs.RecordPrediction(ctx, s.model.Name(), false)
	span.SetAttributes(attribute.Int("prediction.passengers", passengers))

	return Prediction{Passengers: passengers, Raw: raw}
}

func (s *Service) score(ctx context.Context, q models.StructuredQuery) (raw float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPredictionFailedError(fmt.Errorf("model panicked: %v", r))
		}
	}()

	v, err := s.assembler.Assemble(q)
	if err != nil {
		var encErr *features.EncodingError
		if stderrors.As(err, &encErr) {
			return 0, errors.NewEncodingFailedError(err).WithMetadata("feature", encErr.Feature)
		}
		return 0, errors.NewInvalidRequestError(err.Error())
	}

	raw, err = s.model.Predict(ctx, v)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return 0, errors.NewPredictionTimeoutError(err)
		}
		return 0, errors.NewPredictionFailedError(err)
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, errors.NewPredictionFailedError(fmt.Errorf("model returned %v", raw))
	}
	return raw, nil
}
