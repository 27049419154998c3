// internal/prediction/service_test.go
package prediction

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/features"
	"chatbus/internal/models"
)

func createTestQuery() models.StructuredQuery {
	return models.StructuredQuery{
		Date:      "2025-01-13",
		Time:      "08:00",
		Day:       "Monday",
		Weather:   models.WeatherSunny,
		PeakHours: models.Yes,
		Weekends:  models.No,
		Holidays:  models.No,
	}
}

func createTestService(t *testing.T, model Model, opts ...Option) *Service {
	t.Helper()
	assembler, err := features.NewAssembler(features.DefaultVocabulary())
	require.NoError(t, err)
	return NewService(assembler, model, logger.NewTestLogger(t), opts...)
}

func constantModel(v float64) Model {
	return ModelFunc(func(ctx context.Context, _ features.FeatureVector) (float64, error) {
		return v, nil
	})
}

type namedModel struct {
	Model
	names []string
	n     int
}

func (m namedModel) FeatureNames() []string { return m.names }
func (m namedModel) NumFeatures() int       { return m.n }

func TestService_Predict_Rounding(t *testing.T) {
	tests := []struct {
		raw      float64
		expected int
	}{
		{57.2, 57},
		{57.7, 58},
		{42.5, 42},
		{43.5, 44},
		{-0.4, 0},
	}

	for _, tt := range tests {
		svc := createTestService(t, constantModel(tt.raw))

		p := svc.Predict(context.Background(), createTestQuery())

		assert.False(t, p.Degraded)
		assert.NoError(t, p.Err)
		assert.Equal(t, tt.expected, p.Passengers, "raw %v", tt.raw)
		assert.Equal(t, tt.raw, p.Raw)
	}
}

func TestService_Predict_PassesOrderedVector(t *testing.T) {
	var got features.FeatureVector
	svc := createTestService(t, ModelFunc(func(ctx context.Context, v features.FeatureVector) (float64, error) {
		got = v
		return 10, nil
	}))

	svc.Predict(context.Background(), createTestQuery())

	// Monday=1, Sunny=2, 08:00=480, Yes=1, No=0, No=0, 2025-01-13.
	assert.Equal(t, features.FeatureVector{1, 2, 480, 1, 0, 0, 739264}, got)
}

func TestService_Predict_Fallback(t *testing.T) {
	tests := []struct {
		name         string
		model        Model
		mutate       func(q *models.StructuredQuery)
		expectedCode commonerrors.ErrorCode
	}{
		{
			name:  "label outside vocabulary",
			model: constantModel(10),
			mutate: func(q *models.StructuredQuery) {
				q.Weather = "Foggy"
			},
			expectedCode: commonerrors.ErrCodeEncodingFailed,
		},
		{
			name:  "malformed date",
			model: constantModel(10),
			mutate: func(q *models.StructuredQuery) {
				q.Date = "tomorrow"
			},
			expectedCode: commonerrors.ErrCodeInvalidRequest,
		},
		{
			name: "model error",
			model: ModelFunc(func(ctx context.Context, v features.FeatureVector) (float64, error) {
				return 0, errors.New("booster unavailable")
			}),
			expectedCode: commonerrors.ErrCodePredictionFailed,
		},
		{
			name: "model timeout",
			model: ModelFunc(func(ctx context.Context, v features.FeatureVector) (float64, error) {
				return 0, context.DeadlineExceeded
			}),
			expectedCode: commonerrors.ErrCodePredictionTimeout,
		},
		{
			name: "model panic",
			model: ModelFunc(func(ctx context.Context, v features.FeatureVector) (float64, error) {
				panic("index out of range")
			}),
			expectedCode: commonerrors.ErrCodePredictionFailed,
		},
		{
			name:         "non-finite output",
			model:        constantModel(math.NaN()),
			expectedCode: commonerrors.ErrCodePredictionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createTestService(t, tt.model)
			q := createTestQuery()
			if tt.mutate != nil {
				tt.mutate(&q)
			}

			p := svc.Predict(context.Background(), q)

			assert.True(t, p.Degraded)
			assert.Equal(t, 43, p.Passengers)
			require.Error(t, p.Err)
			assert.True(t, commonerrors.HasCode(p.Err, tt.expectedCode), "got %v", p.Err)
		})
	}
}

func TestService_Predict_CustomFallback(t *testing.T) {
	svc := createTestService(t, ModelFunc(func(ctx context.Context, v features.FeatureVector) (float64, error) {
		return 0, errors.New("down")
	}), WithFallback(30))

	p := svc.Predict(context.Background(), createTestQuery())

	assert.Equal(t, 30, p.Passengers)
	assert.Equal(t, 30, svc.Fallback())
}

func TestService_Verify(t *testing.T) {
	t.Run("model without names", func(t *testing.T) {
		assert.NoError(t, createTestService(t, constantModel(1)).Verify())
	})

	t.Run("matching names", func(t *testing.T) {
		m := namedModel{Model: constantModel(1), names: features.FeatureOrder, n: 7}
		assert.NoError(t, createTestService(t, m).Verify())
	})

	t.Run("swapped columns", func(t *testing.T) {
		m := namedModel{Model: constantModel(1), names: []string{
			"date_ordinal", "time_value", "day", "weather", "peak_hours", "weekends", "holidays",
		}, n: 7}

		err := createTestService(t, m).Verify()

		assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeFeatureOrderMismatch))
		assert.True(t, errors.Is(err, features.ErrFeatureOrderMismatch))
	})

	t.Run("configured names override", func(t *testing.T) {
		err := createTestService(t, constantModel(1), WithFeatureNames([]string{"day"})).Verify()
		assert.Error(t, err)
	})

	t.Run("feature count", func(t *testing.T) {
		m := namedModel{Model: constantModel(1), names: features.FeatureOrder, n: 9}
		assert.Error(t, createTestService(t, m).Verify())
	})
}

func TestLoadXGBoost_MissingFile(t *testing.T) {
	_, err := LoadXGBoost("testdata/does-not-exist.bin", nil)

	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeModelLoadFailed))
}

func BenchmarkService_Predict(b *testing.B) {
	assembler, _ := features.NewAssembler(features.DefaultVocabulary())
	svc := NewService(assembler, constantModel(50), logger.NewNoOpLogger())
	q := createTestQuery()
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		svc.Predict(ctx, q)
	}
}
