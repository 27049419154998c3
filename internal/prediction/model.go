// internal/prediction/model.go
package prediction

import (
	"context"

	"chatbus/internal/features"
)

// Model scores one feature vector. Implementations must be safe for
// concurrent use once constructed.
type Model interface {
	Predict(ctx context.Context, v features.FeatureVector) (float64, error)
	NumFeatures() int
	Name() string
}

// FeatureNamer is implemented by models that know their training columns.
type FeatureNamer interface {
	FeatureNames() []string
}

// ModelFunc adapts a plain function to Model, mostly for tests and tools.
type ModelFunc func(ctx context.Context, v features.FeatureVector) (float64, error)

func (f ModelFunc) Predict(ctx context.Context, v features.FeatureVector) (float64, error) {
	return f(ctx, v)
}

func (f ModelFunc) NumFeatures() int { return features.NumFeatures }

func (f ModelFunc) Name() string { return "func" }
