// internal/prediction/xgboost.go
package prediction

import (
	"context"
	"fmt"

	"github.com/dmitryikh/leaves"

	"chatbus/internal/common/errors"
	"chatbus/internal/features"
)

// XGBoostModel evaluates a gradient-boosted tree ensemble in process. The
// file must be in XGBoost's binary format.
type XGBoostModel struct {
	ensemble     *leaves.Ensemble
	path         string
	featureNames []string
}

// LoadXGBoost loads the model once. featureNames documents the training
// column order; nil means features.FeatureOrder.
func LoadXGBoost(path string, featureNames []string) (*XGBoostModel, error) {
	ensemble, err := leaves.XGEnsembleFromFile(path, false)
	if err != nil {
		return nil, errors.NewModelLoadFailedError(path, err)
	}
	if featureNames == nil {
		featureNames = features.FeatureOrder
	}
	return &XGBoostModel{
		ensemble:     ensemble,
		path:         path,
		featureNames: append([]string(nil), featureNames...),
	}, nil
}

func (m *XGBoostModel) Predict(ctx context.Context, v features.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if n := m.ensemble.NFeatures(); n != features.NumFeatures {
		return 0, fmt.Errorf("model %s expects %d features, got %d", m.path, n, features.NumFeatures)
	}
	return m.ensemble.PredictSingle(v.Slice(), 0), nil
}

func (m *XGBoostModel) NumFeatures() int { return m.ensemble.NFeatures() }

func (m *XGBoostModel) Name() string { return "xgboost" }

func (m *XGBoostModel) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}
