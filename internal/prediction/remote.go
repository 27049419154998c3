// internal/prediction/remote.go
package prediction

import (
	"context"
	"fmt"
	"math"
	"time"

	commonhttp "chatbus/internal/common/http"
	"chatbus/internal/features"
)

type remoteRequest struct {
	Features     []float64 `json:"features"`
	FeatureNames []string  `json:"feature_names"`
}

type remoteResponse struct {
	Prediction *float64 `json:"prediction"`
}

// RemoteModel scores vectors on a model-serving endpoint. The request always
// carries the column names so the server can check the order.
type RemoteModel struct {
	client       *commonhttp.Client
	url          string
	featureNames []string
}

func NewRemoteModel(url string, timeout time.Duration, maxRetries int, featureNames []string) *RemoteModel {
	if featureNames == nil {
		featureNames = features.FeatureOrder
	}
	return &RemoteModel{
		client:       commonhttp.NewClient(timeout).WithRetries(maxRetries),
		url:          url,
		featureNames: append([]string(nil), featureNames...),
	}
}

func (m *RemoteModel) Predict(ctx context.Context, v features.FeatureVector) (float64, error) {
	var resp remoteResponse
	err := m.client.PostJSON(ctx, m.url, remoteRequest{
		Features:     v.Slice(),
		FeatureNames: m.featureNames,
	}, &resp)
	if err != nil {
		return 0, fmt.Errorf("remote model: %w", err)
	}
	if resp.Prediction == nil {
		return 0, fmt.Errorf("remote model: response has no prediction")
	}
	if math.IsNaN(*resp.Prediction) || math.IsInf(*resp.Prediction, 0) {
		return 0, fmt.Errorf("remote model: non-finite prediction")
	}
	return *resp.Prediction, nil
}

func (m *RemoteModel) NumFeatures() int { return len(m.featureNames) }

func (m *RemoteModel) Name() string { return "remote" }

func (m *RemoteModel) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}
