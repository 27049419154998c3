// internal/prediction/remote_test.go
package prediction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbus/internal/features"
)

func TestRemoteModel_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req remoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, testVector.Slice(), req.Features)
		assert.Equal(t, features.FeatureOrder, req.FeatureNames)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction": 48.6}`))
	}))
	defer server.Close()

	model := NewRemoteModel(server.URL, time.Second, 0, nil)

	value, err := model.Predict(context.Background(), testVector)

	require.NoError(t, err)
	assert.Equal(t, 48.6, value)
	assert.Equal(t, 7, model.NumFeatures())
	assert.Equal(t, "remote", model.Name())
}

func TestRemoteModel_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"prediction": 20}`))
	}))
	defer server.Close()

	model := NewRemoteModel(server.URL, time.Second, 2, nil)

	value, err := model.Predict(context.Background(), testVector)

	require.NoError(t, err)
	assert.Equal(t, 20.0, value)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRemoteModel_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected int32
	}{
		{"client error is not retried", http.StatusBadRequest, `{"error":"bad order"}`, 1},
		{"missing prediction", http.StatusOK, `{}`, 1},
		{"malformed body", http.StatusOK, `not json`, 1},
		{"server error exhausts retries", http.StatusInternalServerError, ``, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			model := NewRemoteModel(server.URL, time.Second, 2, nil)

			_, err := model.Predict(context.Background(), testVector)

			assert.Error(t, err)
			assert.Equal(t, tt.expected, atomic.LoadInt32(&calls))
		})
	}
}

func TestRemoteModel_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"prediction": 1}`))
	}))
	defer server.Close()

	model := NewRemoteModel(server.URL, time.Second, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := model.Predict(ctx, testVector)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
