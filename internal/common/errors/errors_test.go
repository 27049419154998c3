package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{"prediction failure retries", NewPredictionFailedError(fmt.Errorf("boom")), "PREDICTION_FAILED", 3},
		{"timeout retries less", NewPredictionTimeoutError(fmt.Errorf("slow")), "PREDICTION_TIMEOUT", 2},
		{"validation never retries", NewInvalidRequestError("day: required"), "INVALID_PASSENGER_QUERY", 0},
		{"model problems share a code", NewModelLoadFailedError("model.json", fmt.Errorf("missing")), "MODEL_MISCONFIGURED", 0},
		{"unmapped code passes through", NewInternalError(fmt.Errorf("x")), "INTERNAL_ERROR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)

			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)
			assert.Equal(t, string(tt.err.Code), bpmnErr.ToErrorVariables()["originalErrorCode"])
		})
	}
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("predict: %w", NewCacheUnavailableError(fmt.Errorf("dial tcp")))

	stdErr := AsStandardError(wrapped)
	assert.Equal(t, ErrCodeCacheUnavailable, stdErr.Code)
	assert.True(t, HasCode(wrapped, ErrCodeCacheUnavailable))

	plain := AsStandardError(fmt.Errorf("plain"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "plain", plain.Details)
}

func TestStandardError_Unwrap(t *testing.T) {
	sentinel := stderrors.New("vocabulary drift")
	err := NewEncodingFailedError(sentinel)

	assert.True(t, stderrors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "ENCODING_FAILED")

	err.WithMetadata("feature", "weather")
	require.NotNil(t, err.Metadata)
	assert.Equal(t, "weather", err.Metadata["feature"])
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeEmptyPrompt))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidRequest))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(ErrCodePredictionTimeout))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodePredictionFailed))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeEmptyPrompt))
	assert.Equal(t, "PIPELINE", GetErrorCategory(ErrCodeEncodingFailed))
	assert.Equal(t, "MODEL", GetErrorCategory(ErrCodeFeatureOrderMismatch))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
	assert.True(t, IsRetryableErrorCode(ErrCodePredictionFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeEncodingFailed))
}
