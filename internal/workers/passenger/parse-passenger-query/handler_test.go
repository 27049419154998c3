// internal/workers/passenger/parse-passenger-query/handler_test.go
package parsepassengerquery

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbus/internal/common/config"
	"chatbus/internal/common/errors"
	"chatbus/internal/common/logger"
	"chatbus/internal/models"
	"chatbus/internal/nlp"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	extractor := nlp.NewExtractor(
		nlp.WithClock(func() time.Time { return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC) }),
		nlp.WithLocation(time.UTC),
	)
	return NewHandler(LoadConfig(config.WorkerConfig{Timeout: 1000}), extractor, logger.NewTestLogger(t), nil)
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, time.Second, LoadConfig(config.WorkerConfig{Timeout: 1000}).Timeout)
	assert.Equal(t, 5*time.Second, LoadConfig(config.WorkerConfig{}).Timeout)
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name            string
		prompt          string
		expectedLang    models.Language
		expectedType    models.MessageType
		expectedDay     string
		expectedTime    string
		expectedWeekend string
	}{
		{
			name:            "english prediction",
			prompt:          "How many passengers on Monday at 8 AM?",
			expectedLang:    models.LanguageEnglish,
			expectedType:    models.MessageTypePrediction,
			expectedDay:     "Monday",
			expectedTime:    "08:00",
			expectedWeekend: models.No,
		},
		{
			name:            "swahili prediction",
			prompt:          "Kutakuwa na abiria wengi Jumamosi jioni?",
			expectedLang:    models.LanguageSwahili,
			expectedType:    models.MessageTypePrediction,
			expectedDay:     "Saturday",
			expectedTime:    "18:00",
			expectedWeekend: models.Yes,
		},
		{
			name:            "greeting still extracts defaults",
			prompt:          "hello",
			expectedLang:    models.LanguageEnglish,
			expectedType:    models.MessageTypeGreeting,
			expectedDay:     "Wednesday",
			expectedTime:    nlp.DefaultTime,
			expectedWeekend: models.No,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)

			output, err := handler.Execute(context.Background(), &Input{Prompt: tt.prompt})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedLang, output.Language)
			assert.Equal(t, tt.expectedType, output.MessageType)
			assert.Equal(t, tt.expectedType == models.MessageTypePrediction, output.IsPredictionRequest)
			assert.Equal(t, tt.expectedDay, output.ExtractedData.Day)
			assert.Equal(t, tt.expectedTime, output.ExtractedData.Time)
			assert.Equal(t, tt.expectedWeekend, output.ExtractedData.Weekends)
			assert.NotNil(t, output.DefaultedFields)
		})
	}
}

// IsPredictionRequest is the raw detector, so a greeting that mentions a
// time is still flagged, exactly as on the HTTP extraction path.
func TestHandler_Execute_PredictionFlagIndependentOfIntent(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Prompt: "hello at 8"})

	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeGreeting, output.MessageType)
	assert.True(t, output.IsPredictionRequest)
}

func TestHandler_Execute_EmptyPrompt(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Prompt: "  "})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeEmptyPrompt))

	bpmnErr := errors.ConvertToBPMNError(errors.AsStandardError(err))
	assert.Equal(t, "EMPTY_PROMPT", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestOutput_Variables(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Prompt: "busy tomorrow?"})
	require.NoError(t, err)

	raw, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &vars))
	assert.Contains(t, vars, "language")
	assert.Contains(t, vars, "messageType")
	assert.Contains(t, vars, "isPredictionRequest")
	assert.Contains(t, vars, "defaultedFields")

	data := vars["extractedData"].(map[string]interface{})
	assert.Equal(t, "2025-01-16", data["date"])
	assert.Equal(t, "Thursday", data["day"])
}
