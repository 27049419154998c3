// internal/workers/passenger/parse-passenger-query/models.go
package parsepassengerquery

import "chatbus/internal/models"

type Input struct {
	Prompt    string `json:"prompt"`
	RequestID string `json:"requestId,omitempty"`
}

type Output struct {
	Language            models.Language        `json:"language"`
	MessageType         models.MessageType     `json:"messageType"`
	IsPredictionRequest bool                   `json:"isPredictionRequest"`
	ExtractedData       models.StructuredQuery `json:"extractedData"`
	DefaultedFields     []string               `json:"defaultedFields"`
}
