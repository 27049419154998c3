// internal/models/chat.go
package models

// PromptRequest is the body accepted by the prompt endpoints.
type PromptRequest struct {
	Prompt *string `json:"prompt"`
}

// ChatResponse is returned for every conversational prompt.
type ChatResponse struct {
	RequestID           string           `json:"request_id"`
	PredictedPassengers int              `json:"predicted_passengers"`
	Response            string           `json:"response"`
	ExtractedData       *StructuredQuery `json:"extracted_data"`
	LanguageDetected    Language         `json:"language_detected"`
	MessageType         MessageType      `json:"message_type"`
	Degraded            bool             `json:"degraded,omitempty"`
	Error               string           `json:"error,omitempty"`
}

// ExtractionResponse is returned by the extraction-only path.
type ExtractionResponse struct {
	ExtractedData       StructuredQuery `json:"extracted_data"`
	LanguageDetected    Language        `json:"language_detected"`
	OriginalPrompt      string          `json:"original_prompt"`
	IsPredictionRequest bool            `json:"is_prediction_request"`
	DefaultedFields     []string        `json:"defaulted_fields,omitempty"`
}

// StructuredPredictionResponse is returned when the caller supplies the features directly.
type StructuredPredictionResponse struct {
	PredictedPassengers int             `json:"predicted_passengers"`
	CrowdingLevel       string          `json:"crowding_level"`
	InputData           StructuredQuery `json:"input_data"`
	Degraded            bool            `json:"degraded,omitempty"`
}
