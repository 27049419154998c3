// internal/workers/passenger/compose-passenger-reply/models.go
package composepassengerreply

import "chatbus/internal/models"

type Input struct {
	Language            models.Language         `json:"language"`
	MessageType         models.MessageType      `json:"messageType"`
	PredictedPassengers int                     `json:"predictedPassengers"`
	ExtractedData       *models.StructuredQuery `json:"extractedData,omitempty"`
}

type Output struct {
	Response string `json:"response"`
}
