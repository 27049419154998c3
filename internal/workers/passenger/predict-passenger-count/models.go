// internal/workers/passenger/predict-passenger-count/models.go
package predictpassengercount

import "chatbus/internal/models"

type Input struct {
	ExtractedData *models.StructuredQuery `json:"extractedData"`
	RequestID     string                  `json:"requestId,omitempty"`
}

type Output struct {
	PredictedPassengers int    `json:"predictedPassengers"`
	CrowdingLevel       string `json:"crowdingLevel"`
	Degraded            bool   `json:"degraded"`
}
