// internal/nlp/classify.go
package nlp

import (
	"strings"

	"chatbus/internal/models"
)

// DetectLanguage returns Swahili when any Swahili indicator occurs in text,
// English otherwise.
func DetectLanguage(text string) models.Language {
	if containsAny(strings.ToLower(text), swahiliIndicators) {
		return models.LanguageSwahili
	}
	return models.LanguageEnglish
}

func IsGreeting(text string) bool {
	return containsAny(strings.ToLower(text), greetingPhrases)
}

func IsThankYou(text string) bool {
	return containsAny(strings.ToLower(text), gratitudePhrases)
}

// IsPredictionRequest reports whether text asks about passenger numbers or
// mentions anything that looks like a day or time.
func IsPredictionRequest(text string) bool {
	lower := strings.ToLower(text)
	return containsAny(lower, predictionKeywordsEnglish) ||
		containsAny(lower, predictionKeywordsSwahili) ||
		containsAny(lower, timeIndicators)
}

// ClassifyIntent picks exactly one message type. Greeting is checked first,
// then thanks, then prediction.
func ClassifyIntent(text string) models.MessageType {
	switch {
	case IsGreeting(text):
		return models.MessageTypeGreeting
	case IsThankYou(text):
		return models.MessageTypeThankYou
	case IsPredictionRequest(text):
		return models.MessageTypePrediction
	default:
		return models.MessageTypeFallback
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// firstValue returns the value of the first table entry whose keyword occurs in lower.
func firstValue(lower string, table []keywordValue) (string, bool) {
	for _, kv := range table {
		if strings.Contains(lower, kv.keyword) {
			return kv.value, true
		}
	}
	return "", false
}
