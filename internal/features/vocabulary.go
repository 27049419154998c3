// internal/features/vocabulary.go
package features

import (
	"encoding/json"
	"fmt"
	"os"

	"chatbus/internal/models"
)

// Vocabulary holds the closed label set of each categorical feature.
type Vocabulary map[string][]string

// DefaultVocabulary matches the label sets the model was trained with.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FeatureDay:       append([]string(nil), models.DayNames...),
		FeatureWeather:   append([]string(nil), models.WeatherLabels...),
		FeaturePeakHours: {models.No, models.Yes},
		FeatureWeekends:  {models.No, models.Yes},
		FeatureHolidays:  {models.No, models.Yes},
	}
}

// LoadVocabulary reads a JSON object of feature name to label list, as
// exported next to the model file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encoder vocabulary: %w", err)
	}

	var vocab Vocabulary
	if err := json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("parse encoder vocabulary %s: %w", path, err)
	}

	for _, feature := range CategoricalFeatures {
		if len(vocab[feature]) == 0 {
			return nil, fmt.Errorf("encoder vocabulary %s: missing feature %s", path, feature)
		}
	}
	return vocab, nil
}

// Encoders builds one encoder per categorical feature.
func (v Vocabulary) Encoders() (map[string]*Encoder, error) {
	encoders := make(map[string]*Encoder, len(CategoricalFeatures))
	for _, feature := range CategoricalFeatures {
		enc, err := NewEncoder(feature, v[feature])
		if err != nil {
			return nil, err
		}
		encoders[feature] = enc
	}
	return encoders, nil
}
