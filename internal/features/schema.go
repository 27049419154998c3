// internal/features/schema.go
package features

import (
	"sort"

	"chatbus/internal/common/validation"
)

// QuerySchema describes a structured prediction request. Categorical
// properties are restricted to the vocabulary the model was trained on.
func QuerySchema(vocab Vocabulary) validation.JSONSchema {
	enum := func(feature string) []string {
		labels := append([]string(nil), vocab[feature]...)
		sort.Strings(labels)
		return labels
	}

	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"date": {
				Type:        "string",
				Description: "Calendar date, YYYY-MM-DD",
				Pattern:     `^\d{4}-\d{2}-\d{2}$`,
			},
			"time": {
				Type:        "string",
				Description: "24-hour wall clock time, HH:MM",
				Pattern:     `^([01]\d|2[0-3]):[0-5]\d$`,
			},
			"day":        {Type: "string", Enum: enum(FeatureDay)},
			"weather":    {Type: "string", Enum: enum(FeatureWeather)},
			"peak_hours": {Type: "string", Enum: enum(FeaturePeakHours)},
			"weekends":   {Type: "string", Enum: enum(FeatureWeekends)},
			"holidays":   {Type: "string", Enum: enum(FeatureHolidays)},
		},
		Required: []string{
			"date", "time", "day", "weather", "peak_hours", "weekends", "holidays",
		},
		AdditionalProperties: true,
	}
}
