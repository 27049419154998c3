// internal/features/assembler.go
package features

import (
	"fmt"
	"math"

	"chatbus/internal/models"
)

// Assembler turns a StructuredQuery into the model's input row. It is
// immutable after construction and safe for concurrent use.
type Assembler struct {
	encoders map[string]*Encoder
}

func NewAssembler(vocab Vocabulary) (*Assembler, error) {
	encoders, err := vocab.Encoders()
	if err != nil {
		return nil, err
	}
	return &Assembler{encoders: encoders}, nil
}

// Encoder returns the encoder for a categorical feature, or nil.
func (a *Assembler) Encoder(feature string) *Encoder {
	return a.encoders[feature]
}

// Assemble fails with *EncodingError when a categorical label is outside its
// vocabulary. Date and time must already be in canonical form.
func (a *Assembler) Assemble(q models.StructuredQuery) (FeatureVector, error) {
	var v FeatureVector

	date, err := q.ParsedDate()
	if err != nil {
		return v, fmt.Errorf("assemble %s: %w", FeatureDateOrdinal, err)
	}
	minutes, err := q.ClockMinutes()
	if err != nil {
		return v, fmt.Errorf("assemble %s: %w", FeatureTimeValue, err)
	}

	labels := map[string]string{
		FeatureDay:       q.Day,
		FeatureWeather:   q.Weather,
		FeaturePeakHours: q.PeakHours,
		FeatureWeekends:  q.Weekends,
		FeatureHolidays:  q.Holidays,
	}

	for i, feature := range FeatureOrder {
		switch feature {
		case FeatureTimeValue:
			v[i] = float64(minutes)
		case FeatureDateOrdinal:
			v[i] = float64(DateOrdinal(date))
		default:
			code, err := a.encoders[feature].Encode(labels[feature])
			if err != nil {
				return FeatureVector{}, err
			}
			v[i] = float64(code)
		}
	}
	return v, nil
}

// Decode applies the inverse of every encoder and rebuilds date and time.
func (a *Assembler) Decode(v FeatureVector) (models.StructuredQuery, error) {
	var q models.StructuredQuery
	labels := make(map[string]string, len(CategoricalFeatures))

	for i, feature := range FeatureOrder {
		switch feature {
		case FeatureTimeValue:
			minutes := int(v[i])
			if minutes < 0 || minutes >= 24*60 {
				return q, fmt.Errorf("decode %s: %d minutes is out of range", feature, minutes)
			}
			q.Time = fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
		case FeatureDateOrdinal:
			q.Date = FromOrdinal(int64(v[i])).Format(models.DateLayout)
		default:
			if v[i] != math.Trunc(v[i]) {
				return q, &EncodingError{Feature: feature, Code: int(v[i]), decode: true}
			}
			label, err := a.encoders[feature].Decode(int(v[i]))
			if err != nil {
				return q, err
			}
			labels[feature] = label
		}
	}

	q.Day = labels[FeatureDay]
	q.Weather = labels[FeatureWeather]
	q.PeakHours = labels[FeaturePeakHours]
	q.Weekends = labels[FeatureWeekends]
	q.Holidays = labels[FeatureHolidays]
	return q, nil
}
