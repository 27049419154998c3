// internal/features/vector.go
package features

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column names as they appear in the training data.
const (
	FeatureDay         = "day"
	FeatureWeather     = "weather"
	FeatureTimeValue   = "time_value"
	FeaturePeakHours   = "peak_hours"
	FeatureWeekends    = "weekends"
	FeatureHolidays    = "holidays"
	FeatureDateOrdinal = "date_ordinal"
)

// FeatureOrder is the column order the model was trained with. The model
// has no column names at inference time, so this order is the contract.
var FeatureOrder = []string{
	FeatureDay,
	FeatureWeather,
	FeatureTimeValue,
	FeaturePeakHours,
	FeatureWeekends,
	FeatureHolidays,
	FeatureDateOrdinal,
}

// CategoricalFeatures are the columns that go through an Encoder.
var CategoricalFeatures = []string{
	FeatureDay,
	FeatureWeather,
	FeaturePeakHours,
	FeatureWeekends,
	FeatureHolidays,
}

const NumFeatures = 7

var ErrFeatureOrderMismatch = errors.New("feature order mismatch")

// FeatureVector is one model input row in FeatureOrder.
type FeatureVector [NumFeatures]float64

// Slice returns the vector as a fresh slice for model APIs.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Key is a stable textual form of the vector, used for cache keys.
func (v FeatureVector) Key() string {
	parts := make([]string, NumFeatures)
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// VerifyFeatureOrder checks a model's declared column names against
// FeatureOrder. It runs once at startup.
func VerifyFeatureOrder(names []string) error {
	if len(names) != len(FeatureOrder) {
		return fmt.Errorf("%w: model declares %d features, pipeline emits %d",
			ErrFeatureOrderMismatch, len(names), len(FeatureOrder))
	}
	for i, name := range names {
		if name != FeatureOrder[i] {
			return fmt.Errorf("%w: column %d is %q, pipeline emits %q",
				ErrFeatureOrderMismatch, i, name, FeatureOrder[i])
		}
	}
	return nil
}

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

// DateOrdinal returns the proleptic Gregorian ordinal of t's calendar date,
// counting 0001-01-01 as day 1.
func DateOrdinal(t time.Time) int64 {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return floorDiv(day.Unix(), 86400) + unixEpochOrdinal
}

// FromOrdinal is the inverse of DateOrdinal, returning UTC midnight.
func FromOrdinal(ordinal int64) time.Time {
	return time.Unix((ordinal-unixEpochOrdinal)*86400, 0).UTC()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
