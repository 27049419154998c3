// internal/features/assembler_test.go
package features

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbus/internal/models"
)

func createTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := NewAssembler(DefaultVocabulary())
	require.NoError(t, err)
	return a
}

func sampleQuery() models.StructuredQuery {
	return models.StructuredQuery{
		Date:      "2025-12-25",
		Time:      "08:30",
		Day:       "Monday",
		Weather:   models.WeatherRainy,
		PeakHours: models.Yes,
		Weekends:  models.No,
		Holidays:  models.Yes,
	}
}

func TestEncoder_SortedCodes(t *testing.T) {
	day, err := NewEncoder(FeatureDay, models.DayNames)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Friday", "Monday", "Saturday", "Sunday", "Thursday", "Tuesday", "Wednesday"},
		day.Classes())

	weather, err := NewEncoder(FeatureWeather, models.WeatherLabels)
	require.NoError(t, err)
	code, err := weather.Encode(models.WeatherCloudy)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	code, err = weather.Encode(models.WeatherSunny)
	require.NoError(t, err)
	assert.Equal(t, 2, code)
}

func TestEncoder_Errors(t *testing.T) {
	_, err := NewEncoder(FeatureWeather, nil)
	assert.Error(t, err)

	_, err = NewEncoder(FeatureWeather, []string{"Sunny", "Sunny"})
	assert.Error(t, err)

	enc, err := NewEncoder(FeatureWeather, models.WeatherLabels)
	require.NoError(t, err)

	_, err = enc.Encode("Snowy")
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, FeatureWeather, encErr.Feature)
	assert.Equal(t, "Snowy", encErr.Label)

	_, err = enc.Decode(3)
	assert.True(t, errors.As(err, &encErr))
}

func TestAssembler_Assemble(t *testing.T) {
	a := createTestAssembler(t)

	v, err := a.Assemble(sampleQuery())

	require.NoError(t, err)
	assert.Equal(t, FeatureVector{1, 1, 510, 1, 0, 1, 739610}, v)
}

func TestAssembler_RejectsUnknownLabels(t *testing.T) {
	a := createTestAssembler(t)

	tests := []struct {
		name    string
		mutate  func(q *models.StructuredQuery)
		feature string
	}{
		{"lowercase day", func(q *models.StructuredQuery) { q.Day = "monday" }, FeatureDay},
		{"unknown weather", func(q *models.StructuredQuery) { q.Weather = "Snowy" }, FeatureWeather},
		{"boolean flag", func(q *models.StructuredQuery) { q.Holidays = "true" }, FeatureHolidays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sampleQuery()
			tt.mutate(&q)

			_, err := a.Assemble(q)

			var encErr *EncodingError
			require.True(t, errors.As(err, &encErr))
			assert.Equal(t, tt.feature, encErr.Feature)
		})
	}
}

func TestAssembler_RejectsMalformedDateAndTime(t *testing.T) {
	a := createTestAssembler(t)

	q := sampleQuery()
	q.Date = "25/12/2025"
	_, err := a.Assemble(q)
	assert.Error(t, err)

	q = sampleQuery()
	q.Time = "8am"
	_, err = a.Assemble(q)
	assert.Error(t, err)
}

func TestAssembler_RoundTrip(t *testing.T) {
	a := createTestAssembler(t)

	for _, day := range models.DayNames {
		for _, weather := range models.WeatherLabels {
			q := sampleQuery()
			q.Day = day
			q.Weather = weather

			v, err := a.Assemble(q)
			require.NoError(t, err)
			decoded, err := a.Decode(v)
			require.NoError(t, err)

			assert.Equal(t, q, decoded)
		}
	}
}

func TestAssembler_DecodeRejectsOutOfRange(t *testing.T) {
	a := createTestAssembler(t)

	_, err := a.Decode(FeatureVector{9, 0, 60, 0, 0, 0, 739610})
	assert.Error(t, err)

	_, err = a.Decode(FeatureVector{0, 0, 1440, 0, 0, 0, 739610})
	assert.Error(t, err)

	_, err = a.Decode(FeatureVector{0.5, 0, 60, 0, 0, 0, 739610})
	assert.Error(t, err)
}

func TestDateOrdinal(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected int64
	}{
		{time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC), 719162},
		{time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), 719163},
		{time.Date(2025, time.January, 15, 23, 59, 0, 0, time.UTC), 739266},
		{time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), 739610},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format(models.DateLayout), func(t *testing.T) {
			assert.Equal(t, tt.expected, DateOrdinal(tt.date))
			assert.Equal(t, tt.date.Format(models.DateLayout), FromOrdinal(tt.expected).Format(models.DateLayout))
		})
	}
}

func TestVerifyFeatureOrder(t *testing.T) {
	assert.NoError(t, VerifyFeatureOrder([]string{
		"day", "weather", "time_value", "peak_hours", "weekends", "holidays", "date_ordinal",
	}))

	err := VerifyFeatureOrder([]string{
		"weather", "day", "time_value", "peak_hours", "weekends", "holidays", "date_ordinal",
	})
	assert.True(t, errors.Is(err, ErrFeatureOrderMismatch))

	err = VerifyFeatureOrder([]string{"day"})
	assert.True(t, errors.Is(err, ErrFeatureOrderMismatch))
}

func TestFeatureVector_Key(t *testing.T) {
	v := FeatureVector{1, 1, 510, 1, 0, 1, 739610}
	assert.Equal(t, "1,1,510,1,0,1,739610", v.Key())
	assert.Equal(t, []float64{1, 1, 510, 1, 0, 1, 739610}, v.Slice())
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "encoders.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"day": ["Monday","Tuesday","Wednesday","Thursday","Friday","Saturday","Sunday"],
		"weather": ["Rainy","Sunny","Cloudy"],
		"peak_hours": ["No","Yes"],
		"weekends": ["No","Yes"],
		"holidays": ["No","Yes"]
	}`), 0o600))

	vocab, err := LoadVocabulary(path)
	require.NoError(t, err)
	a, err := NewAssembler(vocab)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cloudy", "Rainy", "Sunny"}, a.Encoder(FeatureWeather).Classes())

	missing := filepath.Join(dir, "missing.json")
	require.NoError(t, os.WriteFile(missing, []byte(`{"day": ["Monday"]}`), 0o600))
	_, err = LoadVocabulary(missing)
	assert.Error(t, err)

	_, err = LoadVocabulary(filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func BenchmarkAssembler_Assemble(b *testing.B) {
	a, _ := NewAssembler(DefaultVocabulary())
	q := sampleQuery()
	for i := 0; i < b.N; i++ {
		_, _ = a.Assemble(q)
	}
}
