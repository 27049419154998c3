// internal/models/passenger_query_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuery() StructuredQuery {
	return StructuredQuery{
		Date: "2025-01-13", Time: "08:00", Day: "Monday", Weather: WeatherSunny,
		PeakHours: Yes, Weekends: No, Holidays: No,
	}
}

func TestStructuredQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *StructuredQuery)
		wantErr string
	}{
		{"valid", func(q *StructuredQuery) {}, ""},
		{"year zero", func(q *StructuredQuery) { q.Date = "0000-01-01" }, "year must be at least 0001"},
		{"february 30th", func(q *StructuredQuery) { q.Date = "2025-02-30" }, "date"},
		{"hour 24", func(q *StructuredQuery) { q.Time = "24:00" }, "time"},
		{"lower-case day", func(q *StructuredQuery) { q.Day = "monday" }, "day"},
		{"unknown weather", func(q *StructuredQuery) { q.Weather = "Foggy" }, "weather"},
		{"flag not yes/no", func(q *StructuredQuery) { q.Holidays = "maybe" }, "holidays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuery()
			tt.mutate(&q)

			err := q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStructuredQuery_ParsedDate(t *testing.T) {
	q := validQuery()
	q.Date = "0001-01-01"
	d, err := q.ParsedDate()
	require.NoError(t, err)
	assert.Equal(t, 1, d.Year())

	q.Date = "0000-12-31"
	_, err = q.ParsedDate()
	assert.Error(t, err)
}
