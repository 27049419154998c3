// internal/nlp/extractor.go
package nlp

import (
	"fmt"
	"strings"
	"time"

	commonerrors "chatbus/internal/common/errors"
	"chatbus/internal/models"
)

// Field names reported in Extraction.DefaultedFields.
const (
	FieldDate    = "date"
	FieldTime    = "time"
	FieldDay     = "day"
	FieldWeather = "weather"
)

// Extraction is the result of one extraction pass.
type Extraction struct {
	Query models.StructuredQuery
	// DefaultedFields lists the fields no rule matched, in extraction order.
	DefaultedFields []string
	// Recovered is set when the pass failed and SafeDefaults were used instead.
	Recovered bool
	Err       error
}

// Extractor runs every entity extractor against one reference time.
type Extractor struct {
	clock    func() time.Time
	location *time.Location
}

type ExtractorOption func(*Extractor)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ExtractorOption {
	return func(e *Extractor) { e.clock = clock }
}

// WithLocation sets the zone used to resolve "today".
func WithLocation(loc *time.Location) ExtractorOption {
	return func(e *Extractor) {
		if loc != nil {
			e.location = loc
		}
	}
}

func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		clock:    time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the extractor's reference time in its configured zone.
func (e *Extractor) Now() time.Time {
	return e.clock().In(e.location)
}

// Extract never fails. A pass that panics or yields a non-canonical query
// is replaced wholesale by SafeDefaults and flagged as Recovered.
func (e *Extractor) Extract(text string) Extraction {
	now := e.Now()

	result, err := e.extract(text, now)
	if err == nil {
		err = result.Query.Validate()
	}
	if err != nil {
		return Extraction{
			Query:           SafeDefaults(now),
			DefaultedFields: []string{FieldDate, FieldTime, FieldDay, FieldWeather},
			Recovered:       true,
			Err:             commonerrors.NewExtractionFailedError(err),
		}
	}
	return result
}

func (e *Extractor) extract(text string, now time.Time) (result Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()

	lower := strings.ToLower(text)
	var defaulted []string

	clock, ok := extractTime(lower)
	if !ok {
		defaulted = append(defaulted, FieldTime)
	}
	day, ok := extractDay(lower, now)
	if !ok {
		defaulted = append(defaulted, FieldDay)
	}
	weather, ok := extractWeather(lower)
	if !ok {
		defaulted = append(defaulted, FieldWeather)
	}
	date, ok := extractDate(lower, now)
	if !ok {
		defaulted = append(defaulted, FieldDate)
	}

	return Extraction{
		Query: models.StructuredQuery{
			Date:      date,
			Time:      clock,
			Day:       day,
			Weather:   weather,
			PeakHours: IsPeakHours(clock),
			Weekends:  IsWeekend(day),
			Holidays:  ExtractHoliday(lower),
		},
		DefaultedFields: defaulted,
	}, nil
}

// SafeDefaults is the query used when extraction cannot be trusted.
// Peak hours and holidays are No; weekends follows today's day.
func SafeDefaults(now time.Time) models.StructuredQuery {
	day := now.Weekday().String()
	return models.StructuredQuery{
		Date:      now.Format(models.DateLayout),
		Time:      DefaultTime,
		Day:       day,
		Weather:   models.WeatherSunny,
		PeakHours: models.No,
		Weekends:  IsWeekend(day),
		Holidays:  models.No,
	}
}
