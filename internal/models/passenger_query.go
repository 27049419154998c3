// internal/models/passenger_query.go
package models

import (
	"fmt"
	"regexp"
	"time"
)

// Language is the language a prompt was written in.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSwahili Language = "Swahili"
)

// MessageType is the classified intent of a prompt, as reported to callers.
type MessageType string

const (
	MessageTypeGreeting   MessageType = "greeting"
	MessageTypeThankYou   MessageType = "thank_you"
	MessageTypePrediction MessageType = "prediction"
	MessageTypeFallback   MessageType = "fallback"
	MessageTypeError      MessageType = "error"
)

// Categorical labels shared by the extractors and the encoders.
const (
	Yes = "Yes"
	No  = "No"

	WeatherSunny  = "Sunny"
	WeatherRainy  = "Rainy"
	WeatherCloudy = "Cloudy"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DayNames holds the canonical day labels in calendar order, Monday first.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeatherLabels holds every weather label the extractors can emit.
var WeatherLabels = []string{WeatherSunny, WeatherRainy, WeatherCloudy}

// StructuredQuery is the entity bundle extracted from one prompt.
type StructuredQuery struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Day       string `json:"day"`
	Weather   string `json:"weather"`
	PeakHours string `json:"peak_hours"`
	Weekends  string `json:"weekends"`
	Holidays  string `json:"holidays"`
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate reports the first field that is not in canonical form.
func (q StructuredQuery) Validate() error {
	if _, err := q.ParsedDate(); err != nil {
		return err
	}
	if !clockPattern.MatchString(q.Time) {
		return fmt.Errorf("time %q is not HH:MM", q.Time)
	}
	if !contains(DayNames, q.Day) {
		return fmt.Errorf("day %q is not a day name", q.Day)
	}
	if !contains(WeatherLabels, q.Weather) {
		return fmt.Errorf("weather %q is not a known condition", q.Weather)
	}
	for field, v := range map[string]string{
		"peak_hours": q.PeakHours,
		"weekends":   q.Weekends,
		"holidays":   q.Holidays,
	} {
		if v != Yes && v != No {
			return fmt.Errorf("%s %q must be Yes or No", field, v)
		}
	}
	return nil
}

// ParsedDate returns Date as a UTC midnight time. Year 0000 is rejected
// because date ordinals start at 0001-01-01.
func (q StructuredQuery) ParsedDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, q.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", q.Date, err)
	}
	if t.Year() < 1 {
		return time.Time{}, fmt.Errorf("date %q: year must be at least 0001", q.Date)
	}
	return t, nil
}

// ClockMinutes returns Time as minutes past midnight.
func (q StructuredQuery) ClockMinutes() (int, error) {
	t, err := time.Parse(TimeLayout, q.Time)
	if err != nil {
		return 0, fmt.Errorf("time %q: %w", q.Time, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
