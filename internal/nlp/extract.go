// internal/nlp/extract.go
package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"chatbus/internal/models"
)

const DefaultTime = "08:00"

// clockPattern describes one time family; group index 0 means "not captured".
type clockPattern struct {
	re       *regexp.Regexp
	hour     int
	minute   int
	meridiem int
}

var clockPatterns = []clockPattern{
	{re: regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`), hour: 1, minute: 2, meridiem: 3},
	{re: regexp.MustCompile(`(\d{1,2})\s*(am|pm)`), hour: 1, meridiem: 2},
	{re: regexp.MustCompile(`at\s+(\d{1,2}):(\d{2})`), hour: 1, minute: 2},
	{re: regexp.MustCompile(`saa\s+(\d{1,2})`), hour: 1},
	{re: regexp.MustCompile(`(\d{1,2})\s*o'?clock`), hour: 1},
}

// datePattern describes one date family by the group index of each part.
type datePattern struct {
	re               *regexp.Regexp
	year, month, day int
}

var datePatterns = []datePattern{
	{re: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`), year: 1, month: 2, day: 3},
	{re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), year: 3, month: 1, day: 2},
	{re: regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`), year: 3, month: 1, day: 2},
}

// ExtractTime returns the first clock time mentioned in text as HH:MM,
// falling back to named times of day and then to 08:00.
func ExtractTime(text string) string {
	v, _ := extractTime(strings.ToLower(text))
	return v
}

func extractTime(lower string) (string, bool) {
	for _, p := range clockPatterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			if v, ok := p.clock(m); ok {
				return v, true
			}
		}
	}
	if v, ok := firstValue(lower, namedTimes); ok {
		return v, true
	}
	return DefaultTime, false
}

func (p clockPattern) clock(m []string) (string, bool) {
	hour, err := strconv.Atoi(m[p.hour])
	if err != nil {
		return "", false
	}
	minute := 0
	if p.minute > 0 && m[p.minute] != "" {
		if minute, err = strconv.Atoi(m[p.minute]); err != nil {
			return "", false
		}
	}
	if p.meridiem > 0 {
		switch m[p.meridiem] {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
	}
	if hour > 23 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ExtractDay returns the canonical English day name mentioned in text.
// Explicit day names win over relative terms; the default is now's weekday.
func ExtractDay(text string, now time.Time) string {
	v, _ := extractDay(strings.ToLower(text), now)
	return v
}

func extractDay(lower string, now time.Time) (string, bool) {
	if v, ok := firstValue(lower, englishDays); ok {
		return v, true
	}
	if v, ok := firstValue(lower, swahiliDays); ok {
		return v, true
	}
	if d, ok := relativeDay(lower, now); ok {
		return d.Weekday().String(), true
	}
	return now.Weekday().String(), false
}

// ExtractWeather maps weather words to Sunny, Rainy or Cloudy; Sunny by default.
func ExtractWeather(text string) string {
	v, _ := extractWeather(strings.ToLower(text))
	return v
}

func extractWeather(lower string) (string, bool) {
	if v, ok := firstValue(lower, weatherKeywords); ok {
		return v, true
	}
	return models.WeatherSunny, false
}

// ExtractDate returns the first calendar date in text as YYYY-MM-DD.
// Relative terms are resolved against now, which is also the default.
func ExtractDate(text string, now time.Time) string {
	v, _ := extractDate(strings.ToLower(text), now)
	return v
}

func extractDate(lower string, now time.Time) (string, bool) {
	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			if v, ok := p.date(m); ok {
				return v, true
			}
		}
	}
	if d, ok := relativeDay(lower, now); ok {
		return d.Format(models.DateLayout), true
	}
	return now.Format(models.DateLayout), false
}

func (p datePattern) date(m []string) (string, bool) {
	year, errY := strconv.Atoi(m[p.year])
	month, errM := strconv.Atoi(m[p.month])
	day, errD := strconv.Atoi(m[p.day])
	if errY != nil || errM != nil || errD != nil || year < 1 {
		return "", false
	}
	v := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	// time.Parse rejects month 13 and February 30th alike.
	if _, err := time.Parse(models.DateLayout, v); err != nil {
		return "", false
	}
	return v, true
}

// ExtractHoliday reports Yes when text mentions a holiday by keyword. The
// date is never consulted.
func ExtractHoliday(text string) string {
	if containsAny(strings.ToLower(text), holidayKeywords) {
		return models.Yes
	}
	return models.No
}

func relativeDay(lower string, now time.Time) (time.Time, bool) {
	switch {
	case containsAny(lower, todayTerms):
		return now, true
	case containsAny(lower, tomorrowTerms):
		return now.AddDate(0, 0, 1), true
	case containsAny(lower, yesterdayTerms):
		return now.AddDate(0, 0, -1), true
	}
	return time.Time{}, false
}

// IsPeakHours is Yes for hours 7-9 and 17-19 inclusive; minutes are ignored.
func IsPeakHours(clock string) string {
	hour, err := strconv.Atoi(strings.SplitN(clock, ":", 2)[0])
	if err != nil {
		return models.No
	}
	if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19) {
		return models.Yes
	}
	return models.No
}

// IsWeekend is Yes for Saturday and Sunday.
func IsWeekend(day string) string {
	if day == "Saturday" || day == "Sunday" {
		return models.Yes
	}
	return models.No
}
