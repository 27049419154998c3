// internal/reply/composer_test.go
package reply

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"chatbus/internal/models"
)

func createTestQuery() models.StructuredQuery {
	return models.StructuredQuery{
		Date:      "2025-01-13",
		Time:      "08:00",
		Day:       "Monday",
		Weather:   models.WeatherSunny,
		PeakHours: models.Yes,
		Weekends:  models.No,
		Holidays:  models.No,
	}
}

func fixedPicker(i int) Picker {
	return func(n int) int { return i }
}

func TestCrowdingInsight_Bands(t *testing.T) {
	tests := []struct {
		passengers int
		english    string
		swahili    string
	}{
		{0, "very low", "kidogo sana"},
		{19, "very low", "kidogo sana"},
		{20, "low", "kidogo"},
		{34, "low", "kidogo"},
		{35, "moderate", "wastani"},
		{49, "moderate", "wastani"},
		{50, "moderately high", "wastani juu"},
		{64, "moderately high", "wastani juu"},
		{65, "high", "msongamano"},
		{200, "high", "msongamano"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.english, CrowdingInsight(tt.passengers, models.LanguageEnglish).Level, "passengers %d", tt.passengers)
		assert.Equal(t, tt.swahili, CrowdingInsight(tt.passengers, models.LanguageSwahili).Level, "passengers %d", tt.passengers)
	}
}

func TestCrowdingLevel(t *testing.T) {
	assert.Equal(t, CrowdingLow, CrowdingLevel(0))
	assert.Equal(t, CrowdingLow, CrowdingLevel(29))
	assert.Equal(t, CrowdingModerate, CrowdingLevel(30))
	assert.Equal(t, CrowdingModerate, CrowdingLevel(59))
	assert.Equal(t, CrowdingHigh, CrowdingLevel(60))
}

func TestTimeDisplay(t *testing.T) {
	tests := []struct {
		clock   string
		english string
		swahili string
	}{
		{"00:15", "midnight (00:15)", "usiku wa manane (00:15)"},
		{"08:05", "8:05 AM", "saa 8:05 asubuhi"},
		{"12:30", "12:30 PM", "saa 12:30 mchana"},
		{"17:00", "5:00 PM", "saa 5:00 jioni"},
		{"23:59", "11:59 PM", "saa 11:59 jioni"},
		{"late", "late", "late"},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.english, TimeDisplay(tt.clock, models.LanguageEnglish))
			assert.Equal(t, tt.swahili, TimeDisplay(tt.clock, models.LanguageSwahili))
		})
	}
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Jumatatu", DayName("Monday", models.LanguageSwahili))
	assert.Equal(t, "Jumapili", DayName("Sunday", models.LanguageSwahili))
	assert.Equal(t, "Monday", DayName("Monday", models.LanguageEnglish))
	assert.Equal(t, "Someday", DayName("Someday", models.LanguageSwahili))
}

func TestComposer_Prediction_English(t *testing.T) {
	c := NewComposer()

	text := c.Prediction(57, createTestQuery(), models.LanguageEnglish)

	assert.True(t, strings.HasPrefix(text, "🚌 Passenger Prediction for Monday\n\n"))
	assert.Contains(t, text, "⏰ Time: 8:00 AM\n")
	assert.Contains(t, text, "🌤 Weather conditions: Sunny\n")
	assert.Contains(t, text, "👥 Predicted passengers: 57\n")
	assert.Contains(t, text, "📊 Crowding level: Moderately High\n\n")
	assert.Contains(t, text, "💡 My analysis: The bus will be fairly busy, but still manageable.")
	assert.Contains(t, text, "peak hours")
	assert.True(t, strings.HasSuffix(text, "any other questions? 😊"))
}

func TestComposer_Prediction_Swahili(t *testing.T) {
	c := NewComposer()
	q := createTestQuery()
	q.PeakHours = models.No
	q.Time = "18:30"

	text := c.Prediction(12, q, models.LanguageSwahili)

	assert.True(t, strings.HasPrefix(text, "🚌 Utabiri wa Abiria - Jumatatu\n\n"))
	assert.Contains(t, text, "⏰ Wakati: saa 6:30 jioni\n")
	assert.Contains(t, text, "👥 Idadi inayotabiriwa: 12 abiria\n")
	assert.Contains(t, text, "📊 Kiwango cha msongamano: Kidogo Sana\n\n")
	assert.NotContains(t, text, "Kumbuka")
}

func TestComposer_Variants(t *testing.T) {
	first := NewComposer(WithPicker(fixedPicker(0)))
	second := NewComposer(WithPicker(fixedPicker(1)))

	assert.True(t, strings.HasPrefix(first.Greeting(models.LanguageEnglish), "👋 Hello!"))
	assert.True(t, strings.HasPrefix(second.Greeting(models.LanguageEnglish), "🌟 Welcome"))
	assert.True(t, strings.HasPrefix(first.Greeting(models.LanguageSwahili), "👋 Habari!"))
	assert.True(t, strings.HasPrefix(first.ThankYou(models.LanguageEnglish), "🙏"))
	assert.True(t, strings.HasPrefix(second.ThankYou(models.LanguageSwahili), "😊 Furaha yangu!"))

	outOfRange := NewComposer(WithPicker(fixedPicker(7)))
	assert.Equal(t, first.Greeting(models.LanguageEnglish), outOfRange.Greeting(models.LanguageEnglish))
}

func TestComposer_DefaultPickerStaysInRange(t *testing.T) {
	c := NewComposer()
	for i := 0; i < 50; i++ {
		assert.Contains(t, greetings[models.LanguageEnglish], c.Greeting(models.LanguageEnglish))
	}
}

func TestComposer_StaticTexts(t *testing.T) {
	c := NewComposer()

	assert.Contains(t, c.Fallback(models.LanguageEnglish), "I'm not quite sure")
	assert.Contains(t, c.Fallback(models.LanguageSwahili), "Pole, sielewi")
	assert.Contains(t, c.TechnicalError(models.LanguageEnglish), "technical issue")
	assert.Contains(t, c.TechnicalError(models.LanguageSwahili), "tatizo la kiufundi")

	// Unknown languages render in English.
	assert.Equal(t, c.Fallback(models.LanguageEnglish), c.Fallback("French"))
}
