// internal/reply/composer.go
package reply

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"chatbus/internal/models"
)

// Crowding levels reported for structured predictions.
const (
	CrowdingLow      = "low"
	CrowdingModerate = "moderate"
	CrowdingHigh     = "high"
)

// Picker returns an index in [0, n). It selects among reply variants.
type Picker func(n int) int

type Option func(*Composer)

// WithPicker replaces the random variant picker, mainly for tests.
func WithPicker(p Picker) Option {
	return func(c *Composer) {
		if p != nil {
			c.pick = p
		}
	}
}

// Composer renders user-facing replies in English or Swahili.
type Composer struct {
	pick Picker
}

func NewComposer(opts ...Option) *Composer {
	c := &Composer{pick: rand.Intn}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composer) Greeting(lang models.Language) string {
	return c.choose(greetings[normalize(lang)])
}

func (c *Composer) ThankYou(lang models.Language) string {
	return c.choose(thankYous[normalize(lang)])
}

func (c *Composer) Fallback(lang models.Language) string {
	return fallbacks[normalize(lang)]
}

// TechnicalError is the apology returned when the pipeline fails outright.
func (c *Composer) TechnicalError(lang models.Language) string {
	return technicalErrors[normalize(lang)]
}

// Prediction renders the full prediction reply for q.
func (c *Composer) Prediction(passengers int, q models.StructuredQuery, lang models.Language) string {
	lang = normalize(lang)
	labels := predictionText[lang]
	insight := CrowdingInsight(passengers, lang)

	var b strings.Builder
	fmt.Fprintf(&b, labels.Title, DayName(q.Day, lang))
	fmt.Fprintf(&b, labels.Time, TimeDisplay(q.Time, lang))
	fmt.Fprintf(&b, labels.Weather, q.Weather)
	fmt.Fprintf(&b, labels.Passengers, passengers)
	fmt.Fprintf(&b, labels.Level, titleCase(insight.Level))
	fmt.Fprintf(&b, labels.Analysis, insight.Advice)
	if q.PeakHours == models.Yes {
		b.WriteString(labels.PeakNote)
	}
	b.WriteString(labels.Closing)
	return b.String()
}

func (c *Composer) choose(variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	i := c.pick(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return variants[i]
}

// CrowdingInsight maps a passenger count onto the five crowding bands.
func CrowdingInsight(passengers int, lang models.Language) Insight {
	bands := crowdingBands[normalize(lang)]
	for _, band := range bands[:len(bands)-1] {
		if passengers < band.Limit {
			return band.Insight
		}
	}
	return bands[len(bands)-1].Insight
}

// CrowdingLevel is the coarse three-level label used for structured predictions.
func CrowdingLevel(passengers int) string {
	switch {
	case passengers < 30:
		return CrowdingLow
	case passengers < 60:
		return CrowdingModerate
	default:
		return CrowdingHigh
	}
}

// TimeDisplay renders an HH:MM clock for humans. Unparseable input is
// returned unchanged.
func TimeDisplay(clock string, lang models.Language) string {
	q := models.StructuredQuery{Time: clock}
	minutes, err := q.ClockMinutes()
	if err != nil {
		return clock
	}
	hour, minute := minutes/60, minutes%60

	if normalize(lang) == models.LanguageSwahili {
		switch {
		case hour == 0:
			return fmt.Sprintf("usiku wa manane (%s)", clock)
		case hour < 12:
			return fmt.Sprintf("saa %d:%02d asubuhi", hour, minute)
		case hour == 12:
			return fmt.Sprintf("saa 12:%02d mchana", minute)
		default:
			return fmt.Sprintf("saa %d:%02d jioni", hour-12, minute)
		}
	}

	switch {
	case hour == 0:
		return fmt.Sprintf("midnight (%s)", clock)
	case hour < 12:
		return fmt.Sprintf("%d:%02d AM", hour, minute)
	case hour == 12:
		return fmt.Sprintf("12:%02d PM", minute)
	default:
		return fmt.Sprintf("%d:%02d PM", hour-12, minute)
	}
}

// DayName translates a canonical day label. Unknown labels pass through.
func DayName(day string, lang models.Language) string {
	if normalize(lang) == models.LanguageSwahili {
		if name, ok := swahiliDayNames[day]; ok {
			return name
		}
	}
	return day
}

func normalize(lang models.Language) models.Language {
	if lang == models.LanguageSwahili {
		return lang
	}
	return models.LanguageEnglish
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
