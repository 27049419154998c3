// internal/nlp/keywords.go
package nlp

// All tables are matched as substrings of the lower-cased prompt and are
// evaluated in declaration order. Reordering any of them changes results.

type keywordValue struct {
	keyword string
	value   string
}

var swahiliIndicators = []string{
	"je", "saa", "jumamosi", "jumapili", "jumatatu", "jumanne", "jumatano",
	"alhamisi", "ijumaa", "abiria", "basi", "leo", "kesho", "jana",
	"mchana", "usiku", "asubuhi", "jioni", "mvua", "jua", "baridi",
	"ni", "kuna", "ngapi", "idadi", "watu", "wengi", "wachache",
	"ninaweza", "naomba", "tafadhali", "samahani", "karibu",
}

var greetingPhrases = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"how are you", "how do you do", "what's up", "howdy", "greetings",
	"introduce yourself", "who are you", "what are you", "what can you do",
	"habari", "mambo", "hujambo", "salamu", "shikamoo", "vipi", "sasa",
}

// gratitudePhrases deliberately includes general praise ("great", "awesome").
var gratitudePhrases = []string{
	"thank you", "thanks", "thank u", "thanku", "thx", "ty",
	"appreciate", "grateful", "nice", "good job", "well done",
	"awesome", "great", "perfect", "excellent", "amazing",
	"asante", "shukran", "gracias", "merci", "asanteni",
}

var predictionKeywordsEnglish = []string{
	"passenger", "passengers", "people", "crowd", "crowded", "busy",
	"how many", "predict", "forecast", "expect", "anticipate",
	"will there be", "going to be", "travel time", "best time",
	"when to travel", "avoid crowds", "less crowded", "peak", "rush",
}

var predictionKeywordsSwahili = []string{
	"abiria", "watu", "idadi", "ngapi", "wengi", "wachache",
	"msongamano", "kujaa", "tupu", "wakati", "bora", "mzuri",
	"kusafiri", "basi", "gari", "hatua",
}

// timeIndicators includes bare digits, so almost any prompt with a number
// is treated as a prediction request.
var timeIndicators = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"jumatatu", "jumanne", "jumatano", "alhamisi", "ijumaa", "jumamosi", "jumapili",
	"morning", "afternoon", "evening", "night", "asubuhi", "mchana", "jioni", "usiku",
	"today", "tomorrow", "yesterday", "leo", "kesho", "jana",
	"am", "pm", "o'clock", "saa", ":",
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12",
}

var namedTimes = []keywordValue{
	{"morning", "08:00"},
	{"afternoon", "14:00"},
	{"evening", "18:00"},
	{"night", "20:00"},
	{"noon", "12:00"},
	{"midnight", "00:00"},
	{"dawn", "06:00"},
	{"dusk", "19:00"},
	{"asubuhi", "08:00"},
	{"mchana", "12:00"},
	{"jioni", "18:00"},
	{"usiku", "20:00"},
}

var englishDays = []keywordValue{
	{"monday", "Monday"},
	{"tuesday", "Tuesday"},
	{"wednesday", "Wednesday"},
	{"thursday", "Thursday"},
	{"friday", "Friday"},
	{"saturday", "Saturday"},
	{"sunday", "Sunday"},
}

var swahiliDays = []keywordValue{
	{"jumatatu", "Monday"},
	{"jumanne", "Tuesday"},
	{"jumatano", "Wednesday"},
	{"alhamisi", "Thursday"},
	{"ijumaa", "Friday"},
	{"jumamosi", "Saturday"},
	{"jumapili", "Sunday"},
}

var weatherKeywords = []keywordValue{
	{"sunny", "Sunny"},
	{"rain", "Rainy"},
	{"rainy", "Rainy"},
	{"cloudy", "Cloudy"},
	{"clear", "Sunny"},
	{"storm", "Rainy"},
	{"drizzle", "Rainy"},
	{"mvua", "Rainy"},
	{"jua", "Sunny"},
	{"mawingo", "Cloudy"},
}

var holidayKeywords = []string{"holiday", "christmas", "new year", "easter", "sikukuu"}

// Relative day terms, checked today → tomorrow → yesterday.
var (
	todayTerms     = []string{"today", "leo"}
	tomorrowTerms  = []string{"tomorrow", "kesho"}
	yesterdayTerms = []string{"yesterday", "jana"}
)
