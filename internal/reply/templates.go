// internal/reply/templates.go
package reply

import "chatbus/internal/models"

// Insight describes how crowded a predicted trip will feel.
type Insight struct {
	Level       string
	Description string
	Advice      string
}

// crowdingBand applies to predictions strictly below Limit. The last band in
// each table has no upper limit.
type crowdingBand struct {
	Limit int
	Insight
}

var crowdingBands = map[models.Language][]crowdingBand{
	models.LanguageEnglish: {
		{20, Insight{"very low", "Nearly empty bus", "Perfect time to travel. You'll have plenty of space and a comfortable ride."}},
		{35, Insight{"low", "Few passengers", "Great travel conditions with adequate seating and fresh air."}},
		{50, Insight{"moderate", "Average passenger count", "Normal passenger levels with decent space availability."}},
		{65, Insight{"moderately high", "Getting crowded", "The bus will be fairly busy, but still manageable."}},
		{0, Insight{"high", "Heavy crowding expected", "Expect a packed bus. Consider traveling at a different time or waiting for the next one."}},
	},
	models.LanguageSwahili: {
		{20, Insight{"kidogo sana", "Basi litakuwa tupu kabisa", "Wakati mzuri kabisa wa kusafiri. Utapata nafasi nyingi na utaweza kukaa bila shida."}},
		{35, Insight{"kidogo", "Abiria wachache", "Wakati mzuri wa kusafiri. Utapata nafasi ya kukaa na hewa safi."}},
		{50, Insight{"wastani", "Idadi ya kawaida ya abiria", "Kiwango cha wastani cha abiria. Bado kuna nafasi za kutosha."}},
		{65, Insight{"wastani juu", "Abiria wengi kidogo", "Basi linaweza kuwa na abiria wengi lakini bado linaweza kubebeka."}},
		{0, Insight{"msongamano", "Msongamano mkuu", "Basi litakuwa limejaa kabisa. Fikiria kusafiri wakati mwingine au subiri basi jingine."}},
	},
}

var swahiliDayNames = map[string]string{
	"Monday":    "Jumatatu",
	"Tuesday":   "Jumanne",
	"Wednesday": "Jumatano",
	"Thursday":  "Alhamisi",
	"Friday":    "Ijumaa",
	"Saturday":  "Jumamosi",
	"Sunday":    "Jumapili",
}

var greetings = map[models.Language][]string{
	models.LanguageEnglish: {
		"👋 Hello! I'm your ChatBus AI Assistant, and I'm here to help you navigate bus travel with smart predictions.\n\n" +
			"I specialize in predicting passenger flow patterns, so you can plan your journeys efficiently. Whether you're trying to avoid crowds or find the best travel times, I've got the insights you need.\n\n" +
			"✨ What I can help you with:\n" +
			"• Passenger count predictions for any day and time\n" +
			"• Peak hour analysis and crowd level insights\n" +
			"• Best travel time recommendations\n" +
			"• Real-time travel advice\n\n" +
			"💡 Try asking me something like:\n" +
			"• \"How crowded will it be on Monday at 8 AM?\"\n" +
			"• \"What's the best time to travel on Friday?\"\n" +
			"• \"Will there be many passengers tomorrow evening?\"\n\n" +
			"What would you like to know about your next bus journey? 😊",
		"🌟 Welcome to ChatBus AI! I'm your personal travel companion, here to make your bus journeys smoother and more predictable.\n\n" +
			"Think of me as your travel planning assistant. I can predict passenger flows, identify the best travel times, and help you avoid those uncomfortable crowded rides.\n\n" +
			"🚀 Ready to explore?\n" +
			"• Ask about any specific day and time\n" +
			"• Get insights on peak hours and quiet periods\n" +
			"• Discover optimal travel windows\n" +
			"• Learn about passenger patterns\n\n" +
			"💬 Just tell me: When and where do you want to travel? I'll give you the complete analysis of what to expect. 😊",
	},
	models.LanguageSwahili: {
		"👋 Habari! Mimi ni ChatBus AI Assistant wako, na nipo hapa kukusaidia katika usafiri wa mabasi kwa kutumia utabiri wa akili.\n\n" +
			"Nina utaalamu wa kutabiri mifumo ya mtiririko wa abiria, ili uweze kupanga safari zako kwa ufanisi. Iwe unataka kuepuka msongamano au kutafuta nyakati bora za kusafiri, nina maarifa unayohitaji.\n\n" +
			"✨ Ninachoweza kukusaidia:\n" +
			"• Utabiri wa idadi ya abiria kwa siku na wakati wowote\n" +
			"• Uchambuzi wa nyakati za msongamano na uelewa wa kiwango cha msongamano\n" +
			"• Mapendekezo ya nyakati bora za kusafiri\n" +
			"• Ushauri wa kusafiri wa wakati halisi\n\n" +
			"💡 Jaribu kuniuliza kitu kama:\n" +
			"• \"Kutakuwa na msongamano kiasi gani Jumatatu saa 8 asubuhi?\"\n" +
			"• \"Ni wakati gani bora wa kusafiri Ijumaa?\"\n" +
			"• \"Je, kutakuwa na abiria wengi kesho jioni?\"\n\n" +
			"Ungependa kujua nini kuhusu safari yako ijayo ya basi? 😊",
		"🌟 Karibu katika ChatBus AI! Mimi ni mwenza wako wa kibinafsi wa kusafiri, nipo hapa kufanya safari zako za mabasi ziwe laini na za kutabiriwa.\n\n" +
			"Nifikirike kama msaidizi wako wa kupanga safari. Ninaweza kutabiri mtiririko wa abiria, kutambua nyakati bora za kusafiri, na kukusaidia kuepuka safari za msongamano zisizotamanisha.\n\n" +
			"🚀 Uko tayari kuchunguza?\n" +
			"• Uliza kuhusu siku na wakati wowote mahususi\n" +
			"• Pata maarifa kuhusu nyakati za msongamano na vipindi vya kimya\n" +
			"• Gundua madirisha ya kusafiri bora\n" +
			"• Jifunze kuhusu mifumo ya abiria\n\n" +
			"💬 Niambie tu: Unataka kusafiri lini na wapi? Nitakupa uchambuzi kamili wa kile unachoweza kutarajia. 😊",
	},
}

var thankYous = map[models.Language][]string{
	models.LanguageEnglish: {
		"🙏 You're absolutely welcome! I'm so glad I could help make your travel planning easier.\n\n" +
			"Remember, I'm always here whenever you need passenger predictions or travel insights. Whether it's for tomorrow's commute or planning a special trip, just give me a shout!\n\n" +
			"🚌 Safe travels, and I hope your journey is comfortable and pleasant! 😊",
		"😊 My pleasure! It makes me happy to help fellow travelers make smarter journey decisions.\n\n" +
			"Don't hesitate to come back anytime you need help with:\n" +
			"• Planning your daily commute\n" +
			"• Avoiding rush hour crowds\n" +
			"• Finding the perfect travel windows\n" +
			"• Any other bus-related questions!\n\n" +
			"🌟 Wishing you smooth and comfortable travels ahead!",
	},
	models.LanguageSwahili: {
		"🙏 Karibu sana kabisa! Nimefurahi sana kwamba niliweza kusaidia kufanya mipango yako ya kusafiri iwe rahisi.\n\n" +
			"Kumbuka, nipo hapa kila wakati unavyohitaji utabiri wa abiria au maarifa ya kusafiri. Iwe ni kwa ajili ya safari za kesho au kupanga safari maalumu, niite tu!\n\n" +
			"🚌 Safiri salama, na natumai safari yako itakuwa ya starehe na ya kupendeza! 😊",
		"😊 Furaha yangu! Inanifurahisha kusaidia wasafiri wenzangu kufanya maamuzi mazuri ya safari.\n\n" +
			"Usisite kurudi wakati wowote unahitaji msaada na:\n" +
			"• Kupanga safari zako za kila siku\n" +
			"• Kuepuka msongamano wa nyakati za msongamano\n" +
			"• Kutafuta madirisha kamili ya kusafiri\n" +
			"• Maswali mengine yanayohusiana na mabasi!\n\n" +
			"🌟 Nakutakia safari laini na za starehe mbele!",
	},
}

var fallbacks = map[models.Language]string{
	models.LanguageEnglish: "🤔 I'm not quite sure what you're asking, but I'm eager to help!\n\n" +
		"I specialize in predicting passenger counts for bus travel. I can assist you with:\n\n" +
		"📋 Great questions to ask:\n" +
		"• \"How many passengers on Monday at 8 AM?\"\n" +
		"• \"What's the best time to travel on Friday?\"\n" +
		"• \"How crowded will it be tomorrow evening?\"\n" +
		"• \"Find me a less crowded time to travel on Tuesday.\"\n\n" +
		"💡 Quick tips:\n" +
		"• Mention the day (Monday, Tuesday, etc.)\n" +
		"• Add the time (8 AM, evening, etc.)\n" +
		"• You can also mention weather conditions if relevant\n\n" +
		"Try again using one of the examples above, or just tell me what you'd like to know about bus travel! 😊",
	models.LanguageSwahili: "🤔 Pole, sielewi vizuri ulichomaanisha, lakini nina hamu ya kukusaidia!\n\n" +
		"Mimi ni mtaalamu wa kutabiri idadi ya abiria katika mabasi. Ninaweza kukusaidia kwa:\n\n" +
		"📋 Maswali yanayofaa:\n" +
		"• \"Kuna abiria wangapi Jumatatu saa 8 asubuhi?\"\n" +
		"• \"Je, ni wakati gani bora wa kusafiri Ijumaa?\"\n" +
		"• \"Kutakuwa na msongamano kiasi gani kesho jioni?\"\n" +
		"• \"Nitafute wakati wa kusafiri usio na msongamano Jumanne.\"\n\n" +
		"💡 Miwongozo ya haraka:\n" +
		"• Taja siku (Jumatatu, Jumanne, nk.)\n" +
		"• Ongeza wakati (saa 8 asubuhi, jioni, nk.)\n" +
		"• Unaweza pia kunitaja hali ya hewa ikiwa ni muhimu\n\n" +
		"Jaribu tena kwa kutumia mfano wa hapo juu, au niambie tu unataka kujua nini kuhusu usafiri wa basi! 😊",
}

var technicalErrors = map[models.Language]string{
	models.LanguageEnglish: "🔧 Sorry, I encountered a technical issue. Please try again in a moment.\n\n" +
		"If the problem persists, please check that the ChatBus service is running properly.",
	models.LanguageSwahili: "🔧 Samahani, nimepata tatizo la kiufundi. Tafadhali jaribu tena baada ya muda mfupi.\n\n" +
		"Ikiwa tatizo linaendelea, hakikisha kwamba huduma ya ChatBus inafanya kazi vizuri.",
}

type predictionLabels struct {
	Title      string
	Time       string
	Weather    string
	Passengers string
	Level      string
	Analysis   string
	PeakNote   string
	Closing    string
}

var predictionText = map[models.Language]predictionLabels{
	models.LanguageEnglish: {
		Title:      "🚌 Passenger Prediction for %s\n\n",
		Time:       "⏰ Time: %s\n",
		Weather:    "🌤 Weather conditions: %s\n",
		Passengers: "👥 Predicted passengers: %d\n",
		Level:      "📊 Crowding level: %s\n\n",
		Analysis:   "💡 My analysis: %s\n\n",
		PeakNote:   "⚠️ Note: This is during peak hours, so expect higher passenger volumes.\n\n",
		Closing:    "Would you like a prediction for a different time, or do you have any other questions? 😊",
	},
	models.LanguageSwahili: {
		Title:      "🚌 Utabiri wa Abiria - %s\n\n",
		Time:       "⏰ Wakati: %s\n",
		Weather:    "🌤 Hali ya hewa: %s\n",
		Passengers: "👥 Idadi inayotabiriwa: %d abiria\n",
		Level:      "📊 Kiwango cha msongamano: %s\n\n",
		Analysis:   "💡 Uchambuzi wangu: %s\n\n",
		PeakNote:   "⚠️ Kumbuka: Huu ni wakati wa msongamano mkuu, kwa hiyo tarajia abiria wengi zaidi.\n\n",
		Closing:    "Je, unahitaji utabiri wa wakati mwingine au una swali lingine? 😊",
	},
}
