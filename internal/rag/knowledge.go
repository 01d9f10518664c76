package rag

import "github.com/fdg312/coach-hub/internal/storage"

// Статическая база знаний: предзагружается при старте процесса
// и не меняется. Relevance — редакторская оценка, не результат поиска.
var staticKnowledge = []storage.Document{
	{
		Content: "Protein intake of 0.8-1.0 grams per pound of body weight supports muscle " +
			"retention during a calorie deficit. Spread protein across 3-4 meals and include " +
			"a source at breakfast to reduce cravings later in the day.",
		Category:  "nutrition",
		Source:    "coaching-handbook/protein",
		Relevance: 0.9,
	},
	{
		Content: "A sustainable calorie deficit is 300-500 kcal below maintenance. Larger " +
			"deficits accelerate loss short-term but increase muscle loss, fatigue and the " +
			"odds of rebound. Adjust the deficit, not the diet's food list.",
		Category:  "nutrition",
		Source:    "coaching-handbook/deficit",
		Relevance: 0.85,
	},
	{
		Content: "Easy runs should make up about 80 percent of weekly running volume. Keep " +
			"the pace conversational (zone 2) and save intervals and tempo work for one or " +
			"two quality sessions per week.",
		Category:  "training",
		Source:    "coaching-handbook/easy-running",
		Relevance: 0.9,
	},
	{
		Content: "Strength training two to three times per week preserves lean mass while " +
			"losing weight. Prioritize compound movements and progressive overload; cardio " +
			"volume alone does not protect muscle.",
		Category:  "training",
		Source:    "coaching-handbook/strength",
		Relevance: 0.8,
	},
	{
		Content: "Sleep is the foundation of recovery: under 7 hours per night measurably " +
			"reduces training adaptation and increases appetite the next day. Fix sleep " +
			"before adding training volume.",
		Category:  "recovery",
		Source:    "coaching-handbook/sleep",
		Relevance: 0.9,
	},
	{
		Content: "Persistent soreness, rising resting heart rate and falling motivation are " +
			"early overtraining signals. Take a deload week: halve the volume, keep the " +
			"frequency, and stretch or do mobility work on rest days.",
		Category:  "recovery",
		Source:    "coaching-handbook/overtraining",
		Relevance: 0.8,
	},
}
