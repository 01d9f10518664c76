package training

import (
	"math"

	"github.com/fdg312/coach-hub/internal/strava"
)

// Load — агрегированная тренировочная нагрузка за окно
type Load struct {
	WindowDays      int
	TotalActivities int

	TotalDistanceKm      float64
	TotalDurationMinutes int
	TotalElevationGain   float64

	// Средний пульс только по активностям, которые его сообщают
	AverageHeartrate float64
	HeartrateSamples int

	CountByType map[string]int

	// Недельные показатели: линейная экстраполяция metric*7/windowDays,
	// не календарное среднее
	WeeklyDistanceKm float64
	WeeklyActivities float64
	WeeklyMinutes    float64
}

// Summarize агрегирует активности за окно windowDays
func Summarize(activities []strava.Activity, windowDays int) Load {
	if windowDays <= 0 {
		windowDays = 7
	}

	load := Load{
		WindowDays:  windowDays,
		CountByType: make(map[string]int),
	}

	var totalMeters float64
	var totalSeconds int
	var hrSum float64

	for _, a := range activities {
		load.TotalActivities++
		totalMeters += a.Distance
		totalSeconds += a.MovingTime
		load.TotalElevationGain += a.TotalElevationGain
		load.CountByType[a.Type]++

		if a.AverageHeartrate != nil {
			hrSum += *a.AverageHeartrate
			load.HeartrateSamples++
		}
	}

	load.TotalDistanceKm = DistanceKm(totalMeters)
	load.TotalDurationMinutes = DurationMinutes(totalSeconds)

	if load.HeartrateSamples > 0 {
		load.AverageHeartrate = math.Round(hrSum/float64(load.HeartrateSamples)*10) / 10
	}

	scale := 7.0 / float64(windowDays)
	load.WeeklyDistanceKm = math.Round(load.TotalDistanceKm*scale*100) / 100
	load.WeeklyActivities = math.Round(float64(load.TotalActivities)*scale*10) / 10
	load.WeeklyMinutes = math.Round(float64(load.TotalDurationMinutes)*scale*10) / 10

	return load
}
