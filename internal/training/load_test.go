package training

import (
	"testing"

	"github.com/fdg312/coach-hub/internal/strava"
)

func hr(v float64) *float64 { return &v }

func TestSummarizeSkipsMissingHeartrate(t *testing.T) {
	activities := []strava.Activity{
		{Type: "Run", Distance: 5000, MovingTime: 1500, AverageHeartrate: hr(150)},
		{Type: "Run", Distance: 5000, MovingTime: 1500, AverageHeartrate: hr(160)},
		{Type: "WeightTraining", MovingTime: 2400}, // без пульса
	}

	load := Summarize(activities, 7)

	if load.TotalActivities != 3 {
		t.Errorf("expected 3 activities, got %d", load.TotalActivities)
	}
	if load.HeartrateSamples != 2 {
		t.Errorf("expected 2 heartrate samples, got %d", load.HeartrateSamples)
	}
	if load.AverageHeartrate != 155 {
		t.Errorf("expected avg HR 155 over reporting activities only, got %f", load.AverageHeartrate)
	}
}

func TestSummarizeWeeklyExtrapolation(t *testing.T) {
	activities := []strava.Activity{
		{Type: "Run", Distance: 10000, MovingTime: 3600},
		{Type: "Ride", Distance: 30000, MovingTime: 5400},
	}

	load := Summarize(activities, 14)

	// Линейное масштабирование metric*7/14
	if load.TotalDistanceKm != 40 {
		t.Errorf("expected total 40 km, got %f", load.TotalDistanceKm)
	}
	if load.WeeklyDistanceKm != 20 {
		t.Errorf("expected weekly 20 km, got %f", load.WeeklyDistanceKm)
	}
	if load.WeeklyActivities != 1 {
		t.Errorf("expected weekly 1 activity, got %f", load.WeeklyActivities)
	}

	if load.CountByType["Run"] != 1 || load.CountByType["Ride"] != 1 {
		t.Errorf("unexpected type counts: %v", load.CountByType)
	}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	load := Summarize(nil, 7)
	if load.TotalActivities != 0 || load.AverageHeartrate != 0 {
		t.Errorf("expected zero load, got %+v", load)
	}
}
