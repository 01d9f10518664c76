package training

import "testing"

func TestPaceRun(t *testing.T) {
	pace, ok := Pace("Run", 5000, 1500)
	if !ok {
		t.Fatal("expected pace for a run with distance")
	}
	if pace != "5:00/km" {
		t.Errorf("expected 5:00/km, got %s", pace)
	}
}

func TestPaceSecondsPadding(t *testing.T) {
	// 10000 м за 3270 с = 5:27/км — секунды с ведущим нулём
	pace, ok := Pace("TrailRun", 10000, 3270)
	if !ok {
		t.Fatal("expected pace for a trail run")
	}
	if pace != "5:27/km" {
		t.Errorf("expected 5:27/km, got %s", pace)
	}
}

func TestPaceSkippedForNonRuns(t *testing.T) {
	if _, ok := Pace("Ride", 20000, 3600); ok {
		t.Error("expected no pace for a ride")
	}
}

func TestPaceZeroDistanceNoDivision(t *testing.T) {
	// Тренировка без дистанции (например, силовая) — темпа нет
	if _, ok := Pace("Run", 0, 1800); ok {
		t.Error("expected no pace for zero distance")
	}
	if _, ok := Pace("WeightTraining", 0, 1800); ok {
		t.Error("expected no pace for zero-distance non-run")
	}
}

func TestDistanceKm(t *testing.T) {
	if got := DistanceKm(5432); got != 5.43 {
		t.Errorf("expected 5.43, got %f", got)
	}
}

func TestDurationMinutes(t *testing.T) {
	if got := DurationMinutes(1500); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := DurationMinutes(89); got != 1 {
		t.Errorf("expected rounding to 1, got %d", got)
	}
}
