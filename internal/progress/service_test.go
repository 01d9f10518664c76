package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/fdg312/coach-hub/internal/profile"
	"github.com/fdg312/coach-hub/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *profile.Service) {
	t.Helper()
	store := memory.New()
	profiles := profile.NewService(store)
	return NewService(store, profiles, 4), profiles
}

func setupProfile(t *testing.T, profiles *profile.Service, owner string) {
	t.Helper()
	_, err := profiles.Setup(context.Background(), owner, profile.SetupRequest{
		Age:           30,
		Gender:        "male",
		WeightLbs:     180,
		HeightInches:  70,
		Goal:          "lose_weight",
		ActivityLevel: "moderately_active",
	})
	if err != nil {
		t.Fatalf("profile setup: %v", err)
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestLogSameDateUpdatesNotDuplicates(t *testing.T) {
	svc, profiles := newTestService(t)
	ctx := context.Background()
	setupProfile(t, profiles, "u1")

	if _, err := svc.Log(ctx, "u1", "2026-08-01", floatPtr(180), intPtr(1), nil); err != nil {
		t.Fatalf("first log: %v", err)
	}
	entry, err := svc.Log(ctx, "u1", "2026-08-01", floatPtr(179.5), nil, intPtr(2200))
	if err != nil {
		t.Fatalf("second log: %v", err)
	}

	// Обновились только переданные поля; тренировки остались от первой записи
	if entry.WeightLbs != 179.5 {
		t.Errorf("expected weight 179.5, got %f", entry.WeightLbs)
	}
	if entry.WorkoutsCompleted != 1 {
		t.Errorf("expected workouts preserved as 1, got %d", entry.WorkoutsCompleted)
	}
	if entry.Calories == nil || *entry.Calories != 2200 {
		t.Errorf("expected calories 2200, got %v", entry.Calories)
	}

	entries, err := svc.Entries(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single entry after same-date logs, got %d", len(entries))
	}
}

func TestLogNewDateAppends(t *testing.T) {
	svc, profiles := newTestService(t)
	ctx := context.Background()
	setupProfile(t, profiles, "u1")

	if _, err := svc.Log(ctx, "u1", "2026-08-01", floatPtr(180), nil, nil); err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, err := svc.Log(ctx, "u1", "2026-08-02", floatPtr(179.6), nil, nil); err != nil {
		t.Fatalf("log: %v", err)
	}

	entries, err := svc.Entries(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Date != "2026-08-01" || entries[1].Date != "2026-08-02" {
		t.Errorf("expected insertion order preserved, got %s then %s", entries[0].Date, entries[1].Date)
	}
}

func TestLogDefaultsWeightFromProfile(t *testing.T) {
	svc, profiles := newTestService(t)
	ctx := context.Background()
	setupProfile(t, profiles, "u1")

	entry, err := svc.Log(ctx, "u1", "2026-08-03", nil, intPtr(1), nil)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if entry.WeightLbs != 180 {
		t.Errorf("expected baseline weight 180 from profile, got %f", entry.WeightLbs)
	}
}

func TestLogWithoutProfileFails(t *testing.T) {
	svc, _ := newTestService(t)

	// Вес не передан и профиля нет — брать базовый вес неоткуда
	_, err := svc.Log(context.Background(), "nobody", "2026-08-03", nil, intPtr(1), nil)
	if !errors.Is(err, profile.ErrProfileNotSet) {
		t.Fatalf("expected ErrProfileNotSet, got %v", err)
	}
}

func TestLogInvalidDate(t *testing.T) {
	svc, profiles := newTestService(t)
	setupProfile(t, profiles, "u1")

	_, err := svc.Log(context.Background(), "u1", "08/01/2026", floatPtr(180), nil, nil)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	svc, profiles := newTestService(t)
	ctx := context.Background()
	setupProfile(t, profiles, "u1")

	days := []struct {
		date     string
		weight   float64
		workouts int
		calories *int
	}{
		{"2026-08-01", 182, 1, intPtr(2300)},
		{"2026-08-02", 181.5, 0, nil},
		{"2026-08-03", 181.2, 1, intPtr(2100)},
		{"2026-08-04", 181, 1, nil},
	}
	for _, d := range days {
		if _, err := svc.Log(ctx, "u1", d.date, floatPtr(d.weight), intPtr(d.workouts), d.calories); err != nil {
			t.Fatalf("log %s: %v", d.date, err)
		}
	}

	recent, err := svc.Summarize(ctx, "u1", 14)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if recent.DaysTracked != 4 {
		t.Errorf("expected 4 days tracked, got %d", recent.DaysTracked)
	}
	// Окно меньше недели считается как одна неделя: (181-182)/1 = -1.0
	if recent.AvgWeeklyWeightDeltaLbs != -1.0 {
		t.Errorf("expected weekly delta -1.0, got %f", recent.AvgWeeklyWeightDeltaLbs)
	}
	if recent.WorkoutsCompleted != 3 {
		t.Errorf("expected 3 workouts, got %d", recent.WorkoutsCompleted)
	}
	// План: round(4 * 4/7) = 2
	if recent.WorkoutsPlanned != 2 {
		t.Errorf("expected 2 planned workouts, got %d", recent.WorkoutsPlanned)
	}
	if recent.AvgDailyCalories == nil || *recent.AvgDailyCalories != 2200 {
		t.Errorf("expected avg calories 2200 over reporting days, got %v", recent.AvgDailyCalories)
	}
	if recent.Adherence() != 1.5 {
		t.Errorf("expected adherence 1.5, got %f", recent.Adherence())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	recent, err := svc.Summarize(context.Background(), "nobody", 14)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if recent.DaysTracked != 0 {
		t.Errorf("expected empty summary, got %+v", recent)
	}
}
