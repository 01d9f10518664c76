package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fdg312/coach-hub/internal/profile"
	"github.com/fdg312/coach-hub/internal/storage"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// Recent — агрегированный взгляд на окно записей (не хранится)
type Recent struct {
	DaysTracked             int
	FirstWeightLbs          float64
	LastWeightLbs           float64
	AvgWeeklyWeightDeltaLbs float64 // отрицательное значение = снижение веса
	WorkoutsCompleted       int
	WorkoutsPlanned         int
	AvgDailyCalories        *int
}

// Adherence — доля выполненных тренировок от запланированных
func (r Recent) Adherence() float64 {
	if r.WorkoutsPlanned <= 0 {
		return 0
	}
	return float64(r.WorkoutsCompleted) / float64(r.WorkoutsPlanned)
}

// Service содержит бизнес-логику дневника прогресса
type Service struct {
	storage        storage.ProgressStorage
	profiles       *profile.Service
	plannedPerWeek int
}

func NewService(st storage.ProgressStorage, profiles *profile.Service, plannedPerWeek int) *Service {
	if plannedPerWeek <= 0 {
		plannedPerWeek = 4
	}
	return &Service{
		storage:        st,
		profiles:       profiles,
		plannedPerWeek: plannedPerWeek,
	}
}

// Log выполняет upsert записи за дату: существующая дата — обновляются
// только переданные поля; новая дата — append, вес по умолчанию берётся
// из профиля, тренировки — 0. Пустая дата означает сегодня (UTC).
func (s *Service) Log(ctx context.Context, ownerUserID, date string, weightLbs *float64, workouts *int, calories *int) (*storage.ProgressEntry, error) {
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	entry := storage.ProgressEntry{
		Date:     date,
		Calories: calories,
	}
	if weightLbs != nil {
		entry.WeightLbs = *weightLbs
	} else {
		// Новая запись без веса наследует базовый вес профиля
		prof, err := s.profiles.Get(ctx, ownerUserID)
		if err != nil {
			return nil, err
		}
		entry.WeightLbs = prof.WeightLbs
	}
	if workouts != nil {
		entry.WorkoutsCompleted = *workouts
	}

	update := storage.ProgressUpdate{
		WeightLbs:         weightLbs,
		WorkoutsCompleted: workouts,
		Calories:          calories,
	}

	if err := s.storage.UpsertProgressEntry(ctx, ownerUserID, date, entry, update); err != nil {
		return nil, err
	}

	return s.storage.GetProgressEntry(ctx, ownerUserID, date)
}

// Entries возвращает последние n записей в порядке вставки
// (порядок вставки считается хронологическим)
func (s *Service) Entries(ctx context.Context, ownerUserID string, n int) ([]storage.ProgressEntry, error) {
	return s.storage.ListRecentProgress(ctx, ownerUserID, n)
}

// Summarize агрегирует последние windowDays записей в Recent
func (s *Service) Summarize(ctx context.Context, ownerUserID string, windowDays int) (*Recent, error) {
	if windowDays <= 0 {
		windowDays = 14
	}

	entries, err := s.storage.ListRecentProgress(ctx, ownerUserID, windowDays)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &Recent{}, nil
	}

	recent := &Recent{
		DaysTracked:    len(entries),
		FirstWeightLbs: entries[0].WeightLbs,
		LastWeightLbs:  entries[len(entries)-1].WeightLbs,
	}

	// Недельная дельта: (последний вес − первый) / недели окна, минимум неделя
	weeks := float64(recent.DaysTracked) / 7.0
	if weeks < 1 {
		weeks = 1
	}
	recent.AvgWeeklyWeightDeltaLbs = math.Round((recent.LastWeightLbs-recent.FirstWeightLbs)/weeks*100) / 100

	var calorieSum, calorieDays int
	for _, e := range entries {
		recent.WorkoutsCompleted += e.WorkoutsCompleted
		if e.Calories != nil {
			calorieSum += *e.Calories
			calorieDays++
		}
	}
	if calorieDays > 0 {
		avg := int(math.Round(float64(calorieSum) / float64(calorieDays)))
		recent.AvgDailyCalories = &avg
	}

	planned := int(math.Round(float64(s.plannedPerWeek) * float64(recent.DaysTracked) / 7.0))
	if planned < 1 {
		planned = 1
	}
	recent.WorkoutsPlanned = planned

	return recent, nil
}
