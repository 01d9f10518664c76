package profile

import (
	"context"
	"errors"

	"github.com/fdg312/coach-hub/internal/nutrition"
	"github.com/fdg312/coach-hub/internal/storage"
)

var (
	ErrProfileNotSet = errors.New("user profile not set up")
	ErrInvalidGoal   = errors.New("invalid goal")
	ErrInvalidLevel  = errors.New("invalid activity level")
)

var validGoals = map[string]bool{
	nutrition.GoalLoseWeight: true,
	nutrition.GoalGainMuscle: true,
	nutrition.GoalGetFit:     true,
}

var validLevels = map[string]bool{
	"sedentary":         true,
	"lightly_active":    true,
	"moderately_active": true,
	"very_active":       true,
}

// SetupRequest — входные данные setup (полная перезапись профиля)
type SetupRequest struct {
	Age             int
	Gender          string
	WeightLbs       float64
	HeightInches    float64
	Goal            string
	ActivityLevel   string
	TargetWeightLbs *float64
}

// Service содержит бизнес-логику профиля пользователя
type Service struct {
	storage storage.Storage
}

// NewService создаёт новый сервис
func NewService(st storage.Storage) *Service {
	return &Service{storage: st}
}

// Setup создаёт или полностью перезаписывает профиль и считает дневные цели
func (s *Service) Setup(ctx context.Context, ownerUserID string, req SetupRequest) (*storage.UserProfile, error) {
	if !validGoals[req.Goal] {
		return nil, ErrInvalidGoal
	}
	if !validLevels[req.ActivityLevel] {
		return nil, ErrInvalidLevel
	}

	targets := nutrition.ComputeTargets(req.Gender, req.Age, req.WeightLbs, req.HeightInches, req.Goal, req.ActivityLevel)

	prof := &storage.UserProfile{
		OwnerUserID:     ownerUserID,
		Age:             req.Age,
		Gender:          req.Gender,
		WeightLbs:       req.WeightLbs,
		HeightInches:    req.HeightInches,
		Goal:            req.Goal,
		TargetWeightLbs: req.TargetWeightLbs,
		ActivityLevel:   req.ActivityLevel,
		DailyCalories:   targets.DailyCalories,
		ProteinGrams:    targets.ProteinGrams,
	}

	if err := s.storage.PutUserProfile(ctx, prof); err != nil {
		return nil, err
	}

	return prof, nil
}

// Get возвращает профиль; ErrProfileNotSet если setup ещё не выполнялся
func (s *Service) Get(ctx context.Context, ownerUserID string) (*storage.UserProfile, error) {
	prof, err := s.storage.GetUserProfile(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrProfileNotSet
	}
	return prof, nil
}
