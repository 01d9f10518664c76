package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/coach-hub/internal/storage"
)

// ProgressMemoryStorage хранит записи прогресса в порядке вставки.
// Порядок вставки считается хронологическим (см. ListRecentProgress).
type ProgressMemoryStorage struct {
	mu      sync.RWMutex
	entries []storage.ProgressEntry
}

func NewProgressMemoryStorage() *ProgressMemoryStorage {
	return &ProgressMemoryStorage{
		entries: make([]storage.ProgressEntry, 0),
	}
}

func (s *ProgressMemoryStorage) GetProgressEntry(ctx context.Context, ownerUserID, date string) (*storage.ProgressEntry, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entries {
		if s.entries[i].OwnerUserID == ownerUserID && s.entries[i].Date == date {
			copied := s.entries[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *ProgressMemoryStorage) UpsertProgressEntry(ctx context.Context, ownerUserID, date string, entry storage.ProgressEntry, update storage.ProgressUpdate) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	for i := range s.entries {
		if s.entries[i].OwnerUserID != ownerUserID || s.entries[i].Date != date {
			continue
		}
		// Существующая дата: обновляем только заданные поля
		if update.WeightLbs != nil {
			s.entries[i].WeightLbs = *update.WeightLbs
		}
		if update.WorkoutsCompleted != nil {
			s.entries[i].WorkoutsCompleted = *update.WorkoutsCompleted
		}
		if update.Calories != nil {
			s.entries[i].Calories = update.Calories
		}
		s.entries[i].UpdatedAt = now
		return nil
	}

	entry.OwnerUserID = ownerUserID
	entry.Date = date
	entry.CreatedAt = now
	entry.UpdatedAt = now
	s.entries = append(s.entries, entry)
	return nil
}

func (s *ProgressMemoryStorage) ListRecentProgress(ctx context.Context, ownerUserID string, n int) ([]storage.ProgressEntry, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]storage.ProgressEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.OwnerUserID == ownerUserID {
			owned = append(owned, e)
		}
	}

	if n <= 0 || n >= len(owned) {
		return owned, nil
	}
	return owned[len(owned)-n:], nil
}
