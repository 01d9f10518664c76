package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/coach-hub/internal/storage"
)

// MemoryStorage — in-memory реализация всех storage интерфейсов.
// Используется как fallback без DATABASE_URL и как test double.
type MemoryStorage struct {
	mu       sync.RWMutex
	profiles map[string]storage.UserProfile

	progress  *ProgressMemoryStorage
	documents *DocumentsMemoryStorage
}

// New создаёт новый MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		profiles:  make(map[string]storage.UserProfile),
		progress:  NewProgressMemoryStorage(),
		documents: NewDocumentsMemoryStorage(),
	}
}

func (s *MemoryStorage) GetUserProfile(ctx context.Context, ownerUserID string) (*storage.UserProfile, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[ownerUserID]
	if !ok {
		return nil, nil
	}
	copied := profile
	return &copied, nil
}

func (s *MemoryStorage) PutUserProfile(ctx context.Context, profile *storage.UserProfile) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *profile
	if existing, ok := s.profiles[profile.OwnerUserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.profiles[profile.OwnerUserID] = stored
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

// --- delegation to sub-storages (один объект реализует все интерфейсы, как в Server.initStorage) ---

func (s *MemoryStorage) GetProgressEntry(ctx context.Context, ownerUserID, date string) (*storage.ProgressEntry, error) {
	return s.progress.GetProgressEntry(ctx, ownerUserID, date)
}

func (s *MemoryStorage) UpsertProgressEntry(ctx context.Context, ownerUserID, date string, entry storage.ProgressEntry, update storage.ProgressUpdate) error {
	return s.progress.UpsertProgressEntry(ctx, ownerUserID, date, entry, update)
}

func (s *MemoryStorage) ListRecentProgress(ctx context.Context, ownerUserID string, n int) ([]storage.ProgressEntry, error) {
	return s.progress.ListRecentProgress(ctx, ownerUserID, n)
}

func (s *MemoryStorage) InsertDocument(ctx context.Context, doc *storage.Document) error {
	return s.documents.InsertDocument(ctx, doc)
}

func (s *MemoryStorage) ListDocuments(ctx context.Context, ownerUserID string) ([]storage.Document, error) {
	return s.documents.ListDocuments(ctx, ownerUserID)
}
