package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/coach-hub/internal/storage"
	"github.com/google/uuid"
)

// DocumentsMemoryStorage — append-only хранилище документов базы знаний
type DocumentsMemoryStorage struct {
	mu        sync.RWMutex
	documents []storage.Document
}

func NewDocumentsMemoryStorage() *DocumentsMemoryStorage {
	return &DocumentsMemoryStorage{
		documents: make([]storage.Document, 0),
	}
}

func (s *DocumentsMemoryStorage) InsertDocument(ctx context.Context, doc *storage.Document) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	stored := *doc
	stored.Vector = append([]float64(nil), doc.Vector...)
	s.documents = append(s.documents, stored)
	return nil
}

func (s *DocumentsMemoryStorage) ListDocuments(ctx context.Context, ownerUserID string) ([]storage.Document, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]storage.Document, 0, len(s.documents))
	for _, d := range s.documents {
		if d.OwnerUserID == ownerUserID {
			docs = append(docs, d)
		}
	}
	return docs, nil
}
