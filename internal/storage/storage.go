package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserProfile представляет профиль пользователя с биометрией и целью
type UserProfile struct {
	OwnerUserID     string // "default" для MVP, позже uuid
	Age             int
	Gender          string // "male" или "female"
	WeightLbs       float64
	HeightInches    float64
	Goal            string // lose_weight | gain_muscle | get_fit
	TargetWeightLbs *float64
	ActivityLevel   string // sedentary | lightly_active | moderately_active | very_active

	// Производные значения, считаются при setup
	DailyCalories int
	ProteinGrams  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProgressEntry — дневная запись прогресса, ключ — календарная дата
type ProgressEntry struct {
	OwnerUserID       string
	Date              string // YYYY-MM-DD
	WeightLbs         float64
	WorkoutsCompleted int
	Calories          *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProgressUpdate — поля для upsert (nil = поле не задано)
type ProgressUpdate struct {
	WeightLbs         *float64
	WorkoutsCompleted *int
	Calories          *int
}

// Document — документ базы знаний с вектором признаков
type Document struct {
	ID        uuid.UUID
	OwnerUserID string
	Content   string
	Category  string
	Source    string
	Relevance float64
	Vector    []float64
	CreatedAt time.Time
}

// Storage — объединённый интерфейс хранилища (профиль + прогресс + документы)
type Storage interface {
	// GetUserProfile возвращает профиль (nil, nil если профиль ещё не создан)
	GetUserProfile(ctx context.Context, ownerUserID string) (*UserProfile, error)

	// PutUserProfile сохраняет профиль (полная перезапись, без merge)
	PutUserProfile(ctx context.Context, profile *UserProfile) error

	ProgressStorage
	DocumentsStorage

	// Close закрывает соединение (для Postgres)
	Close() error
}

// ProgressStorage — интерфейс для дневных записей прогресса
type ProgressStorage interface {
	// GetProgressEntry возвращает запись за дату (nil, nil если записи нет)
	GetProgressEntry(ctx context.Context, ownerUserID, date string) (*ProgressEntry, error)

	// UpsertProgressEntry вставляет или обновляет запись за дату.
	// Существующая запись: перезаписываются только заданные поля update.
	UpsertProgressEntry(ctx context.Context, ownerUserID, date string, entry ProgressEntry, update ProgressUpdate) error

	// ListRecentProgress возвращает последние n записей в порядке вставки
	ListRecentProgress(ctx context.Context, ownerUserID string, n int) ([]ProgressEntry, error)
}

// DocumentsStorage — интерфейс для динамических документов базы знаний
type DocumentsStorage interface {
	// InsertDocument добавляет документ (append-only, удаления нет)
	InsertDocument(ctx context.Context, doc *Document) error

	// ListDocuments возвращает все документы в порядке вставки
	ListDocuments(ctx context.Context, ownerUserID string) ([]Document, error)
}
