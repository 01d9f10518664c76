package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/coach-hub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage — Postgres реализация Storage, ProgressStorage и DocumentsStorage
type PostgresStorage struct {
	pool      *pgxpool.Pool
	progress  *PostgresProgressStorage
	documents *PostgresDocumentsStorage
}

// New создаёт PostgresStorage
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:      pool,
		progress:  NewPostgresProgressStorage(pool),
		documents: NewPostgresDocumentsStorage(pool),
	}, nil
}

func (p *PostgresStorage) GetUserProfile(ctx context.Context, ownerUserID string) (*storage.UserProfile, error) {
	query := `
		SELECT owner_user_id, age, gender, weight_lbs, height_inches, goal,
		       target_weight_lbs, activity_level, daily_calories, protein_grams,
		       created_at, updated_at
		FROM user_profiles
		WHERE owner_user_id = $1
	`

	var prof storage.UserProfile
	err := p.pool.QueryRow(ctx, query, ownerUserID).Scan(
		&prof.OwnerUserID,
		&prof.Age,
		&prof.Gender,
		&prof.WeightLbs,
		&prof.HeightInches,
		&prof.Goal,
		&prof.TargetWeightLbs,
		&prof.ActivityLevel,
		&prof.DailyCalories,
		&prof.ProteinGrams,
		&prof.CreatedAt,
		&prof.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &prof, nil
}

func (p *PostgresStorage) PutUserProfile(ctx context.Context, profile *storage.UserProfile) error {
	// Полная перезапись по ключу owner_user_id (setup без merge)
	query := `
		INSERT INTO user_profiles (
			owner_user_id, age, gender, weight_lbs, height_inches, goal,
			target_weight_lbs, activity_level, daily_calories, protein_grams,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (owner_user_id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			weight_lbs = EXCLUDED.weight_lbs,
			height_inches = EXCLUDED.height_inches,
			goal = EXCLUDED.goal,
			target_weight_lbs = EXCLUDED.target_weight_lbs,
			activity_level = EXCLUDED.activity_level,
			daily_calories = EXCLUDED.daily_calories,
			protein_grams = EXCLUDED.protein_grams,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now().UTC()
	_, err := p.pool.Exec(ctx, query,
		profile.OwnerUserID,
		profile.Age,
		profile.Gender,
		profile.WeightLbs,
		profile.HeightInches,
		profile.Goal,
		profile.TargetWeightLbs,
		profile.ActivityLevel,
		profile.DailyCalories,
		profile.ProteinGrams,
		now,
	)
	return err
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- delegation ---

func (p *PostgresStorage) GetProgressEntry(ctx context.Context, ownerUserID, date string) (*storage.ProgressEntry, error) {
	return p.progress.GetProgressEntry(ctx, ownerUserID, date)
}

func (p *PostgresStorage) UpsertProgressEntry(ctx context.Context, ownerUserID, date string, entry storage.ProgressEntry, update storage.ProgressUpdate) error {
	return p.progress.UpsertProgressEntry(ctx, ownerUserID, date, entry, update)
}

func (p *PostgresStorage) ListRecentProgress(ctx context.Context, ownerUserID string, n int) ([]storage.ProgressEntry, error) {
	return p.progress.ListRecentProgress(ctx, ownerUserID, n)
}

func (p *PostgresStorage) InsertDocument(ctx context.Context, doc *storage.Document) error {
	return p.documents.InsertDocument(ctx, doc)
}

func (p *PostgresStorage) ListDocuments(ctx context.Context, ownerUserID string) ([]storage.Document, error) {
	return p.documents.ListDocuments(ctx, ownerUserID)
}
