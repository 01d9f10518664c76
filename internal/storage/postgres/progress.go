package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/coach-hub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProgressStorage — записи прогресса, ключ (owner_user_id, date)
type PostgresProgressStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresProgressStorage(pool *pgxpool.Pool) *PostgresProgressStorage {
	return &PostgresProgressStorage{pool: pool}
}

func (s *PostgresProgressStorage) GetProgressEntry(ctx context.Context, ownerUserID, date string) (*storage.ProgressEntry, error) {
	query := `
		SELECT owner_user_id, date, weight_lbs, workouts_completed, calories, created_at, updated_at
		FROM progress_entries
		WHERE owner_user_id = $1 AND date = $2
	`

	var entry storage.ProgressEntry
	err := s.pool.QueryRow(ctx, query, ownerUserID, date).Scan(
		&entry.OwnerUserID,
		&entry.Date,
		&entry.WeightLbs,
		&entry.WorkoutsCompleted,
		&entry.Calories,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

func (s *PostgresProgressStorage) UpsertProgressEntry(ctx context.Context, ownerUserID, date string, entry storage.ProgressEntry, update storage.ProgressUpdate) error {
	existing, err := s.GetProgressEntry(ctx, ownerUserID, date)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if existing == nil {
		query := `
			INSERT INTO progress_entries (owner_user_id, date, weight_lbs, workouts_completed, calories, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
		`
		_, err := s.pool.Exec(ctx, query,
			ownerUserID,
			date,
			entry.WeightLbs,
			entry.WorkoutsCompleted,
			entry.Calories,
			now,
		)
		return err
	}

	// Существующая дата: перезаписываем только заданные поля
	if update.WeightLbs != nil {
		existing.WeightLbs = *update.WeightLbs
	}
	if update.WorkoutsCompleted != nil {
		existing.WorkoutsCompleted = *update.WorkoutsCompleted
	}
	if update.Calories != nil {
		existing.Calories = update.Calories
	}

	query := `
		UPDATE progress_entries
		SET weight_lbs = $3, workouts_completed = $4, calories = $5, updated_at = $6
		WHERE owner_user_id = $1 AND date = $2
	`
	_, err = s.pool.Exec(ctx, query,
		ownerUserID,
		date,
		existing.WeightLbs,
		existing.WorkoutsCompleted,
		existing.Calories,
		now,
	)
	return err
}

func (s *PostgresProgressStorage) ListRecentProgress(ctx context.Context, ownerUserID string, n int) ([]storage.ProgressEntry, error) {
	// created_at ASC воспроизводит порядок вставки memory-реализации
	query := `
		SELECT owner_user_id, date, weight_lbs, workouts_completed, calories, created_at, updated_at
		FROM progress_entries
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []storage.ProgressEntry{}
	for rows.Next() {
		var entry storage.ProgressEntry
		if err := rows.Scan(
			&entry.OwnerUserID,
			&entry.Date,
			&entry.WeightLbs,
			&entry.WorkoutsCompleted,
			&entry.Calories,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if n > 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
