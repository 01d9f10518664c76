package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fdg312/coach-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentsStorage — append-only документы базы знаний.
// Вектор признаков хранится как JSONB.
type PostgresDocumentsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresDocumentsStorage(pool *pgxpool.Pool) *PostgresDocumentsStorage {
	return &PostgresDocumentsStorage{pool: pool}
}

func (s *PostgresDocumentsStorage) InsertDocument(ctx context.Context, doc *storage.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	vectorJSON, err := json.Marshal(doc.Vector)
	if err != nil {
		return fmt.Errorf("marshal vector: %w", err)
	}

	query := `
		INSERT INTO documents (id, owner_user_id, content, category, source, relevance, vector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.pool.Exec(ctx, query,
		doc.ID,
		doc.OwnerUserID,
		doc.Content,
		doc.Category,
		doc.Source,
		doc.Relevance,
		vectorJSON,
		doc.CreatedAt,
	)
	return err
}

func (s *PostgresDocumentsStorage) ListDocuments(ctx context.Context, ownerUserID string) ([]storage.Document, error) {
	query := `
		SELECT id, owner_user_id, content, category, source, relevance, vector, created_at
		FROM documents
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []storage.Document{}
	for rows.Next() {
		var doc storage.Document
		var vectorJSON []byte
		if err := rows.Scan(
			&doc.ID,
			&doc.OwnerUserID,
			&doc.Content,
			&doc.Category,
			&doc.Source,
			&doc.Relevance,
			&vectorJSON,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(vectorJSON) > 0 {
			if err := json.Unmarshal(vectorJSON, &doc.Vector); err != nil {
				return nil, fmt.Errorf("unmarshal vector: %w", err)
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
