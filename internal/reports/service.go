package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/coach-hub/internal/blob"
	"github.com/fdg312/coach-hub/internal/profile"
	"github.com/fdg312/coach-hub/internal/progress"
)

// Service генерирует отчёт и кладёт его в blob-хранилище
// (локальная папка или S3 — по конфигурации)
type Service struct {
	profiles   *profile.Service
	progress   *progress.Service
	generator  *Generator
	store      blob.Store
	presignTTL int
}

func NewService(profiles *profile.Service, prog *progress.Service, store blob.Store, presignTTLSeconds int) *Service {
	if presignTTLSeconds <= 0 {
		presignTTLSeconds = 600
	}
	return &Service{
		profiles:   profiles,
		progress:   prog,
		generator:  NewGenerator(),
		store:      store,
		presignTTL: presignTTLSeconds,
	}
}

// Export строит отчёт за окно days и возвращает, где его забрать:
// путь на диске в локальном режиме, presigned URL в режиме S3
func (s *Service) Export(ctx context.Context, ownerUserID, format string, days int) (string, error) {
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatCSV {
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	if days <= 0 {
		days = 30
	}

	prof, err := s.profiles.Get(ctx, ownerUserID)
	if err != nil {
		return "", err
	}

	entries, err := s.progress.Entries(ctx, ownerUserID, days)
	if err != nil {
		return "", err
	}
	summary, err := s.progress.Summarize(ctx, ownerUserID, days)
	if err != nil {
		return "", err
	}

	data, err := s.generator.Generate(format, prof, entries, summary)
	if err != nil {
		return "", err
	}

	contentType := "application/pdf"
	if format == FormatCSV {
		contentType = "text/csv"
	}
	key := fmt.Sprintf("exports/%s/progress-%s.%s", ownerUserID, time.Now().UTC().Format("20060102-150405"), format)

	if _, err := s.store.PutObject(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}

	location, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to resolve report location: %w", err)
	}
	return location, nil
}
