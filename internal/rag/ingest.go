package rag

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Ingester получает текстовое содержимое источника знаний.
// Mock-режим не ходит в сеть и не читает файлы — синтезирует заглушку.
type Ingester interface {
	FetchWebsite(ctx context.Context, rawURL, category string) (string, error)
	ReadFile(path, category string) (string, error)
}

// MockIngester — режим по умолчанию: контент-заглушка со ссылкой на
// источник и категорию, индексируется как обычный документ.
type MockIngester struct{}

func (MockIngester) FetchWebsite(_ context.Context, rawURL, category string) (string, error) {
	return fmt.Sprintf("Knowledge from website %s about %s: fitness and training guidance covering workouts, nutrition and recovery.", rawURL, category), nil
}

func (MockIngester) ReadFile(path, category string) (string, error) {
	return fmt.Sprintf("Knowledge from file %s about %s: fitness and training guidance covering workouts, nutrition and recovery.", path, category), nil
}

// FetchIngester — реальный режим: HTTP GET + извлечение читаемого
// текста для сайтов, чтение с диска для файлов.
type FetchIngester struct {
	client *http.Client
}

func NewFetchIngester(timeout time.Duration) *FetchIngester {
	return &FetchIngester{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *FetchIngester) FetchWebsite(ctx context.Context, rawURL, _ string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", rawURL, err)
	}
	return article.TextContent, nil
}

func (f *FetchIngester) ReadFile(path, _ string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
