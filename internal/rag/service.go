package rag

import (
	"context"
	"sort"

	"github.com/fdg312/coach-hub/internal/storage"
)

const (
	defaultStaticTopK   = 3
	defaultIngestedTopK = 5
	defaultCategory     = "general"
)

// Match — документ с оценкой близости к запросу
type Match struct {
	Document storage.Document
	Score    float64
}

// Service — поиск по статической базе знаний и по добавленным документам.
// Статика и динамика эмбеддятся разными словарями, поэтому ранжируются
// раздельно и сливаются уже по оценкам.
type Service struct {
	static     []storage.Document
	docs       storage.DocumentsStorage
	staticEmb  *SegmentedKeywordEmbedder
	ingestEmb  *FlatKeywordEmbedder
	ingester   Ingester
	maxContent int
}

// NewService предзагружает статическую базу и считает её векторы один раз
func NewService(docs storage.DocumentsStorage, ingester Ingester, maxContentChars int) *Service {
	s := &Service{
		docs:       docs,
		staticEmb:  NewSegmentedKeywordEmbedder(),
		ingestEmb:  NewFlatKeywordEmbedder(),
		ingester:   ingester,
		maxContent: maxContentChars,
	}

	s.static = make([]storage.Document, len(staticKnowledge))
	copy(s.static, staticKnowledge)
	for i := range s.static {
		s.static[i].Vector = s.staticEmb.Embed(s.static[i].Content)
	}
	return s
}

// Search ранжирует статическую базу и документы пользователя по
// косинусной близости и возвращает top-k общего списка
func (s *Service) Search(ctx context.Context, ownerUserID, query string, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = defaultStaticTopK
	}

	matches := rank(s.staticEmb.Embed(query), s.static, 0)

	ingested, err := s.docs.ListDocuments(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	matches = append(matches, rank(s.ingestEmb.Embed(query), ingested, 0)...)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// SearchIngested ищет только по добавленным документам (top-k по умолчанию 5)
func (s *Service) SearchIngested(ctx context.Context, ownerUserID, query string, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = defaultIngestedTopK
	}

	ingested, err := s.docs.ListDocuments(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return rank(s.ingestEmb.Embed(query), ingested, topK), nil
}

// AddWebsite индексирует сайт (mock или реальный fetch — по режиму Ingester)
func (s *Service) AddWebsite(ctx context.Context, ownerUserID, rawURL, category string) (*storage.Document, error) {
	if category == "" {
		category = defaultCategory
	}
	content, err := s.ingester.FetchWebsite(ctx, rawURL, category)
	if err != nil {
		return nil, err
	}
	return s.index(ctx, ownerUserID, content, category, rawURL)
}

// AddFile индексирует локальный файл
func (s *Service) AddFile(ctx context.Context, ownerUserID, path, category string) (*storage.Document, error) {
	if category == "" {
		category = defaultCategory
	}
	content, err := s.ingester.ReadFile(path, category)
	if err != nil {
		return nil, err
	}
	return s.index(ctx, ownerUserID, content, category, path)
}

func (s *Service) index(ctx context.Context, ownerUserID, content, category, source string) (*storage.Document, error) {
	if s.maxContent > 0 && len(content) > s.maxContent {
		content = content[:s.maxContent]
	}

	doc := &storage.Document{
		OwnerUserID: ownerUserID,
		Content:     content,
		Category:    category,
		Source:      source,
		Relevance:   0.8,
		Vector:      s.ingestEmb.Embed(content),
	}
	if err := s.docs.InsertDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func rank(queryVector []float64, docs []storage.Document, topK int) []Match {
	matches := make([]Match, 0, len(docs))
	for _, doc := range docs {
		matches = append(matches, Match{
			Document: doc,
			Score:    Cosine(queryVector, doc.Vector),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}
