package rag

import (
	"math"
	"strings"
)

// Embedder переводит текст в числовой вектор фиксированной длины.
// Реализации здесь — ключевые слова, не семантика; интерфейс позволяет
// подменить их настоящим эмбеддинг-провайдером без правки вызывающего кода.
type Embedder interface {
	Embed(text string) []float64
}

// SegmentedKeywordEmbedder — вектор из сегментов по 10 позиций,
// по сегменту на тематический набор ключевых слов. Позиция = 1, если
// хотя бы один токен текста содержит ключевое слово как подстроку.
type SegmentedKeywordEmbedder struct {
	segments [][]string
}

const segmentWidth = 10

// NewSegmentedKeywordEmbedder строит эмбеддер статической базы знаний:
// три сегмента (питание, тренировки, восстановление), 30 позиций.
func NewSegmentedKeywordEmbedder() *SegmentedKeywordEmbedder {
	return &SegmentedKeywordEmbedder{
		segments: [][]string{
			{"protein", "calorie", "deficit", "carb", "meal", "macro", "diet", "hydrat", "fat", "breakfast"},
			{"run", "pace", "interval", "strength", "cardio", "workout", "tempo", "zone", "endurance", "volume"},
			{"sleep", "rest", "recover", "stretch", "sore", "injur", "overtrain", "mobility", "fatigue", "deload"},
		},
	}
}

func (e *SegmentedKeywordEmbedder) Dimensions() int {
	return len(e.segments) * segmentWidth
}

func (e *SegmentedKeywordEmbedder) Embed(text string) []float64 {
	vector := make([]float64, e.Dimensions())
	tokens := tokenize(text)

	for si, keywords := range e.segments {
		for ki, keyword := range keywords {
			if anyTokenContains(tokens, keyword) {
				vector[si*segmentWidth+ki] = 1
			}
		}
	}
	return vector
}

// FlatKeywordEmbedder — плоский набор из семи ключевых слов
// для динамически добавленных документов.
type FlatKeywordEmbedder struct {
	keywords []string
}

func NewFlatKeywordEmbedder() *FlatKeywordEmbedder {
	return &FlatKeywordEmbedder{
		keywords: []string{"protein", "cardio", "sleep", "calorie", "strength", "recover", "pace"},
	}
}

func (e *FlatKeywordEmbedder) Embed(text string) []float64 {
	vector := make([]float64, len(e.keywords))
	tokens := tokenize(text)

	for i, keyword := range e.keywords {
		if anyTokenContains(tokens, keyword) {
			vector[i] = 1
		}
	}
	return vector
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func anyTokenContains(tokens []string, keyword string) bool {
	for _, token := range tokens {
		if strings.Contains(token, keyword) {
			return true
		}
	}
	return false
}

// Cosine — косинусная близость; 0 при нулевой норме любого вектора
// (защита от NaN). Векторы разной длины сравниваются по короткой части.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
