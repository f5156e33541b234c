package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"ragchat-be/internal/apperrors"
	"ragchat-be/internal/constant"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/repository/contract"

	"github.com/google/uuid"
)

// VectorStore is a brute-force in-process store: every search computes cosine
// similarity against all stored embeddings. O(n*d) per query, fine for small
// and medium corpora; switch to the pgvector store beyond that.
type VectorStore struct {
	mu   sync.RWMutex
	docs []*entity.Document
}

func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

var _ contract.VectorStore = (*VectorStore)(nil)

func (s *VectorStore) Insert(ctx context.Context, doc *entity.Document) error {
	if len(doc.Embedding) != constant.EmbeddingDim {
		return &apperrors.DimensionError{Want: constant.EmbeddingDim, Got: len(doc.Embedding)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	// Copy so later caller mutations cannot reach the stored document.
	stored := *doc
	stored.Embedding = append([]float32(nil), doc.Embedding...)
	s.docs = append(s.docs, &stored)
	return nil
}

func (s *VectorStore) Search(ctx context.Context, embedding []float32, k int) ([]entity.SearchResult, error) {
	if len(embedding) != constant.EmbeddingDim {
		return nil, &apperrors.DimensionError{Want: constant.EmbeddingDim, Got: len(embedding)}
	}
	if k <= 0 {
		k = constant.DefaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]entity.SearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		results = append(results, entity.SearchResult{
			Document: doc,
			Score:    CosineSimilarity(embedding, doc.Embedding),
		})
	}

	// Stable sort keeps insertion order on equal scores, so retrieval stays
	// deterministic and reproducible.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}

	// Return copies; handing out the stored pointers would let callers
	// mutate the corpus through a search result.
	out := results[:k]
	for i := range out {
		doc := *out[i].Document
		doc.Embedding = append([]float32(nil), doc.Embedding...)
		out[i].Document = &doc
	}
	return out, nil
}

// Len reports the number of stored documents.
func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|). A zero-norm operand yields
// similarity 0 rather than NaN.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
