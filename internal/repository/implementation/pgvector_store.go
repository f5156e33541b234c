package implementation

import (
	"context"
	"time"

	"ragchat-be/internal/apperrors"
	"ragchat-be/internal/constant"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/mapper"
	"ragchat-be/internal/model"
	"ragchat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// PgVectorStore delegates similarity search to Postgres with the pgvector
// extension. With an ivfflat/hnsw index the search is approximate, so exact
// tie ordering on equal scores is not guaranteed the way it is for the
// in-memory store. That is an accuracy trade-off, not a correctness bug.
type PgVectorStore struct {
	db     *gorm.DB
	mapper *mapper.DocumentEmbeddingMapper
}

func NewPgVectorStore(db *gorm.DB) contract.VectorStore {
	return &PgVectorStore{
		db:     db,
		mapper: mapper.NewDocumentEmbeddingMapper(),
	}
}

func (s *PgVectorStore) Insert(ctx context.Context, doc *entity.Document) error {
	if len(doc.Embedding) != constant.EmbeddingDim {
		return &apperrors.DimensionError{Want: constant.EmbeddingDim, Got: len(doc.Embedding)}
	}

	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	m := s.mapper.ToModel(doc)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return &apperrors.RetrievalError{Err: err}
	}
	return nil
}

func (s *PgVectorStore) Search(ctx context.Context, embedding []float32, k int) ([]entity.SearchResult, error) {
	if len(embedding) != constant.EmbeddingDim {
		return nil, &apperrors.DimensionError{Want: constant.EmbeddingDim, Got: len(embedding)}
	}
	if k <= 0 {
		k = constant.DefaultTopK
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query) recovers the similarity score.
	type row struct {
		model.DocumentEmbedding
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	err := s.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("deleted_at IS NULL").
		Order("similarity DESC, created_at ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, &apperrors.RetrievalError{Err: err}
	}

	results := make([]entity.SearchResult, len(rows))
	for i, r := range rows {
		results[i] = entity.SearchResult{
			Document: s.mapper.ToEntity(&r.DocumentEmbedding),
			Score:    r.Similarity,
		}
	}
	return results, nil
}
