package contract

import (
	"context"

	"ragchat-be/internal/entity"
)

// VectorStore is the capability shared by the in-memory brute-force store and
// the pgvector-backed store. The two are interchangeable; selection is a
// deployment-time configuration choice.
type VectorStore interface {
	// Insert stores a new document and assigns it a fresh id. Documents are
	// never overwritten. A wrong-length embedding is a DimensionError.
	Insert(ctx context.Context, doc *entity.Document) error

	// Search returns up to k results ordered by descending similarity.
	// An empty store yields an empty slice, not an error. On equal scores the
	// earlier-inserted document ranks first (the pgvector path inherits
	// whatever ordering the index gives for exact ties).
	Search(ctx context.Context, embedding []float32, k int) ([]entity.SearchResult, error)
}
