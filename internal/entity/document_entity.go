package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an indexed unit of text together with its embedding vector.
// Documents are immutable once inserted.
type Document struct {
	Id        uuid.UUID
	Text      string
	Embedding []float32
	Source    string
	Title     string
	Author    string
	Year      string
	CreatedAt time.Time
}

// SearchResult pairs a stored document with its similarity to a query.
// Score is cosine similarity in [-1, 1]; higher means more similar.
type SearchResult struct {
	Document *Document
	Score    float64
}
