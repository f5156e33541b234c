package dto

import (
	"time"

	"github.com/google/uuid"
)

type IndexDocumentRequest struct {
	Text   string `json:"text" validate:"required"`
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
}

type IndexDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	CreatedAt time.Time `json:"created_at"`
}

type BatchIndexRequest struct {
	Documents []IndexDocumentRequest `json:"documents" validate:"required,min=1,dive"`
}

type BatchIndexResponse struct {
	Accepted int `json:"accepted"`
}

type RetrieveRequest struct {
	Text string `json:"text" validate:"required"`
	TopK int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=20"`
}

type RetrieveResult struct {
	Id    uuid.UUID `json:"id"`
	Score float64   `json:"score"`
	Text  string    `json:"text"`
}

type RetrieveResponse struct {
	Query   string           `json:"query"`
	Results []RetrieveResult `json:"results"`
}

// PublishIndexDocumentMessage travels over the batch-index pipeline.
type PublishIndexDocumentMessage struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
}
