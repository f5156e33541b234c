package mapper

import (
	"encoding/json"

	"ragchat-be/internal/entity"
	"ragchat-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

type documentMetadata struct {
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
}

func (m *DocumentEmbeddingMapper) ToEntity(d *model.DocumentEmbedding) *entity.Document {
	if d == nil {
		return nil
	}
	var meta documentMetadata
	if len(d.Metadata) > 0 {
		// Metadata written by ToModel is always valid JSON; ignore anything else.
		_ = json.Unmarshal(d.Metadata, &meta)
	}
	return &entity.Document{
		Id:        d.Id,
		Text:      d.Document,
		Embedding: d.Embedding.Slice(),
		Source:    meta.Source,
		Title:     meta.Title,
		Author:    meta.Author,
		Year:      meta.Year,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(d *entity.Document) *model.DocumentEmbedding {
	if d == nil {
		return nil
	}
	meta, _ := json.Marshal(documentMetadata{
		Source: d.Source,
		Title:  d.Title,
		Author: d.Author,
		Year:   d.Year,
	})
	return &model.DocumentEmbedding{
		Id:        d.Id,
		Document:  d.Text,
		Embedding: pgvector.NewVector(d.Embedding),
		Metadata:  datatypes.JSON(meta),
		CreatedAt: d.CreatedAt,
	}
}
