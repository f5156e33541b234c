package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentEmbedding is the pgvector-backed persistence shape of a document.
// Metadata carries the optional citation fields (source, title, author, year).
type DocumentEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document  string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	Metadata  datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
