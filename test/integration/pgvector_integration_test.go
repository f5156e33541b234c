package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ragchat-be/internal/entity"
	"ragchat-be/internal/repository/implementation"
	"ragchat-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgVectorStore(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	store := implementation.NewPgVectorStore(gormDB)
	ctx := context.Background()

	embedding := make([]float32, 768)
	embedding[0] = 1

	doc := &entity.Document{
		Text:      "integration test document",
		Embedding: embedding,
		Title:     "Integration Test",
	}
	require.NoError(t, store.Insert(ctx, doc))

	results, err := store.Search(ctx, embedding, 1)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	t.Logf("Top result: %s (score %.4f)", results[0].Document.Text, results[0].Score)
}
