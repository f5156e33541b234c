package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ragchat-be/pkg/embedding"
	"ragchat-be/pkg/llm"
	"ragchat-be/pkg/llm/ollama"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a local Ollama instance. Set OLLAMA_BASE_URL to run.

func TestOllamaChat(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_LLM_MODEL")
	if model == "" {
		model = "llama3"
	}

	provider := ollama.NewProvider(baseURL, model)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	answer, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "Reply with the single word: pong"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	t.Logf("Model replied: %s", answer)
}

func TestOllamaEmbedding(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_EMBED_MODEL")
	if model == "" {
		model = "nomic-embed-text"
	}

	provider := embedding.NewOllamaProvider(baseURL, model)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	vec, err := provider.Generate(ctx, "The quick brown fox jumps over the lazy dog.", embedding.TaskRetrievalQuery)
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
	t.Logf("Embedding dimensions: %d", len(vec))
}
