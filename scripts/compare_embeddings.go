//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"

	"ragchat-be/internal/config"
	"ragchat-be/internal/repository/memory"
	"ragchat-be/pkg/embedding"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// 1. Initialize Providers
	fmt.Println("--- Initializing Providers ---")
	gemini := embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	ollama := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)

	// 2. Define Test Cases
	text1 := "The quick brown fox jumps over the lazy dog"
	text2 := "A fast brown fox leaps over a sleepy canine"
	text3 := "Quarterly revenue projections for fiscal year 2025"

	providers := map[string]embedding.Provider{
		"gemini": gemini,
		"ollama": ollama,
	}

	for name, provider := range providers {
		fmt.Printf("\n--- Provider: %s ---\n", name)

		v1, err := provider.Generate(ctx, text1, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("%s: %v", name, err)
			continue
		}
		v2, err := provider.Generate(ctx, text2, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("%s: %v", name, err)
			continue
		}
		v3, err := provider.Generate(ctx, text3, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("%s: %v", name, err)
			continue
		}

		fmt.Printf("Dimensions: %d\n", len(v1))
		fmt.Printf("similar pair:   %.4f\n", memory.CosineSimilarity(v1, v2))
		fmt.Printf("unrelated pair: %.4f\n", memory.CosineSimilarity(v1, v3))
	}
}
