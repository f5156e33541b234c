package bootstrap

import (
	"context"
	"log"

	"ragchat-be/internal/config"
	"ragchat-be/internal/controller"
	"ragchat-be/internal/pkg/logger"
	"ragchat-be/internal/repository/contract"
	"ragchat-be/internal/repository/implementation"
	"ragchat-be/internal/repository/memory"
	"ragchat-be/internal/service"
	"ragchat-be/internal/websocket"
	"ragchat-be/pkg/embedding"
	"ragchat-be/pkg/llm/factory"

	pkgNats "ragchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WsHub *websocket.Hub

	// Exposed for graceful shutdown
	NatsPublisher *pkgNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			rdb = nil
		}
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	if rdb != nil {
		embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb)
		log.Printf("[INFO] Embedding cache enabled (Redis)")
	}

	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Storage
	var vectorStore contract.VectorStore
	if cfg.Ai.VectorStore == "pgvector" && db != nil {
		vectorStore = implementation.NewPgVectorStore(db)
		log.Printf("[INFO] Using Vector Store: PGVECTOR")
	} else {
		vectorStore = memory.NewVectorStore()
		log.Printf("[INFO] Using Vector Store: MEMORY")
	}
	conversationRepo := memory.NewConversationRepository()

	// 5. Services
	retrievalService := service.NewRetrievalService(vectorStore, embeddingProvider, cfg.Ai.RetrievalTopK)
	publisherService := service.NewPublisherService(cfg.Keys.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IndexTopic,
		retrievalService,
		natsPub,
		wsHub,
		sysLogger,
	)

	chatService := service.NewChatService(
		retrievalService,
		llmProvider,
		conversationRepo,
		natsPub,
		sysLogger,
	)
	suggestionService := service.NewSuggestionService(llmProvider, conversationRepo, sysLogger)

	// 6. Controllers
	documentController := controller.NewDocumentController(retrievalService, publisherService)
	chatController := controller.NewChatController(chatService, suggestionService)

	return &Container{
		DocumentController: documentController,
		ChatController:     chatController,
		ConsumerService:    consumerService,
		WsHub:              wsHub,
		NatsPublisher:      natsPub,
		Logger:             sysLogger,
	}
}
