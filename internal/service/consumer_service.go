package service

import (
	"context"
	"encoding/json"

	"ragchat-be/internal/dto"
	"ragchat-be/internal/pkg/logger"
	"ragchat-be/internal/websocket"
	"ragchat-be/pkg/events"
	pkgNats "ragchat-be/pkg/nats"
	"ragchat-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Chunking tuned for embedding context limits: 1500 chars per chunk with a
// 200 char overlap so sentences spanning a boundary stay retrievable.
const (
	chunkSize    = 1500
	chunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	retrieval IRetrievalService
	natsPub   *pkgNats.Publisher
	wsHub     *websocket.Hub
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	retrieval IRetrievalService,
	natsPub *pkgNats.Publisher,
	wsHub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		retrieval: retrieval,
		natsPub:   natsPub,
		wsHub:     wsHub,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages would retry forever
		return
	}

	chunks := utils.SplitText(payload.Text, chunkSize, chunkOverlap)
	cs.log.Info("ConsumerService", "Indexing document", map[string]interface{}{
		"title":  payload.Title,
		"chunks": len(chunks),
	})

	indexed := 0
	lastDocId := ""
	for i, chunk := range chunks {
		doc, err := cs.retrieval.Index(ctx, IndexInput{
			Text:   chunk,
			Source: payload.Source,
			Title:  payload.Title,
			Author: payload.Author,
			Year:   payload.Year,
		})
		if err != nil {
			cs.log.Error("ConsumerService", "Failed to index chunk", map[string]interface{}{
				"chunk": i,
				"error": err.Error(),
			})
			cs.notifyProgress(websocket.ProgressEvent{Type: "indexing_failed", Error: err.Error()})
			msg.Nack() // embedding outages are retriable
			return
		}
		indexed++
		lastDocId = doc.Id.String()
	}

	if cs.natsPub != nil {
		if err := cs.natsPub.Publish(ctx, events.DocumentIndexed(lastDocId, indexed)); err != nil {
			cs.log.Warn("ConsumerService", "Failed to publish indexed event", map[string]interface{}{"error": err.Error()})
		}
	}
	cs.notifyProgress(websocket.ProgressEvent{Type: "indexing_done", DocumentId: lastDocId, Chunks: indexed})

	cs.log.Info("ConsumerService", "Document indexed", map[string]interface{}{"chunks": indexed})
	msg.Ack()
}

func (cs *consumerService) notifyProgress(event websocket.ProgressEvent) {
	if cs.wsHub != nil {
		cs.wsHub.Broadcast(event)
	}
}
