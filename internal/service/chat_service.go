package service

import (
	"context"
	"strings"
	"time"

	"ragchat-be/internal/apperrors"
	"ragchat-be/internal/constant"
	"ragchat-be/internal/dto"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/pkg/logger"
	"ragchat-be/internal/repository/contract"
	"ragchat-be/pkg/events"
	"ragchat-be/pkg/llm"
	pkgNats "ragchat-be/pkg/nats"
	"ragchat-be/pkg/rag/citation"
	"ragchat-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

// IChatService orchestrates one chat turn: record the user message, retrieve
// supporting documents, draft a reply, record the outcome.
type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatMessageResponse, error)
	GetHistory(ctx context.Context, threadId string) ([]*dto.GetHistoryResponse, error)
}

type chatService struct {
	retrieval IRetrievalService
	llm       llm.Provider
	convRepo  contract.ConversationRepository
	natsPub   *pkgNats.Publisher
	log       logger.ILogger
}

func NewChatService(
	retrieval IRetrievalService,
	llmProvider llm.Provider,
	convRepo contract.ConversationRepository,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		retrieval: retrieval,
		llm:       llmProvider,
		convRepo:  convRepo,
		natsPub:   natsPub,
		log:       log,
	}
}

// SendChat is deliberately not idempotent: every invocation appends new
// messages. Once the user message is recorded, downstream failures become a
// role=error message in the thread rather than a transport error — the
// conversation log is the error-visibility channel.
func (cs *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatMessageResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &apperrors.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	// The user's input is recorded before anything can fail, so it is never
	// silently lost.
	userMsg := entity.Message{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	}
	cs.convRepo.Append(req.ThreadId, userMsg)

	reply, err := cs.composeReply(ctx, req)
	if err != nil {
		cs.log.Warn("ChatService", "Turn failed after user message was recorded", map[string]interface{}{
			"thread_id": req.ThreadId,
			"error":     err.Error(),
		})
		errMsg := entity.Message{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleError,
			Content:   apperrors.UserFacingMessage(err),
			Timestamp: time.Now(),
		}
		cs.convRepo.Append(req.ThreadId, errMsg)
		cs.publishTurn(ctx, req.ThreadId, errMsg.Role)
		return toChatResponse(req.ThreadId, errMsg), nil
	}

	cs.convRepo.Append(req.ThreadId, *reply)
	cs.publishTurn(ctx, req.ThreadId, reply.Role)
	return toChatResponse(req.ThreadId, *reply), nil
}

func (cs *chatService) composeReply(ctx context.Context, req *dto.ChatRequest) (*entity.Message, error) {
	// Retrieve already classifies its failures, so they pass through intact.
	results, err := cs.retrieval.Retrieve(ctx, req.Message, cs.retrieval.DefaultTopK())
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(req.History)+1)
	for _, h := range req.History {
		history = append(history, llm.Message{Role: h.Role, Content: h.Content})
	}
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: prompt.BuildGrounded(req.Message, results),
	})

	answer, err := cs.llm.Chat(ctx, history)
	if err != nil {
		return nil, &apperrors.CompletionError{Err: err}
	}

	// Every retrieved document becomes a citation. The orchestrator cannot
	// verify which sources the model actually drew on, so it cites all of
	// them rather than drop any.
	citations := make([]entity.Citation, len(results))
	for i, res := range results {
		citations[i] = citation.FromDocument(res.Document)
	}

	return &entity.Message{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleAssistant,
		Content:   answer,
		Timestamp: time.Now(),
		Citations: citations,
	}, nil
}

func (cs *chatService) GetHistory(ctx context.Context, threadId string) ([]*dto.GetHistoryResponse, error) {
	if strings.TrimSpace(threadId) == "" {
		return nil, &apperrors.ValidationError{Field: "thread_id", Reason: "must not be empty"}
	}

	messages := cs.convRepo.History(threadId)
	resp := make([]*dto.GetHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, &dto.GetHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Citations: toCitationDTOs(msg.Citations),
		})
	}
	return resp, nil
}

func (cs *chatService) publishTurn(ctx context.Context, threadId string, role string) {
	if cs.natsPub == nil {
		return
	}
	if err := cs.natsPub.Publish(ctx, events.ChatTurnRecorded(threadId, role)); err != nil {
		cs.log.Warn("ChatService", "Failed to publish turn event", map[string]interface{}{
			"thread_id": threadId,
			"error":     err.Error(),
		})
	}
}

func toChatResponse(threadId string, msg entity.Message) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		ThreadId:  threadId,
		Role:      msg.Role,
		Timestamp: msg.Timestamp,
		Response:  msg.Content,
		Citations: toCitationDTOs(msg.Citations),
	}
}

func toCitationDTOs(citations []entity.Citation) []dto.CitationDTO {
	out := make([]dto.CitationDTO, len(citations))
	for i, c := range citations {
		out[i] = dto.CitationDTO{
			Text:   c.Text,
			Source: c.Source,
			Title:  c.Title,
			Author: c.Author,
			Year:   c.Year,
		}
	}
	return out
}
