package service

import (
	"context"
	"encoding/json"
	"strings"

	"ragchat-be/internal/dto"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/pkg/logger"
	"ragchat-be/internal/repository/contract"
	"ragchat-be/pkg/llm"
	"ragchat-be/pkg/rag/prompt"
)

// ISuggestionService proposes follow-up questions for a conversation.
// Suggestions are decorative: the service soft-fails to an empty list and
// never surfaces an error to the caller.
type ISuggestionService interface {
	Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, error)
}

type suggestionService struct {
	llm      llm.Provider
	convRepo contract.ConversationRepository
	log      logger.ILogger
}

func NewSuggestionService(llmProvider llm.Provider, convRepo contract.ConversationRepository, log logger.ILogger) ISuggestionService {
	return &suggestionService{llm: llmProvider, convRepo: convRepo, log: log}
}

func (ss *suggestionService) Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	history := ss.resolveHistory(req)
	if len(history) == 0 {
		return &dto.SuggestResponse{Suggestions: []string{}}, nil
	}

	raw, err := ss.llm.Generate(ctx, prompt.BuildSuggestions(history))
	if err != nil {
		ss.log.Warn("SuggestionService", "Suggestion generation failed, returning none", map[string]interface{}{
			"thread_id": req.ThreadId,
			"error":     err.Error(),
		})
		return &dto.SuggestResponse{Suggestions: []string{}}, nil
	}

	suggestions := parseSuggestions(raw)
	if suggestions == nil {
		ss.log.Warn("SuggestionService", "Model response was not a question list", map[string]interface{}{
			"thread_id": req.ThreadId,
		})
		suggestions = []string{}
	}
	return &dto.SuggestResponse{Suggestions: suggestions}, nil
}

// resolveHistory prefers the history the client sent; otherwise it falls back
// to the recorded thread.
func (ss *suggestionService) resolveHistory(req *dto.SuggestRequest) []entity.Message {
	if len(req.History) > 0 {
		history := make([]entity.Message, len(req.History))
		for i, item := range req.History {
			history[i] = entity.Message{Role: item.Role, Content: item.Content}
		}
		return history
	}
	if req.ThreadId == "" {
		return nil
	}
	return ss.convRepo.History(req.ThreadId)
}

// parseSuggestions extracts a JSON string array from a model response that may
// be wrapped in markdown code fences or surrounding prose. Returns nil when
// nothing parseable is found.
func parseSuggestions(raw string) []string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var items []string
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
