package service

import (
	"context"
	"errors"
	"testing"

	"ragchat-be/internal/constant"
	"ragchat-be/internal/dto"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/repository/memory"
	"ragchat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeRetrieval returns canned results or a canned error.
type fakeRetrieval struct {
	results []entity.SearchResult
	err     error
}

func (f *fakeRetrieval) Index(ctx context.Context, req IndexInput) (*entity.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRetrieval) Retrieve(ctx context.Context, query string, k int) ([]entity.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeRetrieval) DefaultTopK() int { return constant.DefaultTopK }

// fakeLLM records the last history it saw and replies with a fixed answer.
type fakeLLM struct {
	answer      string
	generateOut string
	err         error
	lastHistory []llm.Message
	lastPrompt  string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.generateOut, nil
}

func searchResult(text, title, author, year string) entity.SearchResult {
	return entity.SearchResult{
		Document: &entity.Document{Text: text, Title: title, Author: author, Year: year},
		Score:    0.9,
	}
}

func TestChatServiceRejectsBlankMessage(t *testing.T) {
	repo := memory.NewConversationRepository()
	svc := NewChatService(&fakeRetrieval{}, &fakeLLM{answer: "hi"}, repo, nil, nopLogger{})

	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{ThreadId: "t1", Message: "   "})
	require.Error(t, err)

	// Validation failures must not record anything.
	assert.Empty(t, repo.History("t1"))
}

func TestChatServiceSuccessfulTurn(t *testing.T) {
	repo := memory.NewConversationRepository()
	retrieval := &fakeRetrieval{results: []entity.SearchResult{
		searchResult("the sky is blue", "Sky Facts", "Smith, J.", "2023"),
		searchResult("water is wet", "Water Facts", "", ""),
	}}
	model := &fakeLLM{answer: "The sky is blue."}
	svc := NewChatService(retrieval, model, repo, nil, nopLogger{})

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{
		ThreadId: "t1",
		Message:  "why is the sky blue?",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ChatMessageRoleAssistant, res.Role)
	assert.Equal(t, "The sky is blue.", res.Response)
	require.Len(t, res.Citations, 2)
	assert.Equal(t, "Smith, J. (2023). Sky Facts.", res.Citations[0].Text)

	history := repo.History("t1")
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, history[0].Role)
	assert.Equal(t, "why is the sky blue?", history[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, history[1].Role)

	// The prompt sent to the model carries the retrieved text, not just the
	// raw question.
	require.NotEmpty(t, model.lastHistory)
	last := model.lastHistory[len(model.lastHistory)-1]
	assert.Contains(t, last.Content, "the sky is blue")
	assert.Contains(t, last.Content, "why is the sky blue?")
}

func TestChatServicePassesClientHistory(t *testing.T) {
	repo := memory.NewConversationRepository()
	model := &fakeLLM{answer: "ok"}
	svc := NewChatService(&fakeRetrieval{}, model, repo, nil, nopLogger{})

	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{
		ThreadId: "t1",
		Message:  "and then?",
		History: []dto.HistoryItemDTO{
			{Role: constant.ChatMessageRoleUser, Content: "tell me a story"},
			{Role: constant.ChatMessageRoleAssistant, Content: "once upon a time"},
		},
	})
	require.NoError(t, err)

	require.Len(t, model.lastHistory, 3)
	assert.Equal(t, "tell me a story", model.lastHistory[0].Content)
	assert.Equal(t, "once upon a time", model.lastHistory[1].Content)
}

func TestChatServiceRetrievalFailureBecomesErrorMessage(t *testing.T) {
	repo := memory.NewConversationRepository()
	retrieval := &fakeRetrieval{err: errors.New("store down")}
	svc := NewChatService(retrieval, &fakeLLM{answer: "unused"}, repo, nil, nopLogger{})

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{ThreadId: "t1", Message: "hello"})

	// The turn itself does not fail; the failure is recorded in the thread.
	require.NoError(t, err)
	assert.Equal(t, constant.ChatMessageRoleError, res.Role)
	assert.NotEmpty(t, res.Response)

	history := repo.History("t1")
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, history[0].Role)
	assert.Equal(t, constant.ChatMessageRoleError, history[1].Role)
}

func TestChatServiceCompletionFailureBecomesErrorMessage(t *testing.T) {
	repo := memory.NewConversationRepository()
	model := &fakeLLM{err: errors.New("model down")}
	svc := NewChatService(&fakeRetrieval{}, model, repo, nil, nopLogger{})

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{ThreadId: "t1", Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, constant.ChatMessageRoleError, res.Role)
	assert.Equal(t, "Could not generate a response. Please try again.", res.Response)

	history := repo.History("t1")
	require.Len(t, history, 2)
}

func TestChatServiceTurnsAccumulate(t *testing.T) {
	repo := memory.NewConversationRepository()
	svc := NewChatService(&fakeRetrieval{}, &fakeLLM{answer: "reply"}, repo, nil, nopLogger{})
	ctx := context.Background()

	// Identical requests append distinct turns, there is no dedup.
	req := &dto.ChatRequest{ThreadId: "t1", Message: "same message"}
	_, err := svc.SendChat(ctx, req)
	require.NoError(t, err)
	_, err = svc.SendChat(ctx, req)
	require.NoError(t, err)

	assert.Len(t, repo.History("t1"), 4)
}

func TestChatServiceGetHistory(t *testing.T) {
	repo := memory.NewConversationRepository()
	svc := NewChatService(&fakeRetrieval{}, &fakeLLM{answer: "reply"}, repo, nil, nopLogger{})
	ctx := context.Background()

	_, err := svc.GetHistory(ctx, "")
	require.Error(t, err)

	empty, err := svc.GetHistory(ctx, "fresh-thread")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.SendChat(ctx, &dto.ChatRequest{ThreadId: "t1", Message: "hello"})
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, "reply", history[1].Content)
}
