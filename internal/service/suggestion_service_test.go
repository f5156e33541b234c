package service

import (
	"context"
	"errors"
	"testing"

	"ragchat-be/internal/constant"
	"ragchat-be/internal/dto"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionServiceEmptyHistory(t *testing.T) {
	model := &fakeLLM{generateOut: `["a?","b?","c?"]`}
	svc := NewSuggestionService(model, memory.NewConversationRepository(), nopLogger{})

	res, err := svc.Suggest(context.Background(), &dto.SuggestRequest{ThreadId: "empty"})
	require.NoError(t, err)
	assert.Empty(t, res.Suggestions)

	// The model is never consulted without history.
	assert.Empty(t, model.lastPrompt)
}

func TestSuggestionServiceFromStoredThread(t *testing.T) {
	repo := memory.NewConversationRepository()
	repo.Append("t1", entity.Message{Role: constant.ChatMessageRoleUser, Content: "what is pgvector?"})
	repo.Append("t1", entity.Message{Role: constant.ChatMessageRoleAssistant, Content: "a postgres extension"})

	model := &fakeLLM{generateOut: `["How does it index?", "What about scale?", "Alternatives?"]`}
	svc := NewSuggestionService(model, repo, nopLogger{})

	res, err := svc.Suggest(context.Background(), &dto.SuggestRequest{ThreadId: "t1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"How does it index?", "What about scale?", "Alternatives?"}, res.Suggestions)
	assert.Contains(t, model.lastPrompt, "what is pgvector?")
}

func TestSuggestionServiceClientHistoryWins(t *testing.T) {
	repo := memory.NewConversationRepository()
	repo.Append("t1", entity.Message{Role: constant.ChatMessageRoleUser, Content: "stored question"})

	model := &fakeLLM{generateOut: `["q?"]`}
	svc := NewSuggestionService(model, repo, nopLogger{})

	_, err := svc.Suggest(context.Background(), &dto.SuggestRequest{
		ThreadId: "t1",
		History:  []dto.HistoryItemDTO{{Role: constant.ChatMessageRoleUser, Content: "client question"}},
	})
	require.NoError(t, err)
	assert.Contains(t, model.lastPrompt, "client question")
	assert.NotContains(t, model.lastPrompt, "stored question")
}

func TestSuggestionServiceSoftFailsOnModelError(t *testing.T) {
	repo := memory.NewConversationRepository()
	repo.Append("t1", entity.Message{Role: constant.ChatMessageRoleUser, Content: "hi"})

	svc := NewSuggestionService(&fakeLLM{err: errors.New("model down")}, repo, nopLogger{})

	res, err := svc.Suggest(context.Background(), &dto.SuggestRequest{ThreadId: "t1"})
	require.NoError(t, err)
	assert.Empty(t, res.Suggestions)
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "plain array",
			raw:  `["one?","two?","three?"]`,
			want: []string{"one?", "two?", "three?"},
		},
		{
			name: "fenced json",
			raw:  "```json\n[\"one?\",\"two?\"]\n```",
			want: []string{"one?", "two?"},
		},
		{
			name: "array inside prose",
			raw:  `Sure! Here are some questions: ["one?","two?"] Hope that helps.`,
			want: []string{"one?", "two?"},
		},
		{
			name: "blank entries dropped",
			raw:  `["one?","  ",""]`,
			want: []string{"one?"},
		},
		{
			name: "not an array",
			raw:  "I cannot help with that.",
			want: nil,
		},
		{
			name: "malformed json",
			raw:  `["unterminated`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSuggestions(tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}
