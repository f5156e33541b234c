package dto

import (
	"time"

	"github.com/google/uuid"
)

// HistoryItemDTO is a prior conversation turn supplied by the client.
type HistoryItemDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant error system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	ThreadId string           `json:"thread_id" validate:"required"`
	Message  string           `json:"message" validate:"required"`
	History  []HistoryItemDTO `json:"history,omitempty" validate:"omitempty,dive"`
}

type CitationDTO struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
}

// ChatMessageResponse is the recorded turn outcome: an assistant reply with
// citations, or a role=error payload when a downstream step failed after the
// user message was recorded.
type ChatMessageResponse struct {
	Id        uuid.UUID     `json:"id"`
	ThreadId  string        `json:"thread_id"`
	Role      string        `json:"role"`
	Timestamp time.Time     `json:"timestamp"`
	Response  string        `json:"response"`
	Citations []CitationDTO `json:"citations"`
}

type GetHistoryResponse struct {
	Id        uuid.UUID     `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Citations []CitationDTO `json:"citations,omitempty"`
}

// SuggestRequest accepts either an explicit history snippet or a thread id to
// load the recorded conversation from.
type SuggestRequest struct {
	ThreadId string           `json:"thread_id,omitempty"`
	History  []HistoryItemDTO `json:"history,omitempty" validate:"omitempty,dive"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}
