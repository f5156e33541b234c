package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError signals bad caller input. It is raised before any state
// mutation, so the caller may fix the input and retry safely.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// EmbeddingError wraps a failure of the embedding collaborator, including a
// malformed vector coming back. Retryable.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding provider: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// DimensionError is a programmer or configuration error: a vector with the
// wrong number of components reached a store. Not retryable.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// RetrievalError wraps an unavailable or failing vector store. Retryable.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// CompletionError wraps a failure of the LLM collaborator. Retryable, but by
// the time it surfaces the user message is already recorded, so a retry is a
// new turn rather than a resume.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion provider: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDimension(err error) bool {
	var de *DimensionError
	return errors.As(err, &de)
}

// UserFacingMessage maps an internal failure to the category description
// recorded in the conversation log. Raw error detail never leaks here.
func UserFacingMessage(err error) string {
	var (
		ee *EmbeddingError
		re *RetrievalError
		ce *CompletionError
	)
	switch {
	case errors.As(err, &ee):
		return "Could not generate an embedding for your message. Please try again."
	case errors.As(err, &re):
		return "Could not reach the retrieval service. Please try again."
	case errors.As(err, &ce):
		return "Could not generate a response. Please try again."
	default:
		return "Something went wrong while processing your message. Please try again."
	}
}
