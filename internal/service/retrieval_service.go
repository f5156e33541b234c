package service

import (
	"context"
	"strings"

	"ragchat-be/internal/apperrors"
	"ragchat-be/internal/constant"
	"ragchat-be/internal/entity"
	"ragchat-be/internal/repository/contract"
	"ragchat-be/pkg/embedding"
)

// IRetrievalService binds the embedding collaborator to a vector store.
type IRetrievalService interface {
	Index(ctx context.Context, req IndexInput) (*entity.Document, error)
	Retrieve(ctx context.Context, query string, k int) ([]entity.SearchResult, error)

	// DefaultTopK is the retrieval depth callers should use when the client
	// did not ask for one.
	DefaultTopK() int
}

// IndexInput is the text to index plus its optional citation metadata.
type IndexInput struct {
	Text   string
	Source string
	Title  string
	Author string
	Year   string
}

type retrievalService struct {
	store       contract.VectorStore
	embedder    embedding.Provider
	defaultTopK int
}

func NewRetrievalService(store contract.VectorStore, embedder embedding.Provider, defaultTopK int) IRetrievalService {
	if defaultTopK <= 0 {
		defaultTopK = constant.DefaultTopK
	}
	return &retrievalService{
		store:       store,
		embedder:    embedder,
		defaultTopK: defaultTopK,
	}
}

func (s *retrievalService) DefaultTopK() int {
	return s.defaultTopK
}

func (s *retrievalService) Index(ctx context.Context, req IndexInput) (*entity.Document, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &apperrors.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	vector, err := s.embed(ctx, req.Text, embedding.TaskRetrievalDocument)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		Text:      req.Text,
		Embedding: vector,
		Source:    req.Source,
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
	}
	if err := s.store.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *retrievalService) Retrieve(ctx context.Context, query string, k int) ([]entity.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &apperrors.ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if k <= 0 {
		return nil, &apperrors.ValidationError{Field: "top_k", Reason: "must be positive"}
	}
	if k > constant.MaxTopK {
		k = constant.MaxTopK
	}

	vector, err := s.embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, vector, k)
}

// embed calls the collaborator and enforces the fixed dimension before the
// vector can reach a store. A wrong-length vector from the provider is a
// provider fault, so it surfaces as an EmbeddingError rather than the store's
// DimensionError.
func (s *retrievalService) embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	vector, err := s.embedder.Generate(ctx, text, taskType)
	if err != nil {
		return nil, &apperrors.EmbeddingError{Err: err}
	}
	if len(vector) != constant.EmbeddingDim {
		return nil, &apperrors.EmbeddingError{
			Err: &apperrors.DimensionError{Want: constant.EmbeddingDim, Got: len(vector)},
		}
	}
	return vector, nil
}
