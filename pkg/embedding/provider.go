package embedding

import "context"

// Task types hint the provider at how the embedding will be used. Providers
// that have no such concept ignore them.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Provider turns text into a fixed-length embedding vector. A failure must
// surface as an error; an all-zero vector is a valid embedding, never an
// error sentinel.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
