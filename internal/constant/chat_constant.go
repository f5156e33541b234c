package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleError     = "error"
	ChatMessageRoleSystem    = "system"

	// EmbeddingDim is the fixed dimension of every stored and queried vector.
	// Gemini text-embedding-004 and nomic-embed-text both emit 768 components.
	EmbeddingDim = 768

	// DefaultTopK is the retrieval depth used when the caller does not ask
	// for a specific number of documents.
	DefaultTopK = 3

	// MaxTopK caps a single retrieval so one request cannot scan-and-sort
	// the entire corpus into its response.
	MaxTopK = 20
)
