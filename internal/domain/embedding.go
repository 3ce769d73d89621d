package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// The retrieval pipeline treats it as optional: when Embed returns
// ErrEmbeddingUnavailable the vector clause is skipped and the search
// degrades to pure lexical matching.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// UnavailableEmbedder is the default provider when no embedding backend is
// configured. Every call reports ErrEmbeddingUnavailable.
type UnavailableEmbedder struct{}

// Embed always fails with ErrEmbeddingUnavailable.
func (UnavailableEmbedder) Embed(context.Context, string) (EmbeddingResult, error) {
	return EmbeddingResult{}, ErrEmbeddingUnavailable
}
