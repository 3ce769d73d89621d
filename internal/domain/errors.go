package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a missing or blank query string.
	ErrEmptyQuery = errors.New("query is required")
	// ErrInvalidRole signals an unknown caller role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidSearchType signals an unsupported search type.
	ErrInvalidSearchType = errors.New("invalid search type")
	// ErrEngineUnavailable signals a search engine failure.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEmbeddingUnavailable signals that no embedding provider is configured.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRateLimited signals a rate limit hit at the embedding provider.
	ErrRateLimited = errors.New("rate limited")
)

// SearchFailureError wraps ErrEngineUnavailable with the upstream engine message.
type SearchFailureError struct {
	Upstream string
}

func (e *SearchFailureError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEngineUnavailable.Error(), e.Upstream)
}

func (e *SearchFailureError) Unwrap() error { return ErrEngineUnavailable }

// NewSearchFailure creates a search failure carrying the upstream message.
func NewSearchFailure(upstream string) error {
	return &SearchFailureError{Upstream: upstream}
}
