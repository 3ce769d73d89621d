// Package retrieval orchestrates the hybrid search pipeline: query
// understanding, optional query embedding, the engine call, and response
// assembly. Stateless per call; the engine call is the only suspension point
// and honors context cancellation.
package retrieval

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mediquery/mediquery/internal/domain"
	"github.com/mediquery/mediquery/internal/domain/search/request"
	"github.com/mediquery/mediquery/internal/domain/search/result"
	"github.com/mediquery/mediquery/internal/logger"
	"github.com/mediquery/mediquery/internal/metrics"
)

// Service is the hybrid retrieval engine.
type Service struct {
	processor Processor
	engine    Engine
	embed     domain.Embedder
}

// New creates a retrieval service. embed may be domain.UnavailableEmbedder;
// the vector clause is then skipped at runtime without touching the rest of
// the pipeline.
func New(processor Processor, engine Engine, embed domain.Embedder) *Service {
	if embed == nil {
		embed = domain.UnavailableEmbedder{}
	}
	return &Service{processor: processor, engine: engine, embed: embed}
}

// Search runs the full retrieval pipeline for validated parameters.
func (s *Service) Search(ctx context.Context, params request.Request) (result.Response, error) {
	log := logger.FromContext(ctx)

	proc, err := s.processor.Process(params.Query(), params.Role())
	if err != nil {
		return result.Response{}, fmt.Errorf("process query: %w", err)
	}

	metrics.CountQuery(string(proc.Intent.Primary), params.Role().String())

	embedding := s.tryEmbed(ctx, proc.ProcessedQuery, params)

	outcome, err := s.engine.Search(ctx, proc, params, embedding)
	if err != nil {
		return result.Response{}, fmt.Errorf("engine search: %w", err)
	}

	log.Debug("Search completed",
		zap.String("intent", string(proc.Intent.Primary)),
		zap.Int("total", outcome.TotalResults),
		zap.Int("returned", len(outcome.Results)),
		zap.Float64("confidence", proc.Confidence),
	)

	return result.Response{
		Results:                outcome.Results,
		TotalResults:           outcome.TotalResults,
		QueryTime:              outcome.QueryTimeMS,
		Suggestions:            proc.Suggestions,
		ConversationalResponse: conversationalResponse(params.Role(), outcome),
		Aggregations:           outcome.Aggregations,
		Pagination: result.NewPagination(
			params.From(), params.Size(), len(outcome.Results), outcome.TotalResults,
		),
	}, nil
}

// tryEmbed vectorizes the enhanced query. An unavailable provider is the
// normal case, not an error: the search degrades to lexical matching.
func (s *Service) tryEmbed(ctx context.Context, text string, params request.Request) []float32 {
	if params.SearchType() == request.Keyword {
		return nil
	}

	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
			logger.FromContext(ctx).Warn("Query embedding failed, falling back to lexical",
				zap.Error(err),
			)
		}
		return nil
	}
	return res.Embedding
}
