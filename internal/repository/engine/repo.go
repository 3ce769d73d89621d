// Package engine translates processed queries into engine requests and raw
// engine hits back into typed, role-shaped results.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/domain/search/request"
	"github.com/mediquery/mediquery/internal/domain/search/result"
	"github.com/mediquery/mediquery/internal/metrics"
	"github.com/mediquery/mediquery/internal/transport/elastic"
)

// DefaultIndices is the full index catalog, used when a request names none.
var DefaultIndices = []string{
	"patients",
	"clinical-notes",
	"lab-results",
	"medications",
	"research-papers",
}

// searcher is the consumer interface over the engine client.
type searcher interface {
	Search(ctx context.Context, indices []string, body map[string]any) (*elastic.SearchResponse, error)
}

// Repo implements the retrieval engine contract.
type Repo struct {
	client  searcher
	indices []string
	logger  *zap.Logger
}

// New creates an engine repository. indices overrides the default catalog
// when non-empty.
func New(client searcher, indices []string, logger *zap.Logger) *Repo {
	if len(indices) == 0 {
		indices = DefaultIndices
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{client: client, indices: indices, logger: logger}
}

// Search builds the engine request, issues it, and maps the raw response.
// The engine call is the pipeline's only suspension point; cancellation of
// ctx aborts it.
func (r *Repo) Search(
	ctx context.Context, proc query.Processed, params request.Request, embedding []float32,
) (result.Outcome, error) {
	indices := params.Indices()
	if len(indices) == 0 {
		indices = r.indices
	}

	body := buildSearchBody(proc, params, embedding)

	start := time.Now()
	resp, err := r.client.Search(ctx, indices, body)
	metrics.ObserveEngineRequest(time.Since(start), err)
	if err != nil {
		return result.Outcome{}, err
	}

	results := make([]result.Result, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		results = append(results, mapHit(hit, params.Role()))
	}

	return result.Outcome{
		Results:      results,
		TotalResults: int(resp.Hits.Total.Value),
		QueryTimeMS:  resp.Took,
		Aggregations: mapAggregations(resp.Aggregations),
	}, nil
}

func mapAggregations(aggs map[string]elastic.Aggregation) map[string][]result.Bucket {
	if len(aggs) == 0 {
		return nil
	}
	mapped := make(map[string][]result.Bucket, len(aggs))
	for name, agg := range aggs {
		buckets := make([]result.Bucket, 0, len(agg.Buckets))
		for _, b := range agg.Buckets {
			buckets = append(buckets, result.Bucket{Key: b.KeyString(), Count: b.DocCount})
		}
		mapped[name] = buckets
	}
	return mapped
}
