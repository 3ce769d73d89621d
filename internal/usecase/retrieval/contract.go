package retrieval

import (
	"context"

	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/request"
	"github.com/mediquery/mediquery/internal/domain/search/result"
)

// Processor turns raw query text into a structured request.
type Processor interface {
	Process(text string, r role.Role) (query.Processed, error)
}

// Engine executes a built search request against the external engine and
// returns mapped results.
type Engine interface {
	Search(
		ctx context.Context, proc query.Processed, params request.Request, embedding []float32,
	) (result.Outcome, error)
}
