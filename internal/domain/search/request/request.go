// Package request defines validated retrieval parameters.
package request

import (
	"fmt"

	"github.com/mediquery/mediquery/internal/domain"
	"github.com/mediquery/mediquery/internal/domain/role"
)

// Search parameter limits.
const (
	MaxQueryLength = 4096
	DefaultSize    = 10
	MaxSize        = 100
)

// SearchType selects the retrieval strategy.
type SearchType string

const (
	// Hybrid combines the lexical clause with a vector clause when an
	// embedding is available.
	Hybrid SearchType = "hybrid"
	// Semantic prefers the vector clause, falling back to lexical matching
	// when no embedding provider is configured.
	Semantic SearchType = "semantic"
	// Keyword uses the lexical clause only.
	Keyword SearchType = "keyword"
)

// IsValid reports whether t is a known search type.
func (t SearchType) IsValid() bool {
	return t == Hybrid || t == Semantic || t == Keyword
}

// Filters narrows retrieval by structured criteria. Zero values mean
// "no constraint".
type Filters struct {
	DateFrom     string   `json:"dateFrom,omitempty"`
	DateTo       string   `json:"dateTo,omitempty"`
	Types        []string `json:"types,omitempty"`
	MedicalCodes []string `json:"medicalCodes,omitempty"`
	AgeMin       int      `json:"ageMin,omitempty"`
	AgeMax       int      `json:"ageMax,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Departments  []string `json:"departments,omitempty"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.DateFrom == "" && f.DateTo == "" && len(f.Types) == 0 &&
		len(f.MedicalCodes) == 0 && f.AgeMin == 0 && f.AgeMax == 0 &&
		f.Gender == "" && len(f.Departments) == 0
}

// Request is a validated search request.
type Request struct {
	query      string
	userRole   role.Role
	filters    Filters
	indices    []string
	size       int
	from       int
	searchType SearchType
}

// New validates and normalizes search parameters.
// Defaults: searchType=hybrid, size=10. Size is clamped to MaxSize and
// from to zero. Empty indices means "all configured indices" and is
// resolved by the engine repository.
func New(
	query string,
	userRole role.Role,
	filters Filters,
	indices []string,
	size, from int,
	searchType SearchType,
) (Request, error) {
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if !userRole.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidRole, userRole)
	}
	if searchType == "" {
		searchType = Hybrid
	}
	if !searchType.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidSearchType, searchType)
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if from < 0 {
		from = 0
	}

	return Request{
		query:      query,
		userRole:   userRole,
		filters:    filters,
		indices:    indices,
		size:       size,
		from:       from,
		searchType: searchType,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Role returns the caller role driving policy branches.
func (r *Request) Role() role.Role { return r.userRole }

// Filters returns the structured filter set.
func (r *Request) Filters() Filters { return r.filters }

// Indices returns the requested index subset (empty = all).
func (r *Request) Indices() []string { return r.indices }

// Size returns the page size.
func (r *Request) Size() int { return r.size }

// From returns the pagination offset.
func (r *Request) From() int { return r.from }

// SearchType returns the retrieval strategy.
func (r *Request) SearchType() SearchType { return r.searchType }
