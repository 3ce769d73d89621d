package sdk

// SearchRequest mirrors the /api/search request body.
type SearchRequest struct {
	Query      string   `json:"query"`
	UserRole   string   `json:"userRole"`
	Filters    *Filters `json:"filters,omitempty"`
	Indices    []string `json:"indices,omitempty"`
	Size       int      `json:"size,omitempty"`
	From       int      `json:"from,omitempty"`
	SearchType string   `json:"searchType,omitempty"`
}

// Filters narrows retrieval by structured criteria.
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

// SearchResult is a single typed hit.
type SearchResult struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Summary        string         `json:"summary"`
	RelevanceScore float64        `json:"relevanceScore"`
	Source         string         `json:"source"`
	Type           string         `json:"type"`
	Highlights     []string       `json:"highlights"`
	Metadata       map[string]any `json:"metadata"`
	Timestamp      string         `json:"timestamp"`
}

// Bucket is one aggregation facet entry.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Pagination describes the returned page window.
type Pagination struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// SearchResponse mirrors the /api/search response body.
type SearchResponse struct {
	Results                []SearchResult      `json:"results"`
	TotalResults           int                 `json:"totalResults"`
	QueryTime              int                 `json:"queryTime"`
	Suggestions            []string            `json:"suggestions"`
	ConversationalResponse string              `json:"conversationalResponse"`
	Aggregations           map[string][]Bucket `json:"aggregations,omitempty"`
	Pagination             Pagination          `json:"pagination"`
}

// ProcessedQuery mirrors the /api/query/process response body.
type ProcessedQuery struct {
	OriginalQuery  string              `json:"originalQuery"`
	ProcessedQuery string              `json:"processedQuery"`
	Entities       map[string][]string `json:"entities"`
	Intent         Intent              `json:"intent"`
	Confidence     float64             `json:"confidence"`
	Suggestions    []string            `json:"suggestions"`
}

// Intent is the classified purpose of a query.
type Intent struct {
	Primary    string         `json:"primary"`
	Secondary  string         `json:"secondary,omitempty"`
	Parameters map[string]any `json:"parameters"`
}
