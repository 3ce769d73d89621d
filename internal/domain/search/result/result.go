// Package result defines typed search results and the assembled response.
package result

// Type classifies a search hit.
type Type string

// Known result types.
const (
	TypePatient      Type = "patient"
	TypeClinicalNote Type = "clinical-note"
	TypeLabResult    Type = "lab-result"
	TypeMedication   Type = "medication"
	TypeResearch     Type = "research"
	TypeRecord       Type = "record"
)

// MaxHighlights caps the flattened highlight fragments per result.
const MaxHighlights = 5

// Result is a single typed, role-shaped search hit.
type Result struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Summary        string         `json:"summary"`
	RelevanceScore float64        `json:"relevanceScore"`
	Source         string         `json:"source"`
	Type           Type           `json:"type"`
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

// NewPagination computes the page window. HasMore holds exactly when
// offset + returned < total.
func NewPagination(offset, limit, returned, total int) Pagination {
	return Pagination{
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+returned < total,
	}
}

// Outcome is the raw engine outcome after mapping, before response assembly.
type Outcome struct {
	Results      []Result
	TotalResults int
	QueryTimeMS  int
	Aggregations map[string][]Bucket
}

// Response is the assembled search response returned to callers.
type Response struct {
	Results                []Result            `json:"results"`
	TotalResults           int                 `json:"totalResults"`
	QueryTime              int                 `json:"queryTime"`
	Suggestions            []string            `json:"suggestions"`
	ConversationalResponse string              `json:"conversationalResponse"`
	Aggregations           map[string][]Bucket `json:"aggregations,omitempty"`
	Pagination             Pagination          `json:"pagination"`
}
