package elastic

import (
	"encoding/json"
	"fmt"
)

// SearchResponse is the engine's raw search reply.
type SearchResponse struct {
	Took         int                    `json:"took"`
	TimedOut     bool                   `json:"timed_out"`
	Hits         Hits                   `json:"hits"`
	Aggregations map[string]Aggregation `json:"aggregations"`
}

// Hits holds the hit envelope.
type Hits struct {
	Total TotalHits `json:"total"`
	Hits  []Hit     `json:"hits"`
}

// TotalHits tolerates both wire shapes: a bare number (older engines) and
// the {value, relation} object.
type TotalHits struct {
	Value    int64
	Relation string
}

// UnmarshalJSON accepts either `"total": 37` or
// `"total": {"value": 37, "relation": "eq"}`.
func (t *TotalHits) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("unmarshal total object: %w", err)
		}
		t.Value = obj.Value
		t.Relation = obj.Relation
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unmarshal total number: %w", err)
	}
	t.Value = n
	t.Relation = "eq"
	return nil
}

// Hit is a single raw document hit.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     float64             `json:"_score"`
	Source    map[string]any      `json:"_source"`
	Highlight map[string][]string `json:"highlight"`
}

// Aggregation is a single facet result.
type Aggregation struct {
	Buckets []AggBucket `json:"buckets"`
}

// AggBucket is one facet bucket. Key may be a string (terms aggs) or a
// number (date histograms), so KeyAsString is preferred when present.
type AggBucket struct {
	Key         any    `json:"key"`
	KeyAsString string `json:"key_as_string"`
	DocCount    int    `json:"doc_count"`
}

// KeyString returns the bucket key as a string.
func (b AggBucket) KeyString() string {
	if b.KeyAsString != "" {
		return b.KeyAsString
	}
	switch k := b.Key.(type) {
	case string:
		return k
	case float64:
		return fmt.Sprintf("%.0f", k)
	default:
		return fmt.Sprintf("%v", b.Key)
	}
}
