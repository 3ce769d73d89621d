package elastic

import (
	"encoding/json"
	"testing"
)

func TestTotalHitsUnmarshal(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantValue    int64
		wantRelation string
	}{
		{"object form", `{"value": 37, "relation": "eq"}`, 37, "eq"},
		{"object gte", `{"value": 10000, "relation": "gte"}`, 10000, "gte"},
		{"bare number", `37`, 37, "eq"},
		{"zero", `0`, 0, "eq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total TotalHits
			if err := json.Unmarshal([]byte(tt.raw), &total); err != nil {
				t.Fatalf("unmarshal %q: %v", tt.raw, err)
			}
			if total.Value != tt.wantValue || total.Relation != tt.wantRelation {
				t.Errorf("total = %+v, want {%d %s}", total, tt.wantValue, tt.wantRelation)
			}
		})
	}
}

func TestTotalHitsUnmarshalInvalid(t *testing.T) {
	var total TotalHits
	if err := json.Unmarshal([]byte(`"many"`), &total); err == nil {
		t.Error("unmarshal accepted a string total")
	}
}

func TestSearchResponseUnmarshal(t *testing.T) {
	raw := `{
		"took": 12,
		"hits": {
			"total": {"value": 2, "relation": "eq"},
			"hits": [
				{"_index": "patients", "_id": "p1", "_score": 1.5, "_source": {"patient_id": "p1"}},
				{"_index": "lab-results", "_id": "l1", "_score": 0.9, "_source": {"test_name": "glucose"},
				 "highlight": {"content": ["<em>glucose</em> elevated"]}}
			]
		},
		"aggregations": {
			"types": {"buckets": [{"key": "patient", "doc_count": 1}]}
		}
	}`

	var sr SearchResponse
	if err := json.Unmarshal([]byte(raw), &sr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sr.Took != 12 {
		t.Errorf("took = %d", sr.Took)
	}
	if sr.Hits.Total.Value != 2 || len(sr.Hits.Hits) != 2 {
		t.Errorf("hits = %+v", sr.Hits)
	}
	if got := sr.Hits.Hits[1].Highlight["content"]; len(got) != 1 {
		t.Errorf("highlight = %v", got)
	}
	if got := sr.Aggregations["types"].Buckets; len(got) != 1 || got[0].DocCount != 1 {
		t.Errorf("aggregations = %+v", sr.Aggregations)
	}
}

func TestAggBucketKeyString(t *testing.T) {
	tests := []struct {
		name   string
		bucket AggBucket
		want   string
	}{
		{"string key", AggBucket{Key: "patient"}, "patient"},
		{"key_as_string preferred", AggBucket{Key: float64(1704067200000), KeyAsString: "2024-01"}, "2024-01"},
		{"numeric key", AggBucket{Key: float64(42)}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bucket.KeyString(); got != tt.want {
				t.Errorf("KeyString = %q, want %q", got, tt.want)
			}
		})
	}
}
