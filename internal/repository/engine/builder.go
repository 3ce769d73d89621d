package engine

import (
	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/request"
	"github.com/mediquery/mediquery/internal/domain/search/result"
)

// Lexical clause tuning.
const (
	fuzziness           = "AUTO"
	minimumShouldMatch  = "70%"
	matchType           = "best_fields"
	recencyScale        = "30d"
	recencyDecay        = 0.5
	knnCandidateFactor  = 10
	highlightFragSize   = 150
	highlightFragsField = 3
)

// searchFields are the weighted lexical match targets: shared searchable
// text plus the per-index domain fields.
var searchFields = []string{
	"title^3",
	"summary^2",
	"content^2",
	"description^1.5",
	"category",
	"conditions.description^2",
	"test_name^2",
	"name^2",
	"generic_name",
	"abstract",
}

// typeBoosts are the role-specific static per-type ranking weights.
var typeBoosts = map[role.Role]map[result.Type]float64{
	role.Clinician: {
		result.TypePatient:      1.5,
		result.TypeClinicalNote: 1.4,
		result.TypeLabResult:    1.3,
		result.TypeResearch:     1.2,
		result.TypeMedication:   1.1,
	},
	role.Patient: {
		result.TypeLabResult:    1.5,
		result.TypeMedication:   1.4,
		result.TypeResearch:     1.2,
		result.TypePatient:      0.6,
		result.TypeClinicalNote: 0.5,
	},
}

// buildSearchBody assembles the full engine request: lexical clause,
// optional vector clause, structured filters, soft role policy, relevance
// boosts, highlighting, and the fixed aggregation set. Deterministic for a
// given (processed query, params, embedding).
func buildSearchBody(
	proc query.Processed, params request.Request, embedding []float32,
) map[string]any {
	boolClause := map[string]any{
		"must": []any{lexicalClause(proc.ProcessedQuery)},
	}

	if filters := filterClauses(params.Filters()); len(filters) > 0 {
		boolClause["filter"] = filters
	}

	applyRolePolicy(boolClause, params.Role())

	body := map[string]any{
		"query":     scoredQuery(boolClause, params.Role()),
		"highlight": highlightSpec(),
		"aggs":      aggregationSpec(),
		"size":      params.Size(),
		"from":      params.From(),
	}

	if len(embedding) > 0 && params.SearchType() != request.Keyword {
		body["knn"] = knnClause(embedding, params.Size())
		if params.SearchType() == request.Hybrid {
			// Fuse the lexical and vector rankings engine-side.
			body["rank"] = map[string]any{"rrf": map[string]any{}}
		}
	}

	return body
}

func lexicalClause(text string) map[string]any {
	return map[string]any{
		"multi_match": map[string]any{
			"query":                text,
			"fields":               searchFields,
			"type":                 matchType,
			"fuzziness":            fuzziness,
			"minimum_should_match": minimumShouldMatch,
		},
	}
}

func knnClause(embedding []float32, size int) map[string]any {
	return map[string]any{
		"field":          "embedding",
		"query_vector":   embedding,
		"k":              size,
		"num_candidates": size * knnCandidateFactor,
	}
}

func filterClauses(f request.Filters) []any {
	var clauses []any

	if f.DateFrom != "" || f.DateTo != "" {
		rng := map[string]any{}
		if f.DateFrom != "" {
			rng["gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			rng["lte"] = f.DateTo
		}
		clauses = append(clauses, map[string]any{
			"range": map[string]any{"timestamp": rng},
		})
	}
	if len(f.Types) > 0 {
		clauses = append(clauses, map[string]any{
			"terms": map[string]any{"type": f.Types},
		})
	}
	if len(f.MedicalCodes) > 0 {
		clauses = append(clauses, map[string]any{
			"terms": map[string]any{"conditions.code": f.MedicalCodes},
		})
	}
	if f.AgeMin > 0 || f.AgeMax > 0 {
		rng := map[string]any{}
		if f.AgeMin > 0 {
			rng["gte"] = f.AgeMin
		}
		if f.AgeMax > 0 {
			rng["lte"] = f.AgeMax
		}
		clauses = append(clauses, map[string]any{
			"range": map[string]any{"demographics.age": rng},
		})
	}
	if f.Gender != "" {
		clauses = append(clauses, map[string]any{
			"term": map[string]any{"demographics.gender": f.Gender},
		})
	}
	if len(f.Departments) > 0 {
		clauses = append(clauses, map[string]any{
			"terms": map[string]any{"department": f.Departments},
		})
	}
	return clauses
}

// applyRolePolicy adds the soft role clauses. Everything is a ranking boost
// except the one hard rule: patients never see internal-only documents.
func applyRolePolicy(boolClause map[string]any, r role.Role) {
	switch r {
	case role.Patient:
		boolClause["must_not"] = []any{
			map[string]any{"term": map[string]any{"internal_only": true}},
		}
		boolClause["should"] = []any{
			map[string]any{"term": map[string]any{"patient_friendly": map[string]any{
				"value": true,
				"boost": 2.0,
			}}},
		}
	case role.Clinician:
		boolClause["should"] = []any{
			map[string]any{"term": map[string]any{"clinical_relevance": map[string]any{
				"value": "high",
				"boost": 1.5,
			}}},
		}
	}
}

// scoredQuery wraps the bool query in a function_score combining a gaussian
// recency decay with the role's static per-type weight table.
func scoredQuery(boolClause map[string]any, r role.Role) map[string]any {
	functions := []any{
		map[string]any{
			"gauss": map[string]any{
				"timestamp": map[string]any{
					"origin": "now",
					"scale":  recencyScale,
					"decay":  recencyDecay,
				},
			},
		},
	}

	for _, t := range []result.Type{
		result.TypePatient, result.TypeClinicalNote, result.TypeLabResult,
		result.TypeMedication, result.TypeResearch,
	} {
		weight, ok := typeBoosts[r][t]
		if !ok {
			continue
		}
		functions = append(functions, map[string]any{
			"filter": map[string]any{"term": map[string]any{"type": string(t)}},
			"weight": weight,
		})
	}

	return map[string]any{
		"function_score": map[string]any{
			"query":      map[string]any{"bool": boolClause},
			"functions":  functions,
			"score_mode": "multiply",
			"boost_mode": "multiply",
		},
	}
}

func highlightSpec() map[string]any {
	return map[string]any{
		"fields": map[string]any{
			"title": map[string]any{
				"number_of_fragments": 1,
			},
			"summary": map[string]any{
				"fragment_size":       highlightFragSize,
				"number_of_fragments": highlightFragsField,
			},
			"content": map[string]any{
				"fragment_size":       highlightFragSize,
				"number_of_fragments": highlightFragsField,
			},
		},
	}
}

// aggregationSpec is the fixed facet set.
func aggregationSpec() map[string]any {
	return map[string]any{
		"types": map[string]any{
			"terms": map[string]any{"field": "type"},
		},
		"sources": map[string]any{
			"terms": map[string]any{"field": "source"},
		},
		"categories": map[string]any{
			"terms": map[string]any{"field": "category"},
		},
		"timeline": map[string]any{
			"date_histogram": map[string]any{
				"field":             "timestamp",
				"calendar_interval": "month",
			},
		},
		"severity": map[string]any{
			"terms": map[string]any{"field": "conditions.severity"},
		},
	}
}
