// Package query defines the structured output of the query understanding
// pipeline: extracted medical entities, classified intent, and the fully
// processed query handed to retrieval.
package query

// Entities groups extracted medical terms by category. Each list is
// deduplicated with insertion order preserved (first match wins).
type Entities struct {
	Conditions          []string `json:"conditions"`
	Medications         []string `json:"medications"`
	Procedures          []string `json:"procedures"`
	Symptoms            []string `json:"symptoms"`
	AnatomicalSites     []string `json:"anatomicalSites"`
	Demographics        []string `json:"demographics"`
	TemporalExpressions []string `json:"temporalExpressions"`
	LabTests            []string `json:"labTests"`
	MedicalCodes        []string `json:"medicalCodes"`
}

// Total counts extracted terms across every category.
func (e Entities) Total() int {
	return len(e.Conditions) + len(e.Medications) + len(e.Procedures) +
		len(e.Symptoms) + len(e.AnatomicalSites) + len(e.Demographics) +
		len(e.TemporalExpressions) + len(e.LabTests) + len(e.MedicalCodes)
}

// IntentName tags a recognized query intent.
type IntentName string

// Recognized intents, in classifier priority order.
const (
	IntentSearchPatients   IntentName = "search_patients"
	IntentExplainResults   IntentName = "explain_results"
	IntentMedicationInfo   IntentName = "medication_info"
	IntentSimilarCases     IntentName = "similar_cases"
	IntentResearchEvidence IntentName = "research_evidence"
	IntentTrendAnalysis    IntentName = "trend_analysis"
)

// Intent is the classified purpose of a query, with intent-specific parameters.
type Intent struct {
	Primary    IntentName     `json:"primary"`
	Secondary  IntentName     `json:"secondary,omitempty"`
	Parameters map[string]any `json:"parameters"`
}

// Processed is the result of running the understanding pipeline over raw
// query text. Created fresh per call and never mutated after return.
type Processed struct {
	OriginalQuery  string   `json:"originalQuery"`
	ProcessedQuery string   `json:"processedQuery"`
	Entities       Entities `json:"entities"`
	Intent         Intent   `json:"intent"`
	Confidence     float64  `json:"confidence"`
	Suggestions    []string `json:"suggestions"`
}
