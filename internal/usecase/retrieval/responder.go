package retrieval

import (
	"fmt"
	"strings"

	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/result"
)

// Role-specific phrasing for each result type.
var clinicianTypePhrases = map[result.Type]string{
	result.TypePatient:      "patient records",
	result.TypeClinicalNote: "clinical notes",
	result.TypeLabResult:    "laboratory results",
	result.TypeMedication:   "medication records",
	result.TypeResearch:     "research articles",
	result.TypeRecord:       "medical records",
}

var patientTypePhrases = map[result.Type]string{
	result.TypePatient:      "your health records",
	result.TypeClinicalNote: "notes from your care team",
	result.TypeLabResult:    "your test results",
	result.TypeMedication:   "your medications",
	result.TypeResearch:     "health information",
	result.TypeRecord:       "your records",
}

// Fixed guidance sentences appended to every non-empty summary.
const (
	clinicianGuidance = "Review the highlighted excerpts to confirm clinical relevance."
	patientGuidance   = "Please discuss these results with your healthcare provider."
)

// conversationalResponse builds the templated recap: a zero-result or
// non-zero-result sentence phrased per role, listing the distinct result
// types present, followed by the role's guidance sentence.
func conversationalResponse(r role.Role, outcome result.Outcome) string {
	if outcome.TotalResults == 0 {
		if r == role.Clinician {
			return "No matching records were found. Consider broadening the search terms or removing filters."
		}
		return "I couldn't find anything matching your question. Try asking in a different way, or reach out to your care team."
	}

	// Paging past the last result returns an empty page while the total
	// still reports matches.
	if len(outcome.Results) == 0 {
		if r == role.Clinician {
			return fmt.Sprintf("No further results. All %d matching records appear on earlier pages.", outcome.TotalResults)
		}
		return "There are no more results to show. Go back to an earlier page to see what was found."
	}

	phrases := patientTypePhrases
	guidance := patientGuidance
	lead := "I found"
	if r == role.Clinician {
		phrases = clinicianTypePhrases
		guidance = clinicianGuidance
		lead = "Found"
	}

	types := distinctTypes(outcome.Results)
	named := make([]string, 0, len(types))
	for _, t := range types {
		named = append(named, phrases[t])
	}

	return fmt.Sprintf("%s %d results including %s. %s",
		lead, outcome.TotalResults, joinList(named), guidance)
}

// distinctTypes lists result types in first-seen order.
func distinctTypes(results []result.Result) []result.Type {
	var types []result.Type
	seen := make(map[result.Type]struct{})
	for _, res := range results {
		if _, ok := seen[res.Type]; ok {
			continue
		}
		seen[res.Type] = struct{}{}
		types = append(types, res.Type)
	}
	return types
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
