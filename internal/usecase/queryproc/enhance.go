package queryproc

import (
	"strings"

	"github.com/mediquery/mediquery/internal/domain/query"
)

// Topical expansions appended when a matching condition was extracted.
const (
	diabetesExpansion     = "glucose hba1c insulin blood sugar"
	hypertensionExpansion = "blood pressure bp cardiovascular"
)

// enhance appends synonyms of every extracted condition, plus fixed topical
// expansions for diabetes- and hypertension-related conditions. The enhanced
// text, not the original, is what retrieval sees.
func (s *Service) enhance(text string, entities query.Entities) string {
	var b strings.Builder
	b.WriteString(text)

	appended := make(map[string]struct{})
	for _, cond := range entities.Conditions {
		for _, syn := range s.tables.SynonymsFor(cond) {
			if _, ok := appended[syn]; ok {
				continue
			}
			appended[syn] = struct{}{}
			b.WriteString(" ")
			b.WriteString(syn)
		}
	}

	if hasConditionContaining(entities.Conditions, "diabetes") {
		b.WriteString(" ")
		b.WriteString(diabetesExpansion)
	}
	if hasConditionContaining(entities.Conditions, "hypertension") {
		b.WriteString(" ")
		b.WriteString(hypertensionExpansion)
	}

	return b.String()
}

func hasConditionContaining(conditions []string, substr string) bool {
	for _, c := range conditions {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}
