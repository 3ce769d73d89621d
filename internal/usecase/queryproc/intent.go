package queryproc

import (
	"regexp"

	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/domain/role"
)

// intentRule pairs an intent with its trigger patterns and a role-dependent
// parameter builder. Rules are tried in declaration order; the first pattern
// match wins, with no scoring or voting.
type intentRule struct {
	name     query.IntentName
	patterns []*regexp.Regexp
	params   func(r role.Role) map[string]any
}

func intentRules() []intentRule {
	return []intentRule{
		{
			name: query.IntentSearchPatients,
			patterns: compilePatterns(
				`\b(?:find|show|search|list)\b.*\bpatients?\b`,
				`\bpatients?\s+(?:with|having)\b`,
			),
			params: func(r role.Role) map[string]any {
				return map[string]any{
					"searchType":      "patient_search",
					"includeTimeline": r == role.Clinician,
				}
			},
		},
		{
			name: query.IntentExplainResults,
			patterns: compilePatterns(
				`\b(?:explain|interpret)\b`,
				`\bwhat\s+(?:is|does|do)\b`,
				`\bresults?\s+mean\b`,
				`\bhelp me understand\b`,
			),
			params: func(r role.Role) map[string]any {
				return map[string]any{
					"simplify":         r == role.Patient,
					"includeEducation": r == role.Patient,
				}
			},
		},
		{
			name: query.IntentMedicationInfo,
			patterns: compilePatterns(
				`\btell me about\b`,
				`\bside effects?\b`,
				`\binteractions?\b`,
				`\bdrug information\b`,
			),
			params: func(r role.Role) map[string]any {
				return map[string]any{
					"includeSideEffects":  true,
					"includeInteractions": r == role.Clinician,
				}
			},
		},
		{
			name: query.IntentSimilarCases,
			patterns: compilePatterns(
				`\bsimilar\b`,
				`\bcomparable\b`,
				`\bpatients? like\b`,
				`\bcases? like\b`,
			),
			params: func(r role.Role) map[string]any {
				maxResults := 5
				if r == role.Clinician {
					maxResults = 20
				}
				return map[string]any{
					"similarityThreshold": 0.7,
					"maxResults":          maxResults,
				}
			},
		},
		{
			name: query.IntentResearchEvidence,
			patterns: compilePatterns(
				`\bresearch\b`,
				`\bstud(?:y|ies)\b`,
				`\bevidence\b`,
				`\bguidelines?\b`,
				`\bclinical trials?\b`,
			),
			params: func(r role.Role) map[string]any {
				level := "high"
				if r == role.Clinician {
					level = "all"
				}
				return map[string]any{
					"evidenceLevel":     level,
					"includeGuidelines": true,
				}
			},
		},
		{
			name: query.IntentTrendAnalysis,
			patterns: compilePatterns(
				`\btrends?\b`,
				`\bchanges?\b`,
				`\bprogress(?:ion)?\b`,
				`\bover time\b`,
				`\bhistor(?:y|ical)\b`,
			),
			params: func(role.Role) map[string]any {
				return map[string]any{}
			},
		},
	}
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

// classifyIntent runs the ordered rule set over the processed text. When no
// pattern matches, clinicians default to patient search and patients to
// result explanation, with empty parameters.
func (s *Service) classifyIntent(text string, r role.Role) query.Intent {
	for _, rule := range s.intents {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				return query.Intent{
					Primary:    rule.name,
					Parameters: rule.params(r),
				}
			}
		}
	}

	if r == role.Clinician {
		return query.Intent{
			Primary:    query.IntentSearchPatients,
			Parameters: map[string]any{},
		}
	}
	return query.Intent{
		Primary:    query.IntentExplainResults,
		Parameters: map[string]any{},
	}
}
