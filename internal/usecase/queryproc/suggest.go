package queryproc

import (
	"strings"

	"github.com/mediquery/mediquery/internal/domain/role"
)

// Correction parameters: only words longer than minCorrectionLength are
// checked, and a vocabulary term qualifies within maxEditDistance.
const (
	minCorrectionLength = 3
	maxEditDistance     = 2
)

// Corrections suggests vocabulary terms close to misspelled query words.
// For each query word longer than three characters the first vocabulary term
// within edit distance two is emitted. Not part of the retrieval path.
func (s *Service) Corrections(text string) []string {
	var corrections []string
	seen := make(map[string]struct{})

	for _, word := range strings.Fields(normalize(text)) {
		if len(word) <= minCorrectionLength {
			continue
		}
		if _, known := s.vocabWord[word]; known {
			continue
		}
		for _, term := range s.tables.Vocabulary() {
			if levenshteinDistance(word, term) <= maxEditDistance {
				if _, ok := seen[term]; !ok {
					seen[term] = struct{}{}
					corrections = append(corrections, term)
				}
				break
			}
		}
	}
	return corrections
}

// levenshteinDistance computes the edit distance between two strings using
// the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Role-specific follow-up candidate lists.
var clinicianSuggestions = []string{
	"find patients with diabetes",
	"show recent lab results",
	"patients with hypertension on metformin",
	"find similar cases",
	"show medication interactions",
	"lab trends over time",
	"recent clinical notes",
	"patients with abnormal creatinine",
}

var patientSuggestions = []string{
	"what do my lab results mean",
	"explain my medication",
	"what are the side effects of my medication",
	"help me understand my diagnosis",
	"show my recent test results",
	"what does my blood pressure reading mean",
	"explain my treatment plan",
	"when should i see my doctor",
}

// suggestFollowUps picks follow-up queries from the role's candidate list:
// candidates whose first word appears in the query, or that contain the
// query's first word. Falls back to the first four candidates when nothing
// overlaps.
func (s *Service) suggestFollowUps(text string, r role.Role) []string {
	candidates := patientSuggestions
	if r == role.Clinician {
		candidates = clinicianSuggestions
	}

	words := strings.Fields(text)
	queryFirst := ""
	if len(words) > 0 {
		queryFirst = words[0]
	}
	queryWords := make(map[string]struct{}, len(words))
	for _, w := range words {
		queryWords[w] = struct{}{}
	}

	var picked []string
	for _, c := range candidates {
		first, _, _ := strings.Cut(c, " ")
		_, firstInQuery := queryWords[first]
		if firstInQuery || (queryFirst != "" && strings.Contains(c, queryFirst)) {
			picked = append(picked, c)
		}
		if len(picked) == maxSuggestionsCount {
			break
		}
	}

	if len(picked) == 0 {
		picked = append(picked, candidates[:maxSuggestionsCount]...)
	}
	return picked
}
