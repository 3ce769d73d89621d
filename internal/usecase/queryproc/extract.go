package queryproc

import (
	"regexp"

	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/taxonomy"
)

type termMatcher struct {
	term string
	re   *regexp.Regexp
}

type categoryMatcher struct {
	category string
	terms    []termMatcher
}

func compileTerms(terms []string) []termMatcher {
	matchers := make([]termMatcher, 0, len(terms))
	for _, term := range terms {
		matchers = append(matchers, termMatcher{
			term: term,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	return matchers
}

func compileCategories(tables *taxonomy.Tables) []categoryMatcher {
	lists := tables.Categories()
	matchers := make([]categoryMatcher, 0, len(lists))
	for _, tl := range lists {
		matchers = append(matchers, categoryMatcher{
			category: tl.Category,
			terms:    compileTerms(tl.Terms),
		})
	}
	return matchers
}

// Demographic patterns. Text is already lowercased.
var (
	ageRe      = regexp.MustCompile(`\b\d+\s*(?:years?|yrs?|age)\b`)
	ageRangeRe = regexp.MustCompile(`\b\d+\s*(?:to|-)\s*\d+\s*(?:years?|yrs?)\b`)
	maleRe     = regexp.MustCompile(`\b(?:male|man|men)\b`)
	femaleRe   = regexp.MustCompile(`\b(?:female|woman|women)\b`)
	elderlyRe  = regexp.MustCompile(`\b(?:elderly|senior|aged|old)\b`)
	youngRe    = regexp.MustCompile(`\b(?:young|pediatric|child|children)\b`)
)

// Temporal patterns are not mutually exclusive; every match of every pattern
// is collected.
var temporalRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:last|past)\s+\d+\s+(?:day|week|month|year)s?\b`),
	regexp.MustCompile(`\b(?:recent|recently|latest)\b`),
	regexp.MustCompile(`\b(?:today|yesterday|this week|this month|this year)\b`),
	regexp.MustCompile(`\b(?:within|in the last|over the past)\s+\d+\s+(?:day|week|month|year)s?\b`),
}

// Code shapes. Tested on normalized text, so ICD letters are lowercase.
var (
	icd10Re = regexp.MustCompile(`\b[a-z]\d{2}(?:\.\d+)?\b`)
	cptRe   = regexp.MustCompile(`\b\d{5}\b`)
)

// extractEntities runs every taxonomy term plus the special extractors over
// the normalized, abbreviation-expanded query. Per-category results are
// deduplicated in table order, not input order.
func (s *Service) extractEntities(text string) query.Entities {
	var e query.Entities
	for _, cm := range s.matchers {
		matched := matchTerms(cm.terms, text)
		switch cm.category {
		case taxonomy.CategoryConditions:
			e.Conditions = matched
		case taxonomy.CategoryMedications:
			e.Medications = matched
		case taxonomy.CategoryProcedures:
			e.Procedures = matched
		case taxonomy.CategorySymptoms:
			e.Symptoms = matched
		case taxonomy.CategoryLabTests:
			e.LabTests = matched
		}
	}

	e.AnatomicalSites = matchTerms(s.sites, text)
	e.Demographics = extractDemographics(text)
	e.TemporalExpressions = extractTemporal(text)
	e.MedicalCodes = extractCodes(text)
	return e
}

func matchTerms(terms []termMatcher, text string) []string {
	var matched []string
	seen := make(map[string]struct{})
	for _, tm := range terms {
		if !tm.re.MatchString(text) {
			continue
		}
		if _, ok := seen[tm.term]; ok {
			continue
		}
		seen[tm.term] = struct{}{}
		matched = append(matched, tm.term)
	}
	return matched
}

func extractDemographics(text string) []string {
	var demo []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		demo = append(demo, v)
	}

	if m := ageRangeRe.FindString(text); m != "" {
		add(m)
	} else if m := ageRe.FindString(text); m != "" {
		add(m)
	}
	if maleRe.MatchString(text) {
		add("male")
	}
	if femaleRe.MatchString(text) {
		add("female")
	}
	if elderlyRe.MatchString(text) {
		add("elderly")
	}
	if youngRe.MatchString(text) {
		add("young")
	}
	return demo
}

func extractTemporal(text string) []string {
	var matches []string
	seen := make(map[string]struct{})
	for _, re := range temporalRes {
		for _, m := range re.FindAllString(text, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			matches = append(matches, m)
		}
	}
	return matches
}

// extractCodes picks up ICD-10-shaped and CPT-shaped tokens purely by shape.
// No registry validation happens here.
func extractCodes(text string) []string {
	var codes []string
	seen := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{icd10Re, cptRe} {
		for _, m := range re.FindAllString(text, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			codes = append(codes, m)
		}
	}
	return codes
}
