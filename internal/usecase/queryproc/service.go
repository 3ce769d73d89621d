// Package queryproc turns raw query text into a structured, role-aware
// request: normalization, abbreviation expansion, medical entity extraction,
// intent classification, confidence scoring, and query enhancement.
//
// The pipeline is a fixed sequence of pure stages over request-local state;
// the only shared data is the immutable taxonomy, so one Service instance is
// safe for concurrent use.
package queryproc

import (
	"strings"

	"github.com/mediquery/mediquery/internal/domain"
	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/taxonomy"
)

// Confidence bounds and adjustment weights.
const (
	baseConfidence      = 0.5
	entityWeight        = 0.1
	maxEntityBonus      = 0.3
	intentBonus         = 0.2
	noEntityPenalty     = 0.2
	minConfidence       = 0.1
	maxConfidence       = 1.0
	maxSuggestionsCount = 4
)

// Service is the query understanding pipeline.
type Service struct {
	tables    *taxonomy.Tables
	matchers  []categoryMatcher
	sites     []termMatcher
	abbrevs   []abbrevMatcher
	intents   []intentRule
	vocabWord map[string]struct{}
}

// New compiles the taxonomy into matchers. Called once at startup.
func New(tables *taxonomy.Tables) *Service {
	s := &Service{tables: tables}
	s.matchers = compileCategories(tables)
	s.sites = compileTerms(tables.AnatomicalSites)
	s.abbrevs = compileAbbreviations(tables.Abbreviations)
	s.intents = intentRules()
	s.vocabWord = make(map[string]struct{}, len(tables.Vocabulary()))
	for _, term := range tables.Vocabulary() {
		s.vocabWord[term] = struct{}{}
	}
	return s
}

// Process runs the full pipeline: normalize, expand, extract, classify,
// score, enhance. Stage order is load-bearing; expansion must run on
// normalized text and extraction on expanded text.
func (s *Service) Process(text string, r role.Role) (query.Processed, error) {
	if strings.TrimSpace(text) == "" {
		return query.Processed{}, domain.ErrEmptyQuery
	}

	normalized := normalize(text)
	expanded := s.expandAbbreviations(normalized)
	entities := s.extractEntities(expanded)
	intent := s.classifyIntent(expanded, r)
	confidence := scoreConfidence(entities, intent)
	enhanced := s.enhance(expanded, entities)
	suggestions := s.suggestFollowUps(expanded, r)

	return query.Processed{
		OriginalQuery:  text,
		ProcessedQuery: enhanced,
		Entities:       entities,
		Intent:         intent,
		Confidence:     confidence,
		Suggestions:    suggestions,
	}, nil
}

// scoreConfidence estimates how well the query was understood.
// The intent bonus applies to any intent other than search_patients,
// regardless of role; clinicians therefore rarely receive it for their
// default intent while patients usually do not receive it for theirs.
func scoreConfidence(entities query.Entities, intent query.Intent) float64 {
	total := entities.Total()

	confidence := baseConfidence

	entityBonus := entityWeight * float64(total)
	if entityBonus > maxEntityBonus {
		entityBonus = maxEntityBonus
	}
	confidence += entityBonus

	if intent.Primary != query.IntentSearchPatients {
		confidence += intentBonus
	}

	if total == 0 {
		confidence -= noEntityPenalty
	}

	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return confidence
}
