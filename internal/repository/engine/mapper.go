package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/result"
	"github.com/mediquery/mediquery/internal/transport/elastic"
)

const summaryMaxLen = 200

// classifyHit derives the result type from field presence. Rules run in a
// fixed order and the first match wins, so a document carrying both note and
// lab fields classifies by the earlier rule.
func classifyHit(src map[string]any) result.Type {
	switch {
	case (hasField(src, "patient_id") || hasField(src, "subject_id")) && hasField(src, "conditions"):
		return result.TypePatient
	case hasField(src, "note_id") && (hasField(src, "text") || hasField(src, "content")):
		return result.TypeClinicalNote
	case hasField(src, "label") || hasField(src, "test_name"):
		return result.TypeLabResult
	case hasField(src, "drug") || hasField(src, "generic_name"):
		return result.TypeMedication
	case hasField(src, "title") && hasField(src, "abstract"):
		return result.TypeResearch
	default:
		return result.TypeRecord
	}
}

// mapHit converts one raw engine hit into a typed, role-shaped result.
func mapHit(hit elastic.Hit, r role.Role) result.Result {
	src := hit.Source
	t := classifyHit(src)

	return result.Result{
		ID:             hit.ID,
		Title:          buildTitle(t, src),
		Summary:        buildSummary(t, src),
		RelevanceScore: hit.Score,
		Source:         str(src, "source"),
		Type:           t,
		Highlights:     flattenHighlights(hit.Highlight),
		Metadata:       shapeMetadata(src, r),
		Timestamp:      hitTimestamp(src),
	}
}

func buildTitle(t result.Type, src map[string]any) string {
	switch t {
	case result.TypePatient:
		id := firstStr(src, "patient_id", "subject_id", "id")
		if n := sliceLen(src, "conditions"); n > 0 {
			return fmt.Sprintf("Patient %s (%d conditions)", id, n)
		}
		return fmt.Sprintf("Patient %s", id)
	case result.TypeClinicalNote:
		if cat := str(src, "category"); cat != "" {
			return fmt.Sprintf("%s note %s", cat, firstStr(src, "note_id", "id"))
		}
		return fmt.Sprintf("Clinical note %s", firstStr(src, "note_id", "id"))
	case result.TypeLabResult:
		name := firstStr(src, "label", "test_name")
		value := strings.TrimSpace(str(src, "value") + " " + str(src, "unit"))
		if value != "" {
			return fmt.Sprintf("%s: %s", name, value)
		}
		return name
	case result.TypeMedication:
		name := firstStr(src, "drug", "name", "generic_name")
		if dosage := str(src, "dosage"); dosage != "" {
			return fmt.Sprintf("%s %s", name, dosage)
		}
		return name
	case result.TypeResearch:
		return str(src, "title")
	default:
		if title := str(src, "title"); title != "" {
			return title
		}
		return "Medical record"
	}
}

func buildSummary(t result.Type, src map[string]any) string {
	switch t {
	case result.TypePatient:
		gender := nestedStr(src, "demographics", "gender")
		if gender != "" {
			return fmt.Sprintf("%s patient record with documented conditions", gender)
		}
		return "Patient record with documented conditions"
	case result.TypeClinicalNote:
		return truncate(firstStr(src, "text", "content", "summary"), summaryMaxLen)
	case result.TypeLabResult:
		rr := str(src, "reference_range")
		if rr != "" {
			return fmt.Sprintf("Reference range: %s", rr)
		}
		return truncate(str(src, "summary"), summaryMaxLen)
	case result.TypeMedication:
		parts := []string{}
		for _, f := range []string{"frequency", "route", "status"} {
			if v := str(src, f); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
		return truncate(str(src, "summary"), summaryMaxLen)
	case result.TypeResearch:
		return truncate(str(src, "abstract"), summaryMaxLen)
	default:
		return truncate(firstStr(src, "summary", "content", "description"), summaryMaxLen)
	}
}

// shapeMetadata applies the role view: clinicians see operational fields,
// patients get only the category plus a simplified marker.
func shapeMetadata(src map[string]any, r role.Role) map[string]any {
	if r == role.Clinician {
		return map[string]any{
			"patientId":  firstStr(src, "patient_id", "subject_id"),
			"department": str(src, "department"),
			"provider":   firstStr(src, "author", "ordering_provider", "prescribing_provider"),
			"severity":   str(src, "severity"),
			"category":   str(src, "category"),
		}
	}
	return map[string]any{
		"category":   str(src, "category"),
		"simplified": true,
	}
}

func flattenHighlights(highlight map[string][]string) []string {
	var flat []string
	// Stable field order keeps output deterministic.
	for _, field := range []string{"title", "summary", "content"} {
		flat = append(flat, highlight[field]...)
	}
	var rest []string
	for field := range highlight {
		if field == "title" || field == "summary" || field == "content" {
			continue
		}
		rest = append(rest, field)
	}
	sort.Strings(rest)
	for _, field := range rest {
		flat = append(flat, highlight[field]...)
	}
	if len(flat) > result.MaxHighlights {
		flat = flat[:result.MaxHighlights]
	}
	return flat
}

func hitTimestamp(src map[string]any) string {
	return firstStr(src, "timestamp", "chart_time", "chart_date", "publication_date")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

func hasField(src map[string]any, key string) bool {
	v, ok := src[key]
	return ok && v != nil
}

func str(src map[string]any, key string) string {
	if v, ok := src[key].(string); ok {
		return v
	}
	return ""
}

func firstStr(src map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := src[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func nestedStr(src map[string]any, outer, inner string) string {
	if m, ok := src[outer].(map[string]any); ok {
		return str(m, inner)
	}
	return ""
}

func sliceLen(src map[string]any, key string) int {
	if s, ok := src[key].([]any); ok {
		return len(s)
	}
	return 0
}
