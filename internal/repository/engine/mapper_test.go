package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/result"
	"github.com/mediquery/mediquery/internal/transport/elastic"
)

func TestClassifyHit(t *testing.T) {
	tests := []struct {
		name string
		src  map[string]any
		want result.Type
	}{
		{
			"patient by patient_id",
			map[string]any{"patient_id": "p1", "conditions": []any{}},
			result.TypePatient,
		},
		{
			"patient by subject_id",
			map[string]any{"subject_id": float64(101), "conditions": []any{}},
			result.TypePatient,
		},
		{
			"patient_id without conditions is not a patient",
			map[string]any{"patient_id": "p1"},
			result.TypeRecord,
		},
		{
			"clinical note",
			map[string]any{"note_id": "n1", "text": "progress note"},
			result.TypeClinicalNote,
		},
		{
			"clinical note by content",
			map[string]any{"note_id": "n1", "content": "discharge summary"},
			result.TypeClinicalNote,
		},
		{
			"lab result by label",
			map[string]any{"label": "Glucose"},
			result.TypeLabResult,
		},
		{
			"lab result by test_name",
			map[string]any{"test_name": "Creatinine"},
			result.TypeLabResult,
		},
		{
			"note fields win over lab fields",
			map[string]any{"note_id": "n1", "text": "lab narrative", "label": "Glucose"},
			result.TypeClinicalNote,
		},
		{
			"medication",
			map[string]any{"drug": "Metformin"},
			result.TypeMedication,
		},
		{
			"research",
			map[string]any{"title": "SGLT2 outcomes", "abstract": "We studied..."},
			result.TypeResearch,
		},
		{
			"title alone is a record",
			map[string]any{"title": "Misc document"},
			result.TypeRecord,
		},
		{
			"nil field does not count",
			map[string]any{"patient_id": nil, "conditions": []any{}},
			result.TypeRecord,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyHit(tt.src); got != tt.want {
				t.Errorf("classifyHit = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildTitle(t *testing.T) {
	tests := []struct {
		name string
		typ  result.Type
		src  map[string]any
		want string
	}{
		{
			"patient with conditions",
			result.TypePatient,
			map[string]any{"patient_id": "p1", "conditions": []any{1, 2, 3}},
			"Patient p1 (3 conditions)",
		},
		{
			"patient numeric subject id",
			result.TypePatient,
			map[string]any{"subject_id": float64(101)},
			"Patient 101",
		},
		{
			"categorized note",
			result.TypeClinicalNote,
			map[string]any{"note_id": "n1", "category": "Discharge summary"},
			"Discharge summary note n1",
		},
		{
			"lab with value and unit",
			result.TypeLabResult,
			map[string]any{"label": "Glucose", "value": "182", "unit": "mg/dL"},
			"Glucose: 182 mg/dL",
		},
		{
			"lab without value",
			result.TypeLabResult,
			map[string]any{"test_name": "Creatinine"},
			"Creatinine",
		},
		{
			"medication with dosage",
			result.TypeMedication,
			map[string]any{"drug": "Metformin", "dosage": "500mg"},
			"Metformin 500mg",
		},
		{
			"research",
			result.TypeResearch,
			map[string]any{"title": "SGLT2 outcomes"},
			"SGLT2 outcomes",
		},
		{
			"record fallback",
			result.TypeRecord,
			map[string]any{},
			"Medical record",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildTitle(tt.typ, tt.src); got != tt.want {
				t.Errorf("buildTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSummaryTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := buildSummary(result.TypeClinicalNote, map[string]any{"text": long})
	if len([]rune(got)) != summaryMaxLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("summary length = %d", len(got))
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	s := strings.Repeat("ä", 250)
	got := truncate(s, summaryMaxLen)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncate = %q", got[len(got)-10:])
	}
	for _, r := range got {
		if r != 'ä' && r != '.' {
			t.Fatalf("truncate split a rune: %q", r)
		}
	}
}

func TestShapeMetadata(t *testing.T) {
	src := map[string]any{
		"patient_id": "p1",
		"department": "cardiology",
		"author":     "Dr. Chen",
		"severity":   "moderate",
		"category":   "lab",
	}

	clinician := shapeMetadata(src, role.Clinician)
	want := map[string]any{
		"patientId":  "p1",
		"department": "cardiology",
		"provider":   "Dr. Chen",
		"severity":   "moderate",
		"category":   "lab",
	}
	if !reflect.DeepEqual(clinician, want) {
		t.Errorf("clinician metadata = %v", clinician)
	}

	patient := shapeMetadata(src, role.Patient)
	if !reflect.DeepEqual(patient, map[string]any{"category": "lab", "simplified": true}) {
		t.Errorf("patient metadata = %v", patient)
	}
}

func TestFlattenHighlights(t *testing.T) {
	highlight := map[string][]string{
		"content": {"c1", "c2"},
		"title":   {"t1"},
		"summary": {"s1"},
	}
	got := flattenHighlights(highlight)
	if !reflect.DeepEqual(got, []string{"t1", "s1", "c1", "c2"}) {
		t.Errorf("flattened = %v", got)
	}
}

func TestFlattenHighlightsCap(t *testing.T) {
	highlight := map[string][]string{
		"title":   {"t1", "t2"},
		"summary": {"s1", "s2"},
		"content": {"c1", "c2"},
	}
	got := flattenHighlights(highlight)
	if len(got) != result.MaxHighlights {
		t.Fatalf("len = %d, want %d", len(got), result.MaxHighlights)
	}
	if !reflect.DeepEqual(got, []string{"t1", "t2", "s1", "s2", "c1"}) {
		t.Errorf("flattened = %v", got)
	}
}

func TestFlattenHighlightsExtraFieldsStable(t *testing.T) {
	highlight := map[string][]string{
		"title":      {"t1", "t2"},
		"conditions": {"x1", "x2"},
		"abstract":   {"a1", "a2"},
	}
	want := []string{"t1", "t2", "a1", "a2", "x1"}
	for i := 0; i < 20; i++ {
		got := flattenHighlights(highlight)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("flattened = %v, want %v", got, want)
		}
	}
}

func TestMapHit(t *testing.T) {
	hit := elastic.Hit{
		ID:    "l1",
		Score: 3.2,
		Source: map[string]any{
			"test_name": "Glucose",
			"value":     "182",
			"unit":      "mg/dL",
			"source":    "lab-system",
			"timestamp": "2024-03-01T10:00:00Z",
			"category":  "chemistry",
		},
		Highlight: map[string][]string{"content": {"<em>glucose</em> 182"}},
	}

	got := mapHit(hit, role.Patient)
	if got.Type != result.TypeLabResult {
		t.Errorf("type = %q", got.Type)
	}
	if got.Title != "Glucose: 182 mg/dL" {
		t.Errorf("title = %q", got.Title)
	}
	if got.RelevanceScore != 3.2 || got.Source != "lab-system" {
		t.Errorf("score/source = %v/%q", got.RelevanceScore, got.Source)
	}
	if got.Timestamp != "2024-03-01T10:00:00Z" {
		t.Errorf("timestamp = %q", got.Timestamp)
	}
	if got.Metadata["simplified"] != true {
		t.Errorf("metadata = %v", got.Metadata)
	}
	if !reflect.DeepEqual(got.Highlights, []string{"<em>glucose</em> 182"}) {
		t.Errorf("highlights = %v", got.Highlights)
	}
}
