package queryproc

import (
	"reflect"
	"testing"

	"github.com/mediquery/mediquery/internal/taxonomy"
)

func TestExtractEntitiesCategories(t *testing.T) {
	s := New(taxonomy.Default())

	e := s.extractEntities("elderly male patients with diabetes mellitus and hypertension on metformin after cardiac catheterization with chest pain")

	if !reflect.DeepEqual(e.Conditions, []string{"diabetes", "diabetes mellitus", "hypertension"}) {
		t.Errorf("conditions = %v", e.Conditions)
	}
	if !reflect.DeepEqual(e.Medications, []string{"metformin"}) {
		t.Errorf("medications = %v", e.Medications)
	}
	if !reflect.DeepEqual(e.Procedures, []string{"cardiac catheterization"}) {
		t.Errorf("procedures = %v", e.Procedures)
	}
	if !reflect.DeepEqual(e.Symptoms, []string{"chest pain"}) {
		t.Errorf("symptoms = %v", e.Symptoms)
	}
}

func TestExtractEntitiesTableOrder(t *testing.T) {
	s := New(taxonomy.Default())

	// Input order is hypertension before diabetes; table order wins.
	e := s.extractEntities("hypertension and diabetes")
	if !reflect.DeepEqual(e.Conditions, []string{"diabetes", "hypertension"}) {
		t.Errorf("conditions = %v, want table order", e.Conditions)
	}
}

func TestExtractEntitiesWholeWordOnly(t *testing.T) {
	s := New(taxonomy.Default())

	e := s.extractEntities("prediabetesology report")
	if len(e.Conditions) != 0 {
		t.Errorf("conditions = %v, want none for embedded substrings", e.Conditions)
	}
}

func TestExtractDemographics(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"male patients 65 years with diabetes", []string{"65 years", "male"}},
		{"women 40 to 60 years", []string{"40 to 60 years", "female"}},
		// The range pattern takes precedence over a bare age.
		{"patients 30-50 years old", []string{"30-50 years", "elderly"}},
		{"elderly female patients", []string{"female", "elderly"}},
		{"pediatric cases", []string{"young"}},
		{"diabetes screening", nil},
	}
	for _, tt := range tests {
		got := extractDemographics(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("extractDemographics(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractTemporal(t *testing.T) {
	got := extractTemporal("recent labs from the last 6 months and this year")
	want := []string{"last 6 months", "recent", "this year"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractTemporal = %v, want %v", got, want)
	}
}

func TestExtractCodes(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"patients coded e11.9 last visit", []string{"e11.9"}},
		{"billing code 99213 and 99213 again", []string{"99213"}},
		{"i10 and 99214", []string{"i10", "99214"}},
		{"no codes here", nil},
	}
	for _, tt := range tests {
		got := extractCodes(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("extractCodes(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractEntitiesAnatomicalAndLab(t *testing.T) {
	s := New(taxonomy.Default())

	e := s.extractEntities("hemoglobin a1c and glucose for kidney and heart patients")
	if !reflect.DeepEqual(e.LabTests, []string{"hemoglobin a1c", "glucose", "hemoglobin"}) {
		t.Errorf("lab tests = %v", e.LabTests)
	}
	if !reflect.DeepEqual(e.AnatomicalSites, []string{"heart", "kidney"}) {
		t.Errorf("anatomical sites = %v", e.AnatomicalSites)
	}
}
