package queryproc

import (
	"strings"
	"testing"

	"github.com/mediquery/mediquery/internal/taxonomy"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Diabetes Mellitus", "diabetes mellitus"},
		{"strips punctuation", "what is HbA1c?", "what is hba1c"},
		{"keeps hyphen and dot", "x-ray E11.9", "x-ray e11.9"},
		{"collapses whitespace", "  chest \t pain \n now ", "chest pain now"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(tt.in); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandAbbreviations(t *testing.T) {
	svc := New(taxonomy.Default())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dm and htn", "patients with dm and htn", "patients with diabetes mellitus and hypertension"},
		{"hba1c", "hba1c results", "hemoglobin a1c results"},
		{"whole word only", "dmx and adm", "dmx and adm"},
		{"every occurrence", "dm history dm", "diabetes mellitus history diabetes mellitus"},
		{"bp", "high bp", "high blood pressure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.expandAbbreviations(tt.in); got != tt.want {
				t.Errorf("expandAbbreviations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpansionRunsOnNormalizedText(t *testing.T) {
	svc := New(taxonomy.Default())

	// Uppercase input only expands because normalization runs first.
	got, err := svc.Process("Patients with DM", "clinician")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "diabetes mellitus"; !strings.Contains(got.ProcessedQuery, want) {
		t.Errorf("processed query %q does not contain %q", got.ProcessedQuery, want)
	}
}
