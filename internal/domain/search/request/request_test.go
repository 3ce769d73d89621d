package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/mediquery/mediquery/internal/domain"
	"github.com/mediquery/mediquery/internal/domain/role"
)

func TestNewDefaults(t *testing.T) {
	req, err := New("diabetes", role.Clinician, Filters{}, nil, 0, 0, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if req.SearchType() != Hybrid {
		t.Errorf("search type = %q, want hybrid", req.SearchType())
	}
	if req.Size() != DefaultSize {
		t.Errorf("size = %d, want %d", req.Size(), DefaultSize)
	}
	if req.From() != 0 {
		t.Errorf("from = %d, want 0", req.From())
	}
}

func TestNewClamps(t *testing.T) {
	req, err := New("diabetes", role.Patient, Filters{}, nil, 500, -3, Keyword)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if req.Size() != MaxSize {
		t.Errorf("size = %d, want clamped to %d", req.Size(), MaxSize)
	}
	if req.From() != 0 {
		t.Errorf("from = %d, want clamped to 0", req.From())
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		role       role.Role
		searchType SearchType
		wantErr    error
	}{
		{"empty query", "", role.Clinician, Hybrid, domain.ErrEmptyQuery},
		{"bad role", "diabetes", role.Role("admin"), Hybrid, domain.ErrInvalidRole},
		{"bad search type", "diabetes", role.Patient, SearchType("fuzzy"), domain.ErrInvalidSearchType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.query, tt.role, Filters{}, nil, 10, 0, tt.searchType)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewQueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength+1), role.Clinician, Filters{}, nil, 10, 0, Hybrid)
	if err == nil {
		t.Fatal("New accepted an oversized query")
	}
}

func TestFiltersIsZero(t *testing.T) {
	if !(Filters{}).IsZero() {
		t.Error("empty Filters reported non-zero")
	}
	set := []Filters{
		{DateFrom: "2024-01-01"},
		{Types: []string{"lab-result"}},
		{AgeMin: 40},
		{Gender: "female"},
		{Departments: []string{"cardiology"}},
	}
	for _, f := range set {
		if f.IsZero() {
			t.Errorf("%+v reported zero", f)
		}
	}
}
