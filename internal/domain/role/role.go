// Package role defines the caller roles that drive ranking policy,
// intent defaults, and metadata shaping.
package role

// Role identifies the class of caller issuing a query.
type Role string

const (
	// Clinician callers see internal metadata and clinically weighted ranking.
	Clinician Role = "clinician"
	// Patient callers get simplified results and patient-friendly ranking.
	Patient Role = "patient"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == Clinician || r == Patient
}

// String returns the wire representation.
func (r Role) String() string { return string(r) }
