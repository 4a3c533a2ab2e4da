package model

import (
	"time"

	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ApplicantSnapshot – write-once compliance record taken at submission.
// It preserves what was known about the applicant when they applied,
// independent of later corrections to the live profile.
// ---------------------------------------------------------------------------

// IndividualSnapshot is the frozen identity of a natural-person applicant.
type IndividualSnapshot struct {
	FullName      string `json:"full_name"`
	GovernmentID  string `json:"government_id"`
	TaxID         string `json:"tax_id,omitempty"`
	BirthDate     string `json:"birth_date"`
	Nationality   string `json:"nationality"`
	Address       string `json:"address"`
	Employer      string `json:"employer,omitempty"`
	Position      string `json:"position,omitempty"`
	MonthlyIncome string `json:"monthly_income,omitempty"`
}

// CompanySnapshot is the frozen identity of a company applicant.
type CompanySnapshot struct {
	LegalName           string `json:"legal_name"`
	TaxID               string `json:"tax_id"`
	FiscalRegime        string `json:"fiscal_regime"`
	LegalRepresentative string `json:"legal_representative"`
	Address             string `json:"address,omitempty"`
}

// ApplicantSnapshot is a tagged union: exactly one of Individual or Company
// is set, matching the application's applicant reference.
type ApplicantSnapshot struct {
	TakenAt    time.Time           `json:"taken_at"`
	Individual *IndividualSnapshot `json:"individual,omitempty"`
	Company    *CompanySnapshot    `json:"company,omitempty"`
}

// NewIndividualSnapshot builds a snapshot for a natural-person applicant.
func NewIndividualSnapshot(data IndividualSnapshot, takenAt time.Time) (ApplicantSnapshot, error) {
	if data.FullName == "" {
		return ApplicantSnapshot{}, valueobject.NewValidationError("snapshot.fullName", "is required")
	}
	if data.GovernmentID == "" {
		return ApplicantSnapshot{}, valueobject.NewValidationError("snapshot.governmentID", "is required")
	}
	return ApplicantSnapshot{TakenAt: takenAt, Individual: &data}, nil
}

// NewCompanySnapshot builds a snapshot for a company applicant.
func NewCompanySnapshot(data CompanySnapshot, takenAt time.Time) (ApplicantSnapshot, error) {
	if data.LegalName == "" {
		return ApplicantSnapshot{}, valueobject.NewValidationError("snapshot.legalName", "is required")
	}
	if data.TaxID == "" {
		return ApplicantSnapshot{}, valueobject.NewValidationError("snapshot.taxID", "is required")
	}
	return ApplicantSnapshot{TakenAt: takenAt, Company: &data}, nil
}

// IsZero reports whether no snapshot has been taken.
func (s ApplicantSnapshot) IsZero() bool {
	return s.Individual == nil && s.Company == nil
}
