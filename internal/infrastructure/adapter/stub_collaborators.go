package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/port"
)

// Stub collaborators for development and test. They return deterministic
// data derived from hashes of their inputs so scenarios are repeatable
// without the identity, document or reference services running.

// StubApplicantDirectory implements port.ApplicantDirectory.
type StubApplicantDirectory struct{}

// NewStubApplicantDirectory creates a new stub adapter.
func NewStubApplicantDirectory() *StubApplicantDirectory {
	return &StubApplicantDirectory{}
}

// FetchProfile returns a synthetic profile for the referenced applicant. The
// monthly income is derived from a hash of the reference, in [15000, 95000).
func (d *StubApplicantDirectory) FetchProfile(_ context.Context, tenantID, personRef, companyRef string) (port.ApplicantProfile, error) {
	if tenantID == "" {
		return port.ApplicantProfile{}, fmt.Errorf("tenant ID is required")
	}
	switch {
	case personRef != "":
		return port.ApplicantProfile{
			Individual: &model.IndividualSnapshot{
				FullName:     fmt.Sprintf("Test Person %s", personRef),
				GovernmentID: fmt.Sprintf("GOV-%s", personRef),
				BirthDate:    "1990-01-15",
				Nationality:  "MX",
				Address:      "123 Test Street",
				Employer:     "Test Employer SA",
				Position:     "Analyst",
			},
			MonthlyIncome: stubIncome(personRef),
		}, nil
	case companyRef != "":
		return port.ApplicantProfile{
			Company: &model.CompanySnapshot{
				LegalName:           fmt.Sprintf("Test Company %s", companyRef),
				TaxID:               fmt.Sprintf("TAX-%s", companyRef),
				FiscalRegime:        "GENERAL",
				LegalRepresentative: "Legal Rep",
				Address:             "456 Commerce Ave",
			},
			MonthlyIncome: stubIncome(companyRef),
		}, nil
	default:
		return port.ApplicantProfile{}, fmt.Errorf("an applicant reference is required")
	}
}

func stubIncome(ref string) decimal.Decimal {
	h := sha256.Sum256([]byte(ref))
	num := binary.BigEndian.Uint32(h[:4])
	return decimal.NewFromInt(15000 + int64(num%80000))
}

// StubDocumentService implements port.DocumentService. Every common document
// type is reported as uploaded so stub submissions pass completeness checks.
type StubDocumentService struct{}

// NewStubDocumentService creates a new stub adapter.
func NewStubDocumentService() *StubDocumentService {
	return &StubDocumentService{}
}

// UploadedDocumentTypes returns the standard document set.
func (s *StubDocumentService) UploadedDocumentTypes(_ context.Context, _, applicationID string) ([]string, error) {
	if applicationID == "" {
		return nil, fmt.Errorf("application ID is required")
	}
	return []string{"ID", "PROOF_OF_ADDRESS", "PROOF_OF_INCOME", "TAX_RETURN"}, nil
}

// StubReferenceService implements port.ReferenceService.
type StubReferenceService struct{}

// NewStubReferenceService creates a new stub adapter.
func NewStubReferenceService() *StubReferenceService {
	return &StubReferenceService{}
}

// AcceptedReferenceCount returns a deterministic count in [2, 5] so stub
// submissions always clear the minimum.
func (s *StubReferenceService) AcceptedReferenceCount(_ context.Context, _, applicationID string) (int, error) {
	if applicationID == "" {
		return 0, fmt.Errorf("application ID is required")
	}
	h := sha256.Sum256([]byte(applicationID))
	num := binary.BigEndian.Uint32(h[:4])
	return 2 + int(num%4), nil
}
