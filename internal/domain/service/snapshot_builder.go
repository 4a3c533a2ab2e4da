package service

import (
	"time"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// SnapshotBuilder freezes the applicant's profile into the write-once
// compliance snapshot taken during the SUBMITTED transition. The stored copy
// is never recomputed: it is the record of what was known when they applied.
type SnapshotBuilder struct{}

// NewSnapshotBuilder returns a new builder instance.
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{}
}

// Build produces the snapshot matching the application's applicant type. A
// profile of the wrong kind (company data for a person application or vice
// versa) is rejected.
func (b *SnapshotBuilder) Build(
	app model.Application,
	profile port.ApplicantProfile,
	now time.Time,
) (model.ApplicantSnapshot, error) {
	switch {
	case app.PersonRef() != "":
		if profile.Individual == nil {
			return model.ApplicantSnapshot{}, valueobject.NewValidationError(
				"snapshot", "individual profile data required for person applicant %s", app.PersonRef())
		}
		return model.NewIndividualSnapshot(*profile.Individual, now)
	case app.CompanyRef() != "":
		if profile.Company == nil {
			return model.ApplicantSnapshot{}, valueobject.NewValidationError(
				"snapshot", "company profile data required for company applicant %s", app.CompanyRef())
		}
		return model.NewCompanySnapshot(*profile.Company, now)
	}
	return model.ApplicantSnapshot{}, valueobject.NewValidationError("snapshot", "application has no applicant reference")
}
