package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/event"
	"github.com/crediflow/origination/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves applications. Every method is
// scoped to a tenant; tenancy is enforced here, at the data-access boundary,
// not by convention at the call sites.
//
// Save writes the aggregate, appends its pending status-history entries and
// bumps the version in one transaction, using an optimistic version check.
// On a stale version it returns valueobject.ErrConcurrentModification and
// the caller must re-read and retry.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.Application) error
	FindByID(ctx context.Context, tenantID, id string) (model.Application, error)
	FindByApplicantRef(ctx context.Context, tenantID, applicantRef string) ([]model.Application, error)
	History(ctx context.Context, tenantID, applicationID string) ([]model.StatusHistoryEntry, error)
}

// ProductRepository retrieves loan product configuration. Products are
// created by external admin tooling; this service only reads them.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External collaborator ports
// ---------------------------------------------------------------------------

// ApplicantProfile is the directory's view of an applicant. Exactly one of
// Individual or Company is set.
type ApplicantProfile struct {
	Individual    *model.IndividualSnapshot
	Company       *model.CompanySnapshot
	MonthlyIncome decimal.Decimal
}

// ApplicantDirectory fetches applicant profile data from the identity
// collaborator. Identity storage and verification are external; this core
// only consumes the result.
type ApplicantDirectory interface {
	FetchProfile(ctx context.Context, tenantID, personRef, companyRef string) (ApplicantProfile, error)
}

// DocumentService reports which document types the applicant has uploaded.
type DocumentService interface {
	UploadedDocumentTypes(ctx context.Context, tenantID, applicationID string) ([]string, error)
}

// ReferenceService reports how many supporting references have been accepted.
type ReferenceService interface {
	AcceptedReferenceCount(ctx context.Context, tenantID, applicationID string) (int, error)
}

// ---------------------------------------------------------------------------
// Clock
// ---------------------------------------------------------------------------

// Clock supplies the current time. Injected so draft expiry, offer expiry,
// snapshots and history timestamps are deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
