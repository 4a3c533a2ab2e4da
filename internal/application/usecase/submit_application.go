package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/service"
)

// SubmitApplicationUseCase runs the completeness checks, freezes the
// applicant snapshot and moves a draft into SUBMITTED.
type SubmitApplicationUseCase struct {
	appRepo     port.ApplicationRepository
	productRepo port.ProductRepository
	publisher   port.EventPublisher
	directory   port.ApplicantDirectory
	documents   port.DocumentService
	references  port.ReferenceService
	validator   *service.SubmissionValidator
	snapshots   *service.SnapshotBuilder
	risk        *service.RiskAssessor
	clock       port.Clock
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	appRepo port.ApplicationRepository,
	productRepo port.ProductRepository,
	publisher port.EventPublisher,
	directory port.ApplicantDirectory,
	documents port.DocumentService,
	references port.ReferenceService,
	validator *service.SubmissionValidator,
	snapshots *service.SnapshotBuilder,
	risk *service.RiskAssessor,
	clock port.Clock,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		appRepo:     appRepo,
		productRepo: productRepo,
		publisher:   publisher,
		directory:   directory,
		documents:   documents,
		references:  references,
		validator:   validator,
		snapshots:   snapshots,
		risk:        risk,
		clock:       clock,
	}
}

// Execute submits the draft. The snapshot, checklist, risk level and status
// change are persisted in one save so a failure leaves the draft untouched.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	// 1. Load the aggregate and its product.
	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	product, err := uc.productRepo.FindByID(ctx, app.ProductID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find product: %w", err)
	}

	// 2. Gather completeness signals from the collaborators.
	profile, err := uc.directory.FetchProfile(ctx, app.TenantID(), app.PersonRef(), app.CompanyRef())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("fetch applicant profile: %w", err)
	}
	docTypes, err := uc.documents.UploadedDocumentTypes(ctx, app.TenantID(), app.ID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("fetch uploaded documents: %w", err)
	}
	accepted, err := uc.references.AcceptedReferenceCount(ctx, app.TenantID(), app.ID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("fetch accepted references: %w", err)
	}

	signals := service.CompletenessSignals{
		IdentityPayloadPresent: profile.Individual != nil || profile.Company != nil,
		UploadedDocumentTypes:  docTypes,
		AcceptedReferences:     accepted,
	}

	// 3. Completeness gate: every missing piece is reported at once.
	if err := uc.validator.Validate(app, product, signals); err != nil {
		return dto.ApplicationResponse{}, err
	}
	checklist := uc.validator.Checklist(app, product, signals)

	// 4. Freeze the applicant snapshot.
	snapshot, err := uc.snapshots.Build(app, profile, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("build applicant snapshot: %w", err)
	}

	// 5. Assess risk from debt-to-income.
	assessment := uc.risk.Evaluate(app, profile.MonthlyIncome)

	// 6. Submit; the aggregate enforces draft expiry and the write-once
	// snapshot rule.
	app, err = app.Submit(snapshot, checklist, assessment.Level, assessment.DTI, req.SubmittedBy, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("submit application: %w", err)
	}

	// 7. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 8. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
