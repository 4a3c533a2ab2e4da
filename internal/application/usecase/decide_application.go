package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ApproveApplicationUseCase records a final approval. The approved terms may
// differ from the requested ones and the payment is repriced against them.
type ApproveApplicationUseCase struct {
	appRepo     port.ApplicationRepository
	productRepo port.ProductRepository
	publisher   port.EventPublisher
	clock       port.Clock
}

// NewApproveApplicationUseCase wires dependencies.
func NewApproveApplicationUseCase(
	appRepo port.ApplicationRepository,
	productRepo port.ProductRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *ApproveApplicationUseCase {
	return &ApproveApplicationUseCase{
		appRepo:     appRepo,
		productRepo: productRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute approves the application. Override fields left nil default to the
// requested terms and the product rate copied at creation.
func (uc *ApproveApplicationUseCase) Execute(
	ctx context.Context,
	req dto.ApproveApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	amount := app.RequestedAmount()
	if req.ApprovedAmount != nil {
		amount = *req.ApprovedAmount
	}
	termMonths := app.RequestedTermMonths()
	if req.ApprovedTerm != nil {
		termMonths = *req.ApprovedTerm
	}
	rate := app.InterestRate()
	if req.ApprovedRate != nil {
		rate = *req.ApprovedRate
	}

	app, err = app.Approve(amount, termMonths, rate, req.ApprovedBy, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("approve application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}

// RejectApplicationUseCase records a final rejection with a mandatory reason.
type RejectApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewRejectApplicationUseCase wires dependencies.
func NewRejectApplicationUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *RejectApplicationUseCase {
	return &RejectApplicationUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Execute rejects the application.
func (uc *RejectApplicationUseCase) Execute(
	ctx context.Context,
	req dto.RejectApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	app, err = app.Reject(req.Reason, req.RejectedBy, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("reject application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}

// CancelApplicationUseCase cancels an application on behalf of the applicant
// or staff.
type CancelApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewCancelApplicationUseCase wires dependencies.
func NewCancelApplicationUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *CancelApplicationUseCase {
	return &CancelApplicationUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Execute cancels the application. The transition table limits which
// statuses each actor type may cancel from.
func (uc *CancelApplicationUseCase) Execute(
	ctx context.Context,
	req dto.CancelApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	actorType, err := valueobject.NewActorType(req.ActorType)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	app, err = app.Cancel(req.Reason, req.CancelledBy, actorType, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("cancel application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
