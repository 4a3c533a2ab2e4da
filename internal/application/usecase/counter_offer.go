package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/service"
)

// SendCounterOfferUseCase proposes alternative terms to the applicant while
// the application is under review.
type SendCounterOfferUseCase struct {
	appRepo     port.ApplicationRepository
	productRepo port.ProductRepository
	negotiator  *service.CounterOfferNegotiator
	publisher   port.EventPublisher
	clock       port.Clock
}

// NewSendCounterOfferUseCase wires dependencies.
func NewSendCounterOfferUseCase(
	appRepo port.ApplicationRepository,
	productRepo port.ProductRepository,
	negotiator *service.CounterOfferNegotiator,
	publisher port.EventPublisher,
	clock port.Clock,
) *SendCounterOfferUseCase {
	return &SendCounterOfferUseCase{
		appRepo:     appRepo,
		productRepo: productRepo,
		negotiator:  negotiator,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute builds and attaches the offer. The offered payment is priced at
// the proposed terms so the applicant sees what they would be accepting.
func (uc *SendCounterOfferUseCase) Execute(
	ctx context.Context,
	req dto.SendCounterOfferRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	product, err := uc.productRepo.FindByID(ctx, app.ProductID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find product: %w", err)
	}

	offer, err := uc.negotiator.BuildOffer(
		product, req.ProposedAmount, req.ProposedTermMonths, req.ProposedRate,
		req.Reason, req.OfferedBy, req.ExpiresAt, now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("build counter offer: %w", err)
	}

	app, err = app.SendCounterOffer(offer, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("send counter offer: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}

// RespondCounterOfferUseCase records the applicant's answer to the active
// counter offer.
type RespondCounterOfferUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewRespondCounterOfferUseCase wires dependencies.
func NewRespondCounterOfferUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *RespondCounterOfferUseCase {
	return &RespondCounterOfferUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Execute accepts or declines the offer. Acceptance rewrites the requested
// terms and reprices; either answer clears the offer and the review
// continues from IN_REVIEW.
func (uc *RespondCounterOfferUseCase) Execute(
	ctx context.Context,
	req dto.RespondCounterOfferRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	app, err = app.RespondToCounterOffer(req.Accepted, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("respond to counter offer: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
