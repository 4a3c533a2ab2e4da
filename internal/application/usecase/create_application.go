package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// DefaultDraftTTL is how long a draft may sit before it can no longer be
// submitted. Expiry is evaluated lazily at submission, not by a sweeper.
const DefaultDraftTTL = 30 * 24 * time.Hour

// CreateApplicationUseCase opens a new draft application against a product.
type CreateApplicationUseCase struct {
	appRepo     port.ApplicationRepository
	productRepo port.ProductRepository
	publisher   port.EventPublisher
	clock       port.Clock
	draftTTL    time.Duration
}

// NewCreateApplicationUseCase wires dependencies.
func NewCreateApplicationUseCase(
	appRepo port.ApplicationRepository,
	productRepo port.ProductRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *CreateApplicationUseCase {
	return &CreateApplicationUseCase{
		appRepo:     appRepo,
		productRepo: productRepo,
		publisher:   publisher,
		clock:       clock,
		draftTTL:    DefaultDraftTTL,
	}
}

// Execute validates the request against the product, prices the loan and
// persists the new draft.
func (uc *CreateApplicationUseCase) Execute(
	ctx context.Context,
	req dto.CreateApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	// 1. Resolve the product; its limits and rates drive validation.
	product, err := uc.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find product: %w", err)
	}

	frequency, err := valueobject.NewPaymentFrequency(req.PaymentFrequency)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	// 2. Create the draft aggregate; pricing happens inside.
	app, err := model.NewApplication(
		req.TenantID, req.PersonRef, req.CompanyRef, product,
		req.RequestedAmount, req.TermMonths, frequency, req.Purpose,
		uc.draftTTL, now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 3. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
