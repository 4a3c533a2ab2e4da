package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// UpdateLoanTermsUseCase changes the requested terms of an editable draft
// and reprices it.
type UpdateLoanTermsUseCase struct {
	appRepo     port.ApplicationRepository
	productRepo port.ProductRepository
	clock       port.Clock
}

// NewUpdateLoanTermsUseCase wires dependencies.
func NewUpdateLoanTermsUseCase(
	appRepo port.ApplicationRepository,
	productRepo port.ProductRepository,
	clock port.Clock,
) *UpdateLoanTermsUseCase {
	return &UpdateLoanTermsUseCase{
		appRepo:     appRepo,
		productRepo: productRepo,
		clock:       clock,
	}
}

// Execute applies the requested term changes. Fields left nil are unchanged.
func (uc *UpdateLoanTermsUseCase) Execute(
	ctx context.Context,
	req dto.UpdateLoanTermsRequest,
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

	var frequency *valueobject.PaymentFrequency
	if req.PaymentFrequency != nil {
		f, err := valueobject.NewPaymentFrequency(*req.PaymentFrequency)
		if err != nil {
			return dto.ApplicationResponse{}, err
		}
		frequency = &f
	}

	// 2. Apply the change; the aggregate revalidates and reprices.
	app, err = app.UpdateLoanTerms(product, req.RequestedAmount, req.TermMonths, frequency, req.Purpose, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("update loan terms: %w", err)
	}

	// 3. Persist with the optimistic version check.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	return toApplicationResponse(app), nil
}
