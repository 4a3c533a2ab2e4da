package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
)

// GetApplicationUseCase retrieves a single application.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute fetches the application by id within the tenant.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.ApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListApplicationsUseCase lists the applications of one applicant.
type ListApplicationsUseCase struct {
	appRepo port.ApplicationRepository
}

// NewListApplicationsUseCase wires dependencies.
func NewListApplicationsUseCase(appRepo port.ApplicationRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{appRepo: appRepo}
}

// Execute lists applications by applicant reference within the tenant.
func (uc *ListApplicationsUseCase) Execute(
	ctx context.Context,
	req dto.ListApplicationsRequest,
) ([]dto.ApplicationResponse, error) {
	apps, err := uc.appRepo.FindByApplicantRef(ctx, req.TenantID, req.ApplicantRef)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	result := make([]dto.ApplicationResponse, len(apps))
	for i, app := range apps {
		result[i] = toApplicationResponse(app)
	}
	return result, nil
}

// GetStatusHistoryUseCase returns the full audit trail of status moves.
type GetStatusHistoryUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetStatusHistoryUseCase wires dependencies.
func NewGetStatusHistoryUseCase(appRepo port.ApplicationRepository) *GetStatusHistoryUseCase {
	return &GetStatusHistoryUseCase{appRepo: appRepo}
}

// Execute fetches the status history ordered oldest first.
func (uc *GetStatusHistoryUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) ([]dto.StatusHistoryEntryResponse, error) {
	// The lookup doubles as the tenancy check.
	if _, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID); err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	entries, err := uc.appRepo.History(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("load status history: %w", err)
	}
	return toHistoryResponse(entries), nil
}
