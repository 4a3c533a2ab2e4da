package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
)

// MarkSyncedUseCase records that an approved application was exported to the
// core banking system, moving it to its final SYNCED state.
type MarkSyncedUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewMarkSyncedUseCase wires dependencies.
func NewMarkSyncedUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *MarkSyncedUseCase {
	return &MarkSyncedUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Execute marks the application as synced under the external identifier.
func (uc *MarkSyncedUseCase) Execute(
	ctx context.Context,
	req dto.MarkSyncedRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	app, err = app.MarkSynced(req.ExternalID, req.ExternalSystem, req.ChangedBy, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("mark synced: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
