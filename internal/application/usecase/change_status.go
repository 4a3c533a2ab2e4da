package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ChangeStatusUseCase moves an application through the review pipeline
// (IN_REVIEW, DOCS_PENDING, CORRECTIONS_PENDING and the rest). Terminal
// decisions have their own use cases.
type ChangeStatusUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewChangeStatusUseCase wires dependencies.
func NewChangeStatusUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Execute applies the transition; the aggregate's transition table decides
// whether this actor may make this move.
func (uc *ChangeStatusUseCase) Execute(
	ctx context.Context,
	req dto.ChangeStatusRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	newStatus, err := valueobject.NewApplicationStatus(req.NewStatus)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	actorType, err := valueobject.NewActorType(req.ChangedByType)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	app, err = app.ChangeStatus(newStatus, req.ChangedBy, actorType, req.Notes, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("change status: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
