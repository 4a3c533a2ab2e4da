package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/port"
)

// AssignApplicationUseCase routes an in-flight application to a staff
// reviewer. Assignment never changes the status; moving into IN_REVIEW is a
// separate ChangeStatus call.
type AssignApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewAssignApplicationUseCase wires dependencies.
func NewAssignApplicationUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *AssignApplicationUseCase {
	return &AssignApplicationUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Execute assigns the application to req.AssignTo.
func (uc *AssignApplicationUseCase) Execute(
	ctx context.Context,
	req dto.AssignApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := uc.clock.Now()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	app, err = app.Assign(req.AssignTo, req.AssignedBy, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("assign application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
