package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crediflow/origination/internal/application/usecase"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// OriginationHandler exposes the origination operations over gRPC. It
// implements OriginationServiceServer by delegating to the use cases and
// translating domain errors into gRPC status codes.
type OriginationHandler struct {
	UnimplementedOriginationServiceServer

	create   *usecase.CreateApplicationUseCase
	update   *usecase.UpdateLoanTermsUseCase
	submit   *usecase.SubmitApplicationUseCase
	change   *usecase.ChangeStatusUseCase
	assign   *usecase.AssignApplicationUseCase
	approve  *usecase.ApproveApplicationUseCase
	reject   *usecase.RejectApplicationUseCase
	cancel   *usecase.CancelApplicationUseCase
	send     *usecase.SendCounterOfferUseCase
	respond  *usecase.RespondCounterOfferUseCase
	sync     *usecase.MarkSyncedUseCase
	simulate *usecase.SimulateLoanUseCase
	get      *usecase.GetApplicationUseCase
	list     *usecase.ListApplicationsUseCase
	history  *usecase.GetStatusHistoryUseCase

	logger *slog.Logger
}

// HandlerUseCases bundles the use-case dependencies of OriginationHandler.
type HandlerUseCases struct {
	Create   *usecase.CreateApplicationUseCase
	Update   *usecase.UpdateLoanTermsUseCase
	Submit   *usecase.SubmitApplicationUseCase
	Change   *usecase.ChangeStatusUseCase
	Assign   *usecase.AssignApplicationUseCase
	Approve  *usecase.ApproveApplicationUseCase
	Reject   *usecase.RejectApplicationUseCase
	Cancel   *usecase.CancelApplicationUseCase
	Send     *usecase.SendCounterOfferUseCase
	Respond  *usecase.RespondCounterOfferUseCase
	Sync     *usecase.MarkSyncedUseCase
	Simulate *usecase.SimulateLoanUseCase
	Get      *usecase.GetApplicationUseCase
	List     *usecase.ListApplicationsUseCase
	History  *usecase.GetStatusHistoryUseCase
}

// NewOriginationHandler creates a handler with all use-case dependencies.
func NewOriginationHandler(ucs HandlerUseCases, logger *slog.Logger) *OriginationHandler {
	return &OriginationHandler{
		create:   ucs.Create,
		update:   ucs.Update,
		submit:   ucs.Submit,
		change:   ucs.Change,
		assign:   ucs.Assign,
		approve:  ucs.Approve,
		reject:   ucs.Reject,
		cancel:   ucs.Cancel,
		send:     ucs.Send,
		respond:  ucs.Respond,
		sync:     ucs.Sync,
		simulate: ucs.Simulate,
		get:      ucs.Get,
		list:     ucs.List,
		history:  ucs.History,
		logger:   logger,
	}
}

func (h *OriginationHandler) CreateApplication(ctx context.Context, req *CreateApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.create.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "CreateApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) UpdateLoanTerms(ctx context.Context, req *UpdateLoanTermsRequest) (*ApplicationResponse, error) {
	resp, err := h.update.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "UpdateLoanTerms", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.submit.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "SubmitApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) ChangeStatus(ctx context.Context, req *ChangeStatusRequest) (*ApplicationResponse, error) {
	resp, err := h.change.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "ChangeStatus", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) AssignApplication(ctx context.Context, req *AssignApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.assign.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "AssignApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) ApproveApplication(ctx context.Context, req *ApproveApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.approve.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "ApproveApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) RejectApplication(ctx context.Context, req *RejectApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.reject.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "RejectApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) CancelApplication(ctx context.Context, req *CancelApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.cancel.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "CancelApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) SendCounterOffer(ctx context.Context, req *SendCounterOfferRequest) (*ApplicationResponse, error) {
	resp, err := h.send.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "SendCounterOffer", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) RespondCounterOffer(ctx context.Context, req *RespondCounterOfferRequest) (*ApplicationResponse, error) {
	resp, err := h.respond.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "RespondCounterOffer", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) MarkSynced(ctx context.Context, req *MarkSyncedRequest) (*ApplicationResponse, error) {
	resp, err := h.sync.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "MarkSynced", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) SimulateLoan(ctx context.Context, req *SimulateLoanRequest) (*SimulationResponse, error) {
	resp, err := h.simulate.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "SimulateLoan", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*ApplicationResponse, error) {
	resp, err := h.get.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "GetApplication", err)
	}
	return &resp, nil
}

func (h *OriginationHandler) ListApplications(ctx context.Context, req *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	apps, err := h.list.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "ListApplications", err)
	}
	return &ListApplicationsResponse{Applications: apps}, nil
}

func (h *OriginationHandler) GetStatusHistory(ctx context.Context, req *GetStatusHistoryRequest) (*StatusHistoryResponse, error) {
	entries, err := h.history.Execute(ctx, *req)
	if err != nil {
		return nil, h.statusError(ctx, "GetStatusHistory", err)
	}
	return &StatusHistoryResponse{Entries: entries}, nil
}

// statusError maps domain errors onto gRPC status codes. Unrecognised errors
// surface as Internal without leaking details.
func (h *OriginationHandler) statusError(ctx context.Context, method string, err error) error {
	var (
		validationErr *valueobject.ValidationError
		transitionErr *valueobject.IllegalTransitionError
		incompleteErr *valueobject.IncompleteApplicationError
	)
	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &incompleteErr):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &transitionErr):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrApplicationNotFound),
		errors.Is(err, valueobject.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrNoActiveCounterOffer),
		errors.Is(err, valueobject.ErrSnapshotAlreadyTaken):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrConcurrentModification):
		return status.Error(codes.Aborted, err.Error())
	default:
		h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
