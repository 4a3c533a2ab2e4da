package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/application/usecase"
	"github.com/crediflow/origination/internal/domain/valueobject"
	pkgkafka "github.com/crediflow/origination/pkg/kafka"
)

// syncConfirmation is the payload the core banking system publishes once it
// has created the loan record for an approved application.
type syncConfirmation struct {
	TenantID       string `json:"tenant_id"`
	ApplicationID  string `json:"application_id"`
	ExternalID     string `json:"external_id"`
	ExternalSystem string `json:"external_system"`
}

// SyncConsumer listens for sync confirmations and moves the matching
// applications from APPROVED to SYNCED. Confirmations for unknown or
// already-synced applications are logged and committed, not retried.
type SyncConsumer struct {
	markSynced *usecase.MarkSyncedUseCase
	logger     *slog.Logger
}

// NewSyncConsumer wires dependencies.
func NewSyncConsumer(markSynced *usecase.MarkSyncedUseCase, logger *slog.Logger) *SyncConsumer {
	return &SyncConsumer{markSynced: markSynced, logger: logger}
}

// Handle processes one confirmation message.
func (c *SyncConsumer) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var confirmation syncConfirmation
	if err := json.Unmarshal(msg.Value, &confirmation); err != nil {
		c.logger.ErrorContext(ctx, "malformed sync confirmation", "error", err)
		return nil // commit; redelivery cannot fix a bad payload
	}
	if confirmation.TenantID == "" || confirmation.ApplicationID == "" || confirmation.ExternalID == "" {
		c.logger.ErrorContext(ctx, "incomplete sync confirmation",
			"tenant_id", confirmation.TenantID, "application_id", confirmation.ApplicationID)
		return nil
	}

	_, err := c.markSynced.Execute(ctx, dto.MarkSyncedRequest{
		TenantID:       confirmation.TenantID,
		ApplicationID:  confirmation.ApplicationID,
		ExternalID:     confirmation.ExternalID,
		ExternalSystem: confirmation.ExternalSystem,
	})
	switch {
	case err == nil:
		c.logger.InfoContext(ctx, "application synced",
			"application_id", confirmation.ApplicationID, "external_id", confirmation.ExternalID)
		return nil
	case errors.Is(err, valueobject.ErrApplicationNotFound):
		c.logger.WarnContext(ctx, "sync confirmation for unknown application",
			"application_id", confirmation.ApplicationID)
		return nil
	case isIllegalTransition(err):
		// Duplicate delivery after the application already reached SYNCED.
		c.logger.WarnContext(ctx, "sync confirmation ignored",
			"application_id", confirmation.ApplicationID, "error", err)
		return nil
	default:
		return fmt.Errorf("mark application %s synced: %w", confirmation.ApplicationID, err)
	}
}

func isIllegalTransition(err error) bool {
	var transitionErr *valueobject.IllegalTransitionError
	return errors.As(err, &transitionErr)
}
