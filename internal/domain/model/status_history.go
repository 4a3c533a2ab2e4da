package model

import (
	"time"

	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// StatusHistoryEntry – append-only lifecycle ledger.
// Entries are never updated or deleted; total order by CreatedAt reconstructs
// the full lifecycle of an application.
// ---------------------------------------------------------------------------

// StatusHistoryEntry records one status change. An empty ChangedBy with a
// SYSTEM actor type means the transition was system-initiated.
type StatusHistoryEntry struct {
	ApplicationID string
	FromStatus    valueobject.ApplicationStatus
	ToStatus      valueobject.ApplicationStatus
	ChangedBy     string
	ChangedByType valueobject.ActorType
	Notes         string
	CreatedAt     time.Time
}
