package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	statusDraft              = "DRAFT"
	statusSubmitted          = "SUBMITTED"
	statusInReview           = "IN_REVIEW"
	statusDocsPending        = "DOCS_PENDING"
	statusCorrectionsPending = "CORRECTIONS_PENDING"
	statusApproved           = "APPROVED"
	statusRejected           = "REJECTED"
	statusCancelled          = "CANCELLED"
	statusSynced             = "SYNCED"
)

var (
	StatusDraft              = ApplicationStatus{value: statusDraft}
	StatusSubmitted          = ApplicationStatus{value: statusSubmitted}
	StatusInReview           = ApplicationStatus{value: statusInReview}
	StatusDocsPending        = ApplicationStatus{value: statusDocsPending}
	StatusCorrectionsPending = ApplicationStatus{value: statusCorrectionsPending}
	StatusApproved           = ApplicationStatus{value: statusApproved}
	StatusRejected           = ApplicationStatus{value: statusRejected}
	StatusCancelled          = ApplicationStatus{value: statusCancelled}
	StatusSynced             = ApplicationStatus{value: statusSynced}
)

var validStatuses = map[string]ApplicationStatus{
	statusDraft:              StatusDraft,
	statusSubmitted:          StatusSubmitted,
	statusInReview:           StatusInReview,
	statusDocsPending:        StatusDocsPending,
	statusCorrectionsPending: StatusCorrectionsPending,
	statusApproved:           StatusApproved,
	statusRejected:           StatusRejected,
	statusCancelled:          StatusCancelled,
	statusSynced:             StatusSynced,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further transition is permitted.
// APPROVED is not terminal: it still advances to SYNCED.
func (s ApplicationStatus) IsTerminal() bool {
	switch s.value {
	case statusRejected, statusCancelled, statusSynced:
		return true
	}
	return false
}

// IsEditable reports whether loan terms and purpose may still be changed.
func (s ApplicationStatus) IsEditable() bool { return s.value == statusDraft }

// AcceptsReferences reports whether supporting references may still be added.
func (s ApplicationStatus) AcceptsReferences() bool {
	return s.value == statusDraft || s.value == statusSubmitted
}

// ---------------------------------------------------------------------------
// ActorType – who initiates a status change
// ---------------------------------------------------------------------------

// ActorType identifies the kind of party requesting a status change.
type ActorType struct {
	value string
}

const (
	actorApplicant = "APPLICANT"
	actorStaff     = "STAFF"
	actorSystem    = "SYSTEM"
)

var (
	ActorApplicant = ActorType{value: actorApplicant}
	ActorStaff     = ActorType{value: actorStaff}
	ActorSystem    = ActorType{value: actorSystem}
)

var validActorTypes = map[string]ActorType{
	actorApplicant: ActorApplicant,
	actorStaff:     ActorStaff,
	actorSystem:    ActorSystem,
}

// NewActorType creates an ActorType from a raw string.
func NewActorType(s string) (ActorType, error) {
	v, ok := validActorTypes[s]
	if !ok {
		return ActorType{}, fmt.Errorf("invalid actor type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (a ActorType) String() string { return a.value }

// IsZero returns true when not initialised.
func (a ActorType) IsZero() bool { return a.value == "" }

// Equal returns true when both actor types match.
func (a ActorType) Equal(other ActorType) bool { return a.value == other.value }

// ---------------------------------------------------------------------------
// Transition table
// ---------------------------------------------------------------------------

type transitionKey struct {
	from string
	to   string
}

// allowedInitiators maps each legal transition to the actor types permitted
// to request it. A transition absent from the map is illegal from any actor.
var allowedInitiators = map[transitionKey][]ActorType{
	{statusDraft, statusSubmitted}:              {ActorApplicant},
	{statusDraft, statusCancelled}:              {ActorApplicant, ActorStaff},
	{statusSubmitted, statusInReview}:           {ActorStaff},
	{statusSubmitted, statusDocsPending}:        {ActorStaff},
	{statusSubmitted, statusCancelled}:          {ActorApplicant, ActorStaff},
	{statusInReview, statusApproved}:            {ActorStaff},
	{statusInReview, statusRejected}:            {ActorStaff},
	{statusInReview, statusDocsPending}:         {ActorStaff},
	{statusInReview, statusCorrectionsPending}:  {ActorStaff},
	{statusInReview, statusCancelled}:           {ActorApplicant, ActorStaff},
	{statusDocsPending, statusInReview}:         {ActorStaff, ActorSystem},
	{statusDocsPending, statusCancelled}:        {ActorApplicant, ActorStaff},
	{statusCorrectionsPending, statusInReview}:  {ActorSystem},
	{statusCorrectionsPending, statusCancelled}: {ActorApplicant, ActorStaff},
	{statusApproved, statusSynced}:              {ActorSystem, ActorStaff},
	{statusApproved, statusCancelled}:           {ActorApplicant, ActorStaff},
}

// automaticTransitions may carry an empty actor id (system-initiated).
var automaticTransitions = map[transitionKey]bool{
	{statusCorrectionsPending, statusInReview}: true,
	{statusApproved, statusSynced}:             true,
}

// ValidateTransition checks that the requested status change is legal for
// the given actor type. It is a pure function over the transition table and
// returns an IllegalTransitionError on denial.
func ValidateTransition(from, to ApplicationStatus, actor ActorType) error {
	initiators, ok := allowedInitiators[transitionKey{from.value, to.value}]
	if !ok {
		return &IllegalTransitionError{From: from, To: to}
	}
	for _, a := range initiators {
		if a.Equal(actor) {
			return nil
		}
	}
	return &IllegalTransitionError{From: from, To: to, Actor: actor}
}

// AllowsSystemActor reports whether the transition is automatic, meaning it
// may be recorded without a staff or applicant id.
func AllowsSystemActor(from, to ApplicationStatus) bool {
	return automaticTransitions[transitionKey{from.value, to.value}]
}
