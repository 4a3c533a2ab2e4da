package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/event"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Application aggregate root (loan origination)
// ---------------------------------------------------------------------------

// VerificationChecklist records which completeness signals were satisfied at
// submission time.
type VerificationChecklist struct {
	IdentityVerified   bool `json:"identity_verified"`
	PurposeProvided    bool `json:"purpose_provided"`
	DocumentsComplete  bool `json:"documents_complete"`
	AcceptedReferences int  `json:"accepted_references"`
}

// ApprovedTerms captures the terms granted at approval. They may differ from
// the requested terms and are set exactly once.
type ApprovedTerms struct {
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"term_months"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

// ExternalSync holds the identifiers of the record in a downstream system.
// These are the only fields still mutable once an application is terminal.
type ExternalSync struct {
	ExternalID     string    `json:"external_id"`
	ExternalSystem string    `json:"external_system"`
	SyncedAt       time.Time `json:"synced_at"`
}

// Application is an immutable aggregate. Every mutation returns a new copy
// carrying the domain events and status-history entries it produced; the
// repository persists the copy, appends the history and bumps the version in
// a single transaction.
type Application struct {
	id         string
	tenantID   string
	personRef  string
	companyRef string
	productID  string
	purpose    string

	requestedAmount     decimal.Decimal
	requestedTermMonths int
	paymentFrequency    valueobject.PaymentFrequency
	interestRate        decimal.Decimal // percent; product rate unless a counter offer changed it
	commissionRate      decimal.Decimal // percent; copied from the product at creation
	monthlyPayment      decimal.Decimal
	totalInterest       decimal.Decimal
	totalAmount         decimal.Decimal
	cat                 decimal.Decimal

	status      valueobject.ApplicationStatus
	submittedAt time.Time
	decisionAt  time.Time
	expiresAt   time.Time // draft TTL, evaluated lazily
	assignedTo  string
	assignedAt  time.Time
	assignedBy  string

	decision        valueobject.Decision
	approvedTerms   *ApprovedTerms
	rejectionReason string
	counterOffer    CounterOffer

	snapshot  ApplicantSnapshot
	checklist VerificationChecklist
	riskLevel valueobject.RiskLevel
	dti       decimal.Decimal

	externalSync ExternalSync

	version   int
	createdAt time.Time
	updatedAt time.Time

	domainEvents   []event.DomainEvent
	pendingHistory []StatusHistoryEntry
}

// applicantRef returns whichever of the mutually exclusive references is set.
func (a Application) applicantRef() string {
	if a.personRef != "" {
		return a.personRef
	}
	return a.companyRef
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewApplication creates a draft application. Exactly one of personRef or
// companyRef must be set. Terms are validated against the product and the
// payment terms are computed immediately.
func NewApplication(
	tenantID, personRef, companyRef string,
	product Product,
	requestedAmount decimal.Decimal,
	requestedTermMonths int,
	frequency valueobject.PaymentFrequency,
	purpose string,
	draftTTL time.Duration,
	now time.Time,
) (Application, error) {
	if tenantID == "" {
		return Application{}, valueobject.NewValidationError("tenantId", "is required")
	}
	if (personRef == "") == (companyRef == "") {
		return Application{}, valueobject.NewValidationError("applicantRef",
			"exactly one of personRef or companyRef must be set")
	}
	if err := product.ValidateLoanRequest(requestedAmount, requestedTermMonths, frequency); err != nil {
		return Application{}, err
	}

	quote, err := ComputeQuote(requestedAmount, product.AnnualRate(), requestedTermMonths, frequency, product.OpeningCommissionRate())
	if err != nil {
		return Application{}, err
	}

	id := uuid.New().String()
	app := Application{
		id:                  id,
		tenantID:            tenantID,
		personRef:           personRef,
		companyRef:          companyRef,
		productID:           product.ID(),
		purpose:             purpose,
		requestedAmount:     requestedAmount,
		requestedTermMonths: requestedTermMonths,
		paymentFrequency:    frequency,
		interestRate:        product.AnnualRate(),
		commissionRate:      product.OpeningCommissionRate(),
		monthlyPayment:      quote.Payment,
		totalInterest:       quote.TotalInterest,
		totalAmount:         quote.TotalToPay,
		cat:                 quote.CAT,
		status:              valueobject.StatusDraft,
		expiresAt:           now.Add(draftTTL),
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationCreated(
		id, tenantID, app.applicantRef(), product.ID(),
		requestedAmount, requestedTermMonths, frequency.String(),
		quote.Payment, quote.CAT, now,
	))
	app.pendingHistory = append(app.pendingHistory, StatusHistoryEntry{
		ApplicationID: id,
		ToStatus:      valueobject.StatusDraft,
		ChangedBy:     app.applicantRef(),
		ChangedByType: valueobject.ActorApplicant,
		Notes:         "application created",
		CreatedAt:     now,
	})
	return app, nil
}

// ReconstructApplication rebuilds an aggregate from persistence without
// side-effects.
func ReconstructApplication(
	id, tenantID, personRef, companyRef, productID, purpose string,
	requestedAmount decimal.Decimal, requestedTermMonths int,
	frequency valueobject.PaymentFrequency,
	interestRate, commissionRate decimal.Decimal,
	monthlyPayment, totalInterest, totalAmount, cat decimal.Decimal,
	status valueobject.ApplicationStatus,
	submittedAt, decisionAt, expiresAt time.Time,
	assignedTo string, assignedAt time.Time, assignedBy string,
	decision valueobject.Decision,
	approvedTerms *ApprovedTerms,
	rejectionReason string,
	counterOffer CounterOffer,
	snapshot ApplicantSnapshot,
	checklist VerificationChecklist,
	riskLevel valueobject.RiskLevel,
	dti decimal.Decimal,
	externalSync ExternalSync,
	version int,
	createdAt, updatedAt time.Time,
) Application {
	return Application{
		id:                  id,
		tenantID:            tenantID,
		personRef:           personRef,
		companyRef:          companyRef,
		productID:           productID,
		purpose:             purpose,
		requestedAmount:     requestedAmount,
		requestedTermMonths: requestedTermMonths,
		paymentFrequency:    frequency,
		interestRate:        interestRate,
		commissionRate:      commissionRate,
		monthlyPayment:      monthlyPayment,
		totalInterest:       totalInterest,
		totalAmount:         totalAmount,
		cat:                 cat,
		status:              status,
		submittedAt:         submittedAt,
		decisionAt:          decisionAt,
		expiresAt:           expiresAt,
		assignedTo:          assignedTo,
		assignedAt:          assignedAt,
		assignedBy:          assignedBy,
		decision:            decision,
		approvedTerms:       approvedTerms,
		rejectionReason:     rejectionReason,
		counterOffer:        counterOffer,
		snapshot:            snapshot,
		checklist:           checklist,
		riskLevel:           riskLevel,
		dti:                 dti,
		externalSync:        externalSync,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Term mutations
// ---------------------------------------------------------------------------

// UpdateLoanTerms changes requested amount, term, frequency or purpose while
// the application is still editable. Any nil argument keeps the current
// value. Payment terms are always recomputed from the four calculation
// inputs; they are never hand-edited.
func (a Application) UpdateLoanTerms(
	product Product,
	newAmount *decimal.Decimal,
	newTermMonths *int,
	newFrequency *valueobject.PaymentFrequency,
	newPurpose *string,
	now time.Time,
) (Application, error) {
	if !a.status.IsEditable() {
		return a, valueobject.NewValidationError("status",
			"loan terms can only be changed in %s, current status is %s", valueobject.StatusDraft, a.status)
	}

	amount := a.requestedAmount
	if newAmount != nil {
		amount = *newAmount
	}
	termMonths := a.requestedTermMonths
	if newTermMonths != nil {
		termMonths = *newTermMonths
	}
	frequency := a.paymentFrequency
	if newFrequency != nil {
		frequency = *newFrequency
	}

	if err := product.ValidateLoanRequest(amount, termMonths, frequency); err != nil {
		return a, err
	}

	next := a.copy()
	next.requestedAmount = amount
	next.requestedTermMonths = termMonths
	next.paymentFrequency = frequency
	if newPurpose != nil {
		next.purpose = *newPurpose
	}
	if err := next.recompute(); err != nil {
		return a, err
	}
	next.updatedAt = now
	return next, nil
}

// recompute refreshes monthlyPayment, totalInterest, totalAmount and cat from
// the aggregate's current calculation inputs.
func (a *Application) recompute() error {
	quote, err := ComputeQuote(a.requestedAmount, a.interestRate, a.requestedTermMonths, a.paymentFrequency, a.commissionRate)
	if err != nil {
		return err
	}
	a.monthlyPayment = quote.Payment
	a.totalInterest = quote.TotalInterest
	a.totalAmount = quote.TotalToPay
	a.cat = quote.CAT
	return nil
}

// ---------------------------------------------------------------------------
// Status transitions
// ---------------------------------------------------------------------------

// transition performs the table-gated status change, recording the history
// entry and the status_changed event. Callers layer their own semantics
// (snapshot, decision fields, extra events) on the returned copy.
func (a Application) transition(
	to valueobject.ApplicationStatus,
	changedBy string,
	actorType valueobject.ActorType,
	notes string,
	now time.Time,
) (Application, error) {
	if err := valueobject.ValidateTransition(a.status, to, actorType); err != nil {
		return a, err
	}
	if changedBy == "" && !valueobject.AllowsSystemActor(a.status, to) {
		return a, valueobject.NewValidationError("changedBy",
			"transition %s -> %s requires a named actor", a.status, to)
	}

	next := a.copy()
	prev := a.status
	next.status = to
	next.updatedAt = now

	next.pendingHistory = append(next.pendingHistory, StatusHistoryEntry{
		ApplicationID: a.id,
		FromStatus:    prev,
		ToStatus:      to,
		ChangedBy:     changedBy,
		ChangedByType: actorType,
		Notes:         notes,
		CreatedAt:     now,
	})
	next.domainEvents = append(next.domainEvents, event.NewApplicationStatusChanged(
		a.id, a.tenantID, prev.String(), to.String(), changedBy, actorType.String(), notes, now,
	))
	return next, nil
}

// ChangeStatus applies a generic gated transition requested by a caller.
// Cancellations always require a reason.
func (a Application) ChangeStatus(
	to valueobject.ApplicationStatus,
	changedBy string,
	actorType valueobject.ActorType,
	notes string,
	now time.Time,
) (Application, error) {
	if to.Equal(valueobject.StatusCancelled) && notes == "" {
		return a, valueobject.NewValidationError("notes", "cancellation requires a reason")
	}
	return a.transition(to, changedBy, actorType, notes, now)
}

// Submit moves DRAFT -> SUBMITTED, freezing the applicant snapshot and the
// verification checklist. The snapshot is write-once; the caller runs the
// submission validator first.
func (a Application) Submit(
	snapshot ApplicantSnapshot,
	checklist VerificationChecklist,
	riskLevel valueobject.RiskLevel,
	dti decimal.Decimal,
	submittedBy string,
	now time.Time,
) (Application, error) {
	if !a.snapshot.IsZero() {
		return a, valueobject.ErrSnapshotAlreadyTaken
	}
	if snapshot.IsZero() {
		return a, valueobject.NewValidationError("snapshot", "applicant snapshot is required at submission")
	}
	if !a.expiresAt.IsZero() && now.After(a.expiresAt) {
		return a, valueobject.NewValidationError("expiresAt", "draft expired at %s", a.expiresAt.Format(time.RFC3339))
	}

	next, err := a.transition(valueobject.StatusSubmitted, submittedBy, valueobject.ActorApplicant, "", now)
	if err != nil {
		return a, err
	}
	next.snapshot = snapshot
	next.checklist = checklist
	next.riskLevel = riskLevel
	next.dti = dti
	next.submittedAt = now
	next.domainEvents = append(next.domainEvents, event.NewApplicationSubmitted(
		a.id, a.tenantID, a.applicantRef(),
		a.requestedAmount, a.requestedTermMonths,
		a.monthlyPayment, a.totalAmount,
		riskLevel.String(), now,
	))
	return next, nil
}

// Assign routes the application to a staff reviewer. Drafts and terminal
// applications cannot be assigned.
func (a Application) Assign(staffID, assignedBy string, now time.Time) (Application, error) {
	if staffID == "" {
		return a, valueobject.NewValidationError("assignedTo", "is required")
	}
	if a.status.IsEditable() || a.status.IsTerminal() {
		return a, valueobject.NewValidationError("status",
			"cannot assign an application in status %s", a.status)
	}
	next := a.copy()
	next.assignedTo = staffID
	next.assignedAt = now
	next.assignedBy = assignedBy
	next.updatedAt = now
	return next, nil
}

// Approve moves IN_REVIEW -> APPROVED, recording the granted terms exactly
// once. When the granted terms differ from the requested ones the payment is
// recomputed for them; the requested terms on the record stay untouched.
func (a Application) Approve(
	amount decimal.Decimal,
	termMonths int,
	annualRate decimal.Decimal,
	approvedBy string,
	now time.Time,
) (Application, error) {
	if a.approvedTerms != nil {
		return a, valueobject.NewValidationError("approvedTerms", "already set; approval is immutable")
	}

	quote, err := ComputeQuote(amount, annualRate, termMonths, a.paymentFrequency, a.commissionRate)
	if err != nil {
		return a, err
	}

	next, err := a.transition(valueobject.StatusApproved, approvedBy, valueobject.ActorStaff, "", now)
	if err != nil {
		return a, err
	}
	next.decision = valueobject.DecisionApproved
	next.decisionAt = now
	next.approvedTerms = &ApprovedTerms{
		Amount:         amount,
		TermMonths:     termMonths,
		AnnualRate:     annualRate,
		MonthlyPayment: quote.Payment,
	}
	next.counterOffer = CounterOffer{}
	next.domainEvents = append(next.domainEvents, event.NewApplicationApproved(
		a.id, a.tenantID, amount, termMonths, annualRate, quote.Payment, approvedBy, now,
	))
	return next, nil
}

// Reject moves IN_REVIEW -> REJECTED with a mandatory reason.
func (a Application) Reject(reason, rejectedBy string, now time.Time) (Application, error) {
	if reason == "" {
		return a, valueobject.NewValidationError("rejectionReason", "is required")
	}
	next, err := a.transition(valueobject.StatusRejected, rejectedBy, valueobject.ActorStaff, reason, now)
	if err != nil {
		return a, err
	}
	next.decision = valueobject.DecisionRejected
	next.decisionAt = now
	next.rejectionReason = reason
	next.counterOffer = CounterOffer{}
	next.domainEvents = append(next.domainEvents, event.NewApplicationRejected(
		a.id, a.tenantID, reason, rejectedBy, now,
	))
	return next, nil
}

// Cancel moves any non-terminal status to CANCELLED. A reason is mandatory.
func (a Application) Cancel(reason, cancelledBy string, actorType valueobject.ActorType, now time.Time) (Application, error) {
	if reason == "" {
		return a, valueobject.NewValidationError("notes", "cancellation requires a reason")
	}
	return a.transition(valueobject.StatusCancelled, cancelledBy, actorType, reason, now)
}

// MarkSynced moves APPROVED -> SYNCED after the record has been handed to the
// downstream system.
func (a Application) MarkSynced(externalID, externalSystem, changedBy string, now time.Time) (Application, error) {
	if externalID == "" {
		return a, valueobject.NewValidationError("externalId", "is required")
	}
	actor := valueobject.ActorSystem
	if changedBy != "" {
		actor = valueobject.ActorStaff
	}
	next, err := a.transition(valueobject.StatusSynced, changedBy, actor, "", now)
	if err != nil {
		return a, err
	}
	next.externalSync = ExternalSync{
		ExternalID:     externalID,
		ExternalSystem: externalSystem,
		SyncedAt:       now,
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// Counter-offer negotiation
// ---------------------------------------------------------------------------

// SendCounterOffer attaches a staff-proposed alternative while the
// application is in review. The status does not change; the record now waits
// on the applicant's response.
func (a Application) SendCounterOffer(offer CounterOffer, now time.Time) (Application, error) {
	if !a.status.Equal(valueobject.StatusInReview) {
		return a, valueobject.NewValidationError("status",
			"counter offers can only be sent while %s, current status is %s", valueobject.StatusInReview, a.status)
	}
	next := a.copy()
	next.decision = valueobject.DecisionCounterOffer
	next.decisionAt = now
	next.counterOffer = offer
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewCounterOfferSent(
		a.id, a.tenantID, offer.Amount, offer.TermMonths,
		offer.AnnualRate, offer.MonthlyPayment, offer.ExpiresAt, now,
	))
	return next, nil
}

// RespondToCounterOffer resolves the pending offer. Accepting overwrites the
// requested terms with the offered ones and recomputes the payment terms;
// rejecting leaves the record for staff to re-decide. Either way the offer is
// cleared.
func (a Application) RespondToCounterOffer(accepted bool, now time.Time) (Application, error) {
	if !a.counterOffer.Active(now) {
		return a, valueobject.ErrNoActiveCounterOffer
	}

	next := a.copy()
	if accepted {
		next.requestedAmount = next.counterOffer.Amount
		next.requestedTermMonths = next.counterOffer.TermMonths
		next.interestRate = next.counterOffer.AnnualRate
		if err := next.recompute(); err != nil {
			return a, err
		}
	}
	next.counterOffer = CounterOffer{}
	next.decision = valueobject.Decision{}
	next.decisionAt = time.Time{}
	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewCounterOfferResponded(
		a.id, a.tenantID, accepted, now,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a Application) ID() string                                    { return a.id }
func (a Application) TenantID() string                              { return a.tenantID }
func (a Application) PersonRef() string                             { return a.personRef }
func (a Application) CompanyRef() string                            { return a.companyRef }
func (a Application) ApplicantRef() string                          { return a.applicantRef() }
func (a Application) ProductID() string                             { return a.productID }
func (a Application) Purpose() string                               { return a.purpose }
func (a Application) RequestedAmount() decimal.Decimal              { return a.requestedAmount }
func (a Application) RequestedTermMonths() int                      { return a.requestedTermMonths }
func (a Application) PaymentFrequency() valueobject.PaymentFrequency { return a.paymentFrequency }
func (a Application) InterestRate() decimal.Decimal                 { return a.interestRate }
func (a Application) CommissionRate() decimal.Decimal               { return a.commissionRate }
func (a Application) MonthlyPayment() decimal.Decimal               { return a.monthlyPayment }
func (a Application) TotalInterest() decimal.Decimal                { return a.totalInterest }
func (a Application) TotalAmount() decimal.Decimal                  { return a.totalAmount }
func (a Application) CAT() decimal.Decimal                          { return a.cat }
func (a Application) Status() valueobject.ApplicationStatus         { return a.status }
func (a Application) SubmittedAt() time.Time                        { return a.submittedAt }
func (a Application) DecisionAt() time.Time                         { return a.decisionAt }
func (a Application) ExpiresAt() time.Time                          { return a.expiresAt }
func (a Application) AssignedTo() string                            { return a.assignedTo }
func (a Application) AssignedAt() time.Time                         { return a.assignedAt }
func (a Application) AssignedBy() string                            { return a.assignedBy }
func (a Application) Decision() valueobject.Decision                { return a.decision }
func (a Application) RejectionReason() string                       { return a.rejectionReason }
func (a Application) CounterOffer() CounterOffer                    { return a.counterOffer }
func (a Application) Snapshot() ApplicantSnapshot                   { return a.snapshot }
func (a Application) Checklist() VerificationChecklist              { return a.checklist }
func (a Application) RiskLevel() valueobject.RiskLevel              { return a.riskLevel }
func (a Application) DebtToIncome() decimal.Decimal                 { return a.dti }
func (a Application) ExternalSync() ExternalSync                    { return a.externalSync }
func (a Application) Version() int                                  { return a.version }
func (a Application) CreatedAt() time.Time                          { return a.createdAt }
func (a Application) UpdatedAt() time.Time                          { return a.updatedAt }
func (a Application) DomainEvents() []event.DomainEvent             { return a.domainEvents }
func (a Application) PendingHistory() []StatusHistoryEntry          { return a.pendingHistory }

// ApprovedTerms returns the granted terms, or nil before approval. The
// returned value is a copy.
func (a Application) ApprovedTerms() *ApprovedTerms {
	if a.approvedTerms == nil {
		return nil
	}
	terms := *a.approvedTerms
	return &terms
}

// ClearSideEffects returns a copy with empty event and history lists; the
// repository calls it after a successful commit and publish.
func (a Application) ClearSideEffects() Application {
	next := a
	next.domainEvents = nil
	next.pendingHistory = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// copy duplicates the aggregate including its collected side effects, so a
// failed mutation never leaks partial state into the receiver.
func (a Application) copy() Application {
	next := a
	next.domainEvents = copyEvents(a.domainEvents)
	next.pendingHistory = copyHistory(a.pendingHistory)
	if a.approvedTerms != nil {
		terms := *a.approvedTerms
		next.approvedTerms = &terms
	}
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

func copyHistory(src []StatusHistoryEntry) []StatusHistoryEntry {
	if len(src) == 0 {
		return nil
	}
	dst := make([]StatusHistoryEntry, len(src))
	copy(dst, src)
	return dst
}
