package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateApplication = "Application"

// ---------------------------------------------------------------------------
// Application lifecycle events. Monetary fields carry the engine's rounding
// exactly as computed; consumers must not re-round.
// ---------------------------------------------------------------------------

// ApplicationCreated is raised when a draft application enters the system.
type ApplicationCreated struct {
	events.BaseEvent
	ApplicantRef     string          `json:"applicant_ref"`
	ProductID        string          `json:"product_id"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TermMonths       int             `json:"term_months"`
	PaymentFrequency string          `json:"payment_frequency"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	CAT              decimal.Decimal `json:"cat"`
}

func NewApplicationCreated(
	applicationID, tenantID, applicantRef, productID string,
	amount decimal.Decimal, termMonths int, frequency string,
	monthlyPayment, cat decimal.Decimal, now time.Time,
) ApplicationCreated {
	return ApplicationCreated{
		BaseEvent:        events.NewBaseEvent("application.created", applicationID, aggregateApplication, tenantID, now),
		ApplicantRef:     applicantRef,
		ProductID:        productID,
		RequestedAmount:  amount,
		TermMonths:       termMonths,
		PaymentFrequency: frequency,
		MonthlyPayment:   monthlyPayment,
		CAT:              cat,
	}
}

// ApplicationSubmitted is raised when the applicant submits a complete draft.
type ApplicationSubmitted struct {
	events.BaseEvent
	ApplicantRef    string          `json:"applicant_ref"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	TermMonths      int             `json:"term_months"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RiskLevel       string          `json:"risk_level,omitempty"`
}

func NewApplicationSubmitted(
	applicationID, tenantID, applicantRef string,
	amount decimal.Decimal, termMonths int,
	monthlyPayment, totalAmount decimal.Decimal,
	riskLevel string, now time.Time,
) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent("application.submitted", applicationID, aggregateApplication, tenantID, now),
		ApplicantRef:    applicantRef,
		RequestedAmount: amount,
		TermMonths:      termMonths,
		MonthlyPayment:  monthlyPayment,
		TotalAmount:     totalAmount,
		RiskLevel:       riskLevel,
	}
}

// ApplicationStatusChanged is raised on every status transition.
type ApplicationStatusChanged struct {
	events.BaseEvent
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ChangedBy      string `json:"changed_by,omitempty"`
	ChangedByType  string `json:"changed_by_type"`
	Notes          string `json:"notes,omitempty"`
}

func NewApplicationStatusChanged(
	applicationID, tenantID, previousStatus, newStatus, changedBy, changedByType, notes string,
	now time.Time,
) ApplicationStatusChanged {
	return ApplicationStatusChanged{
		BaseEvent:      events.NewBaseEvent("application.status_changed", applicationID, aggregateApplication, tenantID, now),
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		ChangedBy:      changedBy,
		ChangedByType:  changedByType,
		Notes:          notes,
	}
}

// ApplicationApproved is raised when staff approve an application.
type ApplicationApproved struct {
	events.BaseEvent
	ApprovedAmount     decimal.Decimal `json:"approved_amount"`
	ApprovedTermMonths int             `json:"approved_term_months"`
	ApprovedRate       decimal.Decimal `json:"approved_rate"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	ApprovedBy         string          `json:"approved_by"`
}

func NewApplicationApproved(
	applicationID, tenantID string,
	amount decimal.Decimal, termMonths int,
	rate, monthlyPayment decimal.Decimal,
	approvedBy string, now time.Time,
) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:          events.NewBaseEvent("application.approved", applicationID, aggregateApplication, tenantID, now),
		ApprovedAmount:     amount,
		ApprovedTermMonths: termMonths,
		ApprovedRate:       rate,
		MonthlyPayment:     monthlyPayment,
		ApprovedBy:         approvedBy,
	}
}

// ApplicationRejected is raised when staff reject an application.
type ApplicationRejected struct {
	events.BaseEvent
	Reason     string `json:"reason"`
	RejectedBy string `json:"rejected_by"`
}

func NewApplicationRejected(
	applicationID, tenantID, reason, rejectedBy string, now time.Time,
) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent:  events.NewBaseEvent("application.rejected", applicationID, aggregateApplication, tenantID, now),
		Reason:     reason,
		RejectedBy: rejectedBy,
	}
}

// CounterOfferSent is raised when staff propose alternative terms.
type CounterOfferSent struct {
	events.BaseEvent
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"term_months"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

func NewCounterOfferSent(
	applicationID, tenantID string,
	amount decimal.Decimal, termMonths int,
	rate, monthlyPayment decimal.Decimal,
	expiresAt, now time.Time,
) CounterOfferSent {
	return CounterOfferSent{
		BaseEvent:      events.NewBaseEvent("application.counter_offer.sent", applicationID, aggregateApplication, tenantID, now),
		Amount:         amount,
		TermMonths:     termMonths,
		AnnualRate:     rate,
		MonthlyPayment: monthlyPayment,
		ExpiresAt:      expiresAt,
	}
}

// CounterOfferResponded is raised when the applicant accepts or rejects a
// counter offer.
type CounterOfferResponded struct {
	events.BaseEvent
	Accepted bool `json:"accepted"`
}

func NewCounterOfferResponded(
	applicationID, tenantID string, accepted bool, now time.Time,
) CounterOfferResponded {
	return CounterOfferResponded{
		BaseEvent: events.NewBaseEvent("application.counter_offer.responded", applicationID, aggregateApplication, tenantID, now),
		Accepted:  accepted,
	}
}
