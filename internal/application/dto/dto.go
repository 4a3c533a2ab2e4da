package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateApplicationRequest carries the data needed to open a draft application.
// Exactly one of PersonRef or CompanyRef must be set.
type CreateApplicationRequest struct {
	TenantID         string          `json:"tenant_id"`
	PersonRef        string          `json:"person_ref,omitempty"`
	CompanyRef       string          `json:"company_ref,omitempty"`
	ProductID        string          `json:"product_id"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TermMonths       int             `json:"term_months"`
	PaymentFrequency string          `json:"payment_frequency"`
	Purpose          string          `json:"purpose"`
}

// UpdateLoanTermsRequest changes requested terms on an editable draft. Nil
// fields keep their current value.
type UpdateLoanTermsRequest struct {
	TenantID         string           `json:"tenant_id"`
	ApplicationID    string           `json:"application_id"`
	RequestedAmount  *decimal.Decimal `json:"requested_amount,omitempty"`
	TermMonths       *int             `json:"term_months,omitempty"`
	PaymentFrequency *string          `json:"payment_frequency,omitempty"`
	Purpose          *string          `json:"purpose,omitempty"`
}

// SubmitApplicationRequest submits a draft for review.
type SubmitApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	SubmittedBy   string `json:"submitted_by"`
}

// ChangeStatusRequest requests a generic gated status change.
type ChangeStatusRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	NewStatus     string `json:"new_status"`
	ChangedBy     string `json:"changed_by,omitempty"`
	ChangedByType string `json:"changed_by_type"`
	Notes         string `json:"notes,omitempty"`
}

// AssignApplicationRequest routes an application to a staff reviewer.
type AssignApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	AssignTo      string `json:"assign_to"`
	AssignedBy    string `json:"assigned_by"`
}

// ApproveApplicationRequest approves an application. Zero-valued term fields
// fall back to the requested terms on the record.
type ApproveApplicationRequest struct {
	TenantID       string           `json:"tenant_id"`
	ApplicationID  string           `json:"application_id"`
	ApprovedBy     string           `json:"approved_by"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	ApprovedTerm   *int             `json:"approved_term_months,omitempty"`
	ApprovedRate   *decimal.Decimal `json:"approved_rate,omitempty"`
}

// RejectApplicationRequest rejects an application with a mandatory reason.
type RejectApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	RejectedBy    string `json:"rejected_by"`
	Reason        string `json:"reason"`
}

// CancelApplicationRequest cancels a non-terminal application.
type CancelApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	CancelledBy   string `json:"cancelled_by"`
	ActorType     string `json:"actor_type"`
	Reason        string `json:"reason"`
}

// SendCounterOfferRequest proposes alternative terms to the applicant.
type SendCounterOfferRequest struct {
	TenantID           string           `json:"tenant_id"`
	ApplicationID      string           `json:"application_id"`
	OfferedBy          string           `json:"offered_by"`
	ProposedAmount     decimal.Decimal  `json:"proposed_amount"`
	ProposedTermMonths int              `json:"proposed_term_months"`
	ProposedRate       *decimal.Decimal `json:"proposed_rate,omitempty"`
	Reason             string           `json:"reason,omitempty"`
	ExpiresAt          time.Time        `json:"expires_at,omitempty"`
}

// RespondCounterOfferRequest resolves a pending counter offer.
type RespondCounterOfferRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	Accepted      bool   `json:"accepted"`
}

// MarkSyncedRequest confirms an approved application reached the core
// banking system.
type MarkSyncedRequest struct {
	TenantID       string `json:"tenant_id"`
	ApplicationID  string `json:"application_id"`
	ExternalID     string `json:"external_id"`
	ExternalSystem string `json:"external_system"`
	ChangedBy      string `json:"changed_by"`
}

// SimulateLoanRequest asks for a stateless what-if quote; no record is
// created or read.
type SimulateLoanRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	TermMonths       int             `json:"term_months"`
	PaymentFrequency string          `json:"payment_frequency"`
	AnnualRate       decimal.Decimal `json:"annual_rate"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	IncludeSchedule  bool            `json:"include_schedule,omitempty"`
}

// GetApplicationRequest identifies an application to retrieve.
type GetApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
}

// ListApplicationsRequest retrieves all applications for an applicant.
type ListApplicationsRequest struct {
	TenantID     string `json:"tenant_id"`
	ApplicantRef string `json:"applicant_ref"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CounterOfferResponse is the external representation of a pending offer.
type CounterOfferResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"term_months"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalToPay     decimal.Decimal `json:"total_to_pay"`
	Reason         string          `json:"reason,omitempty"`
	OfferedBy      string          `json:"offered_by"`
	OfferedAt      time.Time       `json:"offered_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

// ApprovedTermsResponse is the external representation of granted terms.
type ApprovedTermsResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"term_months"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

// ApplicationResponse is the external representation of an application.
type ApplicationResponse struct {
	ID                  string                 `json:"id"`
	TenantID            string                 `json:"tenant_id"`
	PersonRef           string                 `json:"person_ref,omitempty"`
	CompanyRef          string                 `json:"company_ref,omitempty"`
	ProductID           string                 `json:"product_id"`
	Purpose             string                 `json:"purpose"`
	RequestedAmount     decimal.Decimal        `json:"requested_amount"`
	RequestedTermMonths int                    `json:"requested_term_months"`
	PaymentFrequency    string                 `json:"payment_frequency"`
	InterestRate        decimal.Decimal        `json:"interest_rate"`
	MonthlyPayment      decimal.Decimal        `json:"monthly_payment"`
	TotalInterest       decimal.Decimal        `json:"total_interest"`
	TotalAmount         decimal.Decimal        `json:"total_amount"`
	CAT                 decimal.Decimal        `json:"cat"`
	Status              string                 `json:"status"`
	SubmittedAt         *time.Time             `json:"submitted_at,omitempty"`
	DecisionAt          *time.Time             `json:"decision_at,omitempty"`
	ExpiresAt           *time.Time             `json:"expires_at,omitempty"`
	AssignedTo          string                 `json:"assigned_to,omitempty"`
	Decision            string                 `json:"decision,omitempty"`
	ApprovedTerms       *ApprovedTermsResponse `json:"approved_terms,omitempty"`
	RejectionReason     string                 `json:"rejection_reason,omitempty"`
	CounterOffer        *CounterOfferResponse  `json:"counter_offer,omitempty"`
	RiskLevel           string                 `json:"risk_level,omitempty"`
	DebtToIncome        decimal.Decimal        `json:"debt_to_income,omitempty"`
	Version             int                    `json:"version"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// ScheduleEntryResponse is one amortization schedule row.
type ScheduleEntryResponse struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// SimulationResponse is the result of a stateless quote.
type SimulationResponse struct {
	Amount            decimal.Decimal         `json:"amount"`
	TermMonths        int                     `json:"term_months"`
	PaymentFrequency  string                  `json:"payment_frequency"`
	AnnualRate        decimal.Decimal         `json:"annual_rate"`
	TotalPeriods      int                     `json:"total_periods"`
	Payment           decimal.Decimal         `json:"payment"`
	TotalInterest     decimal.Decimal         `json:"total_interest"`
	TotalToPay        decimal.Decimal         `json:"total_to_pay"`
	OpeningCommission decimal.Decimal         `json:"opening_commission"`
	NetAmount         decimal.Decimal         `json:"net_amount"`
	CAT               decimal.Decimal         `json:"cat"`
	Schedule          []ScheduleEntryResponse `json:"schedule,omitempty"`
}

// StatusHistoryEntryResponse is one row of the lifecycle ledger.
type StatusHistoryEntryResponse struct {
	FromStatus    string    `json:"from_status,omitempty"`
	ToStatus      string    `json:"to_status"`
	ChangedBy     string    `json:"changed_by,omitempty"`
	ChangedByType string    `json:"changed_by_type"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
