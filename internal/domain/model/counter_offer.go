package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CounterOffer – staff-proposed alternative terms, time-limited.
// Counter-offers are always expressed as a monthly-equivalent quote.
// ---------------------------------------------------------------------------

// CounterOffer is an immutable value object attached to an application while
// the applicant's response is pending.
type CounterOffer struct {
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

// IsZero reports whether no counter offer is attached.
func (o CounterOffer) IsZero() bool { return o.OfferedAt.IsZero() }

// Expired reports whether the offer can no longer be responded to. Expiry is
// evaluated lazily against the supplied clock reading; no background sweep
// exists.
func (o CounterOffer) Expired(now time.Time) bool {
	return !o.ExpiresAt.IsZero() && now.After(o.ExpiresAt)
}

// Active reports whether the offer exists and has not expired.
func (o CounterOffer) Active(now time.Time) bool {
	return !o.IsZero() && !o.Expired(now)
}
