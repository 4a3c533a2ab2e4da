package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// DefaultCounterOfferTTL is how long an applicant has to respond to a
// counter offer when staff do not set an explicit expiry.
const DefaultCounterOfferTTL = 7 * 24 * time.Hour

// CounterOfferNegotiator builds counter offers. Offers are always quoted at
// the monthly-equivalent payment regardless of the application's own
// frequency, so the applicant compares like with like.
type CounterOfferNegotiator struct{}

// NewCounterOfferNegotiator returns a new negotiator instance.
func NewCounterOfferNegotiator() *CounterOfferNegotiator {
	return &CounterOfferNegotiator{}
}

// BuildOffer validates the proposal and prices it. A nil proposedRate falls
// back to the product's base rate; a zero expiry falls back to now + 7 days.
func (n *CounterOfferNegotiator) BuildOffer(
	product model.Product,
	proposedAmount decimal.Decimal,
	proposedTermMonths int,
	proposedRate *decimal.Decimal,
	reason string,
	offeredBy string,
	expiresAt time.Time,
	now time.Time,
) (model.CounterOffer, error) {
	if proposedAmount.LessThanOrEqual(decimal.Zero) {
		return model.CounterOffer{}, valueobject.NewValidationError("counterOffer.amount", "must be positive")
	}
	if proposedTermMonths < 1 {
		return model.CounterOffer{}, valueobject.NewValidationError("counterOffer.termMonths", "must be at least 1")
	}
	if offeredBy == "" {
		return model.CounterOffer{}, valueobject.NewValidationError("counterOffer.offeredBy", "is required")
	}

	rate := product.AnnualRate()
	if proposedRate != nil {
		if proposedRate.IsNegative() {
			return model.CounterOffer{}, valueobject.NewValidationError("counterOffer.annualRate", "must not be negative")
		}
		rate = *proposedRate
	}

	quote, err := model.ComputeQuote(
		proposedAmount, rate, proposedTermMonths,
		valueobject.FrequencyMonthly, product.OpeningCommissionRate(),
	)
	if err != nil {
		return model.CounterOffer{}, err
	}

	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultCounterOfferTTL)
	}

	return model.CounterOffer{
		Amount:         proposedAmount,
		TermMonths:     proposedTermMonths,
		AnnualRate:     rate,
		MonthlyPayment: quote.Payment,
		TotalToPay:     quote.TotalToPay,
		Reason:         reason,
		OfferedBy:      offeredBy,
		OfferedAt:      now,
		ExpiresAt:      expiresAt,
	}, nil
}
