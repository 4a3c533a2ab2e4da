package model

import (
	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Product – read-mostly configuration consulted by validation and calculation.
// Products are created by external admin tooling; this service only reads them.
// ---------------------------------------------------------------------------

// Product is an immutable loan product configuration.
type Product struct {
	id                    string
	annualRate            decimal.Decimal // percent, 0-100
	openingCommissionRate decimal.Decimal // percent
	minAmount             decimal.Decimal
	maxAmount             decimal.Decimal
	minTermMonths         int
	maxTermMonths         int
	allowedFrequencies    []valueobject.PaymentFrequency
	requiredDocuments     []string
}

// NewProduct validates and builds a Product.
func NewProduct(
	id string,
	annualRate, openingCommissionRate decimal.Decimal,
	minAmount, maxAmount decimal.Decimal,
	minTermMonths, maxTermMonths int,
	allowedFrequencies []valueobject.PaymentFrequency,
	requiredDocuments []string,
) (Product, error) {
	if id == "" {
		return Product{}, valueobject.NewValidationError("product.id", "is required")
	}
	if annualRate.IsNegative() || annualRate.GreaterThan(oneHundred) {
		return Product{}, valueobject.NewValidationError("product.annualRate", "must be between 0 and 100, got %s", annualRate)
	}
	if openingCommissionRate.IsNegative() {
		return Product{}, valueobject.NewValidationError("product.openingCommissionRate", "must not be negative")
	}
	if minAmount.GreaterThan(maxAmount) {
		return Product{}, valueobject.NewValidationError("product.minAmount", "must not exceed maxAmount")
	}
	if minTermMonths <= 0 || minTermMonths > maxTermMonths {
		return Product{}, valueobject.NewValidationError("product.minTermMonths", "must be positive and not exceed maxTermMonths")
	}
	if len(allowedFrequencies) == 0 {
		return Product{}, valueobject.NewValidationError("product.allowedFrequencies", "at least one frequency is required")
	}

	return Product{
		id:                    id,
		annualRate:            annualRate,
		openingCommissionRate: openingCommissionRate,
		minAmount:             minAmount,
		maxAmount:             maxAmount,
		minTermMonths:         minTermMonths,
		maxTermMonths:         maxTermMonths,
		allowedFrequencies:    append([]valueobject.PaymentFrequency(nil), allowedFrequencies...),
		requiredDocuments:     append([]string(nil), requiredDocuments...),
	}, nil
}

func (p Product) ID() string                             { return p.id }
func (p Product) AnnualRate() decimal.Decimal            { return p.annualRate }
func (p Product) OpeningCommissionRate() decimal.Decimal { return p.openingCommissionRate }
func (p Product) MinAmount() decimal.Decimal             { return p.minAmount }
func (p Product) MaxAmount() decimal.Decimal             { return p.maxAmount }
func (p Product) MinTermMonths() int                     { return p.minTermMonths }
func (p Product) MaxTermMonths() int                     { return p.maxTermMonths }

// AllowedFrequencies returns a copy of the permitted payment frequencies.
func (p Product) AllowedFrequencies() []valueobject.PaymentFrequency {
	return append([]valueobject.PaymentFrequency(nil), p.allowedFrequencies...)
}

// RequiredDocuments returns a copy of the document types required at submission.
func (p Product) RequiredDocuments() []string {
	return append([]string(nil), p.requiredDocuments...)
}

// AllowsFrequency reports whether the product permits the given frequency.
func (p Product) AllowsFrequency(f valueobject.PaymentFrequency) bool {
	for _, allowed := range p.allowedFrequencies {
		if allowed.Equal(f) {
			return true
		}
	}
	return false
}

// ValidateLoanRequest checks the requested terms against product limits.
func (p Product) ValidateLoanRequest(
	amount decimal.Decimal,
	termMonths int,
	frequency valueobject.PaymentFrequency,
) error {
	if amount.LessThan(p.minAmount) || amount.GreaterThan(p.maxAmount) {
		return valueobject.NewValidationError("requestedAmount",
			"must be between %s and %s, got %s", p.minAmount, p.maxAmount, amount)
	}
	if termMonths < p.minTermMonths || termMonths > p.maxTermMonths {
		return valueobject.NewValidationError("requestedTermMonths",
			"must be between %d and %d, got %d", p.minTermMonths, p.maxTermMonths, termMonths)
	}
	if !p.AllowsFrequency(frequency) {
		return valueobject.NewValidationError("paymentFrequency",
			"%s is not allowed for product %s", frequency, p.id)
	}
	return nil
}
