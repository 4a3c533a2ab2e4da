package model

import (
	"iter"
	"math"

	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Amortization engine (French / constant-payment method)
// ---------------------------------------------------------------------------

var (
	oneHundred = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
)

// Quote holds the computed payment terms for a principal, rate, term and
// payment frequency. All monetary fields are rounded to 2 decimal places;
// CAT is the simplified effective annual cost in percent.
type Quote struct {
	Principal         decimal.Decimal
	AnnualRate        decimal.Decimal // percent, as configured on the product
	TermMonths        int
	Frequency         valueobject.PaymentFrequency
	TotalPeriods      int
	PeriodRate        decimal.Decimal // fraction per period, not rounded
	Payment           decimal.Decimal
	TotalToPay        decimal.Decimal
	TotalInterest     decimal.Decimal
	OpeningCommission decimal.Decimal
	NetAmount         decimal.Decimal
	CAT               decimal.Decimal
}

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Period           int
	Payment          decimal.Decimal
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	RemainingBalance decimal.Decimal
}

// ComputeQuote calculates the fixed installment, totals and CAT for a loan
// request. It is pure and safe for concurrent use.
//
// Preconditions: principal > 0, termMonths >= 1, annualRatePct >= 0,
// commissionPct >= 0, frequency initialised. Range checks against the
// product limits are the caller's job.
func ComputeQuote(
	principal decimal.Decimal,
	annualRatePct decimal.Decimal,
	termMonths int,
	frequency valueobject.PaymentFrequency,
	commissionPct decimal.Decimal,
) (Quote, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Quote{}, valueobject.NewValidationError("principal", "must be positive, got %s", principal)
	}
	if termMonths < 1 {
		return Quote{}, valueobject.NewValidationError("termMonths", "must be at least 1, got %d", termMonths)
	}
	if annualRatePct.IsNegative() {
		return Quote{}, valueobject.NewValidationError("annualRate", "must not be negative, got %s", annualRatePct)
	}
	if commissionPct.IsNegative() {
		return Quote{}, valueobject.NewValidationError("openingCommissionRate", "must not be negative, got %s", commissionPct)
	}
	if frequency.IsZero() {
		return Quote{}, valueobject.NewValidationError("frequency", "is required")
	}

	periodsPerYear := frequency.PeriodsPerYear()
	totalPeriods := totalPeriodsFor(termMonths, periodsPerYear)

	// periodRate = annualRate/100 / periodsPerYear, kept unrounded.
	periodRate := annualRatePct.Div(oneHundred).Div(decimal.NewFromInt(int64(periodsPerYear)))

	var payment, totalToPay decimal.Decimal
	if periodRate.IsZero() {
		// Zero-interest: straight-line split. The last scheduled payment
		// absorbs the per-period rounding, so the borrower repays exactly
		// the principal and owes no interest.
		payment = principal.Div(decimal.NewFromInt(int64(totalPeriods))).Round(2)
		totalToPay = principal
	} else {
		// P * r * (1+r)^n / ((1+r)^n - 1); float64 only for the power.
		r := periodRate.InexactFloat64()
		factor := math.Pow(1+r, float64(totalPeriods))
		paymentFloat := principal.InexactFloat64() * r * factor / (factor - 1)
		payment = decimal.NewFromFloat(paymentFloat).Round(2)
		totalToPay = payment.Mul(decimal.NewFromInt(int64(totalPeriods))).Round(2)
	}

	totalInterest := totalToPay.Sub(principal)
	commission := principal.Mul(commissionPct).Div(oneHundred).Round(2)
	netAmount := principal.Sub(commission)

	// cat = (totalInterest + commission) / principal / (termMonths/12) * 100
	years := decimal.NewFromInt(int64(termMonths)).Div(twelve)
	cat := totalInterest.Add(commission).
		Div(principal).
		Div(years).
		Mul(oneHundred).
		Round(2)

	return Quote{
		Principal:         principal,
		AnnualRate:        annualRatePct,
		TermMonths:        termMonths,
		Frequency:         frequency,
		TotalPeriods:      totalPeriods,
		PeriodRate:        periodRate,
		Payment:           payment,
		TotalToPay:        totalToPay,
		TotalInterest:     totalInterest,
		OpeningCommission: commission,
		NetAmount:         netAmount,
		CAT:               cat,
	}, nil
}

// totalPeriodsFor maps a term in months to the number of payment periods,
// rounding to the nearest whole period with a floor of 1. Biweekly resolves
// to exactly 2 periods per month (24/12); weekly to 52/12.
func totalPeriodsFor(termMonths, periodsPerYear int) int {
	n := int(math.Round(float64(termMonths) * float64(periodsPerYear) / 12.0))
	if n < 1 {
		n = 1
	}
	return n
}

// Schedule returns the amortization rows for the quote as a restartable
// sequence. Each iteration recomputes from the opening balance, so ranging
// over it twice yields identical rows. The final period forces the principal
// portion to the exact remaining balance and recomputes that row's payment,
// so the schedule always closes at a zero balance.
func (q Quote) Schedule() iter.Seq[ScheduleEntry] {
	return func(yield func(ScheduleEntry) bool) {
		remaining := q.Principal
		for period := 1; period <= q.TotalPeriods; period++ {
			interest := remaining.Mul(q.PeriodRate).Round(2)
			principalPart := q.Payment.Sub(interest)
			payment := q.Payment

			if period == q.TotalPeriods {
				principalPart = remaining
				payment = principalPart.Add(interest)
			}

			remaining = remaining.Sub(principalPart)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}

			if !yield(ScheduleEntry{
				Period:           period,
				Payment:          payment,
				Principal:        principalPart,
				Interest:         interest,
				RemainingBalance: remaining,
			}) {
				return
			}
		}
	}
}

// ScheduleRows collects the full schedule into a slice.
func (q Quote) ScheduleRows() []ScheduleEntry {
	rows := make([]ScheduleEntry, 0, q.TotalPeriods)
	for row := range q.Schedule() {
		rows = append(rows, row)
	}
	return rows
}

// DebtToIncome returns the proposed payment, normalised to a monthly figure,
// divided by verified monthly income, as a percentage rounded to 2 decimals.
// Zero or negative income yields a zero ratio; the caller treats that as
// unverifiable rather than as an error.
func (q Quote) DebtToIncome(monthlyIncome decimal.Decimal) decimal.Decimal {
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	monthlyEquivalent := q.Payment.
		Mul(decimal.NewFromInt(int64(q.Frequency.PeriodsPerYear()))).
		Div(twelve)
	return monthlyEquivalent.Div(monthlyIncome).Mul(oneHundred).Round(2)
}
