package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PaymentFrequency – immutable value object
// ---------------------------------------------------------------------------

// PaymentFrequency is how often installments fall due.
type PaymentFrequency struct {
	value string
}

const (
	frequencyWeekly   = "WEEKLY"
	frequencyBiweekly = "BIWEEKLY"
	frequencyMonthly  = "MONTHLY"
)

var (
	FrequencyWeekly   = PaymentFrequency{value: frequencyWeekly}
	FrequencyBiweekly = PaymentFrequency{value: frequencyBiweekly}
	FrequencyMonthly  = PaymentFrequency{value: frequencyMonthly}
)

var validFrequencies = map[string]PaymentFrequency{
	frequencyWeekly:   FrequencyWeekly,
	frequencyBiweekly: FrequencyBiweekly,
	frequencyMonthly:  FrequencyMonthly,
}

// NewPaymentFrequency creates a PaymentFrequency from a raw string.
func NewPaymentFrequency(s string) (PaymentFrequency, error) {
	v, ok := validFrequencies[s]
	if !ok {
		return PaymentFrequency{}, fmt.Errorf("invalid payment frequency: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (f PaymentFrequency) String() string { return f.value }

// IsZero returns true when not initialised.
func (f PaymentFrequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies match.
func (f PaymentFrequency) Equal(other PaymentFrequency) bool { return f.value == other.value }

// PeriodsPerYear returns the number of payment periods in a year.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f.value {
	case frequencyWeekly:
		return 52
	case frequencyBiweekly:
		return 24
	case frequencyMonthly:
		return 12
	}
	return 0
}

// ---------------------------------------------------------------------------
// Decision – staff decision on an application
// ---------------------------------------------------------------------------

// Decision is the outcome recorded when staff rule on an application.
type Decision struct {
	value string
}

const (
	decisionApproved     = "APPROVED"
	decisionRejected     = "REJECTED"
	decisionCounterOffer = "COUNTER_OFFER"
)

var (
	DecisionApproved     = Decision{value: decisionApproved}
	DecisionRejected     = Decision{value: decisionRejected}
	DecisionCounterOffer = Decision{value: decisionCounterOffer}
)

var validDecisions = map[string]Decision{
	decisionApproved:     DecisionApproved,
	decisionRejected:     DecisionRejected,
	decisionCounterOffer: DecisionCounterOffer,
}

// NewDecision creates a Decision from a raw string.
func NewDecision(s string) (Decision, error) {
	v, ok := validDecisions[s]
	if !ok {
		return Decision{}, fmt.Errorf("invalid decision: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (d Decision) String() string { return d.value }

// IsZero returns true when no decision has been recorded.
func (d Decision) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions match.
func (d Decision) Equal(other Decision) bool { return d.value == other.value }

// ---------------------------------------------------------------------------
// RiskLevel – advisory risk classification
// ---------------------------------------------------------------------------

// RiskLevel classifies an application for reviewer triage.
type RiskLevel struct {
	value string
}

const (
	riskLow    = "LOW"
	riskMedium = "MEDIUM"
	riskHigh   = "HIGH"
)

var (
	RiskLow    = RiskLevel{value: riskLow}
	RiskMedium = RiskLevel{value: riskMedium}
	RiskHigh   = RiskLevel{value: riskHigh}
)

var validRiskLevels = map[string]RiskLevel{
	riskLow:    RiskLow,
	riskMedium: RiskMedium,
	riskHigh:   RiskHigh,
}

// NewRiskLevel creates a RiskLevel from a raw string.
func NewRiskLevel(s string) (RiskLevel, error) {
	v, ok := validRiskLevels[s]
	if !ok {
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (r RiskLevel) String() string { return r.value }

// IsZero returns true when no risk level has been recorded.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal returns true when both risk levels match.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }
