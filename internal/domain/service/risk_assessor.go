package service

import (
	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RiskAssessor – advisory risk classification at submission
// ---------------------------------------------------------------------------

// RiskAssessment holds the outcome of the risk evaluation. It is recorded on
// the application for reviewer triage; staff still make the decision.
type RiskAssessment struct {
	Level valueobject.RiskLevel
	DTI   decimal.Decimal
}

// RiskAssessor encapsulates rule-based risk classification.
type RiskAssessor struct{}

// NewRiskAssessor returns a new assessor instance.
func NewRiskAssessor() *RiskAssessor {
	return &RiskAssessor{}
}

var (
	dtiComfortable = decimal.NewFromInt(30) // percent of monthly income
	dtiStretched   = decimal.NewFromInt(45)
)

// Evaluate classifies the application by debt-to-income ratio.
//
// Tiers:
//
//	DTI <= 30%          -> LOW
//	DTI <= 45%          -> MEDIUM
//	DTI >  45%          -> HIGH
//	income unverifiable -> HIGH (DTI reported as 0)
func (r *RiskAssessor) Evaluate(app model.Application, monthlyIncome decimal.Decimal) RiskAssessment {
	quote, err := model.ComputeQuote(
		app.RequestedAmount(), app.InterestRate(), app.RequestedTermMonths(),
		app.PaymentFrequency(), app.CommissionRate(),
	)
	if err != nil {
		// The aggregate already holds quoted terms, so this only happens on a
		// corrupted record; classify conservatively.
		return RiskAssessment{Level: valueobject.RiskHigh}
	}

	dti := quote.DebtToIncome(monthlyIncome)
	if dti.IsZero() {
		return RiskAssessment{Level: valueobject.RiskHigh, DTI: dti}
	}

	level := valueobject.RiskHigh
	switch {
	case dti.LessThanOrEqual(dtiComfortable):
		level = valueobject.RiskLow
	case dti.LessThanOrEqual(dtiStretched):
		level = valueobject.RiskMedium
	}

	return RiskAssessment{Level: level, DTI: dti}
}
