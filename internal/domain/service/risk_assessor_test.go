package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/crediflow/origination/internal/domain/service"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

func TestEvaluate_Tiers(t *testing.T) {
	// 50 000 @ 24% over 12 monthly payments prices at 4727.98 per month.
	app := testDraft(t, "working capital")
	assessor := service.NewRiskAssessor()

	cases := []struct {
		name    string
		income  decimal.Decimal
		level   valueobject.RiskLevel
		wantDTI string
	}{
		{"comfortable", decimal.NewFromInt(20_000), valueobject.RiskLow, "23.64"},
		{"stretched", decimal.NewFromInt(12_000), valueobject.RiskMedium, "39.4"},
		{"overextended", decimal.NewFromInt(9_000), valueobject.RiskHigh, "52.53"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assessment := assessor.Evaluate(app, tc.income)
			assert.True(t, assessment.Level.Equal(tc.level),
				"want %s, got %s", tc.level, assessment.Level)
			assert.Equal(t, tc.wantDTI, assessment.DTI.String())
		})
	}
}

func TestEvaluate_UnverifiableIncome(t *testing.T) {
	app := testDraft(t, "working capital")
	assessor := service.NewRiskAssessor()

	for _, income := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		assessment := assessor.Evaluate(app, income)
		assert.True(t, assessment.Level.Equal(valueobject.RiskHigh))
		assert.True(t, assessment.DTI.IsZero())
	}
}

func TestEvaluate_ExactBoundaries(t *testing.T) {
	app := testDraft(t, "working capital")
	assessor := service.NewRiskAssessor()

	// 4727.98 / 15759.933... = exactly 30.00 is awkward to hit; use the
	// rounded DTI the engine produces. 4727.98 / 15760 -> 30.00 -> LOW.
	atComfortable := assessor.Evaluate(app, decimal.NewFromFloat(15760))
	assert.Equal(t, "30", atComfortable.DTI.String())
	assert.True(t, atComfortable.Level.Equal(valueobject.RiskLow))
}
