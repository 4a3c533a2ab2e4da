package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/application/usecase"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

func TestSimulateLoan_Execute(t *testing.T) {
	uc := usecase.NewSimulateLoanUseCase()

	t.Run("prices a monthly loan", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.SimulateLoanRequest{
			Amount:           decimal.NewFromInt(50_000),
			TermMonths:       12,
			PaymentFrequency: "MONTHLY",
			AnnualRate:       decimal.NewFromInt(24),
			CommissionRate:   decimal.NewFromInt(3),
		})

		require.NoError(t, err)
		assert.Equal(t, 12, resp.TotalPeriods)
		assert.Equal(t, "4727.98", resp.Payment.String())
		assert.Equal(t, "56735.76", resp.TotalToPay.String())
		assert.Equal(t, "6735.76", resp.TotalInterest.String())
		assert.Equal(t, "1500", resp.OpeningCommission.String())
		assert.Equal(t, "48500", resp.NetAmount.String())
		assert.Equal(t, "16.47", resp.CAT.String())
		assert.Empty(t, resp.Schedule)
	})

	t.Run("includes the amortization table on request", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.SimulateLoanRequest{
			Amount:           decimal.NewFromInt(50_000),
			TermMonths:       12,
			PaymentFrequency: "MONTHLY",
			AnnualRate:       decimal.NewFromInt(24),
			CommissionRate:   decimal.NewFromInt(3),
			IncludeSchedule:  true,
		})

		require.NoError(t, err)
		require.Len(t, resp.Schedule, 12)
		assert.Equal(t, 1, resp.Schedule[0].Period)
		assert.True(t, resp.Schedule[11].RemainingBalance.IsZero())

		principalSum := decimal.Zero
		for _, row := range resp.Schedule {
			principalSum = principalSum.Add(row.Principal)
		}
		assert.True(t, principalSum.Equal(decimal.NewFromInt(50_000)))
	})

	t.Run("biweekly term maps to two periods per month", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.SimulateLoanRequest{
			Amount:           decimal.NewFromInt(24_000),
			TermMonths:       6,
			PaymentFrequency: "BIWEEKLY",
			AnnualRate:       decimal.Zero,
			CommissionRate:   decimal.Zero,
		})

		require.NoError(t, err)
		assert.Equal(t, 12, resp.TotalPeriods)
		assert.Equal(t, "2000", resp.Payment.String())
		assert.Equal(t, "24000", resp.TotalToPay.String())
		assert.True(t, resp.TotalInterest.IsZero())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.SimulateLoanRequest{
			Amount:           decimal.NewFromInt(-1),
			TermMonths:       12,
			PaymentFrequency: "MONTHLY",
			AnnualRate:       decimal.NewFromInt(24),
		})

		var validationErr *valueobject.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}
