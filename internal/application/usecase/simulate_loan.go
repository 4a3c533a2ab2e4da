package usecase

import (
	"context"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// SimulateLoanUseCase prices a hypothetical loan without touching storage.
// It backs the public simulator endpoint.
type SimulateLoanUseCase struct{}

// NewSimulateLoanUseCase wires dependencies.
func NewSimulateLoanUseCase() *SimulateLoanUseCase {
	return &SimulateLoanUseCase{}
}

// Execute computes the quote and, when asked, the full amortization table.
func (uc *SimulateLoanUseCase) Execute(
	_ context.Context,
	req dto.SimulateLoanRequest,
) (dto.SimulationResponse, error) {
	frequency, err := valueobject.NewPaymentFrequency(req.PaymentFrequency)
	if err != nil {
		return dto.SimulationResponse{}, err
	}

	quote, err := model.ComputeQuote(req.Amount, req.AnnualRate, req.TermMonths, frequency, req.CommissionRate)
	if err != nil {
		return dto.SimulationResponse{}, err
	}

	resp := dto.SimulationResponse{
		Amount:            quote.Principal,
		TermMonths:        quote.TermMonths,
		PaymentFrequency:  quote.Frequency.String(),
		AnnualRate:        quote.AnnualRate,
		TotalPeriods:      quote.TotalPeriods,
		Payment:           quote.Payment,
		TotalInterest:     quote.TotalInterest,
		TotalToPay:        quote.TotalToPay,
		OpeningCommission: quote.OpeningCommission,
		NetAmount:         quote.NetAmount,
		CAT:               quote.CAT,
	}

	if req.IncludeSchedule {
		resp.Schedule = make([]dto.ScheduleEntryResponse, 0, quote.TotalPeriods)
		for entry := range quote.Schedule() {
			resp.Schedule = append(resp.Schedule, dto.ScheduleEntryResponse{
				Period:           entry.Period,
				Payment:          entry.Payment,
				Principal:        entry.Principal,
				Interest:         entry.Interest,
				RemainingBalance: entry.RemainingBalance,
			})
		}
	}
	return resp, nil
}
