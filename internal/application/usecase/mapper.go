package usecase

import (
	"time"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/domain/model"
)

func toApplicationResponse(app model.Application) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:                  app.ID(),
		TenantID:            app.TenantID(),
		PersonRef:           app.PersonRef(),
		CompanyRef:          app.CompanyRef(),
		ProductID:           app.ProductID(),
		Purpose:             app.Purpose(),
		RequestedAmount:     app.RequestedAmount(),
		RequestedTermMonths: app.RequestedTermMonths(),
		PaymentFrequency:    app.PaymentFrequency().String(),
		InterestRate:        app.InterestRate(),
		MonthlyPayment:      app.MonthlyPayment(),
		TotalInterest:       app.TotalInterest(),
		TotalAmount:         app.TotalAmount(),
		CAT:                 app.CAT(),
		Status:              app.Status().String(),
		AssignedTo:          app.AssignedTo(),
		Decision:            app.Decision().String(),
		RejectionReason:     app.RejectionReason(),
		RiskLevel:           app.RiskLevel().String(),
		DebtToIncome:        app.DebtToIncome(),
		Version:             app.Version(),
		CreatedAt:           app.CreatedAt(),
		UpdatedAt:           app.UpdatedAt(),
	}

	resp.SubmittedAt = nilIfZero(app.SubmittedAt())
	resp.DecisionAt = nilIfZero(app.DecisionAt())
	resp.ExpiresAt = nilIfZero(app.ExpiresAt())

	if terms := app.ApprovedTerms(); terms != nil {
		resp.ApprovedTerms = &dto.ApprovedTermsResponse{
			Amount:         terms.Amount,
			TermMonths:     terms.TermMonths,
			AnnualRate:     terms.AnnualRate,
			MonthlyPayment: terms.MonthlyPayment,
		}
	}
	if offer := app.CounterOffer(); !offer.IsZero() {
		resp.CounterOffer = &dto.CounterOfferResponse{
			Amount:         offer.Amount,
			TermMonths:     offer.TermMonths,
			AnnualRate:     offer.AnnualRate,
			MonthlyPayment: offer.MonthlyPayment,
			TotalToPay:     offer.TotalToPay,
			Reason:         offer.Reason,
			OfferedBy:      offer.OfferedBy,
			OfferedAt:      offer.OfferedAt,
			ExpiresAt:      offer.ExpiresAt,
		}
	}
	return resp
}

func toHistoryResponse(entries []model.StatusHistoryEntry) []dto.StatusHistoryEntryResponse {
	result := make([]dto.StatusHistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = dto.StatusHistoryEntryResponse{
			FromStatus:    e.FromStatus.String(),
			ToStatus:      e.ToStatus.String(),
			ChangedBy:     e.ChangedBy,
			ChangedByType: e.ChangedByType.String(),
			Notes:         e.Notes,
			CreatedAt:     e.CreatedAt,
		}
	}
	return result
}

func nilIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
