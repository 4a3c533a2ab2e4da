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

func TestUpdateLoanTerms_Execute(t *testing.T) {
	t.Run("reprices the draft", func(t *testing.T) {
		app := fixtureDraft(t)
		appRepo := repoWith(app)
		amount := decimal.NewFromInt(60_000)
		term := 24
		uc := usecase.NewUpdateLoanTermsUseCase(appRepo, fixtureProductRepo(t), fixedClock{frozenNow})

		resp, err := uc.Execute(context.Background(), dto.UpdateLoanTermsRequest{
			TenantID:        "tenant-001",
			ApplicationID:   app.ID(),
			RequestedAmount: &amount,
			TermMonths:      &term,
		})

		require.NoError(t, err)
		assert.True(t, resp.RequestedAmount.Equal(amount))
		assert.Equal(t, 24, resp.RequestedTermMonths)
		assert.False(t, resp.MonthlyPayment.Equal(app.MonthlyPayment()))
		require.Len(t, appRepo.savedApps, 1)
	})

	t.Run("changes only the frequency", func(t *testing.T) {
		app := fixtureDraft(t)
		frequency := "BIWEEKLY"
		uc := usecase.NewUpdateLoanTermsUseCase(repoWith(app), fixtureProductRepo(t), fixedClock{frozenNow})

		resp, err := uc.Execute(context.Background(), dto.UpdateLoanTermsRequest{
			TenantID:         "tenant-001",
			ApplicationID:    app.ID(),
			PaymentFrequency: &frequency,
		})

		require.NoError(t, err)
		assert.Equal(t, "BIWEEKLY", resp.PaymentFrequency)
		assert.True(t, resp.RequestedAmount.Equal(decimal.NewFromInt(50_000)))
	})

	t.Run("rejects a frequency the product does not allow", func(t *testing.T) {
		app := fixtureDraft(t)
		frequency := "WEEKLY"
		uc := usecase.NewUpdateLoanTermsUseCase(repoWith(app), fixtureProductRepo(t), fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.UpdateLoanTermsRequest{
			TenantID:         "tenant-001",
			ApplicationID:    app.ID(),
			PaymentFrequency: &frequency,
		})

		var validationErr *valueobject.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects edits after submission", func(t *testing.T) {
		app := submitFixture(t, fixtureDraft(t))
		amount := decimal.NewFromInt(60_000)
		uc := usecase.NewUpdateLoanTermsUseCase(repoWith(app), fixtureProductRepo(t), fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.UpdateLoanTermsRequest{
			TenantID:        "tenant-001",
			ApplicationID:   app.ID(),
			RequestedAmount: &amount,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "update loan terms")
	})
}

func TestChangeStatus_Execute(t *testing.T) {
	t.Run("staff start the review", func(t *testing.T) {
		app := submitFixture(t, fixtureDraft(t))
		publisher := &mockEventPublisher{}
		uc := usecase.NewChangeStatusUseCase(repoWith(app), publisher, fixedClock{frozenNow})

		resp, err := uc.Execute(context.Background(), dto.ChangeStatusRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			NewStatus:     "IN_REVIEW",
			ChangedBy:     "staff-007",
			ChangedByType: "STAFF",
		})

		require.NoError(t, err)
		assert.Equal(t, "IN_REVIEW", resp.Status)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "application.status_changed", publisher.publishedEvents[0].EventType())
	})

	t.Run("denies a transition the table forbids", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewChangeStatusUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.ChangeStatusRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			NewStatus:     "APPROVED",
			ChangedBy:     "staff-007",
			ChangedByType: "STAFF",
		})

		var transitionErr *valueobject.IllegalTransitionError
		require.ErrorAs(t, err, &transitionErr)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewChangeStatusUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.ChangeStatusRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			NewStatus:     "LIMBO",
			ChangedByType: "STAFF",
		})

		require.Error(t, err)
	})
}

func TestAssignApplication_Execute(t *testing.T) {
	t.Run("routes to a reviewer", func(t *testing.T) {
		app := submitFixture(t, fixtureDraft(t))
		appRepo := repoWith(app)
		uc := usecase.NewAssignApplicationUseCase(appRepo, &mockEventPublisher{}, fixedClock{frozenNow})

		resp, err := uc.Execute(context.Background(), dto.AssignApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			AssignTo:      "staff-007",
			AssignedBy:    "lead-001",
		})

		require.NoError(t, err)
		assert.Equal(t, "staff-007", resp.AssignedTo)
		require.Len(t, appRepo.savedApps, 1)
	})

	t.Run("refuses to assign a draft", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewAssignApplicationUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.AssignApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			AssignTo:      "staff-007",
			AssignedBy:    "lead-001",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "assign application")
	})
}
