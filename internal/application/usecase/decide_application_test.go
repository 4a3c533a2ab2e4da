package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/application/usecase"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

func TestApproveApplication_Execute(t *testing.T) {
	t.Run("defaults to the requested terms", func(t *testing.T) {
		app := fixtureInReview(t)
		appRepo := repoWith(app)
		publisher := &mockEventPublisher{}
		uc := usecase.NewApproveApplicationUseCase(appRepo, fixtureProductRepo(t), publisher, fixedClock{frozenNow.Add(2 * time.Hour)})

		resp, err := uc.Execute(context.Background(), dto.ApproveApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			ApprovedBy:    "staff-007",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, "APPROVED", resp.Decision)
		require.NotNil(t, resp.ApprovedTerms)
		assert.True(t, resp.ApprovedTerms.Amount.Equal(decimal.NewFromInt(50_000)))
		assert.Equal(t, 12, resp.ApprovedTerms.TermMonths)
		assert.Equal(t, "4727.98", resp.ApprovedTerms.MonthlyPayment.String())

		var types []string
		for _, evt := range publisher.publishedEvents {
			types = append(types, evt.EventType())
		}
		assert.Contains(t, types, "application.approved")
	})

	t.Run("applies staff overrides", func(t *testing.T) {
		app := fixtureInReview(t)
		amount := decimal.NewFromInt(40_000)
		term := 18
		rate := decimal.NewFromInt(20)
		uc := usecase.NewApproveApplicationUseCase(repoWith(app), fixtureProductRepo(t), &mockEventPublisher{}, fixedClock{frozenNow})

		resp, err := uc.Execute(context.Background(), dto.ApproveApplicationRequest{
			TenantID:       "tenant-001",
			ApplicationID:  app.ID(),
			ApprovedBy:     "staff-007",
			ApprovedAmount: &amount,
			ApprovedTerm:   &term,
			ApprovedRate:   &rate,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.ApprovedTerms)
		assert.True(t, resp.ApprovedTerms.Amount.Equal(amount))
		assert.Equal(t, 18, resp.ApprovedTerms.TermMonths)
		assert.True(t, resp.ApprovedTerms.AnnualRate.Equal(rate))

		// The requested terms on the record stay untouched.
		assert.True(t, resp.RequestedAmount.Equal(decimal.NewFromInt(50_000)))
		assert.Equal(t, 12, resp.RequestedTermMonths)
	})

	t.Run("refuses to approve a draft", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewApproveApplicationUseCase(repoWith(app), fixtureProductRepo(t), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.ApproveApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			ApprovedBy:    "staff-007",
		})

		var transitionErr *valueobject.IllegalTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Contains(t, err.Error(), "approve application")
	})
}

func TestRejectApplication_Execute(t *testing.T) {
	t.Run("rejects with a reason", func(t *testing.T) {
		app := fixtureInReview(t)
		publisher := &mockEventPublisher{}
		uc := usecase.NewRejectApplicationUseCase(repoWith(app), publisher, fixedClock{frozenNow.Add(2 * time.Hour)})

		resp, err := uc.Execute(context.Background(), dto.RejectApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			RejectedBy:    "staff-007",
			Reason:        "insufficient income",
		})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, "insufficient income", resp.RejectionReason)
	})

	t.Run("requires a reason", func(t *testing.T) {
		app := fixtureInReview(t)
		uc := usecase.NewRejectApplicationUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.RejectApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			RejectedBy:    "staff-007",
		})

		var validationErr *valueobject.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestCancelApplication_Execute(t *testing.T) {
	t.Run("applicant cancels a draft", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewCancelApplicationUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		resp, err := uc.Execute(context.Background(), dto.CancelApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			CancelledBy:   "person-001",
			ActorType:     "APPLICANT",
			Reason:        "changed my mind",
		})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("rejects an unknown actor type", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewCancelApplicationUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.CancelApplicationRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			CancelledBy:   "person-001",
			ActorType:     "ROBOT",
			Reason:        "changed my mind",
		})

		require.Error(t, err)
	})
}

func TestMarkSynced_Execute(t *testing.T) {
	app := fixtureInReview(t)
	approved, err := app.Approve(decimal.NewFromInt(50_000), 12, decimal.NewFromInt(24), "staff-007", frozenNow.Add(2*time.Hour))
	require.NoError(t, err)
	approved = approved.ClearSideEffects()

	appRepo := repoWith(approved)
	publisher := &mockEventPublisher{}
	uc := usecase.NewMarkSyncedUseCase(appRepo, publisher, fixedClock{frozenNow.Add(3 * time.Hour)})

	resp, err := uc.Execute(context.Background(), dto.MarkSyncedRequest{
		TenantID:       "tenant-001",
		ApplicationID:  approved.ID(),
		ExternalID:     "CORE-42",
		ExternalSystem: "corebank",
	})

	require.NoError(t, err)
	assert.Equal(t, "SYNCED", resp.Status)
	require.Len(t, appRepo.savedApps, 1)
	assert.Equal(t, "CORE-42", appRepo.savedApps[0].ExternalSync().ExternalID)
}
