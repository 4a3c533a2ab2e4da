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
	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/service"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// fixtureInReview walks a draft to IN_REVIEW through the aggregate.
func fixtureInReview(t *testing.T) model.Application {
	t.Helper()
	submitted := submitFixture(t, fixtureDraft(t))
	inReview, err := submitted.ChangeStatus(
		valueobject.StatusInReview, "staff-007", valueobject.ActorStaff, "", frozenNow.Add(time.Hour))
	require.NoError(t, err)
	return inReview.ClearSideEffects()
}

func TestSendCounterOffer_Execute(t *testing.T) {
	t.Run("attaches a priced offer", func(t *testing.T) {
		app := fixtureInReview(t)
		appRepo := repoWith(app)
		publisher := &mockEventPublisher{}
		uc := usecase.NewSendCounterOfferUseCase(
			appRepo, fixtureProductRepo(t), service.NewCounterOfferNegotiator(),
			publisher, fixedClock{frozenNow.Add(2 * time.Hour)})

		resp, err := uc.Execute(context.Background(), dto.SendCounterOfferRequest{
			TenantID:           "tenant-001",
			ApplicationID:      app.ID(),
			OfferedBy:          "staff-007",
			ProposedAmount:     decimal.NewFromInt(40_000),
			ProposedTermMonths: 12,
			Reason:             "requested amount exceeds income capacity",
		})

		require.NoError(t, err)
		assert.Equal(t, "IN_REVIEW", resp.Status)
		assert.Equal(t, "COUNTER_OFFER", resp.Decision)
		require.NotNil(t, resp.CounterOffer)
		assert.Equal(t, "3782.38", resp.CounterOffer.MonthlyPayment.String())
		assert.Equal(t, frozenNow.Add(2*time.Hour).Add(service.DefaultCounterOfferTTL), resp.CounterOffer.ExpiresAt)

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "application.counter_offer.sent", publisher.publishedEvents[0].EventType())
	})

	t.Run("refuses outside review", func(t *testing.T) {
		app := fixtureDraft(t)
		uc := usecase.NewSendCounterOfferUseCase(
			repoWith(app), fixtureProductRepo(t), service.NewCounterOfferNegotiator(),
			&mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.SendCounterOfferRequest{
			TenantID:           "tenant-001",
			ApplicationID:      app.ID(),
			OfferedBy:          "staff-007",
			ProposedAmount:     decimal.NewFromInt(40_000),
			ProposedTermMonths: 12,
		})

		var validationErr *valueobject.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, err.Error(), "send counter offer")
	})
}

func TestRespondCounterOffer_Execute(t *testing.T) {
	withOffer := func(t *testing.T) model.Application {
		t.Helper()
		app := fixtureInReview(t)
		negotiator := service.NewCounterOfferNegotiator()
		offer, err := negotiator.BuildOffer(fixtureProduct(t),
			decimal.NewFromInt(40_000), 12, nil, "", "staff-007",
			time.Time{}, frozenNow.Add(2*time.Hour))
		require.NoError(t, err)
		pending, err := app.SendCounterOffer(offer, frozenNow.Add(2*time.Hour))
		require.NoError(t, err)
		return pending.ClearSideEffects()
	}

	t.Run("acceptance rewrites the requested terms", func(t *testing.T) {
		app := withOffer(t)
		appRepo := repoWith(app)
		publisher := &mockEventPublisher{}
		uc := usecase.NewRespondCounterOfferUseCase(appRepo, publisher, fixedClock{frozenNow.Add(3 * time.Hour)})

		resp, err := uc.Execute(context.Background(), dto.RespondCounterOfferRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			Accepted:      true,
		})

		require.NoError(t, err)
		assert.Equal(t, "IN_REVIEW", resp.Status)
		assert.True(t, resp.RequestedAmount.Equal(decimal.NewFromInt(40_000)))
		assert.Equal(t, "3782.38", resp.MonthlyPayment.String())
		assert.Nil(t, resp.CounterOffer)
		assert.Empty(t, resp.Decision)

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "application.counter_offer.responded", publisher.publishedEvents[0].EventType())
	})

	t.Run("decline keeps the requested terms", func(t *testing.T) {
		app := withOffer(t)
		uc := usecase.NewRespondCounterOfferUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow.Add(3 * time.Hour)})

		resp, err := uc.Execute(context.Background(), dto.RespondCounterOfferRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			Accepted:      false,
		})

		require.NoError(t, err)
		assert.True(t, resp.RequestedAmount.Equal(decimal.NewFromInt(50_000)))
		assert.Nil(t, resp.CounterOffer)
	})

	t.Run("fails without an active offer", func(t *testing.T) {
		app := fixtureInReview(t)
		uc := usecase.NewRespondCounterOfferUseCase(repoWith(app), &mockEventPublisher{}, fixedClock{frozenNow})

		_, err := uc.Execute(context.Background(), dto.RespondCounterOfferRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			Accepted:      true,
		})

		require.ErrorIs(t, err, valueobject.ErrNoActiveCounterOffer)
	})

	t.Run("fails on an expired offer", func(t *testing.T) {
		app := withOffer(t)
		lateClock := fixedClock{frozenNow.Add(2*time.Hour + service.DefaultCounterOfferTTL + time.Minute)}
		uc := usecase.NewRespondCounterOfferUseCase(repoWith(app), &mockEventPublisher{}, lateClock)

		_, err := uc.Execute(context.Background(), dto.RespondCounterOfferRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			Accepted:      true,
		})

		require.ErrorIs(t, err, valueobject.ErrNoActiveCounterOffer)
	})

	t.Run("surfaces a concurrent modification on save", func(t *testing.T) {
		app := withOffer(t)
		appRepo := repoWith(app)
		appRepo.saveFunc = func(_ context.Context, _ model.Application) error {
			return valueobject.ErrConcurrentModification
		}
		uc := usecase.NewRespondCounterOfferUseCase(appRepo, &mockEventPublisher{}, fixedClock{frozenNow.Add(3 * time.Hour)})

		_, err := uc.Execute(context.Background(), dto.RespondCounterOfferRequest{
			TenantID:      "tenant-001",
			ApplicationID: app.ID(),
			Accepted:      true,
		})

		require.ErrorIs(t, err, valueobject.ErrConcurrentModification)
		assert.Contains(t, err.Error(), "save application")
	})
}
