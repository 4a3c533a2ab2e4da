package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/origination/internal/domain/event"
	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

const draftTTL = 30 * 24 * time.Hour

func testProduct(t *testing.T) model.Product {
	t.Helper()
	product, err := model.NewProduct(
		"personal-loan",
		decimal.NewFromInt(24), decimal.NewFromInt(3),
		decimal.NewFromInt(5_000), decimal.NewFromInt(500_000),
		3, 60,
		[]valueobject.PaymentFrequency{valueobject.FrequencyMonthly, valueobject.FrequencyBiweekly},
		[]string{"ID", "PROOF_OF_ADDRESS"},
	)
	require.NoError(t, err)
	return product
}

func newDraft(t *testing.T) model.Application {
	t.Helper()
	app, err := model.NewApplication(
		"tenant-001", "person-001", "", testProduct(t),
		decimal.NewFromInt(50_000), 12, valueobject.FrequencyMonthly,
		"working capital", draftTTL, testNow,
	)
	require.NoError(t, err)
	return app
}

func testSnapshot(t *testing.T) model.ApplicantSnapshot {
	t.Helper()
	snapshot, err := model.NewIndividualSnapshot(model.IndividualSnapshot{
		FullName:     "Ana Torres",
		GovernmentID: "GOV-123",
		BirthDate:    "1991-04-02",
		Nationality:  "MX",
		Address:      "1 Main St",
	}, testNow)
	require.NoError(t, err)
	return snapshot
}

// submitted returns an application moved through DRAFT -> SUBMITTED ->
// IN_REVIEW with side effects cleared.
func inReview(t *testing.T) model.Application {
	t.Helper()
	app := newDraft(t)
	app, err := app.Submit(testSnapshot(t), model.VerificationChecklist{
		IdentityVerified:   true,
		PurposeProvided:    true,
		DocumentsComplete:  true,
		AcceptedReferences: 2,
	}, valueobject.RiskLow, decimal.NewFromFloat(23.64), "person-001", testNow)
	require.NoError(t, err)
	app, err = app.ChangeStatus(valueobject.StatusInReview, "staff-007", valueobject.ActorStaff, "", testNow.Add(time.Hour))
	require.NoError(t, err)
	return app.ClearSideEffects()
}

func TestNewApplication(t *testing.T) {
	app := newDraft(t)

	assert.NotEmpty(t, app.ID())
	assert.True(t, app.Status().Equal(valueobject.StatusDraft))
	assert.Equal(t, 1, app.Version())
	assert.Equal(t, testNow.Add(draftTTL), app.ExpiresAt())

	// Pricing runs at creation: rate and commission are copied off the product.
	assert.True(t, app.InterestRate().Equal(decimal.NewFromInt(24)))
	assert.True(t, app.CommissionRate().Equal(decimal.NewFromInt(3)))
	assert.True(t, app.MonthlyPayment().Equal(decimal.NewFromFloat(4727.98)))

	require.Len(t, app.DomainEvents(), 1)
	created, ok := app.DomainEvents()[0].(event.ApplicationCreated)
	require.True(t, ok)
	assert.Equal(t, "application.created", created.EventType())
	assert.Equal(t, app.ID(), created.AggregateID())

	require.Len(t, app.PendingHistory(), 1)
	entry := app.PendingHistory()[0]
	assert.True(t, entry.FromStatus.IsZero())
	assert.True(t, entry.ToStatus.Equal(valueobject.StatusDraft))
}

func TestNewApplication_ExactlyOneApplicantRef(t *testing.T) {
	product := testProduct(t)

	_, err := model.NewApplication("tenant-001", "", "", product,
		decimal.NewFromInt(50_000), 12, valueobject.FrequencyMonthly, "p", draftTTL, testNow)
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "applicantRef", validationErr.Field)

	_, err = model.NewApplication("tenant-001", "person-001", "company-001", product,
		decimal.NewFromInt(50_000), 12, valueobject.FrequencyMonthly, "p", draftTTL, testNow)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "applicantRef", validationErr.Field)
}

func TestNewApplication_EnforcesProductLimits(t *testing.T) {
	product := testProduct(t)

	_, err := model.NewApplication("tenant-001", "person-001", "", product,
		decimal.NewFromInt(1_000), 12, valueobject.FrequencyMonthly, "p", draftTTL, testNow)
	require.Error(t, err, "below product minimum amount")

	_, err = model.NewApplication("tenant-001", "person-001", "", product,
		decimal.NewFromInt(50_000), 120, valueobject.FrequencyMonthly, "p", draftTTL, testNow)
	require.Error(t, err, "beyond product maximum term")

	_, err = model.NewApplication("tenant-001", "person-001", "", product,
		decimal.NewFromInt(50_000), 12, valueobject.FrequencyWeekly, "p", draftTTL, testNow)
	require.Error(t, err, "frequency not allowed by product")
}

func TestUpdateLoanTerms_RecomputesAndIsDeterministic(t *testing.T) {
	app := newDraft(t)
	newAmount := decimal.NewFromInt(60_000)
	newTerm := 24

	updated, err := app.UpdateLoanTerms(testProduct(t), &newAmount, &newTerm, nil, nil, testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, updated.RequestedAmount().Equal(newAmount))
	assert.Equal(t, 24, updated.RequestedTermMonths())
	assert.False(t, updated.MonthlyPayment().Equal(app.MonthlyPayment()))

	// The receiver is untouched.
	assert.True(t, app.RequestedAmount().Equal(decimal.NewFromInt(50_000)))
	assert.Equal(t, 12, app.RequestedTermMonths())

	// Same inputs, same outputs.
	again, err := app.UpdateLoanTerms(testProduct(t), &newAmount, &newTerm, nil, nil, testNow.Add(2*time.Minute))
	require.NoError(t, err)
	assert.True(t, again.MonthlyPayment().Equal(updated.MonthlyPayment()))
	assert.True(t, again.TotalInterest().Equal(updated.TotalInterest()))
	assert.True(t, again.TotalAmount().Equal(updated.TotalAmount()))
	assert.True(t, again.CAT().Equal(updated.CAT()))
}

func TestUpdateLoanTerms_OnlyWhileDraft(t *testing.T) {
	app := inReview(t)
	newAmount := decimal.NewFromInt(60_000)

	_, err := app.UpdateLoanTerms(testProduct(t), &newAmount, nil, nil, nil, testNow)
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}

func TestSubmit(t *testing.T) {
	app := newDraft(t)

	submitted, err := app.Submit(testSnapshot(t), model.VerificationChecklist{
		IdentityVerified:   true,
		PurposeProvided:    true,
		DocumentsComplete:  true,
		AcceptedReferences: 3,
	}, valueobject.RiskLow, decimal.NewFromFloat(20), "person-001", testNow.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, submitted.Status().Equal(valueobject.StatusSubmitted))
	assert.Equal(t, testNow.Add(time.Hour), submitted.SubmittedAt())
	assert.False(t, submitted.Snapshot().IsZero())
	assert.True(t, submitted.RiskLevel().Equal(valueobject.RiskLow))

	// application.created, application.status_changed, application.submitted
	types := make([]string, 0, len(submitted.DomainEvents()))
	for _, evt := range submitted.DomainEvents() {
		types = append(types, evt.EventType())
	}
	assert.Contains(t, types, "application.status_changed")
	assert.Contains(t, types, "application.submitted")
}

func TestSubmit_SnapshotIsWriteOnce(t *testing.T) {
	app := inReview(t)

	_, err := app.Submit(testSnapshot(t), model.VerificationChecklist{},
		valueobject.RiskLow, decimal.Zero, "person-001", testNow)
	require.ErrorIs(t, err, valueobject.ErrSnapshotAlreadyTaken)
}

func TestSubmit_ExpiredDraft(t *testing.T) {
	app := newDraft(t)

	_, err := app.Submit(testSnapshot(t), model.VerificationChecklist{},
		valueobject.RiskLow, decimal.Zero, "person-001", testNow.Add(draftTTL+time.Hour))
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "expiresAt", validationErr.Field)
}

func TestSnapshotSurvivesLaterMutations(t *testing.T) {
	app := inReview(t)
	original := app.Snapshot()

	assigned, err := app.Assign("staff-007", "lead-001", testNow.Add(2*time.Hour))
	require.NoError(t, err)
	approved, err := assigned.Approve(decimal.NewFromInt(50_000), 12, decimal.NewFromInt(24), "staff-007", testNow.Add(3*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, original, approved.Snapshot())
}

func TestApprove(t *testing.T) {
	app := inReview(t)

	approved, err := app.Approve(decimal.NewFromInt(40_000), 18, decimal.NewFromInt(22), "staff-007", testNow.Add(2*time.Hour))
	require.NoError(t, err)

	assert.True(t, approved.Status().Equal(valueobject.StatusApproved))
	assert.True(t, approved.Decision().Equal(valueobject.DecisionApproved))

	terms := approved.ApprovedTerms()
	require.NotNil(t, terms)
	assert.True(t, terms.Amount.Equal(decimal.NewFromInt(40_000)))
	assert.Equal(t, 18, terms.TermMonths)
	assert.False(t, terms.MonthlyPayment.IsZero())

	// Requested terms are preserved alongside the granted ones.
	assert.True(t, approved.RequestedAmount().Equal(decimal.NewFromInt(50_000)))
	assert.Equal(t, 12, approved.RequestedTermMonths())

	// Approval is immutable.
	_, err = approved.Approve(decimal.NewFromInt(45_000), 12, decimal.NewFromInt(24), "staff-008", testNow.Add(3*time.Hour))
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "approvedTerms", validationErr.Field)
}

func TestReject_RequiresReason(t *testing.T) {
	app := inReview(t)

	_, err := app.Reject("", "staff-007", testNow)
	require.Error(t, err)

	rejected, err := app.Reject("insufficient income", "staff-007", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, rejected.Status().Equal(valueobject.StatusRejected))
	assert.Equal(t, "insufficient income", rejected.RejectionReason())
	assert.True(t, rejected.Status().IsTerminal())
}

func TestCancel_RequiresReason(t *testing.T) {
	app := newDraft(t)

	_, err := app.Cancel("", "person-001", valueobject.ActorApplicant, testNow)
	require.Error(t, err)

	cancelled, err := app.Cancel("changed my mind", "person-001", valueobject.ActorApplicant, testNow)
	require.NoError(t, err)
	assert.True(t, cancelled.Status().Equal(valueobject.StatusCancelled))
}

func TestChangeStatus_RequiresNamedActorForManualTransitions(t *testing.T) {
	app := newDraft(t)

	_, err := app.ChangeStatus(valueobject.StatusSubmitted, "", valueobject.ActorApplicant, "", testNow)
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "changedBy", validationErr.Field)
}

func TestChangeStatus_AutomaticTransitionAllowsEmptyActor(t *testing.T) {
	app := inReview(t)
	corrections, err := app.ChangeStatus(valueobject.StatusCorrectionsPending, "staff-007", valueobject.ActorStaff, "missing payslip", testNow)
	require.NoError(t, err)

	resumed, err := corrections.ChangeStatus(valueobject.StatusInReview, "", valueobject.ActorSystem, "", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, resumed.Status().Equal(valueobject.StatusInReview))
}

func TestChangeStatus_DeniedTransitionLeavesStateUntouched(t *testing.T) {
	app := newDraft(t)

	_, err := app.ChangeStatus(valueobject.StatusApproved, "staff-007", valueobject.ActorStaff, "", testNow)
	var transitionErr *valueobject.IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.True(t, app.Status().Equal(valueobject.StatusDraft))
}

func TestMarkSynced(t *testing.T) {
	app := inReview(t)
	approved, err := app.Approve(decimal.NewFromInt(50_000), 12, decimal.NewFromInt(24), "staff-007", testNow)
	require.NoError(t, err)

	synced, err := approved.MarkSynced("CORE-42", "corebank", "", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, synced.Status().Equal(valueobject.StatusSynced))
	assert.Equal(t, "CORE-42", synced.ExternalSync().ExternalID)
	assert.Equal(t, "corebank", synced.ExternalSync().ExternalSystem)
}

func TestMarkSynced_RequiresExternalID(t *testing.T) {
	app := inReview(t)
	approved, err := app.Approve(decimal.NewFromInt(50_000), 12, decimal.NewFromInt(24), "staff-007", testNow)
	require.NoError(t, err)

	_, err = approved.MarkSynced("", "corebank", "staff-007", testNow.Add(time.Hour))

	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "externalId", validationErr.Field)
	assert.True(t, approved.ExternalSync().SyncedAt.IsZero())
}

func TestCounterOfferFlow(t *testing.T) {
	app := inReview(t)

	offer := model.CounterOffer{
		Amount:         decimal.NewFromInt(40_000),
		TermMonths:     12,
		AnnualRate:     decimal.NewFromInt(24),
		MonthlyPayment: decimal.NewFromFloat(3782.38),
		TotalToPay:     decimal.NewFromFloat(45388.56),
		OfferedBy:      "staff-007",
		OfferedAt:      testNow,
		ExpiresAt:      testNow.Add(7 * 24 * time.Hour),
	}

	withOffer, err := app.SendCounterOffer(offer, testNow)
	require.NoError(t, err)
	assert.True(t, withOffer.Decision().Equal(valueobject.DecisionCounterOffer))
	assert.False(t, withOffer.CounterOffer().IsZero())

	accepted, err := withOffer.RespondToCounterOffer(true, testNow.Add(24*time.Hour))
	require.NoError(t, err)

	// Accepting rewrites the requested terms and reprices.
	assert.True(t, accepted.RequestedAmount().Equal(decimal.NewFromInt(40_000)))
	assert.Equal(t, 12, accepted.RequestedTermMonths())
	assert.True(t, accepted.MonthlyPayment().Equal(decimal.NewFromFloat(3782.38)),
		"payment should be repriced for the offered terms, got %s", accepted.MonthlyPayment())

	// The offer is cleared, the decision reset and review continues.
	assert.True(t, accepted.CounterOffer().IsZero())
	assert.True(t, accepted.Decision().IsZero())
	assert.True(t, accepted.Status().Equal(valueobject.StatusInReview))
}

func TestCounterOffer_DeclineKeepsRequestedTerms(t *testing.T) {
	app := inReview(t)
	offer := model.CounterOffer{
		Amount:     decimal.NewFromInt(40_000),
		TermMonths: 12,
		AnnualRate: decimal.NewFromInt(24),
		OfferedBy:  "staff-007",
		OfferedAt:  testNow,
		ExpiresAt:  testNow.Add(7 * 24 * time.Hour),
	}
	withOffer, err := app.SendCounterOffer(offer, testNow)
	require.NoError(t, err)

	declined, err := withOffer.RespondToCounterOffer(false, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, declined.RequestedAmount().Equal(decimal.NewFromInt(50_000)))
	assert.True(t, declined.CounterOffer().IsZero())
	assert.True(t, declined.Status().Equal(valueobject.StatusInReview))
}

func TestCounterOffer_CannotRespondWithoutActiveOffer(t *testing.T) {
	app := inReview(t)

	_, err := app.RespondToCounterOffer(true, testNow)
	require.ErrorIs(t, err, valueobject.ErrNoActiveCounterOffer)
}

func TestCounterOffer_ExpiredOfferCannotBeAccepted(t *testing.T) {
	app := inReview(t)
	offer := model.CounterOffer{
		Amount:     decimal.NewFromInt(40_000),
		TermMonths: 12,
		AnnualRate: decimal.NewFromInt(24),
		OfferedBy:  "staff-007",
		OfferedAt:  testNow,
		ExpiresAt:  testNow.Add(24 * time.Hour),
	}
	withOffer, err := app.SendCounterOffer(offer, testNow)
	require.NoError(t, err)

	_, err = withOffer.RespondToCounterOffer(true, testNow.Add(48*time.Hour))
	require.ErrorIs(t, err, valueobject.ErrNoActiveCounterOffer)
}

func TestCounterOffer_OnlyWhileInReview(t *testing.T) {
	app := newDraft(t)
	offer := model.CounterOffer{
		Amount: decimal.NewFromInt(40_000), TermMonths: 12,
		AnnualRate: decimal.NewFromInt(24),
		OfferedBy:  "staff-007", OfferedAt: testNow,
		ExpiresAt: testNow.Add(24 * time.Hour),
	}
	_, err := app.SendCounterOffer(offer, testNow)
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}

func TestClearSideEffects(t *testing.T) {
	app := newDraft(t)
	require.NotEmpty(t, app.DomainEvents())
	require.NotEmpty(t, app.PendingHistory())

	cleared := app.ClearSideEffects()
	assert.Empty(t, cleared.DomainEvents())
	assert.Empty(t, cleared.PendingHistory())

	// Clearing is itself copy-on-write.
	assert.NotEmpty(t, app.DomainEvents())
}
