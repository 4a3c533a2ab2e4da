package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/origination/internal/domain/service"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

func TestBuildOffer(t *testing.T) {
	negotiator := service.NewCounterOfferNegotiator()
	rate := decimal.NewFromInt(20)
	expires := testNow.Add(3 * 24 * time.Hour)

	offer, err := negotiator.BuildOffer(testProduct(t),
		decimal.NewFromInt(40_000), 12, &rate,
		"requested amount exceeds income capacity", "staff-007",
		expires, testNow)
	require.NoError(t, err)

	assert.True(t, offer.Amount.Equal(decimal.NewFromInt(40_000)))
	assert.Equal(t, 12, offer.TermMonths)
	assert.True(t, offer.AnnualRate.Equal(rate))
	assert.False(t, offer.MonthlyPayment.IsZero())
	assert.False(t, offer.TotalToPay.IsZero())
	assert.Equal(t, "staff-007", offer.OfferedBy)
	assert.Equal(t, testNow, offer.OfferedAt)
	assert.Equal(t, expires, offer.ExpiresAt)
	assert.True(t, offer.Active(testNow))
}

func TestBuildOffer_RateDefaultsToProduct(t *testing.T) {
	negotiator := service.NewCounterOfferNegotiator()

	offer, err := negotiator.BuildOffer(testProduct(t),
		decimal.NewFromInt(40_000), 12, nil,
		"", "staff-007", time.Time{}, testNow)
	require.NoError(t, err)

	assert.True(t, offer.AnnualRate.Equal(decimal.NewFromInt(24)))
}

func TestBuildOffer_ExpiryDefaultsToSevenDays(t *testing.T) {
	negotiator := service.NewCounterOfferNegotiator()

	offer, err := negotiator.BuildOffer(testProduct(t),
		decimal.NewFromInt(40_000), 12, nil,
		"", "staff-007", time.Time{}, testNow)
	require.NoError(t, err)

	assert.Equal(t, testNow.Add(service.DefaultCounterOfferTTL), offer.ExpiresAt)
	assert.False(t, offer.Active(testNow.Add(8*24*time.Hour)))
}

func TestBuildOffer_Validation(t *testing.T) {
	negotiator := service.NewCounterOfferNegotiator()
	negativeRate := decimal.NewFromInt(-1)

	cases := []struct {
		name      string
		amount    decimal.Decimal
		term      int
		rate      *decimal.Decimal
		offeredBy string
		wantField string
	}{
		{"zero amount", decimal.Zero, 12, nil, "staff-007", "counterOffer.amount"},
		{"zero term", decimal.NewFromInt(40_000), 0, nil, "staff-007", "counterOffer.termMonths"},
		{"missing staff id", decimal.NewFromInt(40_000), 12, nil, "", "counterOffer.offeredBy"},
		{"negative rate", decimal.NewFromInt(40_000), 12, &negativeRate, "staff-007", "counterOffer.annualRate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := negotiator.BuildOffer(testProduct(t),
				tc.amount, tc.term, tc.rate, "", tc.offeredBy, time.Time{}, testNow)
			var validationErr *valueobject.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

// Offers are always priced at the monthly equivalent so applicants can
// compare them against their current quote.
func TestBuildOffer_QuotesMonthly(t *testing.T) {
	negotiator := service.NewCounterOfferNegotiator()
	zeroRate := decimal.Zero

	offer, err := negotiator.BuildOffer(testProduct(t),
		decimal.NewFromInt(12_000), 12, &zeroRate,
		"", "staff-007", time.Time{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "1000", offer.MonthlyPayment.String())
}

func TestSnapshotBuilder(t *testing.T) {
	builder := service.NewSnapshotBuilder()
	app := testDraft(t, "working capital")

	snapshot, err := builder.Build(app, personProfile(), testNow)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Individual)
	assert.Equal(t, "Ana Torres", snapshot.Individual.FullName)
	assert.Equal(t, testNow, snapshot.TakenAt)
}

func TestSnapshotBuilder_RejectsMismatchedProfile(t *testing.T) {
	builder := service.NewSnapshotBuilder()
	app := testDraft(t, "working capital")

	profile := personProfile()
	profile.Individual = nil

	_, err := builder.Build(app, profile, testNow)
	var validationErr *valueobject.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "snapshot", validationErr.Field)
}
