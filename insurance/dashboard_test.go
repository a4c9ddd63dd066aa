package insurance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_SeedData(t *testing.T) {
	// GIVEN: The seed data, a month after customer 4 joined
	seed := NewSeed()
	now := time.Date(2022, time.February, 15, 12, 0, 0, 0, time.UTC)

	// WHEN: Summarizing
	s := Summarize(seed.Policies, seed.Claims, seed.Customers, seed.Payments, now)

	// THEN: Counts and sums match the seed
	assert.Equal(t, 6, s.TotalPolicies)
	assert.Equal(t, 4, s.ActivePolicies)
	assert.True(t, s.PremiumRevenue.Equal(decimal.NewFromInt(1200+950+2500+3200)), s.PremiumRevenue.String())
	assert.Equal(t, 4, s.ActiveClaims)
	assert.Equal(t, 2, s.PendingClaims)
	assert.Equal(t, 6, s.TotalCustomers)
	assert.Equal(t, 1, s.NewCustomers)
	assert.Equal(t, 12, s.TotalPayments)
	assert.True(t, s.CompletedPayments.Equal(decimal.RequireFromString("6378.25")), s.CompletedPayments.String())

	assert.Len(t, s.RecentClaims, 4)
	assert.Equal(t, "CLM-1001", s.RecentClaims[0].ClaimID)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil, nil, time.Now())
	assert.Equal(t, 0, s.TotalPolicies)
	assert.True(t, s.PremiumRevenue.IsZero())
	assert.NotNil(t, s.RecentClaims)
	assert.Empty(t, s.RecentClaims)
}

func TestSeed_ReturnsFreshCopies(t *testing.T) {
	a := SeedPolicies()
	a[0].CoverageDetails["deductible"] = 1
	a[0].Customer = "changed"

	b := SeedPolicies()
	assert.Equal(t, 500, b[0].CoverageDetails["deductible"])
	assert.Equal(t, "John Smith", b[0].Customer)
}

func TestSeed_BusinessIDsMatchIDs(t *testing.T) {
	for _, p := range SeedPolicies() {
		assert.Equal(t, BusinessID(PolicyPrefix, p.ID), p.PolicyNumber)
	}
	for _, c := range SeedClaims() {
		assert.Equal(t, BusinessID(ClaimPrefix, c.ID), c.ClaimID)
	}
	for _, p := range SeedPayments() {
		assert.Equal(t, BusinessID(PaymentPrefix, p.ID), p.PaymentID)
		assert.True(t, p.Method.Valid())
		assert.True(t, p.Status.Valid())
	}
}
