package insurance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/insurance-admin/generic"
)

// =============================================================================
// DASHBOARD SUMMARY
// =============================================================================

// NewCustomerWindowDays is how far back customerSince counts as "new".
const NewCustomerWindowDays = 30

// RecentClaimsLimit caps the claims echoed on the dashboard.
const RecentClaimsLimit = 4

type Summary struct {
	TotalPolicies     int             `json:"totalPolicies"`
	ActivePolicies    int             `json:"activePolicies"`
	PremiumRevenue    decimal.Decimal `json:"premiumRevenue"`
	ActiveClaims      int             `json:"activeClaims"`
	PendingClaims     int             `json:"pendingClaims"`
	TotalCustomers    int             `json:"totalCustomers"`
	NewCustomers      int             `json:"newCustomers"`
	RecentClaims      []Claim         `json:"recentClaims"`
	TotalPayments     int             `json:"totalPayments"`
	CompletedPayments decimal.Decimal `json:"completedPaymentsAmount"`
}

// Summarize computes the dashboard figures from store snapshots.
// Amounts are summed across currencies as-is.
func Summarize(policies []Policy, claims []Claim, customers []Customer, payments []Payment, now time.Time) Summary {
	s := Summary{
		TotalPolicies:     len(policies),
		PremiumRevenue:    decimal.Zero,
		TotalCustomers:    len(customers),
		TotalPayments:     len(payments),
		CompletedPayments: decimal.Zero,
		RecentClaims:      make([]Claim, 0, RecentClaimsLimit),
	}

	for _, p := range policies {
		if p.Status == PolicyActive {
			s.ActivePolicies++
			s.PremiumRevenue = s.PremiumRevenue.Add(p.Premium)
		}
	}

	for _, c := range claims {
		switch c.Status {
		case ClaimPending:
			s.PendingClaims++
			s.ActiveClaims++
		case ClaimProcessing:
			s.ActiveClaims++
		}
	}
	s.RecentClaims = append(s.RecentClaims, claims[:min(len(claims), RecentClaimsLimit)]...)

	for _, c := range customers {
		since, err := generic.ParseDate(c.CustomerSince)
		if err != nil {
			continue
		}
		if d := generic.DaysBetween(since, now); d >= 0 && d <= NewCustomerWindowDays {
			s.NewCustomers++
		}
	}

	for _, p := range payments {
		if p.Status == PaymentCompleted {
			s.CompletedPayments = s.CompletedPayments.Add(p.Amount)
		}
	}
	return s
}
