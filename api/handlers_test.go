/*
handlers_test.go - End-to-end tests for the HTTP API

Tests run against the full chi router with fresh in-memory stores per
test, a pinned clock and a fixed payment reference.
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/warp/insurance-admin/generic"
	"github.com/warp/insurance-admin/generic/store"
	"github.com/warp/insurance-admin/insurance"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var testNow = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

type testAPI struct {
	t       *testing.T
	handler *Handler
	router  http.Handler
}

func newTestAPI(t *testing.T, opts RouterOptions) *testAPI {
	t.Helper()
	seed := insurance.NewSeed()
	h := NewHandler(Stores{
		Policies:  store.NewMemory(seed.Policies),
		Claims:    store.NewMemory(seed.Claims),
		Customers: store.NewMemory(seed.Customers),
		Payments:  store.NewMemory(seed.Payments),
	},
		WithClock(func() time.Time { return testNow }),
		WithReferenceGenerator(func() string { return "REF-424242" }),
	)
	return &testAPI{t: t, handler: h, router: NewRouter(h, opts)}
}

func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, rec).Error
}

func (a *testAPI) paymentCount() int {
	recs, err := a.handler.Payments.List(context.Background())
	require.NoError(a.t, err)
	return len(recs)
}

// =============================================================================
// LIST ENDPOINTS
// =============================================================================

func TestListClaims_DefaultPage(t *testing.T) {
	// GIVEN: The 6 seeded claims
	api := newTestAPI(t, RouterOptions{})

	// WHEN: Requesting page 1 with page size 10
	rec := api.do(http.MethodGet, "/api/claims?page=1&pageSize=10", "")

	// THEN: One page with all 6 claims
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, max-age=60", rec.Header().Get("Cache-Control"))
	page := decode[generic.Page[insurance.Claim]](t, rec)
	assert.Len(t, page.Items, 6)
	assert.Equal(t, generic.PaginationInfo{
		CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 6,
	}, page.Pagination)
}

func TestListPolicies_StatusFilterAndSort(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/policies?status=active&sortField=premium&sortDirection=desc", "")

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[generic.Page[insurance.Policy]](t, rec)
	var numbers []string
	for _, p := range page.Items {
		numbers = append(numbers, p.PolicyNumber)
	}
	assert.Equal(t, []string{"POL-1004", "POL-1003", "POL-1001", "POL-1002"}, numbers)
}

func TestListPolicies_AllDisablesFilter(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/policies?status=all&type=all", "")
	page := decode[generic.Page[insurance.Policy]](t, rec)
	assert.Equal(t, 6, page.Pagination.TotalItems)
}

func TestListPolicies_CoverageDetailsFilter(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/policies?filter=coverageDetails.deductible:gte:1000", "")

	page := decode[generic.Page[insurance.Policy]](t, rec)
	var ids []int
	for _, p := range page.Items {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2, 4, 6}, ids)
}

func TestListClaims_AmountRange(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/claims?minAmount=1200&maxAmount=3200&sortField=amount", "")

	page := decode[generic.Page[insurance.Claim]](t, rec)
	var ids []string
	for _, c := range page.Items {
		ids = append(ids, c.ClaimID)
	}
	assert.Equal(t, []string{"CLM-1005", "CLM-1002", "CLM-1001", "CLM-1003"}, ids)
}

func TestListClaims_MalformedAmountIgnored(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/claims?minAmount=lots", "")
	page := decode[generic.Page[insurance.Claim]](t, rec)
	assert.Equal(t, 6, page.Pagination.TotalItems)
}

func TestListCustomers_SearchAndState(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/customers?search=anytown", "")
	page := decode[generic.Page[insurance.Customer]](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "John Smith", page.Items[0].Name)

	rec = api.do(http.MethodGet, "/api/customers?state=TX", "")
	page = decode[generic.Page[insurance.Customer]](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Michael Brown", page.Items[0].Name)
}

func TestListPayments_CustomerAndPaging(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/payments?customerId=1", "")
	page := decode[generic.Page[insurance.Payment]](t, rec)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "PAY-1001", page.Items[0].PaymentID)
	assert.Equal(t, "PAY-1011", page.Items[1].PaymentID)

	rec = api.do(http.MethodGet, "/api/payments?page=2&pageSize=5", "")
	page = decode[generic.Page[insurance.Payment]](t, rec)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "PAY-1006", page.Items[0].PaymentID)
	assert.True(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPreviousPage)
}

func TestListPayments_CustomerIDParsedPermissively(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	tests := []struct {
		query string
		want  []string
	}{
		{"customerId=1abc", []string{"PAY-1001", "PAY-1011"}},
		{"customerId=%202", []string{"PAY-1002", "PAY-1012"}},
		{"customerId=abc", []string{}},
		{"customerId=0", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := api.do(http.MethodGet, "/api/payments?"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			page := decode[generic.Page[insurance.Payment]](t, rec)

			got := []string{}
			for _, p := range page.Items {
				got = append(got, p.PaymentID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), page.Pagination.TotalItems)
		})
	}
}

func TestListPayments_SearchByAmountText(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/payments?search=750.5", "")
	page := decode[generic.Page[insurance.Payment]](t, rec)
	assert.Equal(t, 2, page.Pagination.TotalItems)
}

func TestList_PermissivePaging(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/payments?page=abc&pageSize=-3", "")
	page := decode[generic.Page[insurance.Payment]](t, rec)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 10, page.Pagination.PageSize)

	rec = api.do(http.MethodGet, "/api/payments?page=99", "")
	page = decode[generic.Page[insurance.Payment]](t, rec)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Len(t, page.Items, 2)
}

func TestList_EmptyResultIsEmptyArray(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/claims?search=nothing-matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

// =============================================================================
// RETRIEVE
// =============================================================================

func TestGetByIdentifier(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	tests := []struct {
		target string
		status int
		want   string
	}{
		{"/api/policies/3", http.StatusOK, `"policyNumber":"POL-1003"`},
		{"/api/policies/42", http.StatusNotFound, `"error":"Policy not found"`},
		{"/api/policies/abc", http.StatusNotFound, `"error":"Policy not found"`},
		{"/api/claims/CLM-1002", http.StatusOK, `"description":"Water damage from burst pipe"`},
		{"/api/claims/CLM-9999", http.StatusNotFound, `"error":"Claim not found"`},
		{"/api/customers/6", http.StatusOK, `"claims":[]`},
		{"/api/customers/0", http.StatusNotFound, `"error":"Customer not found"`},
		{"/api/payments/PAY-1005", http.StatusOK, `"status":"failed"`},
		{"/api/payments/PAY-0000", http.StatusNotFound, `"error":"Payment not found"`},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := api.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestGetPayment_AmountIsJSONNumber(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/payments/PAY-1001", "")
	assert.Contains(t, rec.Body.String(), `"amount":750.5`)
}

// =============================================================================
// CREATE
// =============================================================================

func TestCreateClaim(t *testing.T) {
	// GIVEN: 6 seeded claims
	api := newTestAPI(t, RouterOptions{})

	// WHEN: Filing a complete claim
	rec := api.do(http.MethodPost, "/api/claims", `{"policyNumber":"POL-1001","customerId":1,
		"customer":"John Smith","amount":300,"incidentDate":"2024-05-30","description":"Cracked windshield"}`)

	// THEN: It gets the next id, today's filing date and pending status
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	claim := decode[insurance.Claim](t, rec)
	assert.Equal(t, 7, claim.ID)
	assert.Equal(t, "CLM-1007", claim.ClaimID)
	assert.Equal(t, "2024-06-01", claim.FiledDate)
	assert.Equal(t, insurance.ClaimPending, claim.Status)
	assert.Equal(t, []string{}, claim.Documents)

	rec = api.do(http.MethodGet, "/api/claims/CLM-1007", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateClaim_MissingDescription(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodPost, "/api/claims", `{"policyNumber":"POL-1001","customerId":1,
		"customer":"John Smith","amount":300,"incidentDate":"2024-05-30"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: description", errorOf(t, rec))

	list := decode[generic.Page[insurance.Claim]](t, api.do(http.MethodGet, "/api/claims", ""))
	assert.Equal(t, 6, list.Pagination.TotalItems)
}

func TestCreatePolicy(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodPost, "/api/policies", `{"customerId":2,"customer":"Sarah Johnson",
		"type":"Life Insurance","premium":899.99,"startDate":"2024-06-01","endDate":"2025-05-31"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[insurance.Policy](t, rec)
	assert.Equal(t, "POL-1007", p.PolicyNumber)
	assert.Equal(t, insurance.PolicyPending, p.Status)
	assert.True(t, p.Premium.Equal(decimal.RequireFromString("899.99")))
}

func TestCreateCustomer(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodPost, "/api/customers", `{"name":"Ana Silva","email":"ana@example.com",
		"phone":"(555) 000-1111","address":{"street":"1 Elm St","city":"Springfield","state":"OR","zipCode":"97477"}}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[insurance.Customer](t, rec)
	assert.Equal(t, 7, c.ID)
	assert.Equal(t, "2024-06-01", c.CustomerSince)
	assert.Equal(t, insurance.DefaultAvatar, c.Avatar)
	assert.Equal(t, "OR", c.Address.State)
}

func TestCreatePayment(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodPost, "/api/payments", `{"customerId":3,"customer":"Michael Brown",
		"amount":1025.25,"currency":"EUR","date":"2024-06-15","method":"check"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[insurance.Payment](t, rec)
	assert.Equal(t, "PAY-1013", p.PaymentID)
	assert.Equal(t, "REF-424242", p.ReferenceNumber)
	assert.Equal(t, insurance.PaymentPending, p.Status)
	assert.Equal(t, insurance.DefaultPaymentDescription, p.Description)
	assert.Equal(t, 13, api.paymentCount())
}

func TestCreatePayment_Errors(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"invalid method", `{"customerId":3,"customer":"M","amount":1,"currency":"EUR","date":"2024-06-15","method":"cash"}`, "Invalid payment method: cash"},
		{"missing currency", `{"customerId":3,"customer":"M","amount":1,"date":"2024-06-15","method":"check"}`, "Missing required field: currency"},
		{"malformed json", `{"customerId":`, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/payments", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.msg, errorOf(t, rec))
		})
	}
	assert.Equal(t, 12, api.paymentCount())
}

// =============================================================================
// UPDATE / DELETE
// =============================================================================

func TestUpdatePayment(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodPut, "/api/payments/PAY-1003", `{"status":"completed","description":"Cleared"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[insurance.Payment](t, rec)
	assert.Equal(t, insurance.PaymentCompleted, p.Status)
	assert.Equal(t, "Cleared", p.Description)
	assert.Equal(t, "REF-345678", p.ReferenceNumber)

	got := decode[insurance.Payment](t, api.do(http.MethodGet, "/api/payments/PAY-1003", ""))
	assert.Equal(t, insurance.PaymentCompleted, got.Status)
}

func TestUpdatePayment_InvalidStatusLeavesRecord(t *testing.T) {
	// GIVEN: A pending payment
	api := newTestAPI(t, RouterOptions{})
	before := api.do(http.MethodGet, "/api/payments/PAY-1003", "").Body.String()

	// WHEN: Updating with an unknown status
	rec := api.do(http.MethodPut, "/api/payments/PAY-1003", `{"status":"bogus","amount":1}`)

	// THEN: 400 and the stored record is unchanged
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid payment status: bogus", errorOf(t, rec))
	after := api.do(http.MethodGet, "/api/payments/PAY-1003", "").Body.String()
	assert.Equal(t, before, after)
}

func TestUpdatePayment_NotFoundBeforeValidation(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodPut, "/api/payments/PAY-9999", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payment not found", errorOf(t, rec))
}

func TestDeletePayment(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodDelete, "/api/payments/PAY-1002", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, 11, api.paymentCount())

	rec = api.do(http.MethodDelete, "/api/payments/PAY-1002", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 11, api.paymentCount())
}

func TestCreatePayment_AfterDeleteUsesMaxPlusOne(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/payments/PAY-1012", "").Code)
	rec := api.do(http.MethodPost, "/api/payments", `{"customerId":1,"customer":"John Smith",
		"amount":10,"currency":"EUR","date":"2024-06-15","method":"check"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "PAY-1012", decode[insurance.Payment](t, rec).PaymentID)
}

// =============================================================================
// DASHBOARD / DOCS / OPS
// =============================================================================

func TestDashboard(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	s := decode[insurance.Summary](t, rec)
	assert.Equal(t, 6, s.TotalPolicies)
	assert.Equal(t, 4, s.ActivePolicies)
	assert.Equal(t, 4, s.ActiveClaims)
	assert.Len(t, s.RecentClaims, 4)
	assert.Equal(t, 0, s.NewCustomers)
}

func TestReset_FeatureFlag(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		api := newTestAPI(t, RouterOptions{})
		rec := api.do(http.MethodPost, "/api/reset", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("enabled restores seed", func(t *testing.T) {
		api := newTestAPI(t, RouterOptions{EnableReset: true})
		require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/payments/PAY-1001", "").Code)

		rec := api.do(http.MethodPost, "/api/reset", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 12, decode[ResetResponse](t, rec).Payments)
		assert.Equal(t, 12, api.paymentCount())
	})
}

func TestOpenAPIDocs(t *testing.T) {
	api := newTestAPI(t, RouterOptions{})

	rec := api.do(http.MethodGet, "/api/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[map[string]any](t, rec)
	assert.Equal(t, "3.0.0", doc["openapi"])
	paths := doc["paths"].(map[string]any)
	assert.Contains(t, paths, "/api/payments/{paymentId}")
	assert.Contains(t, paths, "/api/claims/{claimId}")
	payments := paths["/api/payments"].(map[string]any)["get"].(map[string]any)
	assert.Contains(t, payments["description"], "referenceNumber")

	rec = api.do(http.MethodGet, "/api/docs.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &fromYAML))
	info := fromYAML["info"].(map[string]any)
	assert.Equal(t, "Insurance Platform API Documentation", info["title"])
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	api := newTestAPI(t, RouterOptions{Metrics: NewMetrics(reg, reg)})

	rec := api.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	api.do(http.MethodGet, "/api/payments/PAY-1001", "")
	rec = api.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`insurance_admin_http_requests_total{method="GET",route="/api/payments/{paymentId}",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/payments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
