/*
handlers.go - HTTP API handlers for the insurance back-office

PURPOSE:
  Exposes the four record stores via a REST API. Handles HTTP
  request/response and JSON serialization, and delegates to the list
  pipeline (generic) and the domain rules (insurance).

ENDPOINTS:
  Policies:
    GET    /api/policies               List (filter, search, sort, page)
    POST   /api/policies               Create
    GET    /api/policies/{id}          Get by numeric id

  Claims:
    GET    /api/claims                 List
    POST   /api/claims                 Create
    GET    /api/claims/{claimId}       Get by business id (CLM-1001)

  Customers:
    GET    /api/customers              List
    POST   /api/customers              Create
    GET    /api/customers/{id}         Get by numeric id

  Payments:
    GET    /api/payments               List
    POST   /api/payments               Create
    GET    /api/payments/{paymentId}   Get by business id (PAY-1001)
    PUT    /api/payments/{paymentId}   Partial update
    DELETE /api/payments/{paymentId}   Delete

  Other:
    GET    /api/dashboard              Summary figures
    POST   /api/reset                  Restore seed data (feature flag)
    GET    /healthz                    Liveness (+ store ping)

ARCHITECTURE:
  Handler holds the stores and everything time- or randomness-dependent
  (clock, reference generator), so tests build isolated handlers.

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (insurance.Decode*)
  3. Call the store / pipeline
  4. Serialize response

ERROR HANDLING:
  Errors are returned as {"error": "..."}:
  - 400: Validation errors, invalid body
  - 404: Record not found
  - 500: Anything else; the cause is logged, never returned

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - params.go: Query string decoding
  - server.go: Router setup and middleware
  - openapi.go: API description
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/warp/insurance-admin/generic"
	"github.com/warp/insurance-admin/insurance"
)

// maxBodyBytes bounds create/update request bodies.
const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Stores groups the per-resource record stores.
type Stores struct {
	Policies  generic.Store[insurance.Policy]
	Claims    generic.Store[insurance.Claim]
	Customers generic.Store[insurance.Customer]
	Payments  generic.Store[insurance.Payment]
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Stores

	logger       *zap.Logger
	clock        generic.Clock
	newReference insurance.ReferenceGenerator
	listMaxAge   time.Duration
	ping         func(context.Context) error
}

type Option func(*Handler)

func WithLogger(l *zap.Logger) Option { return func(h *Handler) { h.logger = l } }

func WithClock(c generic.Clock) Option { return func(h *Handler) { h.clock = c } }

func WithReferenceGenerator(g insurance.ReferenceGenerator) Option {
	return func(h *Handler) { h.newReference = g }
}

// WithListCacheMaxAge sets the Cache-Control max-age of list responses.
// Zero disables the header.
func WithListCacheMaxAge(d time.Duration) Option { return func(h *Handler) { h.listMaxAge = d } }

// WithHealthCheck adds a backend check to /healthz.
func WithHealthCheck(ping func(context.Context) error) Option {
	return func(h *Handler) { h.ping = ping }
}

// NewHandler creates a handler over the given stores.
func NewHandler(stores Stores, opts ...Option) *Handler {
	h := &Handler{
		Stores:       stores,
		logger:       zap.NewNop(),
		clock:        time.Now,
		newReference: insurance.RandomReference,
		listMaxAge:   60 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, h.Policies, insurance.PolicySchema, policyFilters)
}

func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id := numericID(chi.URLParam(r, "id"))
	serveOne(h, w, r, h.Policies, func(p insurance.Policy) bool { return p.ID == id }, "Policy")
}

func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	in, err := insurance.DecodePolicyInput(body)
	if err != nil {
		h.respondError(w, r, err, "Policy", "Failed to create policy")
		return
	}
	policy, err := h.Policies.Create(r.Context(), func(id int) (insurance.Policy, error) {
		return in.Policy(id), nil
	})
	if err != nil {
		h.respondError(w, r, err, "Policy", "Failed to create policy")
		return
	}
	writeJSON(w, http.StatusCreated, policy)
}

// =============================================================================
// CLAIM HANDLERS
// =============================================================================

func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, h.Claims, insurance.ClaimSchema, claimFilters)
}

func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "claimId")
	serveOne(h, w, r, h.Claims, func(c insurance.Claim) bool { return c.ClaimID == claimID }, "Claim")
}

func (h *Handler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	in, err := insurance.DecodeClaimInput(body)
	if err != nil {
		h.respondError(w, r, err, "Claim", "Failed to create claim")
		return
	}
	today := h.clock.Today()
	claim, err := h.Claims.Create(r.Context(), func(id int) (insurance.Claim, error) {
		return in.Claim(id, today), nil
	})
	if err != nil {
		h.respondError(w, r, err, "Claim", "Failed to create claim")
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

// =============================================================================
// CUSTOMER HANDLERS
// =============================================================================

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, h.Customers, insurance.CustomerSchema, customerFilters)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := numericID(chi.URLParam(r, "id"))
	serveOne(h, w, r, h.Customers, func(c insurance.Customer) bool { return c.ID == id }, "Customer")
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	in, err := insurance.DecodeCustomerInput(body)
	if err != nil {
		h.respondError(w, r, err, "Customer", "Failed to create customer")
		return
	}
	today := h.clock.Today()
	customer, err := h.Customers.Create(r.Context(), func(id int) (insurance.Customer, error) {
		return in.Customer(id, today), nil
	})
	if err != nil {
		h.respondError(w, r, err, "Customer", "Failed to create customer")
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

func byPaymentID(id string) func(insurance.Payment) bool {
	return func(p insurance.Payment) bool { return p.PaymentID == id }
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, h.Payments, insurance.PaymentSchema, paymentFilters)
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	serveOne(h, w, r, h.Payments, byPaymentID(chi.URLParam(r, "paymentId")), "Payment")
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	in, err := insurance.DecodePaymentInput(body)
	if err != nil {
		h.respondError(w, r, err, "Payment", "Failed to create payment")
		return
	}
	ref := h.newReference()
	payment, err := h.Payments.Create(r.Context(), func(id int) (insurance.Payment, error) {
		return in.Payment(id, ref), nil
	})
	if err != nil {
		h.respondError(w, r, err, "Payment", "Failed to create payment")
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// UpdatePayment merges the body over the stored payment. The lookup runs
// before the body is decoded, so an unknown id is a 404 whatever the body.
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	updated, err := h.Payments.Update(r.Context(), byPaymentID(chi.URLParam(r, "paymentId")),
		func(cur insurance.Payment) (insurance.Payment, error) {
			patch, err := insurance.DecodePaymentPatch(body)
			if err != nil {
				return cur, err
			}
			return patch.Apply(cur)
		})
	if err != nil {
		h.respondError(w, r, err, "Payment", "Failed to update payment")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	err := h.Payments.Delete(r.Context(), byPaymentID(chi.URLParam(r, "paymentId")))
	if err != nil {
		h.respondError(w, r, err, "Payment", "Failed to delete payment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DASHBOARD / ADMIN
// =============================================================================

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policies, err := h.Policies.List(ctx)
	if err != nil {
		h.respondError(w, r, err, "", "Failed to build dashboard")
		return
	}
	claims, err := h.Claims.List(ctx)
	if err != nil {
		h.respondError(w, r, err, "", "Failed to build dashboard")
		return
	}
	customers, err := h.Customers.List(ctx)
	if err != nil {
		h.respondError(w, r, err, "", "Failed to build dashboard")
		return
	}
	payments, err := h.Payments.List(ctx)
	if err != nil {
		h.respondError(w, r, err, "", "Failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, insurance.Summarize(policies, claims, customers, payments, h.clock()))
}

// Reset restores every store to the seed data.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.ResetStores(r.Context()); err != nil {
		h.respondError(w, r, err, "", "Failed to reset data")
		return
	}
	seed := insurance.NewSeed()
	h.logger.Info("stores reset to seed data", zap.String("request_id", middleware.GetReqID(r.Context())))
	writeJSON(w, http.StatusOK, ResetResponse{
		Status:    "ok",
		Policies:  len(seed.Policies),
		Claims:    len(seed.Claims),
		Customers: len(seed.Customers),
		Payments:  len(seed.Payments),
	})
}

// ResetStores loads a fresh copy of the seed data into every store.
func (h *Handler) ResetStores(ctx context.Context) error {
	seed := insurance.NewSeed()
	if err := h.Policies.Reset(ctx, seed.Policies); err != nil {
		return fmt.Errorf("reset policies: %w", err)
	}
	if err := h.Claims.Reset(ctx, seed.Claims); err != nil {
		return fmt.Errorf("reset claims: %w", err)
	}
	if err := h.Customers.Reset(ctx, seed.Customers); err != nil {
		return fmt.Errorf("reset customers: %w", err)
	}
	if err := h.Payments.Reset(ctx, seed.Payments); err != nil {
		return fmt.Errorf("reset payments: %w", err)
	}
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping == nil {
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
		return
	}
	if err := h.ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "unavailable", Store: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok", Store: "ok"})
}

// =============================================================================
// GENERIC RESOURCE HELPERS
// =============================================================================

// serveList runs the list pipeline over a store snapshot.
func serveList[T generic.Record](h *Handler, w http.ResponseWriter, r *http.Request,
	store generic.Store[T], s *generic.Schema[T], filters filterSet) {
	params, err := decodeListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	recs, err := store.List(r.Context())
	if err != nil {
		h.respondError(w, r, err, "", "Failed to fetch "+s.Resource)
		return
	}

	page := generic.Run(s, recs, params.Query(filters(params)))
	if h.listMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(h.listMaxAge.Seconds())))
	}
	writeJSON(w, http.StatusOK, page)
}

// serveOne writes the first record matching pred, or 404 "<noun> not found".
func serveOne[T generic.Record](h *Handler, w http.ResponseWriter, r *http.Request,
	store generic.Store[T], pred func(T) bool, noun string) {
	rec, err := store.Find(r.Context(), pred)
	if err != nil {
		h.respondError(w, r, err, noun, "Failed to retrieve "+noun)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// numericID reads a path id like parseInt; 0 never matches a record.
func numericID(raw string) int {
	return generic.ParseCount(raw, 0)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

// =============================================================================
// HELPERS
// =============================================================================

// respondError maps err to a status code. noun names the record for 404
// messages; internal is the client message for unexpected failures.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, noun, internal string) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, noun+" not found")
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(internal,
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
		)
		writeError(w, http.StatusInternalServerError, internal)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
