/*
Package insurance defines the back-office records and their rules.

PURPOSE:
  Domain layer on top of the generic engine. Holds the four record types
  (Policy, Claim, Customer, Payment), their allowed enum values, the
  pipeline schemas, create inputs and the payment update semantics.

RECORDS:
  Policy    POL-{1000+id}  status: active | pending | expired | cancelled
  Claim     CLM-{1000+id}  status: pending | processing | approved | rejected
  Customer  (no business id)
  Payment   PAY-{1000+id}  status: completed | pending | failed | cancelled
                           method: bank_transfer | credit_card | check | direct_debit

DENORMALIZED FIELDS:
  Customer names on claims/payments and the policies/claims lists on a
  customer are snapshots taken at creation. Nothing keeps them in sync.
  References (customerId, policyNumber) are not validated either.

STATUS:
  Status is set to a fixed default on create and may be overwritten with
  any allowed value by an update. There is no transition graph.

SEE ALSO:
  - schema.go: Field accessors for the list pipeline
  - create.go: Required fields and record construction
  - payment.go: Partial updates
*/
package insurance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Money travels as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// =============================================================================
// ENUMS
// =============================================================================

type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyPending   PolicyStatus = "pending"
	PolicyExpired   PolicyStatus = "expired"
	PolicyCancelled PolicyStatus = "cancelled"
)

type ClaimStatus string

const (
	ClaimPending    ClaimStatus = "pending"
	ClaimProcessing ClaimStatus = "processing"
	ClaimApproved   ClaimStatus = "approved"
	ClaimRejected   ClaimStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentStatuses is the allowed set, in documentation order.
var PaymentStatuses = []PaymentStatus{PaymentCompleted, PaymentPending, PaymentFailed, PaymentCancelled}

func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodCheck        PaymentMethod = "check"
	MethodDirectDebit  PaymentMethod = "direct_debit"
)

// PaymentMethods is the allowed set, in documentation order.
var PaymentMethods = []PaymentMethod{MethodBankTransfer, MethodCreditCard, MethodCheck, MethodDirectDebit}

func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Policy types offered by the UI. Not enforced on create.
var PolicyTypes = []string{"Auto Insurance", "Home Insurance", "Life Insurance", "Health Insurance"}

// =============================================================================
// RECORDS
// =============================================================================

type Policy struct {
	ID              int             `json:"id"`
	PolicyNumber    string          `json:"policyNumber"`
	CustomerID      int             `json:"customerId"`
	Customer        string          `json:"customer"`
	Type            string          `json:"type"`
	Premium         decimal.Decimal `json:"premium"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	Status          PolicyStatus    `json:"status"`
	CoverageDetails map[string]any  `json:"coverageDetails,omitempty"`
}

func (p Policy) RecordID() int { return p.ID }

type Claim struct {
	ID           int             `json:"id"`
	ClaimID      string          `json:"claimId"`
	PolicyNumber string          `json:"policyNumber"`
	CustomerID   int             `json:"customerId"`
	Customer     string          `json:"customer"`
	Amount       decimal.Decimal `json:"amount"`
	IncidentDate string          `json:"incidentDate"`
	FiledDate    string          `json:"filedDate"`
	Status       ClaimStatus     `json:"status"`
	Description  string          `json:"description"`
	Documents    []string        `json:"documents"`
}

func (c Claim) RecordID() int { return c.ID }

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type Customer struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	CustomerSince string   `json:"customerSince"`
	Address       Address  `json:"address"`
	Policies      []string `json:"policies"`
	Claims        []string `json:"claims"`
	Avatar        string   `json:"avatar"`
}

func (c Customer) RecordID() int { return c.ID }

type Payment struct {
	ID              int             `json:"id"`
	PaymentID       string          `json:"paymentId"`
	CustomerID      int             `json:"customerId"`
	Customer        string          `json:"customer"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Date            string          `json:"date"`
	Method          PaymentMethod   `json:"method"`
	Status          PaymentStatus   `json:"status"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
}

func (p Payment) RecordID() int { return p.ID }

// =============================================================================
// BUSINESS IDENTIFIERS
// =============================================================================

const (
	PolicyPrefix  = "POL"
	ClaimPrefix   = "CLM"
	PaymentPrefix = "PAY"
)

// BusinessID derives the human-facing identifier from a record id.
func BusinessID(prefix string, id int) string {
	return fmt.Sprintf("%s-%d", prefix, 1000+id)
}
