package insurance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/insurance-admin/generic"
)

// =============================================================================
// CREATE INPUTS
// =============================================================================
// Each Decode* function runs the same three steps:
//   1. the body must be a JSON object
//   2. required fields are checked in declared order; the first one that is
//      absent, null or "" is reported
//   3. typed decoding and value checks (dates, non-negative money, enums)
// Nothing is stored until all three pass.

// Required fields per resource, in reporting order.
var (
	PolicyRequired   = []string{"customerId", "customer", "type", "premium", "startDate", "endDate"}
	ClaimRequired    = []string{"policyNumber", "customerId", "customer", "amount", "incidentDate", "description"}
	CustomerRequired = []string{"name", "email", "phone", "address"}
	PaymentRequired  = []string{"customerId", "customer", "amount", "currency", "date", "method"}
)

const (
	DefaultPaymentDescription = "Monthly pension payment"
	DefaultAvatar             = "/placeholder.svg"
)

type PolicyInput struct {
	CustomerID      int             `json:"customerId"`
	Customer        string          `json:"customer"`
	Type            string          `json:"type"`
	Premium         decimal.Decimal `json:"premium"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	CoverageDetails map[string]any  `json:"coverageDetails"`
}

func DecodePolicyInput(body []byte) (PolicyInput, error) {
	var in PolicyInput
	if err := decodeRequired(body, &in, PolicyRequired); err != nil {
		return in, err
	}
	if err := nonNegative("premium", in.Premium); err != nil {
		return in, err
	}
	if err := dates(map[string]string{"startDate": in.StartDate, "endDate": in.EndDate}, "startDate", "endDate"); err != nil {
		return in, err
	}
	return in, nil
}

// Policy builds the stored record. New policies start pending.
func (in PolicyInput) Policy(id int) Policy {
	return Policy{
		ID:              id,
		PolicyNumber:    BusinessID(PolicyPrefix, id),
		CustomerID:      in.CustomerID,
		Customer:        in.Customer,
		Type:            in.Type,
		Premium:         in.Premium,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Status:          PolicyPending,
		CoverageDetails: in.CoverageDetails,
	}
}

type ClaimInput struct {
	PolicyNumber string          `json:"policyNumber"`
	CustomerID   int             `json:"customerId"`
	Customer     string          `json:"customer"`
	Amount       decimal.Decimal `json:"amount"`
	IncidentDate string          `json:"incidentDate"`
	Description  string          `json:"description"`
}

func DecodeClaimInput(body []byte) (ClaimInput, error) {
	var in ClaimInput
	if err := decodeRequired(body, &in, ClaimRequired); err != nil {
		return in, err
	}
	if err := nonNegative("amount", in.Amount); err != nil {
		return in, err
	}
	if err := dates(map[string]string{"incidentDate": in.IncidentDate}, "incidentDate"); err != nil {
		return in, err
	}
	return in, nil
}

// Claim builds the stored record, filed today with no documents.
func (in ClaimInput) Claim(id int, today string) Claim {
	return Claim{
		ID:           id,
		ClaimID:      BusinessID(ClaimPrefix, id),
		PolicyNumber: in.PolicyNumber,
		CustomerID:   in.CustomerID,
		Customer:     in.Customer,
		Amount:       in.Amount,
		IncidentDate: in.IncidentDate,
		FiledDate:    today,
		Status:       ClaimPending,
		Description:  in.Description,
		Documents:    []string{},
	}
}

type CustomerInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

func DecodeCustomerInput(body []byte) (CustomerInput, error) {
	var in CustomerInput
	err := decodeRequired(body, &in, CustomerRequired)
	return in, err
}

// Customer builds the stored record with empty policy/claim lists.
func (in CustomerInput) Customer(id int, today string) Customer {
	return Customer{
		ID:            id,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		CustomerSince: today,
		Address:       in.Address,
		Policies:      []string{},
		Claims:        []string{},
		Avatar:        DefaultAvatar,
	}
}

type PaymentInput struct {
	CustomerID  int             `json:"customerId"`
	Customer    string          `json:"customer"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        string          `json:"date"`
	Method      PaymentMethod   `json:"method"`
	Description string          `json:"description"`
}

func DecodePaymentInput(body []byte) (PaymentInput, error) {
	var in PaymentInput
	if err := decodeRequired(body, &in, PaymentRequired); err != nil {
		return in, err
	}
	if !in.Method.Valid() {
		return in, invalidMethod(in.Method)
	}
	if err := nonNegative("amount", in.Amount); err != nil {
		return in, err
	}
	if err := dates(map[string]string{"date": in.Date}, "date"); err != nil {
		return in, err
	}
	return in, nil
}

// Payment builds the stored record. New payments start pending.
func (in PaymentInput) Payment(id int, reference string) Payment {
	desc := in.Description
	if desc == "" {
		desc = DefaultPaymentDescription
	}
	return Payment{
		ID:              id,
		PaymentID:       BusinessID(PaymentPrefix, id),
		CustomerID:      in.CustomerID,
		Customer:        in.Customer,
		Amount:          in.Amount,
		Currency:        in.Currency,
		Date:            in.Date,
		Method:          in.Method,
		Status:          PaymentPending,
		Description:     desc,
		ReferenceNumber: reference,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeRequired(body []byte, dst any, required []string) error {
	obj, err := generic.DecodeObject(body)
	if err != nil {
		return err
	}
	if err := generic.RequireFields(obj, required...); err != nil {
		return err
	}
	return generic.DecodeInto(body, dst)
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &generic.InvalidValueError{Field: field, Value: d.String()}
	}
	return nil
}

// dates validates the named date fields in order.
func dates(values map[string]string, order ...string) error {
	for _, field := range order {
		if v := values[field]; !generic.IsDate(v) {
			return &generic.InvalidValueError{
				Field:   field,
				Value:   v,
				Message: "Invalid date for field " + field + ": " + v + " (use YYYY-MM-DD)",
			}
		}
	}
	return nil
}

func invalidMethod(m PaymentMethod) error {
	return &generic.InvalidValueError{Field: "method", Value: string(m), Message: "Invalid payment method: " + string(m)}
}

func invalidStatus(s PaymentStatus) error {
	return &generic.InvalidValueError{Field: "status", Value: string(s), Message: "Invalid payment status: " + string(s)}
}
