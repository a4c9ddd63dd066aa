package insurance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/insurance-admin/generic"
)

// PaymentPatch is a partial payment update. nil fields keep their stored
// value. id, paymentId and referenceNumber are not patchable.
type PaymentPatch struct {
	CustomerID  *int             `json:"customerId"`
	Customer    *string          `json:"customer"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    *string          `json:"currency"`
	Date        *string          `json:"date"`
	Method      *PaymentMethod   `json:"method"`
	Status      *PaymentStatus   `json:"status"`
	Description *string          `json:"description"`
}

func DecodePaymentPatch(body []byte) (PaymentPatch, error) {
	var patch PaymentPatch
	if _, err := generic.DecodeObject(body); err != nil {
		return patch, err
	}
	err := generic.DecodeInto(body, &patch)
	return patch, err
}

// Validate checks enum and format constraints without touching a record.
// An empty method or status counts as not provided.
func (p PaymentPatch) Validate() error {
	if p.Method != nil && *p.Method != "" && !p.Method.Valid() {
		return invalidMethod(*p.Method)
	}
	if p.Status != nil && *p.Status != "" && !p.Status.Valid() {
		return invalidStatus(*p.Status)
	}
	if p.Amount != nil {
		if err := nonNegative("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.Date != nil {
		if err := dates(map[string]string{"date": *p.Date}, "date"); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the patch over cur. Any status may replace any other.
func (p PaymentPatch) Apply(cur Payment) (Payment, error) {
	if err := p.Validate(); err != nil {
		return cur, err
	}
	next := cur
	if p.CustomerID != nil {
		next.CustomerID = *p.CustomerID
	}
	if p.Customer != nil {
		next.Customer = *p.Customer
	}
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.Currency != nil {
		next.Currency = *p.Currency
	}
	if p.Date != nil {
		next.Date = *p.Date
	}
	if p.Method != nil && *p.Method != "" {
		next.Method = *p.Method
	}
	if p.Status != nil && *p.Status != "" {
		next.Status = *p.Status
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	return next, nil
}
