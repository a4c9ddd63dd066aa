package insurance

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/warp/insurance-admin/generic"
)

// =============================================================================
// PIPELINE SCHEMAS
// =============================================================================
// Field names match the JSON names so that sortField / filter parameters
// use the same vocabulary as the response bodies.

var PolicySchema = generic.NewSchema[Policy]("policies").
	Int("id", func(p Policy) int { return p.ID }).
	Str("policyNumber", func(p Policy) string { return p.PolicyNumber }).
	Int("customerId", func(p Policy) int { return p.CustomerID }).
	Str("customer", func(p Policy) string { return p.Customer }).
	Str("type", func(p Policy) string { return p.Type }).
	Dec("premium", func(p Policy) decimal.Decimal { return p.Premium }).
	Str("startDate", func(p Policy) string { return p.StartDate }).
	Str("endDate", func(p Policy) string { return p.EndDate }).
	Str("status", func(p Policy) string { return string(p.Status) }).
	Prefix("coverageDetails", func(p Policy, key string) (generic.Value, bool) {
		v, ok := p.CoverageDetails[key]
		if !ok {
			return generic.Value{}, false
		}
		return valueOf(v)
	}).
	Search("policyNumber", "customer", "type", "status").
	MustBuild()

var ClaimSchema = generic.NewSchema[Claim]("claims").
	Int("id", func(c Claim) int { return c.ID }).
	Str("claimId", func(c Claim) string { return c.ClaimID }).
	Str("policyNumber", func(c Claim) string { return c.PolicyNumber }).
	Int("customerId", func(c Claim) int { return c.CustomerID }).
	Str("customer", func(c Claim) string { return c.Customer }).
	Dec("amount", func(c Claim) decimal.Decimal { return c.Amount }).
	Str("incidentDate", func(c Claim) string { return c.IncidentDate }).
	Str("filedDate", func(c Claim) string { return c.FiledDate }).
	Str("status", func(c Claim) string { return string(c.Status) }).
	Str("description", func(c Claim) string { return c.Description }).
	Search("claimId", "policyNumber", "customer", "status", "description").
	MustBuild()

var CustomerSchema = generic.NewSchema[Customer]("customers").
	Int("id", func(c Customer) int { return c.ID }).
	Str("name", func(c Customer) string { return c.Name }).
	Str("email", func(c Customer) string { return c.Email }).
	Str("phone", func(c Customer) string { return c.Phone }).
	Str("customerSince", func(c Customer) string { return c.CustomerSince }).
	Str("avatar", func(c Customer) string { return c.Avatar }).
	Prefix("address", func(c Customer, key string) (generic.Value, bool) {
		switch key {
		case "street":
			return generic.String(c.Address.Street), true
		case "city":
			return generic.String(c.Address.City), true
		case "state":
			return generic.String(c.Address.State), true
		case "zipCode":
			return generic.String(c.Address.ZipCode), true
		}
		return generic.Value{}, false
	}).
	Search("name", "email", "phone", "address.city", "address.state").
	MustBuild()

var PaymentSchema = generic.NewSchema[Payment]("payments").
	Int("id", func(p Payment) int { return p.ID }).
	Str("paymentId", func(p Payment) string { return p.PaymentID }).
	Int("customerId", func(p Payment) int { return p.CustomerID }).
	Str("customer", func(p Payment) string { return p.Customer }).
	Dec("amount", func(p Payment) decimal.Decimal { return p.Amount }).
	Str("currency", func(p Payment) string { return p.Currency }).
	Str("date", func(p Payment) string { return p.Date }).
	Str("method", func(p Payment) string { return string(p.Method) }).
	Str("status", func(p Payment) string { return string(p.Status) }).
	Str("description", func(p Payment) string { return p.Description }).
	Str("referenceNumber", func(p Payment) string { return p.ReferenceNumber }).
	Search("paymentId", "customer", "description", "referenceNumber", "amount").
	MustBuild()

// valueOf converts a free-form coverage detail into a pipeline value.
func valueOf(v any) (generic.Value, bool) {
	switch x := v.(type) {
	case nil:
		return generic.Value{}, false
	case string:
		return generic.String(x), true
	case int:
		return generic.Int(x), true
	case int64:
		return generic.Number(decimal.NewFromInt(x)), true
	case float64:
		return generic.Number(decimal.NewFromFloat(x)), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return generic.String(x.String()), true
		}
		return generic.Number(d), true
	case bool:
		return generic.String(strconv.FormatBool(x)), true
	default:
		return generic.String(fmt.Sprint(x)), true
	}
}
