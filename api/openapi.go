package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/warp/insurance-admin/generic"
	"github.com/warp/insurance-admin/insurance"
)

// =============================================================================
// OPENAPI DOCUMENT
// =============================================================================
// Descriptive only: nothing validates requests against it. Served as JSON
// at /api/docs and as YAML at /api/docs.yaml, and printed by
// `insurance-admin openapi`.

type obj = map[string]any

func ref(name string) obj { return obj{"$ref": "#/components/" + name} }

func prop(typ, desc string) obj { return obj{"type": typ, "description": desc} }

func dateProp(desc string) obj { return obj{"type": "string", "format": "date", "description": desc} }

func enumProp[S ~string](desc string, values []S) obj {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return obj{"type": "string", "description": desc, "enum": out}
}

func jsonBody(schema string) obj {
	return obj{"application/json": obj{"schema": ref("schemas/" + schema)}}
}

func listResponse(schema string) obj {
	return obj{
		"description": "One page of " + schema + " records",
		"content": obj{"application/json": obj{"schema": obj{
			"type": "object",
			"properties": obj{
				"items":      obj{"type": "array", "items": ref("schemas/" + schema)},
				"pagination": ref("schemas/Pagination"),
			},
		}}},
	}
}

func errorResponses(codes ...string) obj {
	names := map[string]string{
		"400": "BadRequest",
		"404": "NotFound",
		"500": "InternalServerError",
	}
	out := obj{}
	for _, c := range codes {
		out[c] = ref("responses/" + names[c])
	}
	return out
}

func withResponses(base obj, extra obj) obj {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func pathParam(name, desc string, typ string) obj {
	return obj{"name": name, "in": "path", "required": true, "description": desc, "schema": obj{"type": typ}}
}

func queryParam(name, desc string, schema obj) obj {
	return obj{"name": name, "in": "query", "description": desc, "schema": schema}
}

func listParams(extra ...obj) []any {
	params := []any{
		ref("parameters/page"),
		ref("parameters/pageSize"),
		ref("parameters/search"),
		ref("parameters/sortField"),
		ref("parameters/sortDirection"),
		ref("parameters/filter"),
	}
	for _, e := range extra {
		params = append(params, e)
	}
	return params
}

// fieldDoc lists what sortField and search accept for one resource.
type fieldDoc struct {
	sortable []string
	search   []string
}

func fieldsOf[T any](s *generic.Schema[T]) fieldDoc {
	return fieldDoc{sortable: s.Fields(), search: s.SearchFields()}
}

func (d fieldDoc) String() string {
	return "sortField accepts: " + strings.Join(d.sortable, ", ") +
		". search matches: " + strings.Join(d.search, ", ") + "."
}

func listOp(tag, summary, schema string, fields fieldDoc, extra ...obj) obj {
	return obj{
		"tags":        []string{tag},
		"summary":     summary,
		"description": fields.String(),
		"parameters":  listParams(extra...),
		"responses":   withResponses(obj{"200": listResponse(schema)}, errorResponses("500")),
	}
}

func createOp(tag, summary, input, output string) obj {
	return obj{
		"tags":        []string{tag},
		"summary":     summary,
		"requestBody": obj{"required": true, "content": jsonBody(input)},
		"responses": withResponses(obj{
			"201": obj{"description": "Created", "content": jsonBody(output)},
		}, errorResponses("400", "500")),
	}
}

func getOp(tag, summary, schema string, param obj) obj {
	return obj{
		"tags":       []string{tag},
		"summary":    summary,
		"parameters": []any{param},
		"responses": withResponses(obj{
			"200": obj{"description": "The record", "content": jsonBody(schema)},
		}, errorResponses("404", "500")),
	}
}

// OpenAPIDocument builds the OpenAPI 3.0.0 description of the HTTP API.
func OpenAPIDocument() map[string]any {
	statusFilter := func(values []string) obj {
		return queryParam("status", "Filter by status (\"all\" disables)", obj{"type": "string", "enum": append(values, "all")})
	}
	paymentID := pathParam("paymentId", "Business id, e.g. PAY-1001", "string")

	return obj{
		"openapi": "3.0.0",
		"info": obj{
			"title":       "Insurance Platform API Documentation",
			"version":     "1.0.0",
			"description": "API documentation for the Insurance Platform application",
			"contact":     obj{"name": "API Support", "email": "support@example.com"},
		},
		"paths": obj{
			"/api/policies": obj{
				"get": listOp("Policies", "List policies", "Policy", fieldsOf(insurance.PolicySchema),
					queryParam("type", "Filter by policy type (\"all\" disables)", obj{"type": "string", "enum": append(append([]string{}, insurance.PolicyTypes...), "all")}),
					statusFilter([]string{"active", "pending", "expired", "cancelled"}),
				),
				"post": createOp("Policies", "Create a policy", "PolicyInput", "Policy"),
			},
			"/api/policies/{id}": obj{
				"get": getOp("Policies", "Get a policy by id", "Policy", pathParam("id", "Numeric policy id", "integer")),
			},
			"/api/claims": obj{
				"get": listOp("Claims", "List claims", "Claim", fieldsOf(insurance.ClaimSchema),
					statusFilter([]string{"pending", "processing", "approved", "rejected"}),
					queryParam("minAmount", "Minimum claim amount", obj{"type": "number"}),
					queryParam("maxAmount", "Maximum claim amount", obj{"type": "number"}),
				),
				"post": createOp("Claims", "File a claim", "ClaimInput", "Claim"),
			},
			"/api/claims/{claimId}": obj{
				"get": getOp("Claims", "Get a claim", "Claim", pathParam("claimId", "Business id, e.g. CLM-1001", "string")),
			},
			"/api/customers": obj{
				"get": listOp("Customers", "List customers", "Customer", fieldsOf(insurance.CustomerSchema),
					queryParam("state", "Filter by address state (\"all\" disables)", obj{"type": "string"}),
				),
				"post": createOp("Customers", "Create a customer", "CustomerInput", "Customer"),
			},
			"/api/customers/{id}": obj{
				"get": getOp("Customers", "Get a customer by id", "Customer", pathParam("id", "Numeric customer id", "integer")),
			},
			"/api/payments": obj{
				"get": listOp("Payments", "List pension payments", "Payment", fieldsOf(insurance.PaymentSchema),
					queryParam("customerId", "Filter by customer id", obj{"type": "integer"}),
					statusFilter([]string{"completed", "pending", "failed", "cancelled"}),
				),
				"post": createOp("Payments", "Create a pension payment", "PaymentInput", "Payment"),
			},
			"/api/payments/{paymentId}": obj{
				"get": getOp("Payments", "Get a payment", "Payment", paymentID),
				"put": obj{
					"tags":        []string{"Payments"},
					"summary":     "Update a payment",
					"description": "Partial update. Omitted fields keep their value; id, paymentId and referenceNumber cannot change.",
					"parameters":  []any{paymentID},
					"requestBody": obj{"required": true, "content": jsonBody("PaymentUpdate")},
					"responses": withResponses(obj{
						"200": obj{"description": "The updated payment", "content": jsonBody("Payment")},
					}, errorResponses("400", "404", "500")),
				},
				"delete": obj{
					"tags":       []string{"Payments"},
					"summary":    "Delete a payment",
					"parameters": []any{paymentID},
					"responses": withResponses(obj{
						"204": obj{"description": "Payment deleted"},
					}, errorResponses("404", "500")),
				},
			},
			"/api/dashboard": obj{
				"get": obj{
					"tags":    []string{"Dashboard"},
					"summary": "Summary figures for the overview page",
					"responses": withResponses(obj{
						"200": obj{"description": "Summary", "content": jsonBody("Summary")},
					}, errorResponses("500")),
				},
			},
		},
		"components": obj{
			"schemas":    schemas(),
			"parameters": parameters(),
			"responses": obj{
				"NotFound":            errorResponse("Resource not found"),
				"BadRequest":          errorResponse("Bad request"),
				"InternalServerError": errorResponse("Internal server error"),
			},
		},
	}
}

func errorResponse(desc string) obj {
	return obj{"description": desc, "content": jsonBody("Error")}
}

func parameters() obj {
	return obj{
		"page":     queryParam("page", "Page number for pagination", obj{"type": "integer", "default": 1}),
		"pageSize": queryParam("pageSize", "Number of items per page", obj{"type": "integer", "default": 10}),
		"search":   queryParam("search", "Search term to filter results", obj{"type": "string"}),
		"sortField": queryParam("sortField", "Field to sort results by",
			obj{"type": "string"}),
		"sortDirection": queryParam("sortDirection", "Direction to sort results",
			obj{"type": "string", "enum": []string{"asc", "desc"}, "default": "asc"}),
		"filter": obj{
			"name":        "filter",
			"in":          "query",
			"description": "Repeatable field filter: field:operator:value (eq, neq, gt, gte, lt, lte, contains, startsWith, endsWith) or field:value",
			"schema":      obj{"type": "array", "items": obj{"type": "string"}},
			"style":       "form",
			"explode":     true,
		},
	}
}

func schemas() obj {
	policyStatus := []insurance.PolicyStatus{insurance.PolicyActive, insurance.PolicyPending, insurance.PolicyExpired, insurance.PolicyCancelled}
	claimStatus := []insurance.ClaimStatus{insurance.ClaimPending, insurance.ClaimProcessing, insurance.ClaimApproved, insurance.ClaimRejected}

	address := obj{
		"type": "object",
		"properties": obj{
			"street":  prop("string", "Street address"),
			"city":    prop("string", "City"),
			"state":   prop("string", "State"),
			"zipCode": prop("string", "ZIP code"),
		},
	}

	return obj{
		"Error": obj{
			"type":       "object",
			"properties": obj{"error": prop("string", "Error message")},
		},
		"Pagination": obj{
			"type": "object",
			"properties": obj{
				"currentPage":     prop("integer", "Current page (1-based)"),
				"totalPages":      prop("integer", "Number of pages"),
				"pageSize":        prop("integer", "Items per page"),
				"totalItems":      prop("integer", "Items across all pages"),
				"hasNextPage":     prop("boolean", "Whether a next page exists"),
				"hasPreviousPage": prop("boolean", "Whether a previous page exists"),
			},
		},
		"Policy": obj{
			"type": "object",
			"properties": obj{
				"id":              prop("integer", "The policy ID"),
				"policyNumber":    prop("string", "The policy number"),
				"customerId":      prop("integer", "The customer ID"),
				"customer":        prop("string", "The customer name"),
				"type":            enumProp("The policy type", insurance.PolicyTypes),
				"premium":         prop("number", "The annual premium amount"),
				"startDate":       dateProp("The policy start date"),
				"endDate":         dateProp("The policy end date"),
				"status":          enumProp("The policy status", policyStatus),
				"coverageDetails": prop("object", "The policy coverage details"),
			},
		},
		"PolicyInput": obj{
			"type":     "object",
			"required": insurance.PolicyRequired,
			"properties": obj{
				"customerId":      prop("integer", "The customer ID"),
				"customer":        prop("string", "The customer name"),
				"type":            prop("string", "The policy type"),
				"premium":         prop("number", "The annual premium amount"),
				"startDate":       dateProp("The policy start date"),
				"endDate":         dateProp("The policy end date"),
				"coverageDetails": prop("object", "The policy coverage details"),
			},
		},
		"Claim": obj{
			"type": "object",
			"properties": obj{
				"id":           prop("integer", "The claim ID"),
				"claimId":      prop("string", "The claim number"),
				"policyNumber": prop("string", "The associated policy number"),
				"customerId":   prop("integer", "The customer ID"),
				"customer":     prop("string", "The customer name"),
				"amount":       prop("number", "The claim amount"),
				"incidentDate": dateProp("The date of the incident"),
				"filedDate":    dateProp("The date the claim was filed"),
				"status":       enumProp("The claim status", claimStatus),
				"description":  prop("string", "The claim description"),
				"documents":    obj{"type": "array", "items": obj{"type": "string"}, "description": "List of document references"},
			},
		},
		"ClaimInput": obj{
			"type":     "object",
			"required": insurance.ClaimRequired,
			"properties": obj{
				"policyNumber": prop("string", "The associated policy number"),
				"customerId":   prop("integer", "The customer ID"),
				"customer":     prop("string", "The customer name"),
				"amount":       prop("number", "The claim amount"),
				"incidentDate": dateProp("The date of the incident"),
				"description":  prop("string", "The claim description"),
			},
		},
		"Customer": obj{
			"type": "object",
			"properties": obj{
				"id":            prop("integer", "The customer ID"),
				"name":          prop("string", "The customer name"),
				"email":         prop("string", "The customer email"),
				"phone":         prop("string", "The customer phone number"),
				"customerSince": dateProp("The date the customer joined"),
				"address":       address,
				"policies":      obj{"type": "array", "items": obj{"type": "string"}, "description": "Policy numbers"},
				"claims":        obj{"type": "array", "items": obj{"type": "string"}, "description": "Claim numbers"},
				"avatar":        prop("string", "Avatar URL"),
			},
		},
		"CustomerInput": obj{
			"type":     "object",
			"required": insurance.CustomerRequired,
			"properties": obj{
				"name":    prop("string", "The customer name"),
				"email":   prop("string", "The customer email"),
				"phone":   prop("string", "The customer phone number"),
				"address": address,
			},
		},
		"Payment": obj{
			"type": "object",
			"properties": obj{
				"id":              prop("integer", "The payment ID"),
				"paymentId":       prop("string", "The payment number"),
				"customerId":      prop("integer", "The customer ID"),
				"customer":        prop("string", "The customer name"),
				"amount":          prop("number", "The payment amount"),
				"currency":        prop("string", "The payment currency"),
				"date":            dateProp("The payment date"),
				"method":          enumProp("The payment method", insurance.PaymentMethods),
				"status":          enumProp("The payment status", insurance.PaymentStatuses),
				"description":     prop("string", "The payment description"),
				"referenceNumber": prop("string", "The payment reference number"),
			},
		},
		"PaymentInput": obj{
			"type":     "object",
			"required": insurance.PaymentRequired,
			"properties": obj{
				"customerId":  prop("integer", "The customer ID"),
				"customer":    prop("string", "The customer name"),
				"amount":      prop("number", "The payment amount"),
				"currency":    prop("string", "The payment currency"),
				"date":        dateProp("The payment date"),
				"method":      enumProp("The payment method", insurance.PaymentMethods),
				"description": prop("string", "The payment description"),
			},
		},
		"PaymentUpdate": obj{
			"type": "object",
			"properties": obj{
				"customerId":  prop("integer", "The customer ID"),
				"customer":    prop("string", "The customer name"),
				"amount":      prop("number", "The payment amount"),
				"currency":    prop("string", "The payment currency"),
				"date":        dateProp("The payment date"),
				"method":      enumProp("The payment method", insurance.PaymentMethods),
				"status":      enumProp("The payment status", insurance.PaymentStatuses),
				"description": prop("string", "The payment description"),
			},
		},
		"Summary": obj{
			"type": "object",
			"properties": obj{
				"totalPolicies":           prop("integer", "All policies"),
				"activePolicies":          prop("integer", "Policies with status active"),
				"premiumRevenue":          prop("number", "Sum of active policy premiums"),
				"activeClaims":            prop("integer", "Claims pending or processing"),
				"pendingClaims":           prop("integer", "Claims pending"),
				"totalCustomers":          prop("integer", "All customers"),
				"newCustomers":            prop("integer", "Customers who joined in the last 30 days"),
				"recentClaims":            obj{"type": "array", "items": ref("schemas/Claim")},
				"totalPayments":           prop("integer", "All payments"),
				"completedPaymentsAmount": prop("number", "Sum of completed payment amounts"),
			},
		},
	}
}

// MarshalOpenAPI renders the document as "json" (indented) or "yaml".
func MarshalOpenAPI(format string) ([]byte, error) {
	doc := OpenAPIDocument()
	if format == "yaml" {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (h *Handler) OpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OpenAPIDocument())
}

func (h *Handler) OpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	body, err := MarshalOpenAPI("yaml")
	if err != nil {
		h.respondError(w, r, err, "", "Failed to render API documentation")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
