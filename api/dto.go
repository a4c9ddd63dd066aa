/*
dto.go - Response envelopes that are not domain records

PURPOSE:
  Records (insurance.Policy, ...) are serialized as-is; list responses use
  generic.Page. This file holds the remaining small bodies.

SEE ALSO:
  - handlers.go: Uses these types
  - params.go: Query string types
*/
package api

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by /healthz.
type StatusResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}

// ResetResponse reports the record counts restored by POST /api/reset.
type ResetResponse struct {
	Status    string `json:"status"`
	Policies  int    `json:"policies"`
	Claims    int    `json:"claims"`
	Customers int    `json:"customers"`
	Payments  int    `json:"payments"`
}
