package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"

	"github.com/warp/insurance-admin/generic"
)

// =============================================================================
// LIST QUERY PARAMETERS
// =============================================================================
// Every parameter is decoded as a string and interpreted leniently
// afterwards: a malformed page number or amount never fails the request,
// it falls back to the default or disables that filter.

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ListParams is the query string of GET /api/<resource>.
type ListParams struct {
	Page          string   `schema:"page"`
	PageSize      string   `schema:"pageSize"`
	Search        string   `schema:"search"`
	SortField     string   `schema:"sortField"`
	SortDirection string   `schema:"sortDirection"`
	Filter        []string `schema:"filter"`

	// Resource convenience filters. Each resource reads its own subset.
	Status     string `schema:"status"`
	Type       string `schema:"type"`
	State      string `schema:"state"`
	CustomerID string `schema:"customerId"`
	MinAmount  string `schema:"minAmount"`
	MaxAmount  string `schema:"maxAmount"`
}

func decodeListParams(r *http.Request) (ListParams, error) {
	var p ListParams
	err := queryDecoder.Decode(&p, r.URL.Query())
	return p, err
}

// Query converts the raw parameters plus resource filters into a pipeline
// query. Generic filter expressions come after the convenience filters.
func (p ListParams) Query(filters []generic.Filter) generic.ListQuery {
	for _, raw := range p.Filter {
		if f, ok := generic.ParseFilter(raw); ok {
			filters = append(filters, f)
		}
	}
	return generic.ListQuery{
		Page:     generic.ParseCount(p.Page, generic.DefaultPage),
		PageSize: generic.ParseCount(p.PageSize, generic.DefaultPageSize),
		Search:   p.Search,
		Filters:  filters,
		Sort: generic.SortOption{
			Field:     strings.TrimSpace(p.SortField),
			Direction: generic.ParseSortDirection(p.SortDirection),
		},
	}
}

// filterSet maps parsed parameters to a resource's convenience filters.
type filterSet func(ListParams) []generic.Filter

func policyFilters(p ListParams) []generic.Filter {
	var fs []generic.Filter
	fs = appendEnum(fs, "type", p.Type)
	fs = appendEnum(fs, "status", p.Status)
	return fs
}

func claimFilters(p ListParams) []generic.Filter {
	var fs []generic.Filter
	fs = appendEnum(fs, "status", p.Status)
	if isNumber(p.MinAmount) {
		fs = append(fs, generic.Gte("amount", p.MinAmount))
	}
	if isNumber(p.MaxAmount) {
		fs = append(fs, generic.Lte("amount", p.MaxAmount))
	}
	return fs
}

func customerFilters(p ListParams) []generic.Filter {
	return appendEnum(nil, "address.state", p.State)
}

func paymentFilters(p ListParams) []generic.Filter {
	var fs []generic.Filter
	if p.CustomerID != "" {
		// Leading digits are used ("1abc" is 1). Without any, the id is 0,
		// which no record has, so the filter matches nothing.
		id := generic.ParseCount(p.CustomerID, 0)
		fs = append(fs, generic.Eq("customerId", strconv.Itoa(id)))
	}
	return appendEnum(fs, "status", p.Status)
}

// appendEnum adds an equality filter unless value is empty or "all".
func appendEnum(fs []generic.Filter, field, value string) []generic.Filter {
	if value == "" || strings.EqualFold(value, "all") {
		return fs
	}
	return append(fs, generic.Eq(field, value))
}

func isNumber(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil
}
