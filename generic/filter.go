package generic

import (
	"strings"
)

// =============================================================================
// FILTER STAGE
// =============================================================================

// Operator names a filter comparison.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNeq        Operator = "neq"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
)

// Filter is one predicate: <field> <operator> <value>.
// Value stays a raw string until it meets the field it is compared with.
type Filter struct {
	Field    string
	Operator Operator
	Value    string
}

// Eq, Gte and Lte build the predicates behind the named convenience
// filters (status=, minAmount=, maxAmount=, ...).
func Eq(field, value string) Filter  { return Filter{Field: field, Operator: OpEq, Value: value} }
func Gte(field, value string) Filter { return Filter{Field: field, Operator: OpGte, Value: value} }
func Lte(field, value string) Filter { return Filter{Field: field, Operator: OpLte, Value: value} }

// ParseFilter reads the query-string form "field:operator:value".
// "field:value" means eq. The value keeps any further colons.
func ParseFilter(raw string) (Filter, bool) {
	parts := strings.SplitN(raw, ":", 3)
	switch len(parts) {
	case 2:
		if parts[0] == "" {
			return Filter{}, false
		}
		return Eq(parts[0], parts[1]), true
	case 3:
		if parts[0] == "" {
			return Filter{}, false
		}
		return Filter{Field: parts[0], Operator: Operator(parts[1]), Value: parts[2]}, true
	default:
		return Filter{}, false
	}
}

// Match evaluates the predicate against a field value.
func (f Filter) Match(v Value) bool {
	switch f.Operator {
	case OpNeq:
		return !f.equal(v)
	case OpGt, OpGte, OpLt, OpLte:
		want, ok := coerce(f.Value, v.Kind())
		if !ok {
			return false
		}
		c, ok := v.Compare(want)
		if !ok {
			return false
		}
		switch f.Operator {
		case OpGt:
			return c > 0
		case OpGte:
			return c >= 0
		case OpLt:
			return c < 0
		default:
			return c <= 0
		}
	case OpContains:
		return strings.Contains(strings.ToLower(v.Text()), strings.ToLower(f.Value))
	case OpStartsWith:
		return strings.HasPrefix(strings.ToLower(v.Text()), strings.ToLower(f.Value))
	case OpEndsWith:
		return strings.HasSuffix(strings.ToLower(v.Text()), strings.ToLower(f.Value))
	default:
		// eq and anything unrecognized
		return f.equal(v)
	}
}

func (f Filter) equal(v Value) bool {
	want, ok := coerce(f.Value, v.Kind())
	if !ok {
		return false
	}
	return v.Equal(want)
}

// ApplyFilters keeps the records that satisfy every filter. A record that
// lacks a filtered field is dropped whatever the operator.
func ApplyFilters[T any](s *Schema[T], recs []T, filters []Filter) []T {
	if len(filters) == 0 {
		return recs
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if matchesAll(s, rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll[T any](s *Schema[T], rec T, filters []Filter) bool {
	for _, f := range filters {
		v, ok := s.Get(rec, f.Field)
		if !ok || !f.Match(v) {
			return false
		}
	}
	return true
}
