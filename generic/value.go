/*
Package generic provides the resource-agnostic list query engine.

PURPOSE:
  Every resource exposed by the back-office API (policies, claims,
  customers, payments) is listed through the same pipeline:

    filters -> search -> sort -> paginate

  The pipeline is written once and parameterised per resource by a
  Schema, which maps field names to typed accessors.

KEY CONCEPTS IN THIS FILE (value.go):
  - Value: a field value as seen by the pipeline (string or decimal number)
  - Compare: ordering between two values of the same kind

DESIGN PRINCIPLES:
  1. Purity: stages never mutate their input or the store
  2. Precision: numbers are decimal.Decimal, never float64
  3. Typed access: no reflection, no map[string]any lookups

SEE ALSO:
  - schema.go: Field accessors and search fields
  - filter.go, search.go, sort.go, paginate.go: Pipeline stages
  - query.go: Stage composition
*/
package generic

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VALUE - What a field accessor hands to the pipeline
// =============================================================================

// Kind is the dynamic type of a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// Value is a single field value. Exactly one of str / num is meaningful,
// depending on kind.
type Value struct {
	kind Kind
	str  string
	num  decimal.Decimal
}

// String wraps a string field value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a decimal field value.
func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }

// Int wraps an integer field value.
func Int(n int) Value { return Number(decimal.NewFromInt(int64(n))) }

func (v Value) Kind() Kind { return v.kind }

// Text is the string form used for substring matching. Numbers render
// without trailing zeros (750.50 -> "750.5").
func (v Value) Text() string {
	if v.kind == KindNumber {
		return v.num.String()
	}
	return v.str
}

// Equal reports strict equality: same kind and same value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindNumber {
		return v.num.Equal(o.num)
	}
	return v.str == o.str
}

// Compare orders two values of the same kind. ok is false when the kinds
// differ, in which case the values are unordered.
func (v Value) Compare(o Value) (c int, ok bool) {
	if v.kind != o.kind {
		return 0, false
	}
	if v.kind == KindNumber {
		return v.num.Cmp(o.num), true
	}
	return strings.Compare(v.str, o.str), true
}

// coerce converts a raw query-string operand into a Value of the same kind
// as the field it is compared against. ok is false when a numeric field is
// compared with something that is not a number.
func coerce(raw string, like Kind) (Value, bool) {
	if like == KindNumber {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, false
		}
		return Number(d), true
	}
	return String(raw), true
}
