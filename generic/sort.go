package generic

import (
	"slices"
	"strings"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection maps anything other than "desc" to asc.
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// SortOption names the field to order by.
type SortOption struct {
	Field     string
	Direction SortDirection
}

// ApplySort returns a sorted copy of recs. Equal keys keep store order.
// Records without the field go last in both directions. When a field holds
// both kinds, numbers sort before strings in both directions. An empty or
// undeclared field leaves the order untouched.
func ApplySort[T any](s *Schema[T], recs []T, opt SortOption) []T {
	if opt.Field == "" || !s.Has(opt.Field) {
		return recs
	}
	type keyed struct {
		rec T
		v   Value
		ok  bool
	}
	rows := make([]keyed, len(recs))
	for i, rec := range recs {
		v, ok := s.Get(rec, opt.Field)
		rows[i] = keyed{rec: rec, v: v, ok: ok}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		if ka, kb := a.v.Kind(), b.v.Kind(); ka != kb {
			// Numbers before strings, whatever the direction.
			if ka == KindNumber {
				return -1
			}
			return 1
		}
		c, _ := a.v.Compare(b.v)
		if opt.Direction == SortDesc {
			return -c
		}
		return c
	})

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.rec
	}
	return out
}
