package generic

import "strings"

// ApplySearch keeps records where any of the schema's search fields
// contains term, case-insensitively. An empty term returns recs as is.
func ApplySearch[T any](s *Schema[T], recs []T, term string) []T {
	if term == "" {
		return recs
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		for _, name := range s.search {
			v, ok := s.Get(rec, name)
			if ok && strings.Contains(strings.ToLower(v.Text()), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
