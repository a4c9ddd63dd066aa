package generic

// ListQuery is a fully parsed list request.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Filters  []Filter
	Sort     SortOption
}

// Run executes the pipeline in its fixed order:
// filters -> search -> sort -> paginate.
func Run[T any](s *Schema[T], recs []T, q ListQuery) Page[T] {
	out := ApplyFilters(s, recs, q.Filters)
	out = ApplySearch(s, out, q.Search)
	out = ApplySort(s, out, q.Sort)
	return Paginate(out, q.Page, q.PageSize)
}
