package generic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEMA - Per-resource field accessors
// =============================================================================

// Field reads one named field from a record. ok is false when the record
// has no such field; the filter stage then excludes the record.
type Field[T any] func(rec T) (v Value, ok bool)

// PrefixField resolves dotted fields such as "coverageDetails.deductible".
// key is the part after the prefix and the dot.
type PrefixField[T any] func(rec T, key string) (v Value, ok bool)

// Schema describes how the pipeline sees one resource type.
type Schema[T any] struct {
	Resource string

	fields   map[string]Field[T]
	prefixes map[string]PrefixField[T]
	search   []string
}

// SchemaBuilder collects fields before the schema is validated.
type SchemaBuilder[T any] struct {
	s *Schema[T]
}

// NewSchema starts a schema for the named resource.
func NewSchema[T any](resource string) *SchemaBuilder[T] {
	return &SchemaBuilder[T]{s: &Schema[T]{
		Resource: resource,
		fields:   make(map[string]Field[T]),
		prefixes: make(map[string]PrefixField[T]),
	}}
}

// Field declares a top-level field.
func (b *SchemaBuilder[T]) Field(name string, f Field[T]) *SchemaBuilder[T] {
	b.s.fields[name] = f
	return b
}

// Str declares a string field.
func (b *SchemaBuilder[T]) Str(name string, get func(T) string) *SchemaBuilder[T] {
	return b.Field(name, func(rec T) (Value, bool) { return String(get(rec)), true })
}

// Dec declares a decimal field.
func (b *SchemaBuilder[T]) Dec(name string, get func(T) decimal.Decimal) *SchemaBuilder[T] {
	return b.Field(name, func(rec T) (Value, bool) { return Number(get(rec)), true })
}

// Int declares an integer field.
func (b *SchemaBuilder[T]) Int(name string, get func(T) int) *SchemaBuilder[T] {
	return b.Field(name, func(rec T) (Value, bool) { return Int(get(rec)), true })
}

// Prefix declares a family of dotted fields under name.
func (b *SchemaBuilder[T]) Prefix(name string, f PrefixField[T]) *SchemaBuilder[T] {
	b.s.prefixes[name] = f
	return b
}

// Search sets the fields matched by the free-text search stage, in order.
func (b *SchemaBuilder[T]) Search(names ...string) *SchemaBuilder[T] {
	b.s.search = append([]string(nil), names...)
	return b
}

// Build validates the schema: every search field must be declared.
func (b *SchemaBuilder[T]) Build() (*Schema[T], error) {
	for _, name := range b.s.search {
		if !b.s.declares(name) {
			return nil, fmt.Errorf("%s schema: search field %q is not declared", b.s.Resource, name)
		}
	}
	return b.s, nil
}

// MustBuild is Build for package-level schema variables.
func (b *SchemaBuilder[T]) MustBuild() *Schema[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema[T]) declares(name string) bool {
	if _, ok := s.fields[name]; ok {
		return true
	}
	prefix, _, found := strings.Cut(name, ".")
	if !found {
		return false
	}
	_, ok := s.prefixes[prefix]
	return ok
}

// Get reads a field from rec by name. Unknown names report ok=false.
func (s *Schema[T]) Get(rec T, name string) (Value, bool) {
	if f, ok := s.fields[name]; ok {
		return f(rec)
	}
	prefix, key, found := strings.Cut(name, ".")
	if !found || key == "" {
		return Value{}, false
	}
	if pf, ok := s.prefixes[prefix]; ok {
		return pf(rec, key)
	}
	return Value{}, false
}

// Has reports whether name is a declared field or a dotted field under a
// declared prefix.
func (s *Schema[T]) Has(name string) bool { return s.declares(name) }

// SearchFields returns the declared search fields.
func (s *Schema[T]) SearchFields() []string {
	return append([]string(nil), s.search...)
}

// Fields returns the declared top-level field names, sorted.
func (s *Schema[T]) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
