package schema

import (
	"errors"
	"fmt"

	"rowmapper/convert"
)

// ErrNilAccessor is returned when an accessor yields a nil pointer.
var ErrNilAccessor = errors.New("schema: accessor returned nil")

// Binding is a resolved field: its descriptor and a setter on *T.
type Binding[T any] struct {
	FieldDescriptor
	set func(*T, any) error
}

// Set assigns v to the field of dst.
func (b Binding[T]) Set(dst *T, v any) error {
	if b.set == nil {
		return fmt.Errorf("schema: field %s has no setter", b.Path)
	}

	return b.set(dst, v)
}

type candidate[T any] struct {
	binding Binding[T]
	depth   int
}

// Schema is the descriptor table for T.
type Schema[T any] struct {
	name     string
	suppress bool
	ctor     func() (*T, error)
	fields   []Binding[T]
	names    map[string]struct{}
	embeds   []func(depth int, prefix string) []candidate[T]
	parents  []ancestor
}

// ancestor is any embedded schema, whatever its type parameter.
type ancestor interface {
	reaches(target any) bool
}

// reaches reports whether target is s or one of its ancestors.
func (s *Schema[T]) reaches(target any) bool {
	if any(s) == target {
		return true
	}

	for _, p := range s.parents {
		if p.reaches(target) {
			return true
		}
	}

	return false
}

// New starts a schema for T. name is used in logs, errors and metrics.
func New[T any](name string) *Schema[T] {
	return &Schema[T]{
		name:  name,
		names: make(map[string]struct{}),
	}
}

// Name returns the schema name.
func (s *Schema[T]) Name() string { return s.name }

// SuppressWarnings marks the whole type: fetch failures of any of its fields are not reported.
// The marker is not inherited by types that embed this one.
func (s *Schema[T]) SuppressWarnings() *Schema[T] {
	s.suppress = true

	return s
}

// Suppressed reports the class-level suppress marker.
func (s *Schema[T]) Suppressed() bool { return s.suppress }

// Constructor sets the no-argument constructor. The default is new(T).
func (s *Schema[T]) Constructor(fn func() (*T, error)) *Schema[T] {
	s.ctor = fn

	return s
}

// Instantiate builds a fresh instance of T.
func (s *Schema[T]) Instantiate() (*T, error) {
	if s.ctor == nil {
		return new(T), nil
	}

	v, err := s.ctor()
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, fmt.Errorf("schema: constructor of %s returned nil", s.name)
	}

	return v, nil
}

// Fields returns the descriptors declared directly on s, ignored ones included.
func (s *Schema[T]) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(s.fields))
	for i, b := range s.fields {
		out[i] = b.FieldDescriptor
	}

	return out
}

func (s *Schema[T]) add(d FieldDescriptor, set func(*T, any) error) {
	if _, dup := s.names[d.Name]; dup {
		panic(fmt.Sprintf("schema: duplicate field %q in %s", d.Name, s.name))
	}

	s.names[d.Name] = struct{}{}
	s.fields = append(s.fields, Binding[T]{FieldDescriptor: d, set: set})
}

// flatten lists own fields at depth, then the fields of each embed, in declaration order.
func (s *Schema[T]) flatten(depth int, prefix string) []candidate[T] {
	out := make([]candidate[T], 0, len(s.fields))

	for _, b := range s.fields {
		b.Path = prefix + b.Name
		out = append(out, candidate[T]{binding: b, depth: depth})
	}

	for _, embed := range s.embeds {
		out = append(out, embed(depth+1, prefix)...)
	}

	return out
}

// Field declares a field of type V reached through get.
func Field[T, V any](s *Schema[T], name string, get func(*T) *V, opts ...Option) {
	if get == nil {
		panic(fmt.Sprintf("schema: nil accessor for %s.%s", s.name, name))
	}

	d := FieldDescriptor{
		Name:  name,
		Path:  name,
		Owner: s.name,
		Type:  convert.TagFor[V](),
	}
	for _, opt := range opts {
		opt(&d)
	}

	s.add(d, func(t *T, v any) error {
		p := get(t)
		if p == nil {
			return ErrNilAccessor
		}

		return Assign(p, v)
	})
}

// Nullable declares a pointer field *V. NULL leaves the pointer nil; any other
// value is assigned to a fresh V.
func Nullable[T, V any](s *Schema[T], name string, get func(*T) **V, opts ...Option) {
	if get == nil {
		panic(fmt.Sprintf("schema: nil accessor for %s.%s", s.name, name))
	}

	d := FieldDescriptor{
		Name:  name,
		Path:  name,
		Owner: s.name,
		Type:  convert.TagFor[V](),
	}
	for _, opt := range opts {
		opt(&d)
	}

	s.add(d, func(t *T, v any) error {
		p := get(t)
		if p == nil {
			return ErrNilAccessor
		}

		if v == nil {
			*p = nil

			return nil
		}

		if direct, ok := v.(*V); ok {
			*p = direct

			return nil
		}

		nv := new(V)
		if err := Assign(nv, v); err != nil {
			return err
		}

		*p = nv

		return nil
	})
}

// Embed declares parent as an ancestor of T reached through get. The
// parent's fields join T's field map one level below T's own fields.
func Embed[T, P any](s *Schema[T], parent *Schema[P], get func(*T) *P) {
	if parent == nil || get == nil {
		panic(fmt.Sprintf("schema: invalid embed in %s", s.name))
	}

	if parent.reaches(s) {
		panic(fmt.Sprintf("schema: embedding %s in %s forms a cycle", parent.name, s.name))
	}

	s.parents = append(s.parents, parent)
	s.embeds = append(s.embeds, func(depth int, prefix string) []candidate[T] {
		inner := parent.flatten(depth, prefix+parent.name+".")
		out := make([]candidate[T], len(inner))

		for i, c := range inner {
			pset := c.binding.set
			out[i] = candidate[T]{
				binding: Binding[T]{
					FieldDescriptor: c.binding.FieldDescriptor,
					set: func(t *T, v any) error {
						p := get(t)
						if p == nil {
							return ErrNilAccessor
						}

						return pset(p, v)
					},
				},
				depth: c.depth,
			}
		}

		return out
	})
}
