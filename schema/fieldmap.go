package schema

// FieldMap is the resolved column-to-field table of one destination type.
// It is immutable once returned by Resolve; accessors return copies.
type FieldMap[T any] struct {
	name     string
	suppress bool
	bindings []Binding[T]
	index    map[string]int
	ignored  []FieldDescriptor
}

// Name returns the name of the mapped type.
func (m *FieldMap[T]) Name() string { return m.name }

// Suppressed reports the class-level suppress marker of the mapped type.
func (m *FieldMap[T]) Suppressed() bool { return m.suppress }

// Len returns the number of mapped columns.
func (m *FieldMap[T]) Len() int { return len(m.bindings) }

// Columns returns the column names in resolution order.
func (m *FieldMap[T]) Columns() []string {
	out := make([]string, len(m.bindings))
	for i, b := range m.bindings {
		out[i] = b.Column
	}

	return out
}

// Lookup returns the binding for column.
func (m *FieldMap[T]) Lookup(column string) (Binding[T], bool) {
	i, ok := m.index[column]
	if !ok {
		return Binding[T]{}, false
	}

	return m.bindings[i], true
}

// Bindings returns all bindings in resolution order.
func (m *FieldMap[T]) Bindings() []Binding[T] {
	out := make([]Binding[T], len(m.bindings))
	copy(out, m.bindings)

	return out
}

// Descriptors returns the descriptors of all mapped fields.
func (m *FieldMap[T]) Descriptors() []FieldDescriptor {
	out := make([]FieldDescriptor, len(m.bindings))
	for i, b := range m.bindings {
		out[i] = b.FieldDescriptor
	}

	return out
}

// Ignored returns the descriptors excluded by an ignore marker.
func (m *FieldMap[T]) Ignored() []FieldDescriptor {
	out := make([]FieldDescriptor, len(m.ignored))
	copy(out, m.ignored)

	return out
}
