package convert

// Converter translates a raw column value into a field's declared type.
// Convert must not panic; on failure it returns a benign default.
type Converter interface {
	ID() string
	Source() TypeTag
	Target() TypeTag
	AutoApply() bool
	Convert(raw any) any
}

// Func is a Converter backed by a plain function.
type Func struct {
	Name string
	From TypeTag
	To   TypeTag
	Auto bool
	Fn   func(raw any) any
}

var _ Converter = (*Func)(nil)

// NewFunc returns a Func converter.
func NewFunc(id string, from, to TypeTag, autoApply bool, fn func(raw any) any) *Func {
	return &Func{Name: id, From: from, To: to, Auto: autoApply, Fn: fn}
}

func (f *Func) ID() string      { return f.Name }
func (f *Func) Source() TypeTag { return f.From }
func (f *Func) Target() TypeTag { return f.To }
func (f *Func) AutoApply() bool { return f.Auto }

// Convert applies Fn. A nil Fn returns raw unchanged.
func (f *Func) Convert(raw any) any {
	if f.Fn == nil {
		return raw
	}

	return f.Fn(raw)
}

// Field is the part of a field descriptor the registry needs.
type Field interface {
	// ConverterID is the explicitly selected converter, or "".
	ConverterID() string
	// DeclaredType is the tag of the field's Go type.
	DeclaredType() TypeTag
}
