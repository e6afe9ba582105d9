package schema

import (
	"rowmapper/convert"
)

// FieldDescriptor is the metadata of one destination field.
type FieldDescriptor struct {
	// Name is the declared field name.
	Name string
	// Path is the dotted path from the mapped type, e.g. "Base.ID".
	Path string
	// Owner is the name of the schema that declares the field.
	Owner string
	// Type is the declared type tag.
	Type convert.TypeTag
	// Override is the explicit column name, or "".
	Override string
	// Column is the effective column name. Set by the resolver.
	Column string
	// Ignored fields are never fetched.
	Ignored bool
	// Converter is the explicitly selected converter ID, or "".
	Converter string
	// Suppress silences fetch warnings for this field.
	Suppress bool
}

// ConverterID implements convert.Field.
func (d FieldDescriptor) ConverterID() string { return d.Converter }

// DeclaredType implements convert.Field.
func (d FieldDescriptor) DeclaredType() convert.TypeTag { return d.Type }

var _ convert.Field = FieldDescriptor{}

// Option sets field metadata.
type Option func(*FieldDescriptor)

// Column overrides the column name, bypassing the naming strategy.
func Column(name string) Option {
	return func(d *FieldDescriptor) { d.Override = name }
}

// Ignore excludes the field from mapping.
func Ignore() Option {
	return func(d *FieldDescriptor) { d.Ignored = true }
}

// Convert selects a converter by ID. It is applied regardless of autoApply.
func Convert(converterID string) Option {
	return func(d *FieldDescriptor) { d.Converter = converterID }
}

// SuppressWarnings silences fetch warnings for the field.
func SuppressWarnings() Option {
	return func(d *FieldDescriptor) { d.Suppress = true }
}

// Tag overrides the declared type tag derived from the field's Go type.
func Tag(tag convert.TypeTag) Option {
	return func(d *FieldDescriptor) { d.Type = tag }
}
