// Package mapper decodes rows of a RowSource into instances of a
// destination type described by a schema.Schema.
//
// Each row yields one instance. Every resolved column is fetched, routed
// through the converter registry and assigned to its field. A failing field
// keeps its zero value and is reported as a warning unless suppressed; it
// never aborts the row. Only source-level and construction failures abort
// the call, as a single *MappingError.
package mapper

import (
	"time"

	"rowmapper/convert"
	"rowmapper/convert/ext"
	"rowmapper/logging"
	"rowmapper/naming"
	"rowmapper/schema"
)

// Mapper owns a converter registry and a field-map cache. It is safe for
// concurrent use.
type Mapper struct {
	strategy naming.Strategy
	log      logging.Logger
	registry *convert.Registry
	resolver *schema.Resolver
	metrics  *Metrics
}

// New builds a Mapper from cfg.
func New(cfg Config) *Mapper {
	if cfg.Naming == nil {
		cfg.Naming = naming.Identity
	}

	log := logging.OrDefault(cfg.Logger)

	m := &Mapper{
		strategy: cfg.Naming,
		log:      log,
		registry: convert.NewRegistry(log),
		resolver: schema.NewResolver(cfg.Naming, log),
		metrics:  cfg.Metrics,
	}

	if cfg.Extensions {
		if err := ext.Register(m.registry, log); err != nil {
			log.Error("failed to register extension converters", "err", err)
		}
	}

	for _, c := range cfg.Converters {
		if err := m.registry.Register(c); err != nil {
			log.Error("failed to register converter", "err", err)
		}
	}

	log.Info("mapper created", "strategy", m.strategy.String(), "converters", m.registry.Len())

	return m
}

// NewIdentity returns a Mapper that expects columns named exactly like fields.
func NewIdentity() *Mapper {
	return New(DefaultConfig())
}

// NewLowerUnderscore returns a Mapper that expects lower_underscore columns.
func NewLowerUnderscore() *Mapper {
	cfg := DefaultConfig()
	cfg.Naming = naming.LowerUnderscore

	return New(cfg)
}

// NewLowerDashes returns a Mapper that expects lower-dashes columns.
func NewLowerDashes() *Mapper {
	cfg := DefaultConfig()
	cfg.Naming = naming.LowerDashes

	return New(cfg)
}

// NamingStrategy returns the strategy in use.
func (m *Mapper) NamingStrategy() naming.Strategy { return m.strategy }

// RegisterConverter adds c to the registry. Entries are never removed;
// a later registration for the same pair or ID replaces the earlier one.
func (m *Mapper) RegisterConverter(c convert.Converter) error {
	return m.registry.Register(c)
}

// Registry exposes the converter registry.
func (m *Mapper) Registry() *convert.Registry { return m.registry }

// FieldMap returns the resolved, cached FieldMap of s.
func FieldMap[T any](m *Mapper, s *schema.Schema[T]) *schema.FieldMap[T] {
	return schema.Resolve(m.resolver, s)
}

// Map drains src into a slice of new instances described by s.
//
// A nil or empty source yields an empty, non-nil slice. On error the slice
// is nil.
func Map[T any](m *Mapper, src RowSource, s *schema.Schema[T]) ([]*T, error) {
	name := s.Name()
	out := make([]*T, 0)

	if src == nil {
		m.log.Warn("row source is nil, nothing to map", "type", name)

		return out, nil
	}

	started := time.Now()
	defer func() { m.metrics.observe(name, time.Since(started).Seconds()) }()

	m.log.Info("mapping started", "type", name, "strategy", m.strategy.String())

	hasRows, err := src.BeforeFirst()
	if err != nil {
		return nil, m.fail(name, OpBeforeFirst, err)
	}

	if !hasRows {
		m.log.Warn("row source is empty, nothing to map", "type", name)

		return out, nil
	}

	fm := FieldMap(m, s)
	bindings := fm.Bindings()

	for row := 0; ; row++ {
		more, err := src.Next()
		if err != nil {
			return nil, m.fail(name, OpNext, err)
		}

		if !more {
			break
		}

		inst, err := s.Instantiate()
		if err != nil {
			return nil, m.fail(name, OpConstruct, err)
		}

		m.log.Debug("mapping row", "type", name, "row", row)

		for _, b := range bindings {
			mapField(m, src, inst, b, name, fm.Suppressed())
		}

		out = append(out, inst)
		m.metrics.rowMapped(name)
	}

	m.log.Info("mapping finished", "type", name, "rows", len(out))

	return out, nil
}

// MapOne returns the first row of src, or ErrNoRows.
func MapOne[T any](m *Mapper, src RowSource, s *schema.Schema[T]) (*T, error) {
	rows, err := Map(m, src, s)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return rows[0], nil
}

func mapField[T any](m *Mapper, src RowSource, inst *T, b schema.Binding[T], typ string, classSuppressed bool) {
	v, err := src.Column(b.Column)
	if err != nil {
		m.fieldFailed(typ, b.FieldDescriptor, classSuppressed, "column fetch failed", err)

		return
	}

	if err := b.Set(inst, m.registry.Resolve(b, v)); err != nil {
		m.fieldFailed(typ, b.FieldDescriptor, classSuppressed, "field assignment failed", err)

		return
	}

	m.log.Debug("field mapped", "type", typ, "field", b.Path, "column", b.Column, "tag", v.Tag.String())
}

func (m *Mapper) fieldFailed(typ string, d schema.FieldDescriptor, classSuppressed bool, msg string, err error) {
	m.metrics.fieldFailed(typ, d.Column)

	if classSuppressed || d.Suppress {
		m.log.Debug(msg, "type", typ, "field", d.Path, "column", d.Column, "err", err)

		return
	}

	m.log.Warn(msg, "type", typ, "field", d.Path, "column", d.Column, "err", err)
}

func (m *Mapper) fail(typ string, op Op, err error) error {
	m.metrics.mapFailed(typ, op)
	m.log.Error("mapping aborted", "type", typ, "op", string(op), "err", err)

	return &MappingError{Type: typ, Op: op, Err: err}
}
