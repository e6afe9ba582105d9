package convert

import (
	"errors"
	"sync"

	"rowmapper/logging"
)

// ErrInvalidConverter is returned by Register for a nil converter or an empty ID.
var ErrInvalidConverter = errors.New("convert: invalid converter")

type pairKey struct {
	src TypeTag
	dst TypeTag
}

// Registry indexes converters by tag pair and by ID. Entries are never
// removed; registering the same pair or ID again replaces the previous entry.
type Registry struct {
	mu     sync.RWMutex
	byPair map[pairKey]Converter
	byID   map[string]Converter
	log    logging.Logger
}

// NewRegistry returns a registry holding the built-in converters.
func NewRegistry(log logging.Logger) *Registry {
	r := &Registry{
		byPair: make(map[pairKey]Converter),
		byID:   make(map[string]Converter),
		log:    logging.OrDefault(log),
	}

	for _, c := range Builtins() {
		r.put(c)
	}

	return r
}

// Register adds c to both indexes.
func (r *Registry) Register(c Converter) error {
	if c == nil || c.ID() == "" {
		return ErrInvalidConverter
	}

	r.mu.Lock()
	r.put(c)
	r.mu.Unlock()

	r.log.Debug("converter registered",
		"id", c.ID(), "source", c.Source().String(), "target", c.Target().String(), "auto_apply", c.AutoApply())

	return nil
}

func (r *Registry) put(c Converter) {
	r.byPair[pairKey{src: c.Source(), dst: c.Target()}] = c
	r.byID[c.ID()] = c
}

// Lookup returns the converter registered under id.
func (r *Registry) Lookup(id string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]

	return c, ok
}

// Pair returns the converter registered for (src, dst), whether or not it auto-applies.
func (r *Registry) Pair(src, dst TypeTag) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byPair[pairKey{src: src, dst: dst}]

	return c, ok
}

// Len returns the number of distinct converter IDs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// Resolve returns the value to assign to f for the fetched value v.
//
// An explicit converter on the field is applied unconditionally. When the
// explicit ID is not registered, the raw value passes through unchanged and
// a warning is logged. Without an explicit converter, a converter registered
// for (v.Tag, f.DeclaredType()) is applied only if it auto-applies.
// NULL is never converted.
func (r *Registry) Resolve(f Field, v Value) any {
	if v.IsNull() {
		return nil
	}

	if id := f.ConverterID(); id != "" {
		c, ok := r.Lookup(id)
		if !ok {
			r.log.Warn("explicit converter not registered, passing raw value through",
				"converter", id, "source", v.Tag.String())

			return v.Data
		}

		return safeConvert(c, v.Data, r.log)
	}

	c, ok := r.Pair(v.Tag, f.DeclaredType())
	if !ok || !c.AutoApply() {
		return v.Data
	}

	return safeConvert(c, v.Data, r.log)
}

// safeConvert keeps a misbehaving converter from escaping Resolve.
func safeConvert(c Converter, raw any, log logging.Logger) (out any) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("converter panicked, passing raw value through", "converter", c.ID(), "panic", p)
			out = raw
		}
	}()

	return c.Convert(raw)
}
