package schema

import (
	"sort"
	"sync"

	"rowmapper/logging"
	"rowmapper/naming"
)

// Resolver computes FieldMaps with one naming strategy and caches them per
// Schema instance. It is safe for concurrent use.
type Resolver struct {
	strategy naming.Strategy
	log      logging.Logger

	mu    sync.RWMutex
	cache map[any]any
}

// NewResolver returns a resolver using strategy. A nil strategy means naming.Identity.
func NewResolver(strategy naming.Strategy, log logging.Logger) *Resolver {
	if strategy == nil {
		strategy = naming.Identity
	}

	return &Resolver{
		strategy: strategy,
		log:      logging.OrDefault(log),
		cache:    make(map[any]any),
	}
}

// Strategy returns the naming strategy.
func (r *Resolver) Strategy() naming.Strategy { return r.strategy }

// Cached reports how many schemas have been resolved.
func (r *Resolver) Cached() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.cache)
}

// Resolve returns the FieldMap of s, computing it on first use.
//
// Fields of s come first, then the fields of each embedded ancestor one
// level deeper, recursively. When two fields resolve to the same column the
// shallower one wins; at equal depth the one declared first wins. Every
// collision is logged.
func Resolve[T any](r *Resolver, s *Schema[T]) *FieldMap[T] {
	r.mu.RLock()
	cached, ok := r.cache[s]
	r.mu.RUnlock()

	if ok {
		return cached.(*FieldMap[T])
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[s]; ok {
		return cached.(*FieldMap[T])
	}

	fm := build(r, s)
	r.cache[s] = fm

	return fm
}

func build[T any](r *Resolver, s *Schema[T]) *FieldMap[T] {
	cands := s.flatten(0, "")
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].depth < cands[j].depth })

	fm := &FieldMap[T]{
		name:     s.name,
		suppress: s.suppress,
		index:    make(map[string]int, len(cands)),
	}

	for _, c := range cands {
		b := c.binding

		if b.Ignored {
			r.log.Debug("field ignored", "type", s.name, "field", b.Path)
			fm.ignored = append(fm.ignored, b.FieldDescriptor)

			continue
		}

		if b.Override != "" {
			b.Column = b.Override
		} else {
			b.Column = r.strategy.Transform(b.Name)
		}

		if i, taken := fm.index[b.Column]; taken {
			r.log.Warn("column collision, keeping the first resolved field",
				"type", s.name, "column", b.Column, "kept", fm.bindings[i].Path, "dropped", b.Path)

			continue
		}

		fm.index[b.Column] = len(fm.bindings)
		fm.bindings = append(fm.bindings, b)
	}

	r.log.Debug("field map resolved",
		"type", s.name, "strategy", r.strategy.String(), "columns", len(fm.bindings), "ignored", len(fm.ignored))

	return fm
}
