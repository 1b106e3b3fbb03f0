package evaluator

import (
	"github.com/google/uuid"

	"factgraph/core/determinism"
	"factgraph/core/graph"
	"factgraph/core/model"
	"factgraph/internal/logging"
)

// Evaluator lazily resolves every fact in a registry against one input
// record, memoizing per coordinate.
type Evaluator struct {
	registry *model.Registry
	strict   bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithStrictMode sets whether a MissingDependencyReference panics
// immediately during the graph build (true) or is returned as a Go error
// from Evaluate (false). Mirrors internal/config's Evaluation.StrictMode.
func WithStrictMode(strict bool) Option {
	return func(ev *Evaluator) { ev.strict = strict }
}

// New returns an Evaluator over registry.
func New(registry *model.Registry, opts ...Option) *Evaluator {
	ev := &Evaluator{registry: registry}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Registry returns the evaluator's backing registry, for query operations
// that need to inspect FactDefs directly.
func (ev *Evaluator) Registry() *model.Registry {
	return ev.registry
}

// Evaluate builds the graph for (registry filtered by moduleFilter, input),
// allocates an empty cache, then visits every coordinate in registry order.
// Returns the built graph (queries need it) and the completed results
// cache. Every log line Evaluate itself writes carries the same trace id,
// correlating one evaluation's diagnostics; the graph builder's own
// missing-dependency log line is written without it.
func (ev *Evaluator) Evaluate(input map[string]any, moduleFilter []model.ModuleName) (*graph.Graph, *Results, error) {
	traceID := uuid.New().String()
	log := logging.Sugar.With("trace_id", traceID)

	reg := model.FilterRegistry(ev.registry, moduleFilter)
	g, err := graph.Build(reg, input, ev.strict)
	if err != nil {
		log.Errorw("graph build failed", "error", err)
		return nil, nil, err
	}
	c := newCache()

	for _, def := range reg.Facts() {
		if !def.IsPerEntity() {
			log.Debugw("resolving fact", "module", string(def.Module), "name", string(def.Name))
			if _, err := ev.resolveCoordinate(g, c, def.Module, def.Name, input); err != nil {
				log.Errorw("fact resolution failed", "module", string(def.Module), "name", string(def.Name), "error", err)
				return nil, nil, err
			}
			continue
		}
		slot, ok := g.Lookup(def.Module, def.Name)
		if !ok {
			continue
		}
		ids := make([]model.EntityID, 0, len(slot.PerEntity))
		for id := range slot.PerEntity {
			ids = append(ids, id)
		}
		determinism.SortSlice(ids, func(a, b model.EntityID) bool { return a < b })
		for _, id := range ids {
			log.Debugw("resolving per-entity fact", "module", string(def.Module), "name", string(def.Name), "entity_id", int(id))
			if _, err := ev.resolveEntityCoordinate(g, c, def.Module, def.Name, id, input); err != nil {
				log.Errorw("fact resolution failed", "module", string(def.Module), "name", string(def.Name), "entity_id", int(id), "error", err)
				return nil, nil, err
			}
		}
	}

	return g, &Results{c: c}, nil
}
