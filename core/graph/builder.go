package graph

import (
	"go.uber.org/zap"

	"factgraph/core/model"
	"factgraph/internal/errors"
	"factgraph/internal/logging"
)

// Build materializes reg against input: a plain declaration becomes one
// Fact at graph[module][name]; a per-entity declaration expands to one Fact
// per id in entity_ids(input, E), or an empty (but present) map if the
// input lacks key E.
//
// Once every slot is populated, Build validates that every declared
// dependency resolves to a slot that actually exists — an unresolvable
// dependency reference is a fatal build-time error. When strict is true the
// violation panics immediately; otherwise it is returned as a *errors.Error
// of type TypeMissingDependencyReference.
func Build(reg *model.Registry, input map[string]any, strict bool) (*Graph, error) {
	g := newGraph()
	for _, def := range reg.Facts() {
		if def.IsPerEntity() {
			ids := model.EntityIDs(input, *def.PerEntity)
			slot := &Slot{PerEntity: make(map[model.EntityID]*Fact, len(ids))}
			for _, id := range ids {
				slot.PerEntity[id] = newEntityInstance(def, id)
			}
			g.set(def.Module, def.Name, slot)
			continue
		}
		g.set(def.Module, def.Name, &Slot{Single: newInstance(def)})
	}

	if err := validateDependencies(g, reg, strict); err != nil {
		return nil, err
	}
	return g, nil
}

func validateDependencies(g *Graph, reg *model.Registry, strict bool) error {
	for _, def := range reg.Facts() {
		for depName, depModule := range def.Dependencies {
			if _, ok := g.Lookup(depModule, depName); ok {
				continue
			}
			err := errors.MissingDependencyReference(string(def.Module), string(def.Name), string(depModule), string(depName))
			logging.Fatal("missing dependency reference", zap.Error(err))
			if strict {
				panic("INVARIANT VIOLATED: " + err.Error())
			}
			return err
		}
	}
	return nil
}
