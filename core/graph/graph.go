package graph

import (
	"factgraph/core/determinism"
	"factgraph/core/model"
)

// Slot is a built graph's one cell at graph[module][name]: either a single
// Fact, or a per-entity fan-out keyed by entity id. Exactly one of Single or
// PerEntity is populated.
type Slot struct {
	Single    *Fact
	PerEntity map[model.EntityID]*Fact
}

// IsPerEntity reports whether this slot holds a per-entity fan-out (even an
// empty one — an absent entity_ids key still leaves the fact's map present
// with no entries).
func (s *Slot) IsPerEntity() bool {
	return s.PerEntity != nil
}

// Graph is a mapping ModuleName → FactName → Slot.
type Graph struct {
	modules map[model.ModuleName]map[model.FactName]*Slot
}

// newGraph returns an empty Graph.
func newGraph() *Graph {
	return &Graph{modules: make(map[model.ModuleName]map[model.FactName]*Slot)}
}

func (g *Graph) set(module model.ModuleName, name model.FactName, slot *Slot) {
	byName, ok := g.modules[module]
	if !ok {
		byName = make(map[model.FactName]*Slot)
		g.modules[module] = byName
	}
	byName[name] = slot
}

// Lookup returns the slot at module.name, or (nil, false) if the graph has
// no such coordinate — the unresolvable-dependency-reference case treated
// as a fatal build-time error.
func (g *Graph) Lookup(module model.ModuleName, name model.FactName) (*Slot, bool) {
	byName, ok := g.modules[module]
	if !ok {
		return nil, false
	}
	slot, ok := byName[name]
	return slot, ok
}

// Modules returns every module name present in the graph, sorted.
func (g *Graph) Modules() []model.ModuleName {
	return determinism.SortedKeys(g.modules)
}

// Names returns every fact name declared in module, sorted.
func (g *Graph) Names(module model.ModuleName) []model.FactName {
	return determinism.SortedKeys(g.modules[module])
}
