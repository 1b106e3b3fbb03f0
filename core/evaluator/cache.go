// Package evaluator walks a built graph, resolving each fact at most once
// per evaluate() call and propagating structured errors.
package evaluator

import (
	"factgraph/core/determinism"
	"factgraph/core/model"
	"factgraph/core/value"
)

// entry is one cache slot: either a resolved single Value, or a per-entity
// fan-out of resolved Values, mirroring graph.Slot's shape.
type entry struct {
	single    *value.Value
	perEntity map[model.EntityID]*value.Value
}

// cache is the results cache for one evaluate() call. It is created empty
// at the start of Evaluate and never shared across calls.
type cache struct {
	modules map[model.ModuleName]map[model.FactName]*entry
}

func newCache() *cache {
	return &cache{modules: make(map[model.ModuleName]map[model.FactName]*entry)}
}

func (c *cache) slot(module model.ModuleName, name model.FactName, perEntity bool) *entry {
	byName, ok := c.modules[module]
	if !ok {
		byName = make(map[model.FactName]*entry)
		c.modules[module] = byName
	}
	e, ok := byName[name]
	if !ok {
		e = &entry{}
		if perEntity {
			e.perEntity = make(map[model.EntityID]*value.Value)
		}
		byName[name] = e
	}
	return e
}

// get returns the memoized result for a non-per-entity coordinate.
func (c *cache) get(module model.ModuleName, name model.FactName) (value.Value, bool) {
	byName, ok := c.modules[module]
	if !ok {
		return value.Value{}, false
	}
	e, ok := byName[name]
	if !ok || e.single == nil {
		return value.Value{}, false
	}
	return *e.single, true
}

// getEntity returns the memoized result for a per-entity coordinate.
func (c *cache) getEntity(module model.ModuleName, name model.FactName, id model.EntityID) (value.Value, bool) {
	byName, ok := c.modules[module]
	if !ok {
		return value.Value{}, false
	}
	e, ok := byName[name]
	if !ok || e.perEntity == nil {
		return value.Value{}, false
	}
	v, ok := e.perEntity[id]
	if !ok {
		return value.Value{}, false
	}
	return *v, true
}

func (c *cache) set(module model.ModuleName, name model.FactName, v value.Value) {
	e := c.slot(module, name, false)
	e.single = &v
}

func (c *cache) setEntity(module model.ModuleName, name model.FactName, id model.EntityID, v value.Value) {
	e := c.slot(module, name, true)
	e.perEntity[id] = &v
}

// Entry is one resolved coordinate, exposed to query and reporting code.
type Entry struct {
	Module      model.ModuleName
	Name        model.FactName
	EntityID    model.EntityID
	HasEntityID bool
	Value       value.Value
}

// Results is the completed, read-only results cache returned by Evaluate.
type Results struct {
	c *cache
}

// Get returns the resolved value for a non-per-entity fact.
func (r *Results) Get(module model.ModuleName, name model.FactName) (value.Value, bool) {
	return r.c.get(module, name)
}

// GetEntity returns the resolved value for one entity id of a per-entity
// fact.
func (r *Results) GetEntity(module model.ModuleName, name model.FactName, id model.EntityID) (value.Value, bool) {
	return r.c.getEntity(module, name, id)
}

// GetFanOut returns every resolved entity id for a per-entity fact, or nil
// if that coordinate holds no per-entity slot.
func (r *Results) GetFanOut(module model.ModuleName, name model.FactName) (map[model.EntityID]value.Value, bool) {
	byName, ok := r.c.modules[module]
	if !ok {
		return nil, false
	}
	e, ok := byName[name]
	if !ok || e.perEntity == nil {
		return nil, false
	}
	out := make(map[model.EntityID]value.Value, len(e.perEntity))
	for id, v := range e.perEntity {
		out[id] = *v
	}
	return out, true
}

// Entries returns every resolved coordinate, ordered by module, then name,
// then entity id.
func (r *Results) Entries() []Entry {
	var out []Entry
	determinism.RangeMapSorted(r.c.modules, func(module model.ModuleName, byName map[model.FactName]*entry) bool {
		determinism.RangeMapSorted(byName, func(name model.FactName, e *entry) bool {
			if e.single != nil {
				out = append(out, Entry{Module: module, Name: name, Value: *e.single})
				return true
			}
			ids := make([]model.EntityID, 0, len(e.perEntity))
			for id := range e.perEntity {
				ids = append(ids, id)
			}
			determinism.SortSlice(ids, func(a, b model.EntityID) bool { return a < b })
			for _, id := range ids {
				out = append(out, Entry{Module: module, Name: name, EntityID: id, HasEntityID: true, Value: *e.perEntity[id]})
			}
			return true
		})
		return true
	})
	return out
}
