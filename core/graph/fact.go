// Package graph materializes a model.Registry and an input record into a
// Graph: one Fact instance per declaration, or one per entity id for
// per-entity declarations.
package graph

import "factgraph/core/model"

// Fact is a concrete node in a built Graph: a FactDef bound to a graph
// build, plus an entity id when the declaration is per-entity.
type Fact struct {
	Def *model.FactDef

	// EntityID is meaningful only when HasEntityID is true, which holds
	// exactly for the per-entity instances Build creates; an InstanceOf
	// instance never has it, even for a per-entity declaration.
	EntityID    model.EntityID
	HasEntityID bool
}

// Module returns the fact's module name.
func (f *Fact) Module() model.ModuleName {
	return f.Def.Module
}

// Name returns the fact's name.
func (f *Fact) Name() model.FactName {
	return f.Def.Name
}

// newInstance builds a plain, non-per-entity Fact from its declaration.
func newInstance(def *model.FactDef) *Fact {
	return &Fact{Def: def}
}

// newEntityInstance builds a per-entity Fact bound to id.
func newEntityInstance(def *model.FactDef, id model.EntityID) *Fact {
	return &Fact{Def: def, EntityID: id, HasEntityID: true}
}
