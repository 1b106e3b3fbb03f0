package graph

import "factgraph/core/model"

// InstanceOf wraps a FactDef as a plain, non-per-entity Fact instance. Used
// wherever a declaration needs a Fact to appear in a result set without a
// graph build — the query layer's FactsUsingInput and FactsWithDependency
// operate on declarations this way: a per-entity declaration appears as a
// single instance, not expanded.
func InstanceOf(def *model.FactDef) *Fact {
	return newInstance(def)
}

// Definitions produces Fact instances directly from the registry without
// consulting any input record. Per-entity facts are represented as single
// instances, never expanded.
func Definitions(reg *model.Registry, moduleFilter []model.ModuleName) map[model.ModuleName]map[model.FactName]*Fact {
	filtered := model.FilterRegistry(reg, moduleFilter)
	out := make(map[model.ModuleName]map[model.FactName]*Fact)
	for _, def := range filtered.Facts() {
		byName, ok := out[def.Module]
		if !ok {
			byName = make(map[model.FactName]*Fact)
			out[def.Module] = byName
		}
		byName[def.Name] = InstanceOf(def)
	}
	return out
}
