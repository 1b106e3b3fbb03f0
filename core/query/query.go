// Package query answers graph-shape questions without re-running
// evaluation: which facts consume a given input key-path, which facts
// depend on a given fact, and which leaf facts transitively depend on an
// input.
package query

import (
	"factgraph/core/determinism"
	"factgraph/core/evaluator"
	"factgraph/core/graph"
	"factgraph/core/model"
	"factgraph/core/schema"
	"factgraph/core/value"
)

func factKey(f *graph.Fact) string {
	return string(f.Module()) + "." + string(f.Name())
}

func sortFacts(facts []*graph.Fact) {
	determinism.SortSlice(facts, func(a, b *graph.Fact) bool {
		return factKey(a) < factKey(b)
	})
}

// FactsUsingInput returns every fact whose input schemas accept keyPath.
func FactsUsingInput(reg *model.Registry, keyPath value.KeyPath) []*graph.Fact {
	var out []*graph.Fact
	for _, def := range reg.Facts() {
		schemas := make([]schema.Schema, 0, len(def.Inputs))
		for _, in := range def.Inputs {
			schemas = append(schemas, in.Schema)
		}
		if schema.Uses(schemas, keyPath) {
			out = append(out, graph.InstanceOf(def))
		}
	}
	sortFacts(out)
	return out
}

// FactsWithDependency returns every fact whose dependencies map contains
// depName → depModule.
func FactsWithDependency(reg *model.Registry, depModule model.ModuleName, depName model.FactName) []*graph.Fact {
	var out []*graph.Fact
	for _, def := range reg.Facts() {
		if m, ok := def.Dependencies[depName]; ok && m == depModule {
			out = append(out, graph.InstanceOf(def))
		}
	}
	sortFacts(out)
	return out
}

// LeafFactsDependingOnInput performs a worklist traversal: start from
// FactsUsingInput, repeatedly replace each frontier fact with its
// downstream consumers, and collect facts with no consumers as leaves. Each
// fact is expanded at most once, so the loop terminates even on a cyclic
// registry; facts on a cycle always have a consumer and are never leaves.
func LeafFactsDependingOnInput(reg *model.Registry, keyPath value.KeyPath) []*graph.Fact {
	queue := FactsUsingInput(reg, keyPath)
	visited := make(map[string]bool)
	seenLeaf := make(map[string]bool)
	var leaves []*graph.Fact

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		key := factKey(f)
		if visited[key] {
			continue
		}
		visited[key] = true

		downstream := FactsWithDependency(reg, f.Module(), f.Name())
		if len(downstream) == 0 {
			if !seenLeaf[key] {
				leaves = append(leaves, f)
				seenLeaf[key] = true
			}
			continue
		}
		queue = append(queue, downstream...)
	}

	sortFacts(leaves)
	return leaves
}

// InputErrors scans every resolved entry and merges each Errors value's
// bad_inputs map into one accumulator, keyed by the key-path's canonical
// string form. Each key's messages are sorted, since the facts contributing
// to one key-path may resolve (and so merge their messages) in any order.
func InputErrors(results *evaluator.Results) map[string][]string {
	acc := value.NewErrors()
	for _, e := range results.Entries() {
		if e.Value.IsErrors() {
			acc.Merge(e.Value.Errors())
		}
	}
	for _, msgs := range acc.BadInputs {
		determinism.SortStrings(msgs)
	}
	return acc.BadInputs
}
