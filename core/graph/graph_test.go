package graph_test

import (
	"testing"

	"factgraph/core/graph"
	"factgraph/core/model"
)

func applicantsRegistry() *model.Registry {
	ns := model.NewNamespace("applicants")
	entity := model.EntityName("applicants")
	ns.DeclareFact("income", model.ConstantResolver(0), model.PerEntity(entity))
	ns.DeclareFact("num_eligible", model.ConstantResolver(0), model.DependencyInModule("income"))
	return ns.Registry()
}

func TestBuildExpandsPerEntityFacts(t *testing.T) {
	reg := applicantsRegistry()
	input := map[string]any{"applicants": []any{
		map[string]any{"income": 48},
		map[string]any{"income": 380},
	}}

	g, err := graph.Build(reg, input, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slot, ok := g.Lookup("applicants", "income")
	if !ok {
		t.Fatalf("expected income slot to exist")
	}
	if !slot.IsPerEntity() {
		t.Fatalf("expected income to be a per-entity slot")
	}
	if len(slot.PerEntity) != 2 {
		t.Fatalf("expected 2 entity instances, got %d", len(slot.PerEntity))
	}
}

func TestBuildLeavesEmptyPerEntitySlotWhenCollectionAbsent(t *testing.T) {
	reg := applicantsRegistry()
	g, err := graph.Build(reg, map[string]any{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slot, ok := g.Lookup("applicants", "income")
	if !ok {
		t.Fatalf("expected income slot to exist even with no entities")
	}
	if !slot.IsPerEntity() || len(slot.PerEntity) != 0 {
		t.Fatalf("expected present-but-empty per-entity slot, got %+v", slot)
	}
}

func TestBuildNonStrictReturnsErrorForMissingDependencyReference(t *testing.T) {
	ns := model.NewNamespace("math")
	ns.DeclareFact("squared_scale", model.ConstantResolver(0), model.Dependency("scale_factor", "missing_module"))

	_, err := graph.Build(ns.Registry(), map[string]any{}, false)
	if err == nil {
		t.Fatalf("expected an error for an unresolvable dependency reference")
	}
}

func TestBuildStrictPanicsForMissingDependencyReference(t *testing.T) {
	ns := model.NewNamespace("math")
	ns.DeclareFact("squared_scale", model.ConstantResolver(0), model.Dependency("scale_factor", "missing_module"))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for an unresolvable dependency reference in strict mode")
		}
	}()
	graph.Build(ns.Registry(), map[string]any{}, true)
}

func TestDefinitionsRepresentsPerEntityFactsAsSingleInstances(t *testing.T) {
	reg := applicantsRegistry()
	defs := graph.Definitions(reg, nil)

	income, ok := defs["applicants"]["income"]
	if !ok {
		t.Fatalf("expected income to be present in fact_definitions")
	}
	if income.HasEntityID {
		t.Fatalf("expected fact_definitions to represent a per-entity fact unexpanded")
	}
}
