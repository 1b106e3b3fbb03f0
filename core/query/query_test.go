package query_test

import (
	"testing"

	"factgraph/core/evaluator"
	"factgraph/core/query"
	"factgraph/core/value"
	"factgraph/internal/demo"
)

func TestFactsUsingInputMatchesNestedKeyPath(t *testing.T) {
	reg := demo.CirclesRegistry()

	facts := query.FactsUsingInput(reg, value.NewKeyPath("scale"))
	if len(facts) != 1 || facts[0].Module() != "math" || facts[0].Name() != "squared_scale" {
		t.Fatalf("unexpected facts for scale: %+v", facts)
	}

	facts = query.FactsUsingInput(reg, value.NewKeyPath("circles").Append(value.IndexSegment(0), value.NameSegment("radius")))
	if len(facts) != 1 || facts[0].Name() != "areas" {
		t.Fatalf("unexpected facts for circles.0.radius: %+v", facts)
	}

	facts = query.FactsUsingInput(reg, value.NewKeyPath("unrelated"))
	if len(facts) != 0 {
		t.Fatalf("expected no facts for an unrelated key path, got %+v", facts)
	}
}

func TestFactsWithDependencyFindsDirectConsumers(t *testing.T) {
	reg := demo.CirclesRegistry()
	facts := query.FactsWithDependency(reg, "math", "squared_scale")
	if len(facts) != 1 || facts[0].Name() != "areas" {
		t.Fatalf("unexpected dependents of math.squared_scale: %+v", facts)
	}
}

func TestLeafFactsDependingOnInputFollowsChainToTheEnd(t *testing.T) {
	reg := demo.CirclesRegistry()
	leaves := query.LeafFactsDependingOnInput(reg, value.NewKeyPath("scale"))
	if len(leaves) != 1 || leaves[0].Name() != "areas" {
		t.Fatalf("expected areas as the sole leaf downstream of scale, got %+v", leaves)
	}
}

func TestInputErrorsCollectsBadInputsAcrossResults(t *testing.T) {
	reg := demo.CirclesRegistry()
	ev := evaluator.New(reg, evaluator.WithStrictMode(true))

	input := map[string]any{
		"scale":   "not-a-number",
		"circles": []any{map[string]any{"radius": "spoon"}},
	}
	_, results, err := ev.Evaluate(input, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs := query.InputErrors(results)
	if _, ok := errs["scale"]; !ok {
		t.Fatalf("expected a bad_inputs entry for scale, got %+v", errs)
	}
	if _, ok := errs["circles.0.radius"]; !ok {
		t.Fatalf("expected a bad_inputs entry for circles.0.radius, got %+v", errs)
	}
}
