package evaluator_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"factgraph/core/container"
	"factgraph/core/evaluator"
	"factgraph/core/model"
	"factgraph/core/schema"
	"factgraph/core/value"
	"factgraph/internal/demo"
	fgerrors "factgraph/internal/errors"
)

func TestEvaluateCirclesProducesExpectedAreas(t *testing.T) {
	reg := demo.CirclesRegistry()
	ev := evaluator.New(reg, evaluator.WithStrictMode(true))

	input := map[string]any{
		"scale": 5,
		"circles": []any{
			map[string]any{"radius": 1},
			map[string]any{"radius": 2},
		},
	}
	_, results, err := ev.Evaluate(input, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scaled, ok := results.Get("math", "squared_scale")
	if !ok || !scaled.IsComputed() {
		t.Fatalf("expected squared_scale to resolve: %+v", scaled)
	}
	squared, ok := scaled.Payload().(decimal.Decimal)
	if !ok || !squared.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("squared_scale = %v, want 25", scaled.Payload())
	}

	areas, ok := results.Get("circles", "areas")
	if !ok || !areas.IsComputed() {
		t.Fatalf("expected areas to resolve: %+v", areas)
	}
	got, ok := areas.Payload().([]any)
	if !ok || len(got) != 2 {
		t.Fatalf("unexpected areas payload: %#v", areas.Payload())
	}
	if got[0] != 78.5 || got[1] != 314.0 {
		t.Fatalf("areas = %v, want [78.5 314]", got)
	}
}

func TestEvaluateApplicantsComputesEligibilityPerEntity(t *testing.T) {
	reg := demo.ApplicantsRegistry()
	ev := evaluator.New(reg, evaluator.WithStrictMode(true))

	input := map[string]any{"applicants": []any{
		map[string]any{"income": 48},
		map[string]any{"income": 380},
	}}
	_, results, err := ev.Evaluate(input, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fanOut, ok := results.GetFanOut("applicants", "eligible")
	if !ok {
		t.Fatalf("expected eligible fan-out")
	}
	if v, ok := fanOut[0]; !ok || !v.IsComputed() || v.Payload() != true {
		t.Fatalf("eligible[0] = %+v, want computed true", v)
	}
	if v, ok := fanOut[1]; !ok || !v.IsComputed() || v.Payload() != false {
		t.Fatalf("eligible[1] = %+v, want computed false", v)
	}

	numEligible, ok := results.Get("applicants", "num_eligible")
	if !ok || !numEligible.IsComputed() {
		t.Fatalf("expected num_eligible to resolve: %+v", numEligible)
	}
	if numEligible.Payload() != 1 {
		t.Fatalf("num_eligible = %v, want 1", numEligible.Payload())
	}
}

func TestEvaluateMemoizesEachCoordinateOnce(t *testing.T) {
	ns := model.NewNamespace("m")
	calls := 0
	ns.DeclareFact("shared", model.FuncResolver(func(_ *container.DataContainer) value.Value {
		calls++
		return value.Computed(calls)
	}))
	ns.DeclareFact("a", model.FuncResolver(func(c *container.DataContainer) value.Value {
		return value.Computed(c.Dependencies["shared"])
	}), model.DependencyInModule("shared"))
	ns.DeclareFact("b", model.FuncResolver(func(c *container.DataContainer) value.Value {
		return value.Computed(c.Dependencies["shared"])
	}), model.DependencyInModule("shared"))

	ev := evaluator.New(ns.Registry(), evaluator.WithStrictMode(true))
	_, results, err := ev.Evaluate(map[string]any{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the shared resolver to run exactly once, ran %d times", calls)
	}
	a, _ := results.Get("m", "a")
	b, _ := results.Get("m", "b")
	if a.Payload() != b.Payload() {
		t.Fatalf("expected a and b to observe the same memoized shared value, got %v and %v", a.Payload(), b.Payload())
	}
}

func TestEvaluateRecoversPanickingResolver(t *testing.T) {
	ns := model.NewNamespace("m")
	ns.DeclareFact("boom", model.FuncResolver(func(_ *container.DataContainer) value.Value {
		panic("resolver exploded")
	}))

	ev := evaluator.New(ns.Registry(), evaluator.WithStrictMode(true))
	_, results, err := ev.Evaluate(map[string]any{}, nil)
	if err == nil {
		t.Fatalf("expected an error from a panicking resolver, got results %+v", results)
	}
	if !fgerrors.IsType(err, fgerrors.TypeResolverException) {
		t.Fatalf("err = %v, want TypeResolverException", err)
	}
}

// panicSchema decorates a real Schema, embedding it for its unexported
// checkType/missingMessage so it still satisfies the interface, but
// overrides Call to panic — simulating a misbehaving Schema
// implementation.
type panicSchema struct {
	schema.Schema
}

func (panicSchema) Call(map[string]any) schema.Result {
	panic("schema exploded")
}

func TestEvaluateRecoversPanickingSchema(t *testing.T) {
	ns := model.NewNamespace("m")
	ns.DeclareFact("field",
		model.FuncResolver(func(c *container.DataContainer) value.Value {
			return value.Computed(c.Input["x"])
		}),
		model.Input("x", panicSchema{Schema: schema.Integer("x", nil)}),
	)

	ev := evaluator.New(ns.Registry(), evaluator.WithStrictMode(true))
	_, results, err := ev.Evaluate(map[string]any{"x": 1}, nil)
	if err == nil {
		t.Fatalf("expected an error from a panicking schema, got results %+v", results)
	}
	if !fgerrors.IsType(err, fgerrors.TypeSchemaFailure) {
		t.Fatalf("err = %v, want TypeSchemaFailure", err)
	}
}
