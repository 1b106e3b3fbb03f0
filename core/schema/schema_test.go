package schema_test

import (
	"testing"

	"factgraph/core/schema"
	"factgraph/core/value"
)

func TestNumericMissingAndWrongType(t *testing.T) {
	s := schema.Numeric("scale", nil)

	res := s.Call(map[string]any{})
	if res.Success {
		t.Fatalf("expected failure for missing scale")
	}
	if got := res.Errors[0].Text; got != "must be Numeric" {
		t.Fatalf("message = %q, want %q", got, "must be Numeric")
	}

	res = s.Call(map[string]any{"scale": "not-a-number"})
	if res.Success {
		t.Fatalf("expected failure for non-numeric scale")
	}
}

func TestNumericValid(t *testing.T) {
	s := schema.Numeric("scale", nil)
	res := s.Call(map[string]any{"scale": 5})
	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
}

func TestArrayOfHashStructuredErrors(t *testing.T) {
	radius := schema.Field{Name: "radius", Schema: schema.Integer("radius", nil)}
	s := schema.Array("circles", schema.Hash("element", radius))

	res := s.Call(map[string]any{
		"circles": []any{
			map[string]any{"radius": "spoon"},
			map[string]any{},
		},
	})
	if res.Success {
		t.Fatalf("expected failures")
	}
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(res.Errors), res.Errors)
	}

	byPath := map[string]string{}
	for _, e := range res.Errors {
		byPath[e.Path.String()] = e.Text
	}
	if got := byPath["circles.0.radius"]; got != "must be an integer" {
		t.Fatalf("circles.0.radius = %q, want %q", got, "must be an integer")
	}
	if got := byPath["circles.1.radius"]; got != "is missing" {
		t.Fatalf("circles.1.radius = %q, want %q", got, "is missing")
	}
}

func TestArrayMissingProducesArrayError(t *testing.T) {
	s := schema.Array("circles", schema.Hash("element"))
	res := s.Call(map[string]any{})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if got := res.Errors[0].Text; got != "must be an array" {
		t.Fatalf("message = %q, want %q", got, "must be an array")
	}
}

func TestKeyMapMatchesNestedPaths(t *testing.T) {
	radius := schema.Field{Name: "radius", Schema: schema.Integer("radius", nil)}
	s := schema.Array("circles", schema.Hash("element", radius))

	cases := []struct {
		path  value.KeyPath
		match bool
	}{
		{value.NewKeyPath("circles"), true},
		{value.NewKeyPath("circles").Append(value.IndexSegment(0)), true},
		{value.NewKeyPath("circles").Append(value.IndexSegment(0), value.NameSegment("radius")), true},
		{value.NewKeyPath("circles").Append(value.IndexSegment(0), value.NameSegment("diameter")), false},
		{value.NewKeyPath("areas"), false},
	}
	for _, tc := range cases {
		got := schema.Uses([]schema.Schema{s}, tc.path)
		if got != tc.match {
			t.Errorf("Uses(%v) = %v, want %v", tc.path, got, tc.match)
		}
	}
}

func TestProjectTrimsUndeclaredFields(t *testing.T) {
	radius := schema.Field{Name: "radius", Schema: schema.Integer("radius", nil)}
	elem := schema.Hash("element", radius)
	s := schema.Array("circles", elem)

	raw := []any{
		map[string]any{"radius": 1, "color": "red"},
	}
	projected := schema.Project(s, raw)

	items, ok := projected.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one projected element, got %#v", projected)
	}
	obj, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("expected projected element to be a map, got %#v", items[0])
	}
	if _, present := obj["color"]; present {
		t.Fatalf("undeclared field %q must not survive projection", "color")
	}
	if obj["radius"] != 1 {
		t.Fatalf("radius = %v, want 1", obj["radius"])
	}
}
