// Package demo provides fact registries used to exercise the evaluation
// engine from the command line, since the DSL that would normally declare
// these facts is outside this repository's scope.
package demo

import (
	"github.com/shopspring/decimal"

	"factgraph/core/container"
	"factgraph/core/model"
	"factgraph/core/schema"
	"factgraph/core/value"
)

// CirclesRegistry builds a small registry computing circle areas scaled by
// an input factor: simple.two, math.pi, math.squared_scale, circles.areas.
func CirclesRegistry() *model.Registry {
	ns := model.NewNamespace("simple")

	ns.Constant("two", 2)

	ns.InModule("math", func() {
		ns.Constant("pi", 3.14)

		zero := decimal.NewFromInt(0)
		ns.DeclareFact("squared_scale",
			model.FuncResolver(func(c *container.DataContainer) value.Value {
				scale := c.Input["scale"]
				d, _ := decimal.NewFromString(toDecimalString(scale))
				return value.Computed(d.Mul(d))
			}),
			model.Input("scale", schema.Numeric("scale", &zero)),
		)
	})

	ns.InModule("circles", func() {
		radiusField := schema.Field{Name: "radius", Schema: schema.Integer("radius", nil)}
		ns.DeclareFact("areas",
			model.FuncResolver(func(c *container.DataContainer) value.Value {
				circles, _ := c.Input["circles"].([]any)
				pi, _ := c.Dependencies["pi"].(float64)
				squared, _ := c.Dependencies["squared_scale"].(decimal.Decimal)
				areas := make([]any, len(circles))
				for i, raw := range circles {
					item, _ := raw.(map[string]any)
					radius := toFloat(item["radius"])
					areas[i], _ = decimal.NewFromFloat(pi).Mul(decimal.NewFromFloat(radius * radius)).Mul(squared).Float64()
				}
				return value.Computed(areas)
			}),
			model.Input("circles", schema.Array("circles", schema.Hash("element", radiusField))),
			model.Dependency("pi", "math"),
			model.Dependency("squared_scale", "math"),
		)
	})

	return ns.Registry()
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func toDecimalString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return decimal.NewFromFloat(n).String()
	case int:
		return decimal.NewFromInt(int64(n)).String()
	default:
		return "0"
	}
}
