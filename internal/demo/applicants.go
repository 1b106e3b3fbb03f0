package demo

import (
	"factgraph/core/container"
	"factgraph/core/model"
	"factgraph/core/schema"
	"factgraph/core/value"
)

// ApplicantsRegistry builds a registry with a per-entity income input, a
// per-entity eligibility decision that defers to its own errors, and a
// non-per-entity aggregator counting eligible applicants.
func ApplicantsRegistry() *model.Registry {
	ns := model.NewNamespace("applicants")

	ns.DeclareFact("income",
		model.FuncResolver(func(c *container.DataContainer) value.Value {
			return value.Computed(toFloat(c.Input["income"]))
		}),
		model.PerEntity("applicants"),
		model.PerEntityInput("income", schema.Integer("income", nil)),
	)

	ns.DeclareFact("eligible",
		model.FuncResolver(func(c *container.DataContainer) value.Value {
			return container.MustMatch(c, func() (value.Value, bool) {
				income, ok := c.Dependencies["income"].(float64)
				if !ok {
					return value.Value{}, false
				}
				return value.Computed(income < 100), true
			})
		}),
		model.PerEntity("applicants"),
		model.AllowUnmetDependencies(),
		model.Dependency("income", "applicants"),
	)

	ns.DeclareFact("num_eligible",
		model.FuncResolver(func(c *container.DataContainer) value.Value {
			fanout, _ := c.Dependencies["eligible"].(map[model.EntityID]value.Value)
			count := 0
			for _, v := range fanout {
				if v.IsComputed() {
					if b, ok := v.Payload().(bool); ok && b {
						count++
					}
				}
			}
			return value.Computed(count)
		}),
		model.Dependency("eligible", "applicants"),
	)

	return ns.Registry()
}
