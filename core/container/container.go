// Package container provides DataContainer, the read-only bundle passed to
// every resolver. It is immutable once built and scoped to exactly one
// fact's resolution.
package container

import "factgraph/core/value"

// DataContainer bundles the filtered input, resolved dependencies, and
// (when the fact allows unmet dependencies) the deferred Errors record that
// a resolver may choose to return as its own result.
type DataContainer struct {
	// Input holds the filtered input fields this fact declared. Values are
	// either scalars/maps/slices (plain input) or,
	// for per-entity inputs, whatever the input schema accepted.
	Input map[string]any

	// Dependencies holds each declared dependency's resolved value: a
	// scalar payload, a value.Value (when the dependency itself errored and
	// allow_unmet_dependencies let the resolver see it), or a
	// map[model.EntityID]value.Value fan-out for a non-per-entity fact
	// depending on a per-entity one.
	Dependencies map[string]any

	// deferred is non-nil only when the fact declared
	// allow_unmet_dependencies and the evaluator's resolveFact found bad
	// inputs or unmet dependencies.
	deferred *value.Errors
}

// New builds a DataContainer. deferred is nil unless the fact allows unmet
// dependencies and resolution found errors to defer.
func New(input, dependencies map[string]any, deferred *value.Errors) *DataContainer {
	if input == nil {
		input = map[string]any{}
	}
	if dependencies == nil {
		dependencies = map[string]any{}
	}
	return &DataContainer{Input: input, Dependencies: dependencies, deferred: deferred}
}

// DataErrors returns the deferred Errors record, or nil if there is none.
// Only available in practice when the fact declared allow_unmet_dependencies;
// for any other fact resolution never invokes the resolver once errors
// exist, so this is moot.
func (c *DataContainer) DataErrors() *value.Errors {
	return c.deferred
}

// MustMatch runs a closure that attempts to destructure the container's
// fields, and on failure (ok == false) falls back to the deferred errors,
// or the IncompleteDefinition sentinel if there are none.
func MustMatch(c *DataContainer, match func() (value.Value, bool)) value.Value {
	if result, ok := match(); ok {
		return result
	}
	if c.deferred != nil && !c.deferred.IsEmpty() {
		return value.FromErrors(c.deferred)
	}
	return value.IncompleteDefinition()
}
