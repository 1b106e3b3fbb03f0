// Package model provides the core domain model: immutable fact declarations
// (FactDef) registered at load time, and the namespaces that collect them.
// Materialized graph nodes (Fact instances) live in core/graph, keeping
// declaration and instance as separate concerns.
package model

import "fmt"

// ModuleName is an opaque, equatable, hashable module identifier.
type ModuleName string

// FactName is an opaque, equatable, hashable fact identifier.
type FactName string

// EntityName is an opaque identifier for a per-entity collection in the
// input record (e.g. "applicants").
type EntityName string

// InputName is an opaque identifier for a declared input field.
type InputName string

// EntityID is the non-negative index of an entity within its collection.
type EntityID int

// String implements fmt.Stringer for diagnostics.
func (e EntityID) String() string {
	return fmt.Sprintf("%d", int(e))
}

// FactKey addresses a single fact coordinate: module + name, optionally
// qualified by an entity id for per-entity facts.
type FactKey struct {
	Module   ModuleName
	Name     FactName
	EntityID EntityID
	HasID    bool
}

// String renders the key for logs and error messages.
func (k FactKey) String() string {
	if k.HasID {
		return fmt.Sprintf("%s.%s[%d]", k.Module, k.Name, int(k.EntityID))
	}
	return fmt.Sprintf("%s.%s", k.Module, k.Name)
}
