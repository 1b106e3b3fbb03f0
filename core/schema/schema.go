// Package schema validates fact inputs and describes which key-paths they
// accept: a Schema is "call(value) -> Result" plus a KeyMap of the
// key-paths it recognizes. The declaration surface that builds schemas from
// a higher-level description is out of scope here; this package supplies a
// concrete, usable implementation with the same interface-plus-implementation
// shape as a rule-evaluator interface.
package schema

import "factgraph/core/value"

// FieldError is a single validation failure at a key-path.
type FieldError struct {
	Path value.KeyPath
	Text string
}

// Result is the outcome of a Schema.Call.
type Result struct {
	Success bool
	Errors  []FieldError
}

// Key is one of the typed key structures in a Schema's KeyMap: ScalarKey,
// ArrayKey, HashKey.
type Key interface {
	// Matches reports whether path is accepted by this key.
	Matches(path value.KeyPath) bool
}

// Schema is the capability every InputDef carries: it validates a single
// named field (wrapped as {name: value}) and exposes the key-paths it
// accepts.
type Schema interface {
	// Call validates record[Name()] and reports every failure found.
	Call(record map[string]any) Result

	// KeyMap returns the typed keys this schema accepts.
	KeyMap() []Key

	// Name returns the top-level field name this schema is bound to.
	Name() string

	// checkType validates a present, non-wrapped value and reports whether
	// it is acceptable; used both for the top-level Call and recursively
	// by container schemas (Array, Hash) validating their elements/fields.
	checkType(v any) (bool, string)

	// missingMessage is the error text used when the top-level field this
	// schema validates is absent from the record.
	missingMessage() string
}

// matchesStructure reports whether path matches s's internal structure,
// with path already stripped of any enclosing field-name segment: a scalar
// schema matches only the empty remainder; an array schema expects an
// optional index followed by a path into its element; a hash schema
// expects a field name followed by a path into that field. It operates one
// level below the named ScalarKey/ArrayKey/HashKey wrapper, so a field
// nested inside an array element is addressed directly by its own name,
// not re-prefixed by the element schema's name.
func matchesStructure(s Schema, path value.KeyPath) bool {
	switch sc := s.(type) {
	case *hashSchema:
		if len(path) == 0 {
			return true
		}
		head, rest, ok := path.Head()
		if !ok || head.IsIndex {
			return false
		}
		for _, f := range sc.fields {
			if f.Name == head.Name {
				return matchesStructure(f.Schema, rest)
			}
		}
		return false
	case *arraySchema:
		if len(path) == 0 {
			return true
		}
		idx, rest, ok := path.Head()
		if !ok || !idx.IsIndex {
			return false
		}
		if len(rest) == 0 {
			return true
		}
		return matchesStructure(sc.element, rest)
	default:
		return len(path) == 0
	}
}

// ScalarKey matches a key-path of length 1 equal to FieldName.
type ScalarKey struct {
	FieldName string
}

// Matches implements Key.
func (k ScalarKey) Matches(path value.KeyPath) bool {
	return len(path) == 1 && !path[0].IsIndex && path[0].Name == k.FieldName
}

// ArrayKey matches FieldName, optionally followed by an integer position and a
// path into the element schema.
type ArrayKey struct {
	FieldName string
	schema    *arraySchema
}

// Matches implements Key.
func (k ArrayKey) Matches(path value.KeyPath) bool {
	head, rest, ok := path.Head()
	if !ok || head.IsIndex || head.Name != k.FieldName {
		return false
	}
	return matchesStructure(k.schema, rest)
}

// HashKey matches FieldName, optionally followed by a path matching one of its
// member fields.
type HashKey struct {
	FieldName string
	schema    *hashSchema
}

// Matches implements Key.
func (k HashKey) Matches(path value.KeyPath) bool {
	head, rest, ok := path.Head()
	if !ok || head.IsIndex || head.Name != k.FieldName {
		return false
	}
	return matchesStructure(k.schema, rest)
}

// Uses reports whether any key across the given schemas matches keyPath,
// the predicate behind FactsUsingInput.
func Uses(schemas []Schema, keyPath value.KeyPath) bool {
	for _, s := range schemas {
		for _, k := range s.KeyMap() {
			if k.Matches(keyPath) {
				return true
			}
		}
	}
	return false
}
