package model

import (
	"factgraph/core/container"
	"factgraph/core/schema"
	"factgraph/core/value"
)

// ResolverFunc computes a fact's Value from its DataContainer. It must be a
// pure function of its argument: a resolver never observes another fact's
// cache state directly, only what the container hands it.
type ResolverFunc func(*container.DataContainer) value.Value

// Resolver is either a constant value or a resolver function.
type Resolver struct {
	constant *value.Value
	fn       ResolverFunc
}

// ConstantResolver wraps a pure value with no inputs or dependencies.
func ConstantResolver(v any) Resolver {
	cv := value.Computed(v)
	return Resolver{constant: &cv}
}

// FuncResolver wraps a resolver function.
func FuncResolver(fn ResolverFunc) Resolver {
	return Resolver{fn: fn}
}

// IsConstant reports whether this resolver is the constant-value shorthand
// that resolution can return directly, bypassing input/dependency handling.
func (r Resolver) IsConstant() bool {
	return r.constant != nil
}

// Constant returns the wrapped constant value. Callers must check
// IsConstant first.
func (r Resolver) Constant() value.Value {
	return *r.constant
}

// Invoke runs the resolver function against c. Callers must check
// IsConstant first; invoking a constant resolver panics.
func (r Resolver) Invoke(c *container.DataContainer) value.Value {
	if r.fn == nil {
		panic("INVARIANT VIOLATED: Invoke called on a constant resolver")
	}
	return r.fn(c)
}

// InputDef declares one input a fact reads.
type InputDef struct {
	Name InputName

	// PerEntity, when true, means this input is fetched from
	// input[entity_name][entity_id][name] rather than input[name] — entity_name
	// is the owning FactDef's PerEntity field.
	PerEntity bool

	Schema schema.Schema
}

// FactDef is an immutable fact declaration, registered once at load time and
// never mutated afterward.
type FactDef struct {
	Module ModuleName
	Name   FactName

	// PerEntity is nil for a plain fact, or names the entity collection this
	// fact expands over, one instance per entity id.
	PerEntity *EntityName

	AllowUnmetDependencies bool
	Resolver               Resolver
	Inputs                 []InputDef

	// Dependencies maps a dependency's fact name to the module it resolves
	// against.
	Dependencies map[FactName]ModuleName

	SourceFile string
	SourceLine int
}

// IsPerEntity reports whether this declaration expands per-entity.
func (f *FactDef) IsPerEntity() bool {
	return f.PerEntity != nil
}

// FactOption configures a FactDef at declaration time.
type FactOption func(*FactDef)

// PerEntity marks the declaration as expanding over entity collection e.
func PerEntity(e EntityName) FactOption {
	return func(f *FactDef) { f.PerEntity = &e }
}

// AllowUnmetDependencies lets the resolver see deferred errors via
// DataContainer.DataErrors instead of being skipped outright.
func AllowUnmetDependencies() FactOption {
	return func(f *FactDef) { f.AllowUnmetDependencies = true }
}

// Input declares a plain (non-per-entity) input field.
func Input(name InputName, s schema.Schema) FactOption {
	return func(f *FactDef) {
		f.Inputs = append(f.Inputs, InputDef{Name: name, Schema: s})
	}
}

// PerEntityInput declares an input fetched per-entity, only meaningful on a
// per-entity fact.
func PerEntityInput(name InputName, s schema.Schema) FactOption {
	return func(f *FactDef) {
		f.Inputs = append(f.Inputs, InputDef{Name: name, PerEntity: true, Schema: s})
	}
}

// Dependency declares a dependency on fact name, resolved against module
// from.
func Dependency(name FactName, from ModuleName) FactOption {
	return func(f *FactDef) { f.Dependencies[name] = from }
}

// DependencyInModule declares a dependency resolved against the declaring
// fact's own module: "from" defaults to the containing module.
func DependencyInModule(name FactName) FactOption {
	return func(f *FactDef) { f.Dependencies[name] = f.Module }
}

// SourceLocation attaches a diagnostic origin.
func SourceLocation(file string, line int) FactOption {
	return func(f *FactDef) { f.SourceFile = file; f.SourceLine = line }
}
