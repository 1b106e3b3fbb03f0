package evaluator

import (
	"fmt"

	"factgraph/core/container"
	"factgraph/core/graph"
	"factgraph/core/model"
	"factgraph/core/schema"
	"factgraph/core/value"
	fgerrors "factgraph/internal/errors"
)

// resolveCoordinate resolves a non-per-entity (module, name) coordinate,
// memoizing the result. A non-nil error means evaluation hit a resolver or
// schema panic and must abort; the cache is left unset in that case.
func (ev *Evaluator) resolveCoordinate(g *graph.Graph, c *cache, module model.ModuleName, name model.FactName, input map[string]any) (value.Value, error) {
	if v, ok := c.get(module, name); ok {
		return v, nil
	}
	slot, ok := g.Lookup(module, name)
	if !ok {
		panic(missingReferenceMessage(module, name))
	}
	if slot.IsPerEntity() {
		panic(fmt.Sprintf("INVARIANT VIOLATED: %s.%s is a per-entity fact, resolved as a scalar", module, name))
	}
	v, err := ev.resolveFact(g, c, slot.Single, input)
	if err != nil {
		return value.Value{}, err
	}
	c.set(module, name, v)
	return v, nil
}

// resolveEntityCoordinate resolves one entity id of a per-entity
// (module, name) coordinate, memoizing the result.
func (ev *Evaluator) resolveEntityCoordinate(g *graph.Graph, c *cache, module model.ModuleName, name model.FactName, id model.EntityID, input map[string]any) (value.Value, error) {
	if v, ok := c.getEntity(module, name, id); ok {
		return v, nil
	}
	slot, ok := g.Lookup(module, name)
	if !ok {
		panic(missingReferenceMessage(module, name))
	}
	fact, ok := slot.PerEntity[id]
	if !ok {
		panic(fmt.Sprintf("INVARIANT VIOLATED: %s.%s has no entity id %d in the built graph", module, name, int(id)))
	}
	v, err := ev.resolveFact(g, c, fact, input)
	if err != nil {
		return value.Value{}, err
	}
	c.setEntity(module, name, id, v)
	return v, nil
}

func missingReferenceMessage(module model.ModuleName, name model.FactName) string {
	return fmt.Sprintf("INVARIANT VIOLATED: missing dependency reference: %s.%s is not present in the built graph", module, name)
}

// resolveFact resolves a single Fact instance f, already known not to be
// memoized: constant fast path, dependency resolution, input filtering and
// validation, dependency-error propagation, then either invoking the
// resolver or deferring to the accumulated errors. Resolving f's
// dependencies may recursively trigger resolveCoordinate/
// resolveEntityCoordinate. A panic out of a Schema.Call or a resolver is
// recovered here and converted to a *factgraph/internal/errors.Error
// (SchemaFailure / ResolverException) carrying the offending fact's module
// and name, rather than propagating as a bare Go panic.
func (ev *Evaluator) resolveFact(g *graph.Graph, c *cache, f *graph.Fact, input map[string]any) (value.Value, error) {
	def := f.Def

	// Step 2: constant fast path.
	if def.Resolver.IsConstant() {
		return def.Resolver.Constant(), nil
	}

	// Step 3: dependency resolution.
	type depResult struct {
		value    value.Value
		fanOut   map[model.EntityID]value.Value
		isFanOut bool
	}
	deps := make(map[model.FactName]depResult, len(def.Dependencies))
	for depName, depModule := range def.Dependencies {
		targetSlot, ok := g.Lookup(depModule, depName)
		if !ok {
			panic(missingReferenceMessage(depModule, depName))
		}
		if !targetSlot.IsPerEntity() {
			v, err := ev.resolveCoordinate(g, c, depModule, depName, input)
			if err != nil {
				return value.Value{}, err
			}
			deps[depName] = depResult{value: v}
			continue
		}
		if f.HasEntityID {
			// Paired index: this fact and its dependency share an entity id.
			v, err := ev.resolveEntityCoordinate(g, c, depModule, depName, f.EntityID, input)
			if err != nil {
				return value.Value{}, err
			}
			deps[depName] = depResult{value: v}
			continue
		}
		// Non-per-entity fact depending on a per-entity fact: the whole
		// fan-out, keyed by entity id.
		fanOut := make(map[model.EntityID]value.Value, len(targetSlot.PerEntity))
		for id := range targetSlot.PerEntity {
			v, err := ev.resolveEntityCoordinate(g, c, depModule, depName, id, input)
			if err != nil {
				return value.Value{}, err
			}
			fanOut[id] = v
		}
		deps[depName] = depResult{fanOut: fanOut, isFanOut: true}
	}

	// Step 4: input filtering.
	filteredInput := make(map[string]any, len(def.Inputs))
	for _, in := range def.Inputs {
		raw, present := readInput(def, f, in, input)
		if !present {
			continue
		}
		filteredInput[string(in.Name)] = schema.Project(in.Schema, raw)
	}

	// Step 5: input validation.
	errs := value.NewErrors()
	for _, in := range def.Inputs {
		wrap := map[string]any{}
		if v, ok := filteredInput[string(in.Name)]; ok {
			wrap[string(in.Name)] = v
		}
		res, err := callSchema(def, in.Schema, wrap, string(in.Name))
		if err != nil {
			return value.Value{}, err
		}
		if !res.Success {
			for _, fe := range res.Errors {
				errs.AddBadInput(fe.Path, fe.Text)
			}
		}
	}

	// Step 6: dependency-error propagation.
	for depName, depModule := range def.Dependencies {
		d := deps[depName]
		if d.isFanOut {
			for _, v := range d.fanOut {
				if v.IsErrors() {
					errs.AddDependencyUnmet(string(depModule), string(depName))
					break
				}
			}
			continue
		}
		if d.value.IsErrors() {
			errs.AddDependencyUnmet(string(depModule), string(depName))
		}
	}

	// Build the dependency bundle a resolver sees: successful scalar
	// dependencies are unwrapped to their payload; errored scalar
	// dependencies and every per-entity fan-out keep the full Value, so a
	// resolver can distinguish success from failure per entity.
	depBundle := make(map[string]any, len(deps))
	for depName, d := range deps {
		if d.isFanOut {
			depBundle[string(depName)] = d.fanOut
			continue
		}
		if d.value.IsComputed() {
			depBundle[string(depName)] = d.value.Payload()
		} else {
			depBundle[string(depName)] = d.value
		}
	}

	// Step 7: decision.
	if errs.IsEmpty() {
		dc := container.New(filteredInput, depBundle, nil)
		return invokeResolver(def, dc)
	}
	if !def.AllowUnmetDependencies {
		return value.FromErrors(errs), nil
	}
	dc := container.New(filteredInput, depBundle, errs)
	return invokeResolver(def, dc)
}

// invokeResolver calls def.Resolver.Invoke, recovering a panic into a
// ResolverException carrying def's module and name.
func invokeResolver(def *model.FactDef, dc *container.DataContainer) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fgerrors.ResolverException(string(def.Module), string(def.Name), panicCause(r))
		}
	}()
	result = def.Resolver.Invoke(dc)
	return result, nil
}

// callSchema calls s.Call, recovering a panic into a SchemaFailure carrying
// the input's name, with def's module and name attached as context.
func callSchema(def *model.FactDef, s schema.Schema, record map[string]any, inputName string) (result schema.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fgerrors.SchemaFailure(inputName, panicCause(r)).
				WithContext("fact_module", string(def.Module)).
				WithContext("fact_name", string(def.Name))
		}
	}()
	result = s.Call(record)
	return result, nil
}

// panicCause converts a recovered value into an error, preserving it
// directly when the panic already carried one.
func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// readInput fetches the raw value for in, honoring the per-entity
// substitution rule: a per-entity input reads
// input[entity_name][entity_id][name] instead of input[name].
func readInput(def *model.FactDef, f *graph.Fact, in model.InputDef, input map[string]any) (any, bool) {
	if !in.PerEntity {
		raw, ok := input[string(in.Name)]
		return raw, ok
	}
	if !f.HasEntityID || def.PerEntity == nil {
		return nil, false
	}
	coll, ok := input[string(*def.PerEntity)]
	if !ok {
		return nil, false
	}
	seq, ok := coll.([]any)
	if !ok || int(f.EntityID) >= len(seq) {
		return nil, false
	}
	rec, ok := seq[f.EntityID].(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := rec[string(in.Name)]
	return raw, ok
}
