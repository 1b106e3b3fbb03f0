package model

// Namespace owns a registry and a stack of module-name overrides. Declaring
// a fact in a namespace appends to its parent namespace's registry: a child
// namespace collects facts into the same registry a caller evaluates
// against, without exposing its own (otherwise empty) registry.
type Namespace struct {
	registry      *Registry
	parent        *Namespace
	moduleStack   []ModuleName
	defaultModule ModuleName
}

// NewNamespace returns a root namespace with no parent, declaring into its
// own registry under defaultModule.
func NewNamespace(defaultModule ModuleName) *Namespace {
	return &Namespace{registry: NewRegistry(), defaultModule: defaultModule}
}

// NewChild returns a namespace whose declarations target n's registry, with
// its own (empty) registry and its own default module.
func (n *Namespace) NewChild(defaultModule ModuleName) *Namespace {
	return &Namespace{registry: NewRegistry(), parent: n, defaultModule: defaultModule}
}

// Registry returns this namespace's own registry — the one a caller
// evaluates against.
func (n *Namespace) Registry() *Registry {
	return n.registry
}

// targetRegistry is the registry declare_fact appends to: the parent's, if
// one exists, else this namespace's own.
func (n *Namespace) targetRegistry() *Registry {
	if n.parent != nil {
		return n.parent.registry
	}
	return n.registry
}

// InModule pushes module for the duration of body, a lexical override of
// the module name declarations inside body receive: push module, run
// declarations, pop.
func (n *Namespace) InModule(module ModuleName, body func()) {
	n.moduleStack = append(n.moduleStack, module)
	defer func() { n.moduleStack = n.moduleStack[:len(n.moduleStack)-1] }()
	body()
}

func (n *Namespace) currentModule() ModuleName {
	if len(n.moduleStack) > 0 {
		return n.moduleStack[len(n.moduleStack)-1]
	}
	return n.defaultModule
}

// DeclareFact appends a new FactDef, under the current lexical module, to
// the target registry.
func (n *Namespace) DeclareFact(name FactName, resolver Resolver, opts ...FactOption) *FactDef {
	fd := &FactDef{
		Module:       n.currentModule(),
		Name:         name,
		Resolver:     resolver,
		Dependencies: map[FactName]ModuleName{},
	}
	for _, opt := range opts {
		opt(fd)
	}
	n.targetRegistry().Add(fd)
	return fd
}

// Constant is shorthand for DeclareFact with a pure-value resolver and no
// inputs or dependencies.
func (n *Namespace) Constant(name FactName, v any, opts ...FactOption) *FactDef {
	return n.DeclareFact(name, ConstantResolver(v), opts...)
}
