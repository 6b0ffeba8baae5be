package ir

// DebugMetadataKey is the named-metadata slot holding the module's
// debug compile units.
const DebugMetadataKey = "dxir.dbg.cu"

// Module is the root container: functions, globals and named metadata,
// all owned transitively. A module may additionally hold one lazily
// attached domain wrapper (see internal/shader).
type Module struct {
	Name string
	// TargetTriple selects the data layout, e.g. "dxil-ms-dx".
	TargetTriple string

	ctx     *Context
	Funcs   []*Function
	Globals []*GlobalVariable
	namedMD map[string][]Metadata

	wrapper any
}

// NewModule creates an empty module owned by the context.
func (c *Context) NewModule(name string) *Module {
	return &Module{Name: name, ctx: c, namedMD: make(map[string][]Metadata)}
}

// Context returns the owning context.
func (m *Module) Context() *Context { return m.ctx }

// NewFunction appends an empty function.
func (m *Module) NewFunction(name string) *Function {
	f := &Function{valueBase: valueBase{typ: PointerType(VoidType()), name: name}, mod: m}
	m.Funcs = append(m.Funcs, f)
	return f
}

// NewGlobal appends a global variable.
func (m *Module) NewGlobal(name string, typ *Type) *GlobalVariable {
	g := &GlobalVariable{valueBase: valueBase{typ: PointerType(typ), name: name}, mod: m}
	m.Globals = append(m.Globals, g)
	return g
}

// FunctionNamed returns the function with the given name, nil if none.
func (m *Module) FunctionNamed(name string) *Function {
	for _, f := range m.Funcs {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// GlobalNamed returns the global with the given name, nil if none.
func (m *Module) GlobalNamed(name string) *GlobalVariable {
	for _, g := range m.Globals {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

// NamedMetadata returns the metadata list registered under name.
// Do not modify the returned slice.
func (m *Module) NamedMetadata(name string) []Metadata {
	return m.namedMD[name]
}

// AddNamedMetadata appends a metadata node under name.
func (m *Module) AddNamedMetadata(name string, md Metadata) {
	if m.namedMD == nil {
		m.namedMD = make(map[string][]Metadata)
	}
	m.namedMD[name] = append(m.namedMD[name], md)
}

// Wrapper returns the attached domain wrapper, nil if none.
func (m *Module) Wrapper() any { return m.wrapper }

// SetWrapper attaches the domain wrapper. At most one is expected;
// attachment policy (idempotence) is the caller's concern.
func (m *Module) SetWrapper(w any) { m.wrapper = w }

// HasDebugInfo reports whether the module carries debug compile units.
func HasDebugInfo(m *Module) bool {
	return m != nil && len(m.NamedMetadata(DebugMetadataKey)) > 0
}
