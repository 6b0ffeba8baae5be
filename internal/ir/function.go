package ir

// Function is a module-owned function: blocks of instructions plus an
// optional debug subprogram descriptor used for coarse attribution.
type Function struct {
	valueBase
	mod    *Module
	Blocks []*Block

	// Subprogram is the source-level descriptor (name, file, line),
	// nil when the function has no debug info.
	Subprogram *DISubprogram

	materializer func(*Function) error
}

// Module returns the owning module.
func (f *Function) Module() *Module { return f.mod }

// NewBlock appends a new empty block.
func (f *Function) NewBlock(name string) *Block {
	b := &Block{name: name, fn: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// EntryBlock returns the first block, nil when the body is empty or
// not yet materialized.
func (f *Function) EntryBlock() *Block {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// SetMaterializer installs a deferred body loader. Used by the lazy
// bitcode reader; the hook runs at most once.
func (f *Function) SetMaterializer(fn func(*Function) error) {
	f.materializer = fn
}

// IsMaterialized reports whether the body is available without
// further loading.
func (f *Function) IsMaterialized() bool { return f.materializer == nil }

// Materialize loads a deferred body. No-op when the function is
// already materialized.
func (f *Function) Materialize() error {
	if f.materializer == nil {
		return nil
	}
	fn := f.materializer
	f.materializer = nil
	return fn(f)
}
