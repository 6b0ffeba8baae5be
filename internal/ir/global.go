package ir

// GlobalVariable is a module-owned global value.
type GlobalVariable struct {
	valueBase
	mod *Module
}

// Module returns the owning module.
func (g *GlobalVariable) Module() *Module { return g.mod }
