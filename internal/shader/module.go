// Package shader holds the domain wrapper attached to an IR module:
// the shader-level view (entry point, stage) plus derived analysis
// state such as the cached debug-info finder. At most one wrapper
// exists per module; attachment is idempotent.
package shader

import "dxir/internal/ir"

// Stage identifies the pipeline stage a module was compiled for.
type Stage uint8

const (
	StageLibrary Stage = iota
	StageCompute
	StageVertex
	StagePixel
	StageGeometry
	StageHull
	StageDomain
)

func (s Stage) String() string {
	switch s {
	case StageLibrary:
		return "library"
	case StageCompute:
		return "compute"
	case StageVertex:
		return "vertex"
	case StagePixel:
		return "pixel"
	case StageGeometry:
		return "geometry"
	case StageHull:
		return "hull"
	case StageDomain:
		return "domain"
	}
	return "unknown"
}

// Module is the domain wrapper: shader-level facts about an IR module
// and caches for module-scoped analyses.
type Module struct {
	EntryPoint string
	Stage      Stage

	irm    *ir.Module
	finder *ir.DebugInfoFinder
}

// IR returns the wrapped module.
func (sm *Module) IR() *ir.Module { return sm.irm }

// GetOrCreateDebugInfoFinder returns the cached finder, building and
// caching it on first request. The cache is read-mostly: rebuild with
// InvalidateDebugInfoFinder after mutating debug metadata.
func (sm *Module) GetOrCreateDebugInfoFinder() *ir.DebugInfoFinder {
	if sm.finder == nil {
		sm.finder = &ir.DebugInfoFinder{}
		sm.finder.ProcessModule(sm.irm)
	}
	return sm.finder
}

// InvalidateDebugInfoFinder drops the cached finder so the next
// request rebuilds it.
func (sm *Module) InvalidateDebugInfoFinder() {
	sm.finder = nil
}

// Has reports whether m already carries a wrapper.
func Has(m *ir.Module) bool {
	return Get(m) != nil
}

// Get returns the wrapper attached to m, nil if none.
func Get(m *ir.Module) *Module {
	if m == nil {
		return nil
	}
	sm, _ := m.Wrapper().(*Module)
	return sm
}

// GetOrCreate returns the wrapper, attaching a new one on first touch.
func GetOrCreate(m *ir.Module) *Module {
	if sm := Get(m); sm != nil {
		return sm
	}
	sm := &Module{irm: m}
	m.SetWrapper(sm)
	return sm
}

// EnsureModule attaches a wrapper if the module lacks one. Reports
// whether the module was modified: true exactly once, false on every
// later call. Safe to run any number of times.
func EnsureModule(m *ir.Module) bool {
	if Has(m) {
		return false
	}
	GetOrCreate(m)
	return true
}
