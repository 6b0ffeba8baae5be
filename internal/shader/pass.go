package shader

import "dxir/internal/ir"

// LoadMetadataPass is the module-pass form of EnsureModule, for pass
// pipelines that want the wrapper materialized before module-scoped
// analyses run.
type LoadMetadataPass struct{}

// Name returns the pass name.
func (LoadMetadataPass) Name() string { return "shader-load-metadata" }

// RunOnModule attaches the wrapper when missing. Reports whether the
// module changed.
func (LoadMetadataPass) RunOnModule(m *ir.Module) bool {
	return EnsureModule(m)
}
