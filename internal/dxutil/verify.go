package dxutil

import (
	"dxir/internal/diag"
	"dxir/internal/ir"
)

// VerifyDebugBindings scans every materialized function for
// debug-value bindings that no longer describe anything: a binding
// whose operand does not wrap a live value, or one with no variable.
// Each finding is reported as a warning through the module's context.
// Returns the number of findings.
func VerifyDebugBindings(m *ir.Module) int {
	count := 0
	for _, f := range m.Funcs {
		if !f.IsMaterialized() {
			continue
		}
		for _, b := range f.Blocks {
			for _, ins := range b.Instrs {
				if !ins.IsDbgValue() {
					continue
				}
				switch {
				case ins.DbgValue() == nil:
					emitOnInstruction(ins, "debug binding describes no value", diag.SevWarning, diag.LowerDbgBinding)
					count++
				case ins.Variable == nil:
					emitOnInstruction(ins, "debug binding has no source variable", diag.SevWarning, diag.LowerDbgBinding)
					count++
				}
			}
		}
	}
	return count
}
