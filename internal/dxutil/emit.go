package dxutil

import (
	"dxir/internal/diag"
	"dxir/internal/ir"
	"dxir/internal/shader"
)

// maxPhiSelectDepth bounds the user-following location search so
// deeply chained merge nodes cannot blow up the traversal.
const maxPhiSelectDepth = 4

// ResourceMapErrorMessage is emitted when a local resource cannot be
// mapped back to a unique global resource.
const ResourceMapErrorMessage = "local resource not guaranteed to map to unique global resource."

// EmitErrorOnInstruction reports an error at the instruction's debug
// location, inferring one through phi/select users when absent.
func EmitErrorOnInstruction(i *ir.Instruction, msg string) {
	emitOnInstruction(i, msg, diag.SevError, diag.LowerDiag)
}

// EmitWarningOnInstruction reports a warning at the instruction's
// debug location, inferring one through phi/select users when absent.
func EmitWarningOnInstruction(i *ir.Instruction, msg string) {
	emitOnInstruction(i, msg, diag.SevWarning, diag.LowerDiag)
}

// EmitResMappingError reports the resource-mapping error at res.
func EmitResMappingError(res *ir.Instruction) {
	emitOnInstruction(res, ResourceMapErrorMessage, diag.SevError, diag.LowerResourceMap)
}

func emitOnInstruction(i *ir.Instruction, msg string, sev diag.Severity, code diag.Code) {
	loc := i.DebugLoc()
	if loc == nil && i.IsPhiOrSelect() {
		if emitFollowingPhiSelect(i, msg, sev, code) {
			return
		}
	}
	diagnoseInstruction(i, loc, msg, sev, code)
}

// emitFollowingPhiSelect searches the users of a phi or select for an
// instruction carrying a debug location and emits there. Phi and
// select are value-merging nodes with no location of their own, so a
// user's location is the closest usable attribution.
//
// Explicit worklist, depth-first, first match wins; entries past the
// depth bound are dropped rather than expanded.
func emitFollowingPhiSelect(root *ir.Instruction, msg string, sev diag.Severity, code diag.Code) bool {
	type entry struct {
		ins   *ir.Instruction
		depth int
	}
	stack := []entry{{root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.depth > maxPhiSelectDepth {
			continue
		}
		if loc := e.ins.DebugLoc(); loc != nil {
			diagnoseInstruction(e.ins, loc, msg, sev, code)
			return true
		}
		if !e.ins.IsPhiOrSelect() {
			continue
		}
		users := e.ins.Users()
		// Push in reverse so the first user is explored first,
		// preserving the original first-match order.
		for k := len(users) - 1; k >= 0; k-- {
			stack = append(stack, entry{users[k], e.depth + 1})
		}
	}
	return false
}

func diagnoseInstruction(i *ir.Instruction, loc *ir.DILocation, msg string, sev diag.Severity, code diag.Code) {
	d := diag.Diagnostic{Severity: sev, Code: code, Message: msg, Loc: locOf(loc)}
	f := i.Function()
	if f != nil {
		d.Function = f.Name()
	}
	if m := i.Module(); m != nil {
		m.Context().Diagnose(d)
	}
}

// EmitErrorOnFunction reports an error attributed to the function's
// subprogram descriptor, unlocated when it has none.
func EmitErrorOnFunction(ctx *ir.Context, f *ir.Function, msg string) {
	emitOnFunction(ctx, f, msg, diag.SevError)
}

// EmitWarningOnFunction reports a warning attributed to the function's
// subprogram descriptor, unlocated when it has none.
func EmitWarningOnFunction(ctx *ir.Context, f *ir.Function, msg string) {
	emitOnFunction(ctx, f, msg, diag.SevWarning)
}

func emitOnFunction(ctx *ir.Context, f *ir.Function, msg string, sev diag.Severity) {
	d := diag.Diagnostic{Severity: sev, Code: diag.LowerDiag, Message: msg}
	if f != nil {
		d.Function = f.Name()
		if sp := f.Subprogram; sp != nil {
			d.Loc = diag.Loc{File: sp.File, Line: sp.Line}
		}
	}
	ctx.Diagnose(d)
}

// EmitErrorOnGlobalVariable reports an error attributed to the
// global's debug descriptor. gv may be nil (no concrete global exists
// yet); the diagnostic is then unlocated.
func EmitErrorOnGlobalVariable(ctx *ir.Context, gv *ir.GlobalVariable, msg string) {
	emitOnGlobalVariable(ctx, gv, msg, diag.SevError)
}

// EmitWarningOnGlobalVariable reports a warning attributed to the
// global's debug descriptor. gv may be nil.
func EmitWarningOnGlobalVariable(ctx *ir.Context, gv *ir.GlobalVariable, msg string) {
	emitOnGlobalVariable(ctx, gv, msg, diag.SevWarning)
}

func emitOnGlobalVariable(ctx *ir.Context, gv *ir.GlobalVariable, msg string, sev diag.Severity) {
	var div *ir.DIGlobalVariable
	if gv != nil {
		m := gv.Module()
		if ir.HasDebugInfo(m) {
			// Reuse the wrapper's cached finder when one exists;
			// plain debug modules get a fresh scan.
			var finder *ir.DebugInfoFinder
			if sm := shader.Get(m); sm != nil {
				finder = sm.GetOrCreateDebugInfoFinder()
			} else {
				finder = &ir.DebugInfoFinder{}
				finder.ProcessModule(m)
			}
			div = FindGlobalVariableDebugInfo(gv, finder)
		}
	}
	d := diag.Diagnostic{Severity: sev, Code: diag.LowerDiag, Message: msg}
	if div != nil {
		d.Loc = diag.Loc{File: div.File, Line: div.Line}
	}
	ctx.Diagnose(d)
}

// EmitErrorOnContext reports an unlocated error: a module-wide failure
// not attributable to one instruction.
func EmitErrorOnContext(ctx *ir.Context, msg string) {
	emitOnContext(ctx, msg, diag.SevError)
}

// EmitWarningOnContext reports an unlocated warning.
func EmitWarningOnContext(ctx *ir.Context, msg string) {
	emitOnContext(ctx, msg, diag.SevWarning)
}

// EmitNoteOnContext reports an unlocated note. Notes accompany an
// error or warning, they are never emitted alone.
func EmitNoteOnContext(ctx *ir.Context, msg string) {
	emitOnContext(ctx, msg, diag.SevNote)
}

func emitOnContext(ctx *ir.Context, msg string, sev diag.Severity) {
	ctx.Diagnose(diag.Diagnostic{Severity: sev, Code: diag.LowerDiag, Message: msg})
}

func locOf(loc *ir.DILocation) diag.Loc {
	if loc == nil {
		return diag.Loc{}
	}
	return diag.Loc{File: loc.File(), Line: loc.Line, Col: loc.Col}
}
