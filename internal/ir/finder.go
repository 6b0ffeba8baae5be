package ir

// DebugInfoFinder indexes the debug-info records reachable from a
// module's named metadata. Build it once per module with
// ProcessModule; lookups are O(1) afterwards. The index is not
// auto-invalidated: callers that mutate debug metadata must rebuild.
type DebugInfoFinder struct {
	CompileUnits    []*DICompileUnit
	Subprograms     []*DISubprogram
	GlobalVariables []*DIGlobalVariable

	byValue map[Value]*DIGlobalVariable
}

// ProcessModule scans the module's debug compile units and indexes
// every reachable record. O(number of debug records). Calling it again
// appends; use a fresh finder to rebuild.
func (f *DebugInfoFinder) ProcessModule(m *Module) {
	if m == nil {
		return
	}
	if f.byValue == nil {
		f.byValue = make(map[Value]*DIGlobalVariable)
	}
	for _, md := range m.NamedMetadata(DebugMetadataKey) {
		cu, ok := md.(*DICompileUnit)
		if !ok {
			continue
		}
		f.CompileUnits = append(f.CompileUnits, cu)
		f.Subprograms = append(f.Subprograms, cu.Subprograms...)
		for _, gv := range cu.Globals {
			f.GlobalVariables = append(f.GlobalVariables, gv)
			if gv.Var == nil {
				continue
			}
			// First record wins, matching the linear-scan behavior
			// this index replaces.
			if _, seen := f.byValue[gv.Var]; !seen {
				f.byValue[gv.Var] = gv
			}
		}
	}
}

// GlobalVariableFor returns the debug descriptor whose referenced
// program value equals v, nil if none.
func (f *DebugInfoFinder) GlobalVariableFor(v Value) *DIGlobalVariable {
	if f == nil || v == nil {
		return nil
	}
	return f.byValue[v]
}
