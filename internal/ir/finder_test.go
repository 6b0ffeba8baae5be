package ir

import "testing"

func TestDebugInfoFinder_IndexesGlobals(t *testing.T) {
	ctx := NewContext(nil)
	m := ctx.NewModule("test")
	f32 := FloatType(32)

	g1 := m.NewGlobal("gColor", f32)
	g2 := m.NewGlobal("gScale", f32)
	d1 := &DIGlobalVariable{Name: "color", File: "a.hlsl", Line: 3, Var: g1}
	d2 := &DIGlobalVariable{Name: "scale", File: "a.hlsl", Line: 4, Var: g2}
	sp := &DISubprogram{Name: "main", File: "a.hlsl", Line: 10}
	m.AddNamedMetadata(DebugMetadataKey, &DICompileUnit{
		File:        "a.hlsl",
		Subprograms: []*DISubprogram{sp},
		Globals:     []*DIGlobalVariable{d1, d2},
	})

	finder := &DebugInfoFinder{}
	finder.ProcessModule(m)

	if len(finder.CompileUnits) != 1 || len(finder.Subprograms) != 1 || len(finder.GlobalVariables) != 2 {
		t.Fatalf("unexpected index sizes: %d CUs, %d SPs, %d globals",
			len(finder.CompileUnits), len(finder.Subprograms), len(finder.GlobalVariables))
	}
	if finder.GlobalVariableFor(g1) != d1 || finder.GlobalVariableFor(g2) != d2 {
		t.Fatal("value lookup returned the wrong descriptor")
	}
	if finder.GlobalVariableFor(NewConstInt(IntType(32), 0)) != nil {
		t.Fatal("lookup of an unindexed value should return nil")
	}
}

func TestDebugInfoFinder_FirstRecordWins(t *testing.T) {
	ctx := NewContext(nil)
	m := ctx.NewModule("test")
	g := m.NewGlobal("g", FloatType(32))
	first := &DIGlobalVariable{Name: "first", Var: g}
	second := &DIGlobalVariable{Name: "second", Var: g}
	m.AddNamedMetadata(DebugMetadataKey, &DICompileUnit{Globals: []*DIGlobalVariable{first, second}})

	finder := &DebugInfoFinder{}
	finder.ProcessModule(m)

	if finder.GlobalVariableFor(g) != first {
		t.Fatal("duplicate descriptors: expected the first record to win")
	}
}
