package dxutil_test

import (
	"testing"

	"dxir/internal/diag"
	"dxir/internal/dxutil"
	"dxir/internal/ir"
)

func lowerTestModule(t *testing.T) (*ir.Context, *ir.Module, *ir.Block) {
	t.Helper()
	ctx := ir.NewContext(diag.NopReporter{})
	m := ctx.NewModule("lower-test")
	f := m.NewFunction("main")
	return ctx, m, f.NewBlock("entry")
}

func countBindings(f *ir.Function) int {
	n := 0
	for _, b := range f.Blocks {
		for _, ins := range b.Instrs {
			if ins.IsDbgValue() {
				n++
			}
		}
	}
	return n
}

func TestMigrateDebugValue_RetargetsBinding(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	i32 := ir.IntType(32)

	oldVal := b.Append(ir.NewInstruction(ir.OpAdd, i32, "old", ir.NewConstInt(i32, 1), ir.NewConstInt(i32, 2)))
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))

	variable := &ir.DILocalVariable{Name: "x"}
	piece := ir.NewBitPieceExpression(32, 32)
	dib := ir.NewDIBuilder(m)
	binding := dib.InsertDbgValue(oldVal, variable, piece, nil, ret)

	newVal := ir.NewInstruction(ir.OpMul, i32, "new", ir.NewConstInt(i32, 3), ir.NewConstInt(i32, 4))
	newVal.InsertBefore(ret)

	dxutil.MigrateDebugValue(ctx, oldVal, newVal)

	if dxutil.FindDbgValueInst(ctx, oldVal) != nil {
		t.Fatal("a binding still references the replaced value")
	}
	got := dxutil.FindDbgValueInst(ctx, newVal)
	if got != binding {
		t.Fatal("binding was not retargeted to the replacement")
	}
	if got.Variable != variable {
		t.Fatal("migration changed the source variable")
	}
	if got.Expr != piece {
		t.Fatal("migration changed the bit-piece expression")
	}
	if newVal.Next() != binding {
		t.Fatal("binding was not relocated after the new definition")
	}
}

func TestMigrateDebugValue_NoBindingIsNoop(t *testing.T) {
	ctx, _, b := lowerTestModule(t)
	i32 := ir.IntType(32)

	oldVal := b.Append(ir.NewInstruction(ir.OpAdd, i32, "old", ir.NewConstInt(i32, 1), ir.NewConstInt(i32, 2)))
	newVal := b.Append(ir.NewInstruction(ir.OpMul, i32, "new", ir.NewConstInt(i32, 3), ir.NewConstInt(i32, 4)))

	dxutil.MigrateDebugValue(ctx, oldVal, newVal)

	if dxutil.FindDbgValueInst(ctx, oldVal) != nil || dxutil.FindDbgValueInst(ctx, newVal) != nil {
		t.Fatal("no bindings should exist before or after a no-op migration")
	}
	if got := countBindings(b.Parent()); got != 0 {
		t.Fatalf("expected no bindings in the function, got %d", got)
	}
}

func TestMigrateDebugValue_NonInstructionReplacement(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	i32 := ir.IntType(32)

	oldVal := b.Append(ir.NewInstruction(ir.OpAdd, i32, "old", ir.NewConstInt(i32, 1), ir.NewConstInt(i32, 2)))
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))
	dib := ir.NewDIBuilder(m)
	binding := dib.InsertDbgValue(oldVal, &ir.DILocalVariable{Name: "k"}, nil, nil, ret)

	// Constant folding replaces the instruction with a plain constant;
	// the binding is retargeted but stays where it was.
	folded := ir.NewConstInt(i32, 3)
	dxutil.MigrateDebugValue(ctx, oldVal, folded)

	if dxutil.FindDbgValueInst(ctx, folded) != binding {
		t.Fatal("binding was not retargeted to the constant")
	}
	if binding.Parent() == nil {
		t.Fatal("binding lost its block")
	}
}
