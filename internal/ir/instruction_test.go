package ir

import "testing"

func testModule(t *testing.T) (*Module, *Block) {
	t.Helper()
	ctx := NewContext(nil)
	m := ctx.NewModule("test")
	f := m.NewFunction("main")
	b := f.NewBlock("entry")
	return m, b
}

func TestUseLists_TrackOperands(t *testing.T) {
	_, b := testModule(t)
	i32 := IntType(32)

	a := b.Append(NewInstruction(OpAdd, i32, "a", NewConstInt(i32, 1), NewConstInt(i32, 2)))
	sum := b.Append(NewInstruction(OpAdd, i32, "sum", a, a))

	if got := len(a.Users()); got != 2 {
		t.Fatalf("expected 2 uses of a (one per operand), got %d", got)
	}

	repl := b.Append(NewInstruction(OpMul, i32, "repl", NewConstInt(i32, 3), NewConstInt(i32, 4)))
	ReplaceAllUses(a, repl)

	if got := len(a.Users()); got != 0 {
		t.Fatalf("expected no uses of a after replacement, got %d", got)
	}
	if got := len(repl.Users()); got != 2 {
		t.Fatalf("expected 2 uses of repl, got %d", got)
	}
	if sum.Operand(0) != repl || sum.Operand(1) != repl {
		t.Fatal("sum operands were not rewritten to repl")
	}
}

func TestSetOperand_UpdatesBothUseLists(t *testing.T) {
	_, b := testModule(t)
	i32 := IntType(32)

	x := b.Append(NewInstruction(OpAdd, i32, "x", NewConstInt(i32, 1), NewConstInt(i32, 1)))
	y := b.Append(NewInstruction(OpAdd, i32, "y", NewConstInt(i32, 2), NewConstInt(i32, 2)))
	use := b.Append(NewInstruction(OpMul, i32, "use", x, x))

	use.SetOperand(1, y)

	if got := len(x.Users()); got != 1 {
		t.Fatalf("expected 1 remaining use of x, got %d", got)
	}
	if got := len(y.Users()); got != 1 {
		t.Fatalf("expected 1 use of y, got %d", got)
	}
}

func TestBlockOrdering_InsertAndRemove(t *testing.T) {
	_, b := testModule(t)
	i32 := IntType(32)

	first := b.Append(NewInstruction(OpAdd, i32, "first", NewConstInt(i32, 0), NewConstInt(i32, 0)))
	third := b.Append(NewInstruction(OpAdd, i32, "third", NewConstInt(i32, 0), NewConstInt(i32, 0)))

	second := NewInstruction(OpMul, i32, "second", NewConstInt(i32, 1), NewConstInt(i32, 1))
	second.InsertAfter(first)

	if first.Next() != second || second.Next() != third {
		t.Fatal("InsertAfter broke block order")
	}
	if third.Prev() != second || second.Prev() != first {
		t.Fatal("Prev does not mirror Next")
	}

	second.RemoveFromParent()
	if first.Next() != third {
		t.Fatal("RemoveFromParent left the instruction in the block")
	}
	if second.Parent() != nil {
		t.Fatal("removed instruction still reports a parent")
	}

	second.InsertBefore(first)
	if b.Instrs[0] != second {
		t.Fatal("InsertBefore did not place instruction at the front")
	}
}

func TestDbgValue_UnwrapsDescribedValue(t *testing.T) {
	m, b := testModule(t)
	i32 := IntType(32)

	v := b.Append(NewInstruction(OpAdd, i32, "v", NewConstInt(i32, 1), NewConstInt(i32, 2)))
	anchor := b.Append(NewInstruction(OpRet, VoidType(), ""))

	dib := NewDIBuilder(m)
	variable := &DILocalVariable{Name: "v"}
	dbg := dib.InsertDbgValue(v, variable, nil, nil, anchor)

	if !dbg.IsDbgValue() {
		t.Fatal("expected a dbg.value instruction")
	}
	if dbg.DbgValue() != v {
		t.Fatal("DbgValue did not unwrap to the described value")
	}
	if dbg.Variable != variable {
		t.Fatal("variable not attached")
	}
	if dbg.Next() != anchor {
		t.Fatal("binding not inserted before the anchor")
	}
}
