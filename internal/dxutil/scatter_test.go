package dxutil_test

import (
	"testing"

	"dxir/internal/dxutil"
	"dxir/internal/ir"
)

// buildInsertChain assembles a lanes-wide vector of elem from an undef
// base through one insertelement per lane, returning the chain
// outermost-last.
func buildInsertChain(b *ir.Block, elem *ir.Type, lanes int) []*ir.Instruction {
	vecTy := ir.VectorType(elem, lanes)
	i32 := ir.IntType(32)
	var cur ir.Value = ir.NewUndef(vecTy)
	chain := make([]*ir.Instruction, 0, lanes)
	for lane := 0; lane < lanes; lane++ {
		scalar := b.Append(ir.NewInstruction(ir.OpFAdd, elem, "lane",
			ir.NewUndef(elem), ir.NewUndef(elem)))
		ins := b.Append(ir.NewInstruction(ir.OpInsertElement, vecTy, "vec",
			cur, scalar, ir.NewConstInt(i32, int64(lane))))
		chain = append(chain, ins)
		cur = ins
	}
	return chain
}

func bindingsFor(f *ir.Function) []*ir.Instruction {
	var out []*ir.Instruction
	for _, b := range f.Blocks {
		for _, ins := range b.Instrs {
			if ins.IsDbgValue() {
				out = append(out, ins)
			}
		}
	}
	return out
}

func TestScatter_TwoLaneVector(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	f32 := ir.FloatType(32)

	chain := buildInsertChain(b, f32, 2)
	final := chain[len(chain)-1]
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))

	dib := ir.NewDIBuilder(m)
	variable := &ir.DILocalVariable{Name: "v"}
	dib.InsertDbgValue(final, variable, nil, nil, ret)

	dxutil.TryScatterDebugValueToVectorElements(ctx, final)

	all := bindingsFor(b.Parent())
	// The original vector binding plus one per lane insertion.
	if len(all) != 3 {
		t.Fatalf("expected 3 bindings after scattering, got %d", len(all))
	}

	type want struct {
		offset uint64
		size   uint64
	}
	wants := map[uint64]want{0: {0, 32}, 32: {32, 32}}
	seen := 0
	for _, binding := range all {
		if !binding.Expr.IsBitPiece() {
			continue
		}
		seen++
		if binding.Variable != variable {
			t.Fatal("lane binding describes the wrong variable")
		}
		w, ok := wants[binding.Expr.BitPieceOffset()]
		if !ok {
			t.Fatalf("unexpected piece offset %d", binding.Expr.BitPieceOffset())
		}
		if binding.Expr.BitPieceSize() != w.size {
			t.Fatalf("piece at %d has size %d, want %d",
				binding.Expr.BitPieceOffset(), binding.Expr.BitPieceSize(), w.size)
		}
		delete(wants, binding.Expr.BitPieceOffset())
	}
	if seen != 2 {
		t.Fatalf("expected 2 lane bindings, got %d", seen)
	}
}

func TestScatter_LaneBindingPlacement(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	f32 := ir.FloatType(32)

	chain := buildInsertChain(b, f32, 4)
	final := chain[len(chain)-1]
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))
	dib := ir.NewDIBuilder(m)
	dib.InsertDbgValue(final, &ir.DILocalVariable{Name: "q"}, nil, nil, ret)

	dxutil.TryScatterDebugValueToVectorElements(ctx, final)

	// Each lane binding sits immediately before its insertelement and
	// describes the inserted scalar.
	for _, ins := range chain {
		prev := ins.Prev()
		if prev == nil || !prev.IsDbgValue() {
			t.Fatal("no lane binding before an insertelement of the chain")
		}
		if prev.DbgValue() != ins.Operand(1) {
			t.Fatal("lane binding does not describe the inserted scalar")
		}
	}
}

func TestScatter_NestedParentPiece(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	i32 := ir.IntType(32)

	chain := buildInsertChain(b, i32, 2)
	final := chain[len(chain)-1]
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))

	// The vector binding itself covers bits [64, 128) of its variable.
	dib := ir.NewDIBuilder(m)
	parent := dib.CreateBitPieceExpression(64, 64)
	dib.InsertDbgValue(final, &ir.DILocalVariable{Name: "agg"}, parent, nil, ret)

	dxutil.TryScatterDebugValueToVectorElements(ctx, final)

	offsets := map[uint64]bool{}
	for _, binding := range bindingsFor(b.Parent()) {
		if binding.Expr == parent || !binding.Expr.IsBitPiece() {
			continue
		}
		offsets[binding.Expr.BitPieceOffset()] = true
	}
	if !offsets[64] || !offsets[96] || len(offsets) != 2 {
		t.Fatalf("nested offsets wrong: %v (want 64 and 96)", offsets)
	}
}

func TestScatter_PieceBoundsViolationPanics(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	i32 := ir.IntType(32)

	chain := buildInsertChain(b, i32, 2)
	final := chain[len(chain)-1]
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))

	// Parent piece declares 32 bits; the second lane lands at 32+32.
	dib := ir.NewDIBuilder(m)
	dib.InsertDbgValue(final, &ir.DILocalVariable{Name: "bad"}, dib.CreateBitPieceExpression(0, 32), nil, ret)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on bit-piece bounds violation")
		}
	}()
	dxutil.TryScatterDebugValueToVectorElements(ctx, final)
}

func TestScatter_IgnoresNonChainValues(t *testing.T) {
	ctx, m, b := lowerTestModule(t)
	i32 := ir.IntType(32)

	scalar := b.Append(ir.NewInstruction(ir.OpAdd, i32, "s", ir.NewConstInt(i32, 1), ir.NewConstInt(i32, 2)))
	ret := b.Append(ir.NewInstruction(ir.OpRet, ir.VoidType(), ""))
	dib := ir.NewDIBuilder(m)
	dib.InsertDbgValue(scalar, &ir.DILocalVariable{Name: "s"}, nil, nil, ret)

	dxutil.TryScatterDebugValueToVectorElements(ctx, scalar)

	if got := len(bindingsFor(b.Parent())); got != 1 {
		t.Fatalf("scattering a non-vector value must be a no-op, got %d bindings", got)
	}
}

func TestScatter_NoBindingIsNoop(t *testing.T) {
	ctx, _, b := lowerTestModule(t)
	f32 := ir.FloatType(32)

	chain := buildInsertChain(b, f32, 3)
	dxutil.TryScatterDebugValueToVectorElements(ctx, chain[len(chain)-1])

	if got := len(bindingsFor(b.Parent())); got != 0 {
		t.Fatalf("expected no bindings, got %d", got)
	}
}
