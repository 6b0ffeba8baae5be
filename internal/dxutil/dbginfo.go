package dxutil

import (
	"fmt"

	"fortio.org/safecast"

	"dxir/internal/ir"
	"dxir/internal/layout"
)

// FindGlobalVariableDebugInfo returns the debug descriptor whose
// referenced program value equals gv, nil if none. First record wins
// when the metadata carries duplicates.
func FindGlobalVariableDebugInfo(gv *ir.GlobalVariable, finder *ir.DebugInfoFinder) *ir.DIGlobalVariable {
	if gv == nil {
		return nil
	}
	return finder.GlobalVariableFor(gv)
}

// FindDbgValueInst returns the debug-value binding currently
// describing v, nil if none. Most values have none; that is not an
// error. The search follows v's interned metadata wrapper and scans
// its users for a binding; the first match wins, uniqueness is not
// enforced.
func FindDbgValueInst(ctx *ir.Context, v ir.Value) *ir.Instruction {
	valAsMD := ctx.ValueAsMetadataIfExists(v)
	if valAsMD == nil {
		return nil
	}
	mdAsVal := ctx.MetadataAsValueIfExists(valAsMD)
	if mdAsVal == nil {
		return nil
	}
	for _, u := range mdAsVal.Users() {
		if u.IsDbgValue() {
			return u
		}
	}
	return nil
}

// MigrateDebugValue retargets the binding describing oldVal to
// describe newVal, and moves it to immediately follow newVal's
// definition when newVal is an instruction, so debuggers see the
// binding co-located with its new definition. No-op when oldVal has no
// binding; safe to call speculatively on every value replacement.
func MigrateDebugValue(ctx *ir.Context, oldVal, newVal ir.Value) {
	dbgValInst := FindDbgValueInst(ctx, oldVal)
	if dbgValInst == nil {
		return
	}

	dbgValInst.SetOperand(0, ctx.MetadataAsValue(ctx.ValueAsMetadata(newVal)))

	if newInst, ok := newVal.(*ir.Instruction); ok {
		if newInst.Next() != dbgValInst {
			dbgValInst.RemoveFromParent()
			dbgValInst.InsertAfter(newInst)
		}
	}
}

// TryScatterDebugValueToVectorElements propagates a binding on a
// vector built through a chain of insertelement instructions down to
// the scalar lanes that composed it, one bit-piece binding per lane.
//
// This runs after lowering a vector-returning operation into per-lane
// scalars recomposed into a vector: keeping the binding only on the
// recomposed vector would lose it when a later pass breaks the vector
// apart again. Lanes outside the chain keep no synthesized binding.
func TryScatterDebugValueToVectorElements(ctx *ir.Context, val ir.Value) {
	ins, ok := val.(*ir.Instruction)
	if !ok || ins.Op != ir.OpInsertElement || !ins.Type().IsVector() {
		return
	}

	vecDbgValInst := FindDbgValueInst(ctx, val)
	if vecDbgValInst == nil {
		return
	}

	m := vecDbgValInst.Module()
	elemTy := ins.Type().ElementType()
	dl := layout.ForModule(m)
	elemSizeInBits, err := dl.TypeSizeInBits(elemTy)
	if err != nil {
		panic(fmt.Sprintf("dxutil: unsized vector element %s", elemTy))
	}
	dbgInfoBuilder := ir.NewDIBuilder(m)

	parentBitPiece := vecDbgValInst.Expr
	if parentBitPiece != nil && !parentBitPiece.IsBitPiece() {
		parentBitPiece = nil
	}

	for {
		insertElt, ok := val.(*ir.Instruction)
		if !ok || insertElt.Op != ir.OpInsertElement {
			break
		}
		newElt := insertElt.Operand(1)
		eltIdx := insertElt.Operand(2).(*ir.ConstInt)
		lane, convErr := safecast.Conv[uint64](eltIdx.Value)
		if convErr != nil {
			panic(fmt.Sprintf("dxutil: negative lane index %d", eltIdx.Value))
		}
		offsetInBits := lane * elemSizeInBits

		if parentBitPiece != nil {
			if offsetInBits+elemSizeInBits > parentBitPiece.BitPieceSize() {
				panic("dxutil: nested bit piece expression exceeds bounds of its parent")
			}
			offsetInBits += parentBitPiece.BitPieceOffset()
		}

		expr := dbgInfoBuilder.CreateBitPieceExpression(offsetInBits, elemSizeInBits)
		dbgInfoBuilder.InsertDbgValue(newElt, vecDbgValInst.Variable, expr,
			vecDbgValInst.DebugLoc(), insertElt)
		val = insertElt.Operand(0)
	}
}
