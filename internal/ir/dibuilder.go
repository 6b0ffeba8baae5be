package ir

// DIBuilder creates debug-info metadata and bindings for a module.
type DIBuilder struct {
	m *Module
}

func NewDIBuilder(m *Module) *DIBuilder {
	return &DIBuilder{m: m}
}

// CreateBitPieceExpression builds a bit-piece expression.
func (b *DIBuilder) CreateBitPieceExpression(offsetBits, sizeBits uint64) *DIExpression {
	return NewBitPieceExpression(offsetBits, sizeBits)
}

// InsertDbgValue creates a dbg.value binding describing v as variable
// (optionally narrowed by expr) and inserts it immediately before
// before. The value operand goes through the context's interned
// metadata wrappers, so later binding lookups find it by user scan.
func (b *DIBuilder) InsertDbgValue(v Value, variable *DILocalVariable, expr *DIExpression, loc *DILocation, before *Instruction) *Instruction {
	ctx := b.m.Context()
	wrapped := ctx.MetadataAsValue(ctx.ValueAsMetadata(v))
	ins := NewInstruction(OpDbgValue, VoidType(), "", wrapped)
	ins.Variable = variable
	ins.Expr = expr
	ins.SetDebugLoc(loc)
	ins.InsertBefore(before)
	return ins
}

// InsertDbgValueAtEnd is InsertDbgValue appended at the end of a block.
func (b *DIBuilder) InsertDbgValueAtEnd(v Value, variable *DILocalVariable, expr *DIExpression, loc *DILocation, block *Block) *Instruction {
	ctx := b.m.Context()
	wrapped := ctx.MetadataAsValue(ctx.ValueAsMetadata(v))
	ins := NewInstruction(OpDbgValue, VoidType(), "", wrapped)
	ins.Variable = variable
	ins.Expr = expr
	ins.SetDebugLoc(loc)
	block.Append(ins)
	return ins
}
