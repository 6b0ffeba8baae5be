package ir

// Opcode enumerates instruction kinds.
type Opcode uint8

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpFAdd
	OpFMul
	OpPhi
	OpSelect
	OpInsertElement
	OpExtractElement
	OpCall
	OpRet
	OpDbgValue
)

func (op Opcode) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpFAdd:
		return "fadd"
	case OpFMul:
		return "fmul"
	case OpPhi:
		return "phi"
	case OpSelect:
		return "select"
	case OpInsertElement:
		return "insertelement"
	case OpExtractElement:
		return "extractelement"
	case OpCall:
		return "call"
	case OpRet:
		return "ret"
	case OpDbgValue:
		return "dbg.value"
	}
	return "<invalid>"
}

// Instruction is a value defined inside a block. Operand edges keep
// the defining values' use lists in sync.
type Instruction struct {
	valueBase
	Op       Opcode
	operands []Value
	block    *Block
	loc      *DILocation

	// dbg.value bindings only: the described source variable and the
	// optional bit-piece expression.
	Variable *DILocalVariable
	Expr     *DIExpression
}

// NewInstruction creates a detached instruction. Attach it with
// Block.Append or Instruction.InsertBefore/InsertAfter.
func NewInstruction(op Opcode, typ *Type, name string, operands ...Value) *Instruction {
	ins := &Instruction{
		valueBase: valueBase{typ: typ, name: name},
		Op:        op,
	}
	for _, o := range operands {
		ins.AddOperand(o)
	}
	return ins
}

func (i *Instruction) NumOperands() int { return len(i.operands) }

func (i *Instruction) Operand(n int) Value { return i.operands[n] }

// Operands returns the operand slice. Do not modify it directly; use
// SetOperand so use lists stay consistent.
func (i *Instruction) Operands() []Value { return i.operands }

// AddOperand appends an operand and registers the use.
func (i *Instruction) AddOperand(v Value) {
	i.operands = append(i.operands, v)
	if v != nil {
		v.addUser(i)
	}
}

// SetOperand replaces operand n, updating both use lists.
func (i *Instruction) SetOperand(n int, v Value) {
	if old := i.operands[n]; old != nil {
		old.removeUser(i)
	}
	i.operands[n] = v
	if v != nil {
		v.addUser(i)
	}
}

// Parent returns the owning block, nil while detached.
func (i *Instruction) Parent() *Block { return i.block }

// Function returns the owning function, nil while detached.
func (i *Instruction) Function() *Function {
	if i.block == nil {
		return nil
	}
	return i.block.Parent()
}

// Module returns the owning module, nil while detached.
func (i *Instruction) Module() *Module {
	f := i.Function()
	if f == nil {
		return nil
	}
	return f.Module()
}

// DebugLoc returns the attached source location, nil if none.
func (i *Instruction) DebugLoc() *DILocation { return i.loc }

func (i *Instruction) SetDebugLoc(loc *DILocation) { i.loc = loc }

// Next returns the following instruction in the block, nil at the end
// or while detached.
func (i *Instruction) Next() *Instruction {
	if i.block == nil {
		return nil
	}
	idx := i.block.indexOf(i)
	if idx < 0 || idx+1 >= len(i.block.Instrs) {
		return nil
	}
	return i.block.Instrs[idx+1]
}

// Prev returns the preceding instruction in the block, nil at the
// start or while detached.
func (i *Instruction) Prev() *Instruction {
	if i.block == nil {
		return nil
	}
	idx := i.block.indexOf(i)
	if idx <= 0 {
		return nil
	}
	return i.block.Instrs[idx-1]
}

// RemoveFromParent detaches the instruction from its block. Operand
// uses are kept; the instruction can be re-inserted elsewhere.
func (i *Instruction) RemoveFromParent() {
	if i.block == nil {
		return
	}
	i.block.remove(i)
	i.block = nil
}

// InsertBefore places the instruction immediately before pos.
// The instruction must be detached.
func (i *Instruction) InsertBefore(pos *Instruction) {
	b := pos.Parent()
	b.insertAt(b.indexOf(pos), i)
}

// InsertAfter places the instruction immediately after pos.
// The instruction must be detached.
func (i *Instruction) InsertAfter(pos *Instruction) {
	b := pos.Parent()
	b.insertAt(b.indexOf(pos)+1, i)
}

// IsPhiOrSelect reports whether this is a control-flow-merge node.
// These are the only instructions whose location may be inferred from
// their users.
func (i *Instruction) IsPhiOrSelect() bool {
	return i.Op == OpPhi || i.Op == OpSelect
}

// IsDbgValue reports whether this is a debug-value binding.
func (i *Instruction) IsDbgValue() bool { return i.Op == OpDbgValue }

// DbgValue returns the program value a dbg.value binding describes,
// unwrapping the metadata wrapper. Nil for non-bindings or when the
// operand does not wrap a value.
func (i *Instruction) DbgValue() Value {
	if !i.IsDbgValue() || len(i.operands) == 0 {
		return nil
	}
	mav, ok := i.operands[0].(*MetadataAsValue)
	if !ok {
		return nil
	}
	vam, ok := mav.MD.(*ValueAsMetadata)
	if !ok {
		return nil
	}
	return vam.V
}
