package ir

// Block is a basic block: an ordered list of instructions owned by a
// function.
type Block struct {
	name   string
	fn     *Function
	Instrs []*Instruction
}

func (b *Block) Name() string { return b.name }

// Parent returns the owning function.
func (b *Block) Parent() *Function { return b.fn }

// Append adds an instruction at the end of the block and returns it.
func (b *Block) Append(ins *Instruction) *Instruction {
	ins.block = b
	b.Instrs = append(b.Instrs, ins)
	return ins
}

func (b *Block) indexOf(ins *Instruction) int {
	for i, cand := range b.Instrs {
		if cand == ins {
			return i
		}
	}
	return -1
}

func (b *Block) insertAt(idx int, ins *Instruction) {
	if idx < 0 || idx > len(b.Instrs) {
		idx = len(b.Instrs)
	}
	ins.block = b
	b.Instrs = append(b.Instrs, nil)
	copy(b.Instrs[idx+1:], b.Instrs[idx:])
	b.Instrs[idx] = ins
}

func (b *Block) remove(ins *Instruction) {
	idx := b.indexOf(ins)
	if idx < 0 {
		return
	}
	b.Instrs = append(b.Instrs[:idx], b.Instrs[idx+1:]...)
}
