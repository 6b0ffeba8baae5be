package ir

// Debug-info metadata nodes. These mirror the source program: compile
// units list the subprograms and global-variable descriptors of one
// translation unit, locations point into scopes, and expressions can
// narrow a binding to a bit range of its variable.

// DILocation is a source location attached to an instruction.
type DILocation struct {
	mdNode
	Line  int
	Col   int
	Scope *DISubprogram
}

// File returns the file of the enclosing scope, "" when scopeless.
func (l *DILocation) File() string {
	if l == nil || l.Scope == nil {
		return ""
	}
	return l.Scope.File
}

// DISubprogram describes a source-level function.
type DISubprogram struct {
	mdNode
	Name string
	File string
	Line int
}

// DILocalVariable describes a source-level local variable.
type DILocalVariable struct {
	mdNode
	Name string
	File string
	Line int
}

// DIGlobalVariable describes a source-level global variable and
// references the program value backing it.
type DIGlobalVariable struct {
	mdNode
	Name string
	File string
	Line int
	// Var is the global value this descriptor refers to, nil when the
	// global was optimized away.
	Var Value
}

// DICompileUnit is the per-translation-unit root of the debug graph.
type DICompileUnit struct {
	mdNode
	File        string
	Subprograms []*DISubprogram
	Globals     []*DIGlobalVariable
}

// DIExpression qualifies a debug-value binding. The only form the
// middle end produces is the bit piece: an (offset, size) sub-range of
// the variable's storage.
type DIExpression struct {
	mdNode
	pieceOffset uint64
	pieceSize   uint64
	piece       bool
}

// NewBitPieceExpression builds a bit-piece expression covering
// sizeBits starting at offsetBits within the variable.
func NewBitPieceExpression(offsetBits, sizeBits uint64) *DIExpression {
	return &DIExpression{pieceOffset: offsetBits, pieceSize: sizeBits, piece: true}
}

// IsBitPiece reports whether the expression narrows the binding to a
// sub-range.
func (e *DIExpression) IsBitPiece() bool { return e != nil && e.piece }

// BitPieceOffset returns the piece offset in bits.
func (e *DIExpression) BitPieceOffset() uint64 { return e.pieceOffset }

// BitPieceSize returns the piece size in bits.
func (e *DIExpression) BitPieceSize() uint64 { return e.pieceSize }
