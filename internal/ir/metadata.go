package ir

// Metadata is the non-value side of the IR graph: debug-info nodes and
// value wrappers.
type Metadata interface {
	isMetadata()
}

type mdNode struct{}

func (mdNode) isMetadata() {}

// ValueAsMetadata wraps a program value as metadata, so metadata-typed
// operands (dbg.value targets) can reference it. Interned per context.
type ValueAsMetadata struct {
	mdNode
	V Value
}

// MetadataAsValue wraps metadata as a value, so instructions can take
// it as an operand. Interned per context; its use list is what makes
// binding lookup a plain user scan.
type MetadataAsValue struct {
	valueBase
	MD Metadata
}
