package ir

import "fmt"

// ConstInt is an integer constant.
type ConstInt struct {
	valueBase
	Value int64
}

func NewConstInt(typ *Type, v int64) *ConstInt {
	return &ConstInt{valueBase: valueBase{typ: typ, name: fmt.Sprintf("%d", v)}, Value: v}
}

// Undef is the undefined value of a type, used e.g. as the base of a
// lane-insertion chain.
type Undef struct {
	valueBase
}

func NewUndef(typ *Type) *Undef {
	return &Undef{valueBase: valueBase{typ: typ, name: "undef"}}
}
