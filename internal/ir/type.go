package ir

import (
	"fmt"
	"strings"
)

// TypeKind enumerates IR type kinds.
type TypeKind uint8

const (
	// TypeVoid is the type of instructions without a result.
	TypeVoid TypeKind = iota
	// TypeInt is an integer type with an explicit bit width.
	TypeInt
	// TypeFloat is a floating-point type with an explicit bit width.
	TypeFloat
	// TypePointer is a pointer to an element type.
	TypePointer
	// TypeVector is a fixed-lane vector of a scalar element type.
	TypeVector
	// TypeMetadata is the type of metadata wrapped as a value.
	TypeMetadata
)

// Type describes the shape of a value. Types are immutable once
// constructed; compare them with Equal, not pointer identity.
type Type struct {
	Kind  TypeKind
	Bits  int   // int/float width in bits
	Elem  *Type // vector element or pointee
	Lanes int   // vector lane count
}

func VoidType() *Type          { return &Type{Kind: TypeVoid} }
func MetadataType() *Type      { return &Type{Kind: TypeMetadata} }
func IntType(bits int) *Type   { return &Type{Kind: TypeInt, Bits: bits} }
func FloatType(bits int) *Type { return &Type{Kind: TypeFloat, Bits: bits} }

func PointerType(elem *Type) *Type {
	return &Type{Kind: TypePointer, Elem: elem}
}

func VectorType(elem *Type, lanes int) *Type {
	return &Type{Kind: TypeVector, Elem: elem, Lanes: lanes}
}

// IsVector reports whether the type is a vector.
func (t *Type) IsVector() bool {
	return t != nil && t.Kind == TypeVector
}

// ElementType returns the vector element type, or nil for non-vectors.
func (t *Type) ElementType() *Type {
	if !t.IsVector() {
		return nil
	}
	return t.Elem
}

// Equal compares types structurally.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Bits != o.Bits || t.Lanes != o.Lanes {
		return false
	}
	if t.Elem == nil && o.Elem == nil {
		return true
	}
	return t.Elem.Equal(o.Elem)
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeMetadata:
		return "metadata"
	case TypeInt:
		return fmt.Sprintf("i%d", t.Bits)
	case TypeFloat:
		return fmt.Sprintf("f%d", t.Bits)
	case TypePointer:
		var sb strings.Builder
		sb.WriteString("ptr ")
		sb.WriteString(t.Elem.String())
		return sb.String()
	case TypeVector:
		return fmt.Sprintf("<%d x %s>", t.Lanes, t.Elem.String())
	}
	return "<unknown>"
}
