package layout

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"dxir/internal/ir"
)

// ErrUnsized is returned for types that occupy no storage.
var ErrUnsized = errors.New("layout: type has no size")

// DataLayout answers size queries against a Target.
type DataLayout struct {
	Target Target
}

// NewDataLayout creates a DataLayout for the specified target.
func NewDataLayout(target Target) DataLayout {
	return DataLayout{Target: target}
}

// ForModule returns the data layout selected by a module's target
// triple.
func ForModule(m *ir.Module) DataLayout {
	return NewDataLayout(ForTriple(m.TargetTriple))
}

// TypeSizeInBits returns the storage size of a type in bits.
func (dl DataLayout) TypeSizeInBits(t *ir.Type) (uint64, error) {
	if t == nil {
		return 0, ErrUnsized
	}
	switch t.Kind {
	case ir.TypeInt, ir.TypeFloat:
		return safecast.Conv[uint64](t.Bits)
	case ir.TypePointer:
		return safecast.Conv[uint64](dl.Target.PtrSize * 8)
	case ir.TypeVector:
		elem, err := dl.TypeSizeInBits(t.Elem)
		if err != nil {
			return 0, err
		}
		lanes, err := safecast.Conv[uint64](t.Lanes)
		if err != nil {
			return 0, err
		}
		return lanes * elem, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsized, t)
}

// TypeSizeInBytes returns the storage size of a type in whole bytes,
// rounding up.
func (dl DataLayout) TypeSizeInBytes(t *ir.Type) (uint64, error) {
	bits, err := dl.TypeSizeInBits(t)
	if err != nil {
		return 0, err
	}
	return (bits + 7) / 8, nil
}
