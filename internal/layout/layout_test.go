package layout

import (
	"errors"
	"testing"

	"dxir/internal/ir"
)

func TestTypeSizeInBits(t *testing.T) {
	dl := NewDataLayout(DXIL())

	tests := []struct {
		name string
		typ  *ir.Type
		want uint64
	}{
		{"i1", ir.IntType(1), 1},
		{"i32", ir.IntType(32), 32},
		{"f16", ir.FloatType(16), 16},
		{"f64", ir.FloatType(64), 64},
		{"ptr", ir.PointerType(ir.FloatType(32)), 32},
		{"vec4f32", ir.VectorType(ir.FloatType(32), 4), 128},
		{"vec2f16", ir.VectorType(ir.FloatType(16), 2), 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dl.TypeSizeInBits(tt.typ)
			if err != nil {
				t.Fatalf("TypeSizeInBits(%s): %v", tt.typ, err)
			}
			if got != tt.want {
				t.Fatalf("TypeSizeInBits(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestTypeSizeInBits_Unsized(t *testing.T) {
	dl := NewDataLayout(DXIL())
	for _, typ := range []*ir.Type{nil, ir.VoidType(), ir.MetadataType()} {
		if _, err := dl.TypeSizeInBits(typ); !errors.Is(err, ErrUnsized) {
			t.Fatalf("expected ErrUnsized for %s, got %v", typ, err)
		}
	}
}

func TestForTriple(t *testing.T) {
	if got := ForTriple(""); got.Triple != "dxil-ms-dx" {
		t.Fatalf("empty triple should default to DXIL, got %q", got.Triple)
	}
	if got := ForTriple("spirv-unknown-vulkan"); got.PtrSize != 4 {
		t.Fatalf("spirv pointer size = %d, want 4", got.PtrSize)
	}
	if got := ForTriple("x86_64-linux-gnu"); got.Triple != "x86_64-linux-gnu" {
		t.Fatal("unknown triples must keep their name")
	}
}

func TestTypeSizeInBytes_RoundsUp(t *testing.T) {
	dl := NewDataLayout(DXIL())
	got, err := dl.TypeSizeInBytes(ir.IntType(1))
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("i1 occupies %d bytes, want 1", got)
	}
}
