package dxutil

import (
	"dxir/internal/bitcode"
	"dxir/internal/ir"
)

// LoadModuleFromBitcode fully deserializes an in-memory buffer into a
// module owned by ctx. Returns nil when the buffer is not valid
// bitcode; no diagnostic is produced, callers decide how to report.
func LoadModuleFromBitcode(bc []byte, ctx *ir.Context) *ir.Module {
	m, err := bitcode.Read(bc, ctx)
	if err != nil {
		return nil
	}
	return m
}

// LoadModuleFromBitcodeLazy is LoadModuleFromBitcode with function
// bodies deferred until first access. The header and symbol table are
// still validated eagerly, so an invalid buffer fails here, not on
// first touch.
func LoadModuleFromBitcodeLazy(bc []byte, ctx *ir.Context) *ir.Module {
	m, err := bitcode.ReadLazy(bc, ctx)
	if err != nil {
		return nil
	}
	return m
}
