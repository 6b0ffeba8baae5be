package bitcode

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"dxir/internal/ir"
)

// Read fully deserializes a bitcode buffer into a module owned by ctx.
// A malformed buffer yields an error and no partial module.
func Read(buf []byte, ctx *ir.Context) (*ir.Module, error) {
	return read(buf, ctx, false)
}

// ReadLazy deserializes the module header, globals, function symbol
// table and debug metadata eagerly, deferring function bodies until
// first touch (ir.Function.Materialize). Header validation failures
// are still reported at load time.
func ReadLazy(buf []byte, ctx *ir.Context) (*ir.Module, error) {
	return read(buf, ctx, true)
}

func read(buf []byte, ctx *ir.Context, lazy bool) (*ir.Module, error) {
	if !IsBitcode(buf) {
		return nil, ErrMalformed
	}
	var p modulePayload
	if err := msgpack.Unmarshal(buf[len(magic):], &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, p.Schema, schemaVersion)
	}

	r := &reader{ctx: ctx, p: &p}
	if err := r.buildTypes(); err != nil {
		return nil, err
	}

	m := ctx.NewModule(p.Name)
	m.TargetTriple = p.Triple
	r.m = m

	for _, gp := range p.Globals {
		t, err := r.typeAt(gp.Type)
		if err != nil {
			return nil, err
		}
		m.NewGlobal(gp.Name, t)
	}

	if err := r.buildDebug(); err != nil {
		return nil, err
	}

	for i := range p.Funcs {
		fp := &p.Funcs[i]
		f := m.NewFunction(fp.Name)
		sp, err := r.subprogramAt(fp.Subprogram)
		if err != nil {
			return nil, err
		}
		f.Subprogram = sp
		if len(fp.Body) == 0 {
			continue
		}
		body := fp.Body
		if lazy {
			f.SetMaterializer(func(f *ir.Function) error {
				return r.decodeBody(f, body)
			})
			continue
		}
		if err := r.decodeBody(f, body); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type reader struct {
	ctx   *ir.Context
	p     *modulePayload
	m     *ir.Module
	types []*ir.Type
	sps   []*ir.DISubprogram
	vars  []*ir.DILocalVariable
	gvs   []*ir.DIGlobalVariable
}

func (r *reader) buildTypes() error {
	r.types = make([]*ir.Type, len(r.p.Types))
	for i, tp := range r.p.Types {
		t := &ir.Type{
			Kind:  ir.TypeKind(tp.Kind),
			Bits:  int(tp.Bits),
			Lanes: int(tp.Lanes),
		}
		if tp.Kind > uint8(ir.TypeMetadata) {
			return fmt.Errorf("%w: bad type kind %d", ErrMalformed, tp.Kind)
		}
		if tp.Elem >= 0 {
			// The writer emits element types before their users.
			if int(tp.Elem) >= i {
				return fmt.Errorf("%w: forward type reference", ErrMalformed)
			}
			t.Elem = r.types[tp.Elem]
		}
		r.types[i] = t
	}
	return nil
}

func (r *reader) typeAt(idx int32) (*ir.Type, error) {
	if idx < 0 {
		return nil, nil
	}
	if int(idx) >= len(r.types) {
		return nil, fmt.Errorf("%w: type index out of range", ErrMalformed)
	}
	return r.types[idx], nil
}

func (r *reader) buildDebug() error {
	d := &r.p.Debug
	r.sps = make([]*ir.DISubprogram, len(d.Subprograms))
	for i, sp := range d.Subprograms {
		r.sps[i] = &ir.DISubprogram{Name: sp.Name, File: sp.File, Line: int(sp.Line)}
	}
	r.vars = make([]*ir.DILocalVariable, len(d.LocalVars))
	for i, v := range d.LocalVars {
		r.vars[i] = &ir.DILocalVariable{Name: v.Name, File: v.File, Line: int(v.Line)}
	}
	r.gvs = make([]*ir.DIGlobalVariable, len(d.GlobalVars))
	for i, gv := range d.GlobalVars {
		node := &ir.DIGlobalVariable{Name: gv.Name, File: gv.File, Line: int(gv.Line)}
		if gv.Global >= 0 {
			if int(gv.Global) >= len(r.m.Globals) {
				return fmt.Errorf("%w: debug global index out of range", ErrMalformed)
			}
			node.Var = r.m.Globals[gv.Global]
		}
		r.gvs[i] = node
	}
	for _, cp := range d.CompileUnits {
		cu := &ir.DICompileUnit{File: cp.File}
		for _, idx := range cp.Subprograms {
			sp, err := r.subprogramAt(idx)
			if err != nil {
				return err
			}
			if sp != nil {
				cu.Subprograms = append(cu.Subprograms, sp)
			}
		}
		for _, idx := range cp.Globals {
			if idx < 0 || int(idx) >= len(r.gvs) {
				return fmt.Errorf("%w: compile-unit global index out of range", ErrMalformed)
			}
			cu.Globals = append(cu.Globals, r.gvs[idx])
		}
		r.m.AddNamedMetadata(ir.DebugMetadataKey, cu)
	}
	return nil
}

func (r *reader) subprogramAt(idx int32) (*ir.DISubprogram, error) {
	if idx < 0 {
		return nil, nil
	}
	if int(idx) >= len(r.sps) {
		return nil, fmt.Errorf("%w: subprogram index out of range", ErrMalformed)
	}
	return r.sps[idx], nil
}

func (r *reader) localVarAt(idx int32) (*ir.DILocalVariable, error) {
	if idx < 0 {
		return nil, nil
	}
	if int(idx) >= len(r.vars) {
		return nil, fmt.Errorf("%w: variable index out of range", ErrMalformed)
	}
	return r.vars[idx], nil
}

func (r *reader) decodeBody(f *ir.Function, body []byte) error {
	var bp bodyPayload
	if err := msgpack.Unmarshal(body, &bp); err != nil {
		return fmt.Errorf("%w: function %s: %v", ErrMalformed, f.Name(), err)
	}

	consts := make([]ir.Value, len(bp.Consts))
	for i, cp := range bp.Consts {
		t, err := r.typeAt(cp.Type)
		if err != nil {
			return err
		}
		switch cp.Kind {
		case constInt:
			consts[i] = ir.NewConstInt(t, cp.Value)
		case constUndef:
			consts[i] = ir.NewUndef(t)
		default:
			return fmt.Errorf("%w: bad constant kind %d", ErrMalformed, cp.Kind)
		}
	}

	// First pass: create and place every instruction, so operand
	// references (including forward phi edges) resolve in pass two.
	var flat []*ir.Instruction
	for _, blk := range bp.Blocks {
		b := f.NewBlock(blk.Name)
		for i := range blk.Instrs {
			ip := &blk.Instrs[i]
			if ip.Op > uint8(ir.OpDbgValue) {
				return fmt.Errorf("%w: bad opcode %d", ErrMalformed, ip.Op)
			}
			t, err := r.typeAt(ip.Type)
			if err != nil {
				return err
			}
			ins := ir.NewInstruction(ir.Opcode(ip.Op), t, ip.Name)
			if ip.Loc != nil {
				sp, err := r.subprogramAt(ip.Loc.Scope)
				if err != nil {
					return err
				}
				ins.SetDebugLoc(&ir.DILocation{Line: int(ip.Loc.Line), Col: int(ip.Loc.Col), Scope: sp})
			}
			if ins.IsDbgValue() {
				v, err := r.localVarAt(ip.Var)
				if err != nil {
					return err
				}
				ins.Variable = v
				if ip.Expr != nil && ip.Expr.Piece {
					ins.Expr = ir.NewBitPieceExpression(ip.Expr.Offset, ip.Expr.Size)
				}
			}
			b.Append(ins)
			flat = append(flat, ins)
		}
	}

	pos := 0
	for _, blk := range bp.Blocks {
		for i := range blk.Instrs {
			ip := &blk.Instrs[i]
			ins := flat[pos]
			pos++
			for _, ref := range ip.Operands {
				v, err := r.resolveOperand(ref, flat, consts)
				if err != nil {
					return err
				}
				if ins.IsDbgValue() {
					v = r.ctx.MetadataAsValue(r.ctx.ValueAsMetadata(v))
				}
				ins.AddOperand(v)
			}
		}
	}
	return nil
}

func (r *reader) resolveOperand(ref operandRef, flat []*ir.Instruction, consts []ir.Value) (ir.Value, error) {
	switch ref.Kind {
	case refGlobal:
		if ref.Index < 0 || int(ref.Index) >= len(r.m.Globals) {
			return nil, fmt.Errorf("%w: global operand out of range", ErrMalformed)
		}
		return r.m.Globals[ref.Index], nil
	case refFunc:
		if ref.Index < 0 || int(ref.Index) >= len(r.m.Funcs) {
			return nil, fmt.Errorf("%w: function operand out of range", ErrMalformed)
		}
		return r.m.Funcs[ref.Index], nil
	case refInstr:
		if ref.Index < 0 || int(ref.Index) >= len(flat) {
			return nil, fmt.Errorf("%w: instruction operand out of range", ErrMalformed)
		}
		return flat[ref.Index], nil
	case refConst:
		if ref.Index < 0 || int(ref.Index) >= len(consts) {
			return nil, fmt.Errorf("%w: constant operand out of range", ErrMalformed)
		}
		return consts[ref.Index], nil
	}
	return nil, fmt.Errorf("%w: bad operand kind %d", ErrMalformed, ref.Kind)
}
