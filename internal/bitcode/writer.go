package bitcode

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"dxir/internal/ir"
)

// Write serializes a module. Lazily loaded functions are materialized
// first, since the writer needs their bodies.
func Write(m *ir.Module) ([]byte, error) {
	w := &writer{
		typeIdx:   make(map[string]int32),
		globalIdx: make(map[*ir.GlobalVariable]int32),
		funcIdx:   make(map[*ir.Function]int32),
		spIdx:     make(map[*ir.DISubprogram]int32),
		varIdx:    make(map[*ir.DILocalVariable]int32),
		gvDbgIdx:  make(map[*ir.DIGlobalVariable]int32),
	}
	p, err := w.encodeModule(m)
	if err != nil {
		return nil, err
	}
	body, err := msgpack.Marshal(p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(magic)+len(body))
	out = append(out, magic...)
	out = append(out, body...)
	return out, nil
}

type writer struct {
	p modulePayload

	typeIdx   map[string]int32
	globalIdx map[*ir.GlobalVariable]int32
	funcIdx   map[*ir.Function]int32
	spIdx     map[*ir.DISubprogram]int32
	varIdx    map[*ir.DILocalVariable]int32
	gvDbgIdx  map[*ir.DIGlobalVariable]int32
}

func (w *writer) encodeModule(m *ir.Module) (*modulePayload, error) {
	w.p.Schema = schemaVersion
	w.p.Name = m.Name
	w.p.Triple = m.TargetTriple

	for _, g := range m.Globals {
		idx, err := safecast.Conv[int32](len(w.p.Globals))
		if err != nil {
			return nil, err
		}
		w.globalIdx[g] = idx
		// Globals are pointers to their content type; encode the
		// pointee so the reader can recreate them with NewGlobal.
		w.p.Globals = append(w.p.Globals, globalPayload{
			Name: g.Name(),
			Type: w.typeRef(g.Type().Elem),
		})
	}
	for i, f := range m.Funcs {
		idx, err := safecast.Conv[int32](i)
		if err != nil {
			return nil, err
		}
		w.funcIdx[f] = idx
	}

	for _, md := range m.NamedMetadata(ir.DebugMetadataKey) {
		cu, ok := md.(*ir.DICompileUnit)
		if !ok {
			continue
		}
		cp := compileUnitPayload{File: cu.File}
		for _, sp := range cu.Subprograms {
			cp.Subprograms = append(cp.Subprograms, w.spRef(sp))
		}
		for _, gv := range cu.Globals {
			cp.Globals = append(cp.Globals, w.gvDbgRef(gv))
		}
		w.p.Debug.CompileUnits = append(w.p.Debug.CompileUnits, cp)
	}

	for _, f := range m.Funcs {
		if err := f.Materialize(); err != nil {
			return nil, err
		}
		fp := funcPayload{Name: f.Name(), Subprogram: w.spRef(f.Subprogram)}
		if len(f.Blocks) > 0 {
			body, err := w.encodeBody(f)
			if err != nil {
				return nil, err
			}
			fp.Body = body
		}
		w.p.Funcs = append(w.p.Funcs, fp)
	}
	return &w.p, nil
}

func (w *writer) encodeBody(f *ir.Function) ([]byte, error) {
	instrIdx := make(map[*ir.Instruction]int32)
	n := int32(0)
	for _, b := range f.Blocks {
		for _, ins := range b.Instrs {
			instrIdx[ins] = n
			n++
		}
	}

	bp := bodyPayload{}
	constIdx := make(map[ir.Value]int32)
	for _, b := range f.Blocks {
		blk := blockPayload{Name: b.Name()}
		for _, ins := range b.Instrs {
			ip, err := w.encodeInstr(ins, instrIdx, constIdx, &bp)
			if err != nil {
				return nil, fmt.Errorf("function %s: %w", f.Name(), err)
			}
			blk.Instrs = append(blk.Instrs, ip)
		}
		bp.Blocks = append(bp.Blocks, blk)
	}
	return msgpack.Marshal(&bp)
}

func (w *writer) encodeInstr(ins *ir.Instruction, instrIdx map[*ir.Instruction]int32, constIdx map[ir.Value]int32, bp *bodyPayload) (instrPayload, error) {
	ip := instrPayload{
		Op:   uint8(ins.Op),
		Type: w.typeRef(ins.Type()),
		Name: ins.Name(),
		Var:  -1,
	}
	if ins.IsDbgValue() {
		// Bindings reference their target through the interned
		// metadata wrappers; encode the unwrapped value and let the
		// reader re-wrap in its own context.
		target := ins.DbgValue()
		if target != nil {
			ref, err := w.operandRef(target, instrIdx, constIdx, bp)
			if err != nil {
				return ip, err
			}
			ip.Operands = append(ip.Operands, ref)
		}
		ip.Var = w.varRef(ins.Variable)
		if ins.Expr.IsBitPiece() {
			ip.Expr = &exprPayload{
				Piece:  true,
				Offset: ins.Expr.BitPieceOffset(),
				Size:   ins.Expr.BitPieceSize(),
			}
		}
	} else {
		for _, op := range ins.Operands() {
			ref, err := w.operandRef(op, instrIdx, constIdx, bp)
			if err != nil {
				return ip, err
			}
			ip.Operands = append(ip.Operands, ref)
		}
	}
	if loc := ins.DebugLoc(); loc != nil {
		lp := &locPayload{Scope: -1}
		var err error
		if lp.Line, err = safecast.Conv[int32](loc.Line); err != nil {
			return ip, err
		}
		if lp.Col, err = safecast.Conv[int32](loc.Col); err != nil {
			return ip, err
		}
		lp.Scope = w.spRef(loc.Scope)
		ip.Loc = lp
	}
	return ip, nil
}

func (w *writer) operandRef(v ir.Value, instrIdx map[*ir.Instruction]int32, constIdx map[ir.Value]int32, bp *bodyPayload) (operandRef, error) {
	switch val := v.(type) {
	case *ir.GlobalVariable:
		idx, ok := w.globalIdx[val]
		if !ok {
			return operandRef{}, fmt.Errorf("operand references foreign global %s", val.Name())
		}
		return operandRef{Kind: refGlobal, Index: idx}, nil
	case *ir.Function:
		idx, ok := w.funcIdx[val]
		if !ok {
			return operandRef{}, fmt.Errorf("operand references foreign function %s", val.Name())
		}
		return operandRef{Kind: refFunc, Index: idx}, nil
	case *ir.Instruction:
		idx, ok := instrIdx[val]
		if !ok {
			return operandRef{}, fmt.Errorf("operand references instruction outside the function")
		}
		return operandRef{Kind: refInstr, Index: idx}, nil
	case *ir.ConstInt:
		if idx, ok := constIdx[val]; ok {
			return operandRef{Kind: refConst, Index: idx}, nil
		}
		idx, err := safecast.Conv[int32](len(bp.Consts))
		if err != nil {
			return operandRef{}, err
		}
		constIdx[val] = idx
		bp.Consts = append(bp.Consts, constPayload{Kind: constInt, Type: w.typeRef(val.Type()), Value: val.Value})
		return operandRef{Kind: refConst, Index: idx}, nil
	case *ir.Undef:
		if idx, ok := constIdx[val]; ok {
			return operandRef{Kind: refConst, Index: idx}, nil
		}
		idx, err := safecast.Conv[int32](len(bp.Consts))
		if err != nil {
			return operandRef{}, err
		}
		constIdx[val] = idx
		bp.Consts = append(bp.Consts, constPayload{Kind: constUndef, Type: w.typeRef(val.Type())})
		return operandRef{Kind: refConst, Index: idx}, nil
	}
	return operandRef{}, fmt.Errorf("unencodable operand kind %T", v)
}

// typeRef interns a type structurally and returns its table index.
func (w *writer) typeRef(t *ir.Type) int32 {
	if t == nil {
		return -1
	}
	key := t.String()
	if idx, ok := w.typeIdx[key]; ok {
		return idx
	}
	elem := w.typeRef(t.Elem)
	idx := int32(len(w.p.Types))
	w.typeIdx[key] = idx
	w.p.Types = append(w.p.Types, typePayload{
		Kind:  uint8(t.Kind),
		Bits:  int32(t.Bits),
		Elem:  elem,
		Lanes: int32(t.Lanes),
	})
	return idx
}

func (w *writer) spRef(sp *ir.DISubprogram) int32 {
	if sp == nil {
		return -1
	}
	if idx, ok := w.spIdx[sp]; ok {
		return idx
	}
	idx := int32(len(w.p.Debug.Subprograms))
	w.spIdx[sp] = idx
	w.p.Debug.Subprograms = append(w.p.Debug.Subprograms, subprogramPayload{
		Name: sp.Name,
		File: sp.File,
		Line: int32(sp.Line),
	})
	return idx
}

func (w *writer) varRef(v *ir.DILocalVariable) int32 {
	if v == nil {
		return -1
	}
	if idx, ok := w.varIdx[v]; ok {
		return idx
	}
	idx := int32(len(w.p.Debug.LocalVars))
	w.varIdx[v] = idx
	w.p.Debug.LocalVars = append(w.p.Debug.LocalVars, localVarPayload{
		Name: v.Name,
		File: v.File,
		Line: int32(v.Line),
	})
	return idx
}

func (w *writer) gvDbgRef(gv *ir.DIGlobalVariable) int32 {
	if idx, ok := w.gvDbgIdx[gv]; ok {
		return idx
	}
	gp := globalVarDebugPayload{
		Name:   gv.Name,
		File:   gv.File,
		Line:   int32(gv.Line),
		Global: -1,
	}
	if g, ok := gv.Var.(*ir.GlobalVariable); ok {
		if idx, found := w.globalIdx[g]; found {
			gp.Global = idx
		}
	}
	idx := int32(len(w.p.Debug.GlobalVars))
	w.gvDbgIdx[gv] = idx
	w.p.Debug.GlobalVars = append(w.p.Debug.GlobalVars, gp)
	return idx
}
