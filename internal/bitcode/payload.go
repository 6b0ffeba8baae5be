package bitcode

// Payload schema. All references are table indexes; -1 means absent.

const (
	refGlobal uint8 = iota
	refConst
	refInstr
	refFunc
)

const (
	constInt uint8 = iota
	constUndef
)

type typePayload struct {
	Kind  uint8
	Bits  int32
	Elem  int32
	Lanes int32
}

type globalPayload struct {
	Name string
	Type int32
}

type subprogramPayload struct {
	Name string
	File string
	Line int32
}

type localVarPayload struct {
	Name string
	File string
	Line int32
}

type globalVarDebugPayload struct {
	Name   string
	File   string
	Line   int32
	Global int32 // index into Globals, -1 when optimized away
}

type compileUnitPayload struct {
	File        string
	Subprograms []int32
	Globals     []int32 // indexes into debugPayload.GlobalVars
}

type debugPayload struct {
	CompileUnits []compileUnitPayload
	Subprograms  []subprogramPayload
	LocalVars    []localVarPayload
	GlobalVars   []globalVarDebugPayload
}

type operandRef struct {
	Kind  uint8
	Index int32
}

type locPayload struct {
	Line  int32
	Col   int32
	Scope int32 // subprogram index, -1 when scopeless
}

type exprPayload struct {
	Piece  bool
	Offset uint64
	Size   uint64
}

type instrPayload struct {
	Op       uint8
	Type     int32
	Name     string
	Operands []operandRef
	Loc      *locPayload
	Var      int32 // dbg.value variable, -1 otherwise
	Expr     *exprPayload
}

type blockPayload struct {
	Name   string
	Instrs []instrPayload
}

type constPayload struct {
	Kind  uint8
	Type  int32
	Value int64
}

type bodyPayload struct {
	Consts []constPayload
	Blocks []blockPayload
}

type funcPayload struct {
	Name       string
	Subprogram int32
	// Body is a nested msgpack-encoded bodyPayload; nil for a
	// declaration. Kept opaque here so the lazy reader can retain it
	// unmaterialized.
	Body []byte
}

type modulePayload struct {
	Schema  uint16
	Name    string
	Triple  string
	Types   []typePayload
	Globals []globalPayload
	Debug   debugPayload
	Funcs   []funcPayload
}
