package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Bitcode loading
	BcInfo           Code = 1000
	BcMalformed      Code = 1001
	BcSchemaMismatch Code = 1002
	BcLazyBody       Code = 1003

	// Middle-end lowering and debug-info maintenance
	LowerInfo        Code = 3000
	LowerDiag        Code = 3001
	LowerResourceMap Code = 3002
	LowerDbgBinding  Code = 3003
)

func (c Code) String() string {
	return fmt.Sprintf("DX%04d", uint16(c))
}
