package layout

// Target describes the code-generation target and its pointer
// properties.
type Target struct {
	Triple   string // e.g. "dxil-ms-dx"
	PtrSize  int    // bytes
	PtrAlign int    // bytes
}

// DXIL returns the DirectX intermediate-language target.
func DXIL() Target {
	return Target{
		Triple:   "dxil-ms-dx",
		PtrSize:  4,
		PtrAlign: 4,
	}
}

// SPIRVLogical returns the logical-addressing SPIR-V target.
func SPIRVLogical() Target {
	return Target{
		Triple:   "spirv-unknown-vulkan",
		PtrSize:  4,
		PtrAlign: 4,
	}
}

// ForTriple maps a module's target triple to a Target. An empty or
// unknown triple falls back to DXIL, the middle end's native target.
func ForTriple(triple string) Target {
	switch triple {
	case "", "dxil-ms-dx":
		return DXIL()
	case "spirv-unknown-vulkan":
		return SPIRVLogical()
	}
	t := DXIL()
	t.Triple = triple
	return t
}
