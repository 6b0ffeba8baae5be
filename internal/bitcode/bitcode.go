// Package bitcode serializes IR modules to and from an in-memory
// binary buffer: a fixed magic, a schema version and a msgpack-encoded
// payload. Function bodies are encoded as nested buffers so the reader
// can defer materializing them.
package bitcode

import "errors"

// magic identifies a dxir bitcode buffer.
var magic = []byte{'D', 'X', 'I', 'R'}

// schemaVersion - increment when the payload format changes.
const schemaVersion uint16 = 1

var (
	// ErrMalformed is returned when the buffer is not valid bitcode.
	ErrMalformed = errors.New("bitcode: malformed module buffer")
	// ErrSchema is returned when the buffer was written by an
	// incompatible schema version.
	ErrSchema = errors.New("bitcode: unsupported schema version")
)

// IsBitcode reports whether the buffer starts with the bitcode magic.
func IsBitcode(buf []byte) bool {
	if len(buf) < len(magic) {
		return false
	}
	for i, b := range magic {
		if buf[i] != b {
			return false
		}
	}
	return true
}
