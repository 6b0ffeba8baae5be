// Package dxutil is the middle end's debug-info support layer: it
// keeps source-level debug bindings attached to the right program
// points while lowering passes rewrite the IR, and routes diagnostics
// to the best available source location.
//
// The three maintenance entry points are MigrateDebugValue (a value
// was replaced), TryScatterDebugValueToVectorElements (a vector was
// recomposed from scalar lanes and will be taken apart again), and the
// Emit* family (attribute a message to an instruction, function,
// global variable or whole context). Loading wrappers around the
// bitcode reader round out the package.
//
// Everything here mutates the module in place and assumes the caller
// holds exclusive access to it for the duration of the pass.
package dxutil
