// Package ir implements the SSA intermediate representation the
// middle end operates on: modules, functions, blocks and instructions
// with value/user edges, plus the debug-info metadata graph attached
// to them (compile units, subprograms, variables, locations and
// bit-piece expressions).
//
// Ownership follows the module: a Context owns interning state and the
// diagnostic sink, a Module owns its functions, globals and named
// metadata, and everything else is reachable from there. Values track
// their users, so passes can navigate the non-owning use relation in
// both directions.
//
// The package is single-writer: callers must serialize mutation of a
// given module. There is no internal locking.
package ir
