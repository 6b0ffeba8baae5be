// Package diag defines the diagnostic model shared by the middle-end
// passes and the CLI.
//
// Diagnostic is the central record: severity, a compact numeric code,
// a message, and the best-available source location the emitting pass
// could attribute. Producers emit through a Reporter so they stay
// decoupled from storage and formatting; BagReporter aggregates into a
// Bag, which supports sorting, deduplication and error queries.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt, and attribution policy (how an IR entity maps to a
// location) lives in internal/dxutil.
package diag
