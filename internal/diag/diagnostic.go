package diag

import "fmt"

// Loc is a resolved source location. The zero value means "no
// location"; diagnostics attributed to a whole module carry it.
type Loc struct {
	File string
	Line int
	Col  int
}

// IsValid reports whether the location points at anything.
func (l Loc) IsValid() bool {
	return l.File != "" || l.Line > 0
}

func (l Loc) String() string {
	if !l.IsValid() {
		return "<no location>"
	}
	if l.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Diagnostic is an immutable finding produced by a pass.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Loc is the best location the emitter could attribute. Zero when
	// the finding is not attributable to a program point.
	Loc Loc
	// Function names the owning function, when one exists.
	Function string
}
