package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote is purely informational; always paired with a warning or
	// an error by the emitting pass.
	SevNote Severity = iota
	// SevWarning never aborts compilation.
	SevWarning
	// SevError prevents successful output.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "NOTE"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
