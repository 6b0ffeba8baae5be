// Package diagfmt renders diagnostics for the CLI: a human-readable
// pretty form and a machine-readable JSON form.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"dxir/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	noteColor = color.New(color.FgCyan)
	locColor  = color.New(color.Bold)
)

// PrettyOpts controls pretty rendering.
type PrettyOpts struct {
	Color bool
}

// Pretty formats diagnostics for humans, one per line:
//
//	<file>:<line>:<col>: <SEV> <CODE>: <message> (in <function>)
//
// Iterates bag.Items(); call bag.Sort() beforehand for deterministic
// output.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	sev := sevColorOf(d.Severity)
	if d.Loc.IsValid() {
		if opts.Color {
			locColor.Fprint(w, d.Loc.String())
			fmt.Fprint(w, ": ")
		} else {
			fmt.Fprintf(w, "%s: ", d.Loc.String())
		}
	}
	if opts.Color {
		sev.Fprint(w, d.Severity.String())
	} else {
		fmt.Fprint(w, d.Severity.String())
	}
	fmt.Fprintf(w, " %s: %s", d.Code, d.Message)
	if d.Function != "" {
		fmt.Fprintf(w, " (in %s)", d.Function)
	}
	fmt.Fprintln(w)
}

func sevColorOf(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return noteColor
}
