package diagfmt

import (
	"encoding/json"
	"io"

	"dxir/internal/diag"
)

type diagnosticOutput struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Col      int    `json:"col,omitempty"`
	Function string `json:"function,omitempty"`
}

// JSON writes diagnostics as a JSON array.
func JSON(w io.Writer, bag *diag.Bag) error {
	out := make([]diagnosticOutput, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, diagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			File:     d.Loc.File,
			Line:     d.Loc.Line,
			Col:      d.Loc.Col,
			Function: d.Function,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
