package diag

// Reporter is the minimal contract for receiving diagnostics from
// passes. Implementations: BagReporter (collects into a Bag),
// NopReporter (drops everything).
type Reporter interface {
	Report(d Diagnostic)
}

// NopReporter discards all diagnostics.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
