package diag

import "testing"

func TestBagLimitsAndQueries(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Severity: SevWarning, Message: "w"}) {
		t.Fatal("first Add should succeed")
	}
	if !b.Add(Diagnostic{Severity: SevError, Message: "e"}) {
		t.Fatal("second Add should succeed")
	}
	if b.Add(Diagnostic{Severity: SevError, Message: "dropped"}) {
		t.Fatal("Add past the limit should report false")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("severity queries wrong")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: LowerDiag, Message: "later", Loc: Loc{File: "b.hlsl", Line: 2}})
	b.Add(Diagnostic{Severity: SevError, Code: LowerDiag, Message: "first", Loc: Loc{File: "a.hlsl", Line: 9}})
	b.Add(Diagnostic{Severity: SevWarning, Code: LowerDiag, Message: "later", Loc: Loc{File: "b.hlsl", Line: 2}})

	b.Sort()
	b.Dedup()

	if b.Len() != 2 {
		t.Fatalf("Len after dedup = %d, want 2", b.Len())
	}
	if b.Items()[0].Loc.File != "a.hlsl" {
		t.Fatal("sort did not order by file")
	}
}

func TestSeverityOrder(t *testing.T) {
	if !(SevNote < SevWarning && SevWarning < SevError) {
		t.Fatal("severity order must be Note < Warning < Error")
	}
}
