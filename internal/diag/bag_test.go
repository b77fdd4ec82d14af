package diag

import (
	"testing"
)

func row(idx int) RowRef {
	return RowRef{File: "a.csv", Line: idx + 2, Index: idx}
}

func TestBagCapKeepsCounting(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 5; i++ {
		b.Add(Diagnostic{Severity: SevWarning, Code: IngBadYear, Row: row(i)})
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (cap)", b.Len())
	}
	if b.Count(IngBadYear) != 5 {
		t.Errorf("Count(IngBadYear) = %d, want 5", b.Count(IngBadYear))
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(10)
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("empty bag must have no findings")
	}
	b.Add(Diagnostic{Severity: SevInfo, Code: RateTieBreak})
	if b.HasWarnings() {
		t.Error("info-only bag must not report warnings")
	}
	b.Add(Diagnostic{Severity: SevWarning, Code: RateClamped})
	if !b.HasWarnings() || b.HasErrors() {
		t.Error("warning bag: HasWarnings true, HasErrors false expected")
	}
	b.Add(Diagnostic{Severity: SevError, Code: UnknownCode})
	if !b.HasErrors() {
		t.Error("error bag must report errors")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevInfo, Code: RateTieBreak, Row: NoRow(), Org: "deptb", Year: 2014})
	b.Add(Diagnostic{Severity: SevWarning, Code: RateClamped, Row: NoRow(), Org: "depta", Year: 2014})
	b.Add(Diagnostic{Severity: SevWarning, Code: IngBadYear, Row: row(3)})
	b.Add(Diagnostic{Severity: SevWarning, Code: IngMissingOrg, Row: row(1)})
	b.Sort()

	items := b.Items()
	if items[0].Code != IngMissingOrg || items[1].Code != IngBadYear {
		t.Errorf("row diagnostics must come first in index order: %v, %v", items[0].Code, items[1].Code)
	}
	if items[2].Org != "depta" || items[3].Org != "deptb" {
		t.Errorf("cell diagnostics must sort by org: %q, %q", items[2].Org, items[3].Org)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: RateClamped, Row: NoRow(), Org: "depta", Year: 2014})
	b.Add(Diagnostic{Severity: SevWarning, Code: RateClamped, Row: NoRow(), Org: "depta", Year: 2014})
	b.Add(Diagnostic{Severity: SevWarning, Code: RateClamped, Row: NoRow(), Org: "depta", Year: 2015})
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len() after dedup = %d, want 2", b.Len())
	}
	if b.Count(RateClamped) != 3 {
		t.Errorf("Count must survive dedup: %d, want 3", b.Count(RateClamped))
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Severity: SevInfo, Code: IngYearFromFile, Row: row(0)})
	b := NewBag(2)
	b.Add(Diagnostic{Severity: SevWarning, Code: IngBadFlag, Row: row(1)})
	b.Add(Diagnostic{Severity: SevWarning, Code: IngBadFlag, Row: row(2)})

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("Len() after merge = %d, want 3 (cap must grow)", a.Len())
	}
	if a.Count(IngBadFlag) != 2 {
		t.Errorf("merged Count(IngBadFlag) = %d, want 2", a.Count(IngBadFlag))
	}
}

func TestRowRef(t *testing.T) {
	if NoRow().IsRow() {
		t.Error("NoRow() must not be row-scoped")
	}
	r := RowRef{File: "x.csv", Line: 7, Index: 5}
	if !r.IsRow() || r.String() != "x.csv:7" {
		t.Errorf("RowRef = %v, String() = %q", r.IsRow(), r.String())
	}
}
