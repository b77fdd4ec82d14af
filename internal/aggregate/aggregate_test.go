package aggregate

import (
	"testing"

	"tenure/internal/chrono"
	"tenure/internal/identity"
	"tenure/internal/normalize"
	"tenure/internal/table"
)

func marked(t *testing.T, rows ...table.Row) []chrono.Marked {
	t.Helper()
	records := identity.NormalizeTable(table.NewTable(rows), normalize.Default())
	return chrono.MarkAll(identity.Resolve(records))
}

func TestCountSingleLineage(t *testing.T) {
	// Alice/Clerk/DeptA in 2013, 2015, 2014: origin 2013, the rest reappointments.
	m := marked(t,
		table.Row{Index: 0, Name: "Alice", Position: "Clerk", Organization: "DeptA", Year: "2013"},
		table.Row{Index: 1, Name: "Alice", Position: "Clerk", Organization: "DeptA", Year: "2015"},
		table.Row{Index: 2, Name: "Alice", Position: "Clerk", Organization: "DeptA", Year: "2014"},
	)
	res := Count(m)

	want := map[CellKey]Cell{
		{Org: "depta", Year: 2013}: {Total: 1, Reappointments: 0},
		{Org: "depta", Year: 2014}: {Total: 1, Reappointments: 1},
		{Org: "depta", Year: 2015}: {Total: 1, Reappointments: 1},
	}
	if len(res.Cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(res.Cells), len(want))
	}
	for key, w := range want {
		got := res.Cells[key]
		if got == nil {
			t.Fatalf("missing cell %+v", key)
		}
		if got.Total != w.Total || got.Reappointments != w.Reappointments {
			t.Errorf("cell %+v = total %d, reapp %d; want total %d, reapp %d",
				key, got.Total, got.Reappointments, w.Total, w.Reappointments)
		}
	}
}

func TestCountExcludesAndConserves(t *testing.T) {
	m := marked(t,
		table.Row{Index: 0, Name: "Alice", Position: "Clerk", Organization: "DeptA", Year: "2013"},
		table.Row{Index: 1, Name: "Bob", Position: "Chair", Organization: "", Year: "2013"},
		table.Row{Index: 2, Name: "Cara", Position: "Member", Organization: "DeptA", Year: "soon"},
		table.Row{Index: 3, Name: "Dee", Position: "Member", Organization: "DeptB", Year: "2014"},
	)
	res := Count(m)

	if res.Excluded[ExcludedMissingOrg] != 1 {
		t.Errorf("missing-org exclusions = %d, want 1", res.Excluded[ExcludedMissingOrg])
	}
	if res.Excluded[ExcludedMissingYear] != 1 {
		t.Errorf("missing-year exclusions = %d, want 1", res.Excluded[ExcludedMissingYear])
	}
	if got := res.CountedTotal() + res.ExcludedTotal(); got != len(m) {
		t.Errorf("counted %d + excluded %d != %d input rows",
			res.CountedTotal(), res.ExcludedTotal(), len(m))
	}
	// excluded rows must not create cells
	for key := range res.Cells {
		if key.Org == "" {
			t.Errorf("cell with empty org: %+v", key)
		}
	}
}

func TestCellBounds(t *testing.T) {
	m := marked(t,
		table.Row{Index: 0, Name: "Alice", Position: "Clerk", Organization: "DeptA", Year: "2013"},
		table.Row{Index: 1, Name: "Alice", Position: "Clerk", Organization: "DeptA", Year: "2013"},
		table.Row{Index: 2, Name: "Bob", Position: "Chair", Organization: "DeptA", Year: "2013"},
	)
	res := Count(m)
	for key, cell := range res.Cells {
		if cell.Reappointments < 0 || cell.Reappointments > cell.Total {
			t.Errorf("cell %+v violates 0 <= reapp <= total: %+v", key, cell)
		}
	}
	cell := res.Cells[CellKey{Org: "depta", Year: 2013}]
	if cell.Total != 3 || cell.Reappointments != 1 {
		t.Errorf("depta/2013 = %+v, want total 3, reapp 1", cell)
	}
}

func TestSortedCellsDeterministic(t *testing.T) {
	m := marked(t,
		table.Row{Index: 0, Name: "A", Position: "P", Organization: "Zed", Year: "2014"},
		table.Row{Index: 1, Name: "B", Position: "P", Organization: "Able", Year: "2015"},
		table.Row{Index: 2, Name: "C", Position: "P", Organization: "Able", Year: "2013"},
	)
	cells := Count(m).SortedCells()
	if cells[0].Org != "able" || cells[0].Year != 2013 {
		t.Errorf("cells[0] = %+v", cells[0])
	}
	if cells[1].Org != "able" || cells[1].Year != 2015 {
		t.Errorf("cells[1] = %+v", cells[1])
	}
	if cells[2].Org != "zed" {
		t.Errorf("cells[2] = %+v", cells[2])
	}
}
