package rates

import (
	"context"
	"testing"

	"tenure/internal/aggregate"
	"tenure/internal/diag"
	"tenure/internal/table"
)

func sparse(cells ...aggregate.Cell) *aggregate.Result {
	res := &aggregate.Result{Cells: make(map[aggregate.CellKey]*aggregate.Cell)}
	for i := range cells {
		c := cells[i]
		res.Cells[aggregate.CellKey{Org: c.Org, Year: c.Year}] = &c
	}
	return res
}

func TestBuildDenseGridCompleteness(t *testing.T) {
	agg := sparse(
		aggregate.Cell{Org: "depta", Year: 2013, Total: 2, Reappointments: 1},
		aggregate.Cell{Org: "deptb", Year: 2020, Total: 1},
		aggregate.Cell{Org: "deptc", Year: 2024, Total: 3, Reappointments: 3},
	)
	bag := diag.NewBag(100)
	g, err := Build(context.Background(), agg, table.DefaultYears(), 2, bag)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(g.Cells()) != 3*12 {
		t.Fatalf("grid has %d cells, want |orgs| x 12 = 36", len(g.Cells()))
	}
	// unobserved combination carries explicit zeros
	zero := g.Cell("depta", 2019)
	if zero == nil || zero.Total != 0 || zero.Reappointments != 0 || zero.Rate != 0 || !zero.Defined {
		t.Errorf("unobserved cell = %+v, want explicit zeros with rate 0", zero)
	}
	if got := g.Cell("depta", 2013); got.Rate != 0.5 {
		t.Errorf("depta/2013 rate = %v, want 0.5", got.Rate)
	}
	if got := g.Cell("deptc", 2024); got.Rate != 1.0 || got.Clamped {
		t.Errorf("deptc/2024 = %+v, want rate 1.0 unclamped", got)
	}
	if bag.HasWarnings() {
		t.Errorf("clean data produced warnings: %v", bag.Items())
	}
}

func TestBuildDeterministicOrgOrder(t *testing.T) {
	agg := sparse(
		aggregate.Cell{Org: "zed", Year: 2013, Total: 1},
		aggregate.Cell{Org: "able", Year: 2013, Total: 1},
		aggregate.Cell{Org: "mid", Year: 2013, Total: 1},
	)
	for n := 0; n < 5; n++ {
		g, err := Build(context.Background(), agg, table.YearRange{First: 2013, Last: 2014}, 8, diag.NewBag(10))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if g.Orgs[0] != "able" || g.Orgs[1] != "mid" || g.Orgs[2] != "zed" {
			t.Fatalf("org order = %v", g.Orgs)
		}
		cells := g.Cells()
		if cells[0].Org != "able" || cells[0].Year != 2013 {
			t.Fatalf("cells[0] = %+v", cells[0])
		}
	}
}

func TestBuildImpossibleCellIsSurfaced(t *testing.T) {
	agg := sparse(aggregate.Cell{Org: "depta", Year: 2013, Total: 0, Reappointments: 2})
	bag := diag.NewBag(10)
	g, err := Build(context.Background(), agg, table.YearRange{First: 2013, Last: 2013}, 1, bag)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cell := g.Cell("depta", 2013)
	if cell.Defined {
		t.Errorf("impossible cell must be undefined, got %+v", cell)
	}
	if bag.Count(diag.RateImpossibleCell) != 1 {
		t.Errorf("impossible cell warnings = %d, want 1", bag.Count(diag.RateImpossibleCell))
	}
}

func TestBuildClampsRateAboveOne(t *testing.T) {
	agg := sparse(aggregate.Cell{Org: "depta", Year: 2013, Total: 2, Reappointments: 5})
	bag := diag.NewBag(10)
	g, err := Build(context.Background(), agg, table.YearRange{First: 2013, Last: 2013}, 1, bag)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cell := g.Cell("depta", 2013)
	if cell.Rate != 1.0 || !cell.Clamped || !cell.Defined {
		t.Errorf("cell = %+v, want rate clamped to 1.0", cell)
	}
	if bag.Count(diag.RateClamped) != 1 {
		t.Errorf("clamp warnings = %d, want 1", bag.Count(diag.RateClamped))
	}
}

func TestRateBounds(t *testing.T) {
	agg := sparse(
		aggregate.Cell{Org: "a", Year: 2013, Total: 7, Reappointments: 3},
		aggregate.Cell{Org: "b", Year: 2014, Total: 9, Reappointments: 11},
		aggregate.Cell{Org: "c", Year: 2015, Total: 1, Reappointments: 0},
	)
	g, err := Build(context.Background(), agg, table.DefaultYears(), 0, diag.NewBag(100))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, cell := range g.Cells() {
		if cell.Total > 0 && (cell.Rate < 0 || cell.Rate > 1) {
			t.Errorf("rate out of bounds: %+v", cell)
		}
	}
}

func TestCellLookupOutside(t *testing.T) {
	g, err := Build(context.Background(), sparse(), table.DefaultYears(), 1, diag.NewBag(1))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.Cell("nobody", 2013) != nil {
		t.Error("unknown org must return nil")
	}
}
