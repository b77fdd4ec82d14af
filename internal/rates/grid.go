// Package rates derives reappointment rates over the dense org-year grid and
// selects each year's leading organization.
package rates

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"tenure/internal/aggregate"
	"tenure/internal/diag"
	"tenure/internal/table"
)

// GridCell is one org-year combination with explicit counts and the derived
// rate. Defined is false only for the impossible reappointments-without-
// appointments state, which is surfaced rather than zeroed.
type GridCell struct {
	Org            string
	Year           int
	Total          int
	Reappointments int
	Rate           float64
	Defined        bool
	Clamped        bool
}

// Grid is the dense cross-product of every observed organization and every
// canonical year. Cells are stored row-major by organization, organizations
// sorted alphabetically.
type Grid struct {
	Orgs  []string
	Years []int
	cells []GridCell
}

// Cells returns all cells in (org, year) order. Callers must not modify the
// returned slice.
func (g *Grid) Cells() []GridCell {
	return g.cells
}

// Cell returns the cell for an organization and year, or nil if either is
// outside the grid.
func (g *Grid) Cell(org string, year int) *GridCell {
	oi := sort.SearchStrings(g.Orgs, org)
	if oi >= len(g.Orgs) || g.Orgs[oi] != org {
		return nil
	}
	if len(g.Years) == 0 || year < g.Years[0] || year > g.Years[len(g.Years)-1] {
		return nil
	}
	return &g.cells[oi*len(g.Years)+(year-g.Years[0])]
}

// Build fills the dense grid from the sparse aggregation result. Every
// (organization, year) combination gets explicit counts, zero where
// unobserved. Organizations are processed in parallel; each goroutine owns a
// disjoint slice range, so the result is deterministic. Rate policy:
//
//   - total == 0, reappointments == 0: rate 0 (no activity is not a pattern)
//   - total == 0, reappointments > 0: impossible, rate undefined, warned
//   - total > 0: rate = reappointments/total, clamped to 1.0 with a warning
//     if upstream counting ever made it exceed 1
//
// Warnings are emitted after the parallel phase, in cell order.
func Build(ctx context.Context, agg *aggregate.Result, years table.YearRange, jobs int, bag *diag.Bag) (*Grid, error) {
	orgSet := make(map[string]bool)
	for key := range agg.Cells {
		orgSet[key.Org] = true
	}
	orgs := make([]string, 0, len(orgSet))
	for org := range orgSet {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)

	g := &Grid{
		Orgs:  orgs,
		Years: years.Years(),
		cells: make([]GridCell, len(orgs)*years.Count()),
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(min(jobs, max(len(orgs), 1)))

	for oi, org := range orgs {
		oi, org := oi, org
		eg.Go(func() error {
			base := oi * len(g.Years)
			for yi, year := range g.Years {
				cell := &g.cells[base+yi]
				cell.Org = org
				cell.Year = year
				cell.Defined = true
				if src := agg.Cells[aggregate.CellKey{Org: org, Year: year}]; src != nil {
					cell.Total = src.Total
					cell.Reappointments = src.Reappointments
				}
				computeRate(cell)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i := range g.cells {
		cell := &g.cells[i]
		if !cell.Defined {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.RateImpossibleCell,
				Message: fmt.Sprintf("%d reappointments with zero appointments for %s in %d",
					cell.Reappointments, cell.Org, cell.Year),
				Row:  diag.NoRow(),
				Org:  cell.Org,
				Year: cell.Year,
			})
		}
		if cell.Clamped {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.RateClamped,
				Message: fmt.Sprintf("rate %d/%d for %s in %d clamped to 1.0",
					cell.Reappointments, cell.Total, cell.Org, cell.Year),
				Row:  diag.NoRow(),
				Org:  cell.Org,
				Year: cell.Year,
			})
		}
	}
	return g, nil
}

func computeRate(cell *GridCell) {
	switch {
	case cell.Total == 0 && cell.Reappointments == 0:
		cell.Rate = 0
	case cell.Total == 0:
		// reappointments without appointments: keep the counts visible but
		// mark the rate undefined instead of faking a zero
		cell.Defined = false
	default:
		cell.Rate = float64(cell.Reappointments) / float64(cell.Total)
		if cell.Rate > 1 {
			cell.Rate = 1
			cell.Clamped = true
		}
	}
}
