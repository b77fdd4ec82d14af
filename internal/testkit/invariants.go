// Package testkit holds invariant checks shared by tests across the
// pipeline packages.
package testkit

import (
	"fmt"

	"tenure/internal/aggregate"
	"tenure/internal/chrono"
	"tenure/internal/identity"
	"tenure/internal/rates"
	"tenure/internal/table"
)

// CheckMarking runs the marking invariants over resolved clusters:
// 1) every cluster of size >= 1 has exactly one origin (false flag)
// 2) the origin's year is <= every member's year, or the origin's year is
//    missing only when every member's year is missing
func CheckMarking(clusters []identity.Cluster) error {
	for _, c := range clusters {
		marked := chrono.Mark(c)
		if len(marked) != len(c.Members) {
			return fmt.Errorf("cluster %s: %d classifications for %d members", c.Key, len(marked), len(c.Members))
		}
		origins := 0
		for _, m := range marked {
			if !m.Reappointment {
				origins++
			}
		}
		if origins != 1 {
			return fmt.Errorf("cluster %s: %d origins, want exactly 1", c.Key, origins)
		}

		var origin chrono.Marked
		for _, m := range marked {
			if !m.Reappointment {
				origin = m
				break
			}
		}
		oy, ook := origin.Year()
		for _, m := range marked {
			my, mok := m.Year()
			if !ook && mok {
				return fmt.Errorf("cluster %s: origin has no year but member %d has %d", c.Key, m.Record.Row.Index, my)
			}
			if ook && mok && my < oy {
				return fmt.Errorf("cluster %s: member year %d precedes origin year %d", c.Key, my, oy)
			}
		}
	}
	return nil
}

// CheckConservation verifies that every input row received exactly one
// classification or is accounted for by the exclusion counters.
func CheckConservation(rows int, marked []chrono.Marked, agg *aggregate.Result) error {
	if len(marked) != rows {
		return fmt.Errorf("%d classifications for %d rows", len(marked), rows)
	}
	if got := agg.CountedTotal() + agg.ExcludedTotal(); got != rows {
		return fmt.Errorf("counted %d + excluded %d != %d rows",
			agg.CountedTotal(), agg.ExcludedTotal(), rows)
	}
	return nil
}

// CheckGrid verifies dense-grid completeness and rate bounds.
func CheckGrid(g *rates.Grid, years table.YearRange) error {
	if want := len(g.Orgs) * years.Count(); len(g.Cells()) != want {
		return fmt.Errorf("grid has %d cells, want %d", len(g.Cells()), want)
	}
	for _, cell := range g.Cells() {
		if cell.Reappointments < 0 || (cell.Defined && cell.Reappointments > cell.Total) {
			return fmt.Errorf("cell %s/%d violates count bounds: %+v", cell.Org, cell.Year, cell)
		}
		if cell.Total > 0 && (cell.Rate < 0 || cell.Rate > 1) {
			return fmt.Errorf("cell %s/%d rate out of [0,1]: %v", cell.Org, cell.Year, cell.Rate)
		}
	}
	return nil
}
