// Package aggregate counts total appointments and reappointments per
// (organization, year) cell. Cells exist only for observed pairs; the dense
// grid is built later by the rate calculator.
package aggregate

import (
	"sort"

	"tenure/internal/chrono"
	"tenure/internal/table"
)

// CellKey addresses one organization in one calendar year. Organizations are
// identified by their normalized text so that spelling variants of the same
// org land in the same cell.
type CellKey struct {
	Org  string
	Year int
}

// Cell holds the counts for one org-year pair.
type Cell struct {
	Org            string
	Year           int
	Total          int
	Reappointments int
}

// ExclusionReason says why a row was left out of aggregation. Excluded rows
// are counted, never silently dropped.
type ExclusionReason uint8

const (
	ExcludedMissingOrg ExclusionReason = iota
	ExcludedMissingYear
	exclusionReasons
)

func (r ExclusionReason) String() string {
	switch r {
	case ExcludedMissingOrg:
		return "missing organization"
	case ExcludedMissingYear:
		return "missing or unparseable year"
	}
	return "unknown"
}

// Result is the sparse aggregation outcome plus the exclusion accounting
// that keeps row conservation checkable end-to-end.
type Result struct {
	Cells    map[CellKey]*Cell
	Excluded [exclusionReasons]int
}

// ExcludedTotal returns how many rows were excluded for any reason.
func (r *Result) ExcludedTotal() int {
	total := 0
	for _, n := range r.Excluded {
		total += n
	}
	return total
}

// CountedTotal sums Total across all cells.
func (r *Result) CountedTotal() int {
	total := 0
	for _, c := range r.Cells {
		total += c.Total
	}
	return total
}

// SortedCells returns the cells ordered by (org, year) for deterministic
// output.
func (r *Result) SortedCells() []*Cell {
	cells := make([]*Cell, 0, len(r.Cells))
	for _, c := range r.Cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Org != cells[j].Org {
			return cells[i].Org < cells[j].Org
		}
		return cells[i].Year < cells[j].Year
	})
	return cells
}

// Count aggregates marked records into org-year cells. A record with a
// missing organization or an unknown year is excluded and counted under its
// reason; it never lands in a synthetic "unknown" bucket that would
// masquerade as a real organization.
func Count(marked []chrono.Marked) *Result {
	res := &Result{Cells: make(map[CellKey]*Cell)}
	for _, m := range marked {
		if m.Record.Org.IsMissing() {
			res.Excluded[ExcludedMissingOrg]++
			continue
		}
		year, ok := table.ParseYear(m.Record.Row.Year)
		if !ok {
			res.Excluded[ExcludedMissingYear]++
			continue
		}
		key := CellKey{Org: m.Record.Org.Text(), Year: year}
		cell := res.Cells[key]
		if cell == nil {
			cell = &Cell{Org: key.Org, Year: key.Year}
			res.Cells[key] = cell
		}
		cell.Total++
		if m.Reappointment {
			cell.Reappointments++
		}
	}
	return res
}
