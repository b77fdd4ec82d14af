// Package annual collapses the marked dataset into one government-wide
// reappointment proportion per year.
package annual

import (
	"tenure/internal/chrono"
	"tenure/internal/table"
)

// Proportion is the government-wide reappointment share of one year.
type Proportion struct {
	Year           int
	Total          int
	Reappointments int
	Proportion     float64
}

// Reduce groups classifications by year, ignoring organization. Every year in
// the canonical range appears in the output, zero-filled when the source data
// has no rows for it, so the downstream trend fit sees a fixed-length,
// gap-free series. Rows whose year is unknown or outside the range cannot be
// attributed and are skipped; rows with a missing organization still count.
func Reduce(marked []chrono.Marked, years table.YearRange) []Proportion {
	byYear := make(map[int]*Proportion, years.Count())
	out := make([]Proportion, years.Count())
	for i, y := range years.Years() {
		out[i] = Proportion{Year: y}
		byYear[y] = &out[i]
	}

	for _, m := range marked {
		year, ok := m.Year()
		if !ok {
			continue
		}
		p := byYear[year]
		if p == nil {
			continue
		}
		p.Total++
		if m.Reappointment {
			p.Reappointments++
		}
	}

	for i := range out {
		if out[i].Total > 0 {
			out[i].Proportion = float64(out[i].Reappointments) / float64(out[i].Total)
		}
	}
	return out
}
