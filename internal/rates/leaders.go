package rates

import (
	"fmt"

	"tenure/internal/diag"
)

// Leader is the organization with the maximum reappointment rate in a year.
type Leader struct {
	Year int
	Org  string
	Rate float64
	// Tied is how many other organizations shared the maximum rate and lost
	// the alphabetical tie-break.
	Tied int
}

// Leaders selects the maximum-rate organization per year, considering only
// cells with at least one appointment. Ties go to the alphabetically first
// organization name; that rule is a first-class contract, and each tie-break
// occurrence is surfaced as an info diagnostic. Years with no active cells
// yield no leader.
func Leaders(g *Grid, bag *diag.Bag) []Leader {
	var out []Leader
	for yi, year := range g.Years {
		var best *GridCell
		tied := 0
		for oi := range g.Orgs {
			cell := &g.cells[oi*len(g.Years)+yi]
			if cell.Total == 0 || !cell.Defined {
				continue
			}
			switch {
			case best == nil:
				best = cell
			case cell.Rate > best.Rate:
				best = cell
				tied = 0
			case cell.Rate == best.Rate:
				// orgs iterate alphabetically, so the incumbent wins
				tied++
			}
		}
		if best == nil {
			continue
		}
		if tied > 0 {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevInfo,
				Code:     diag.RateTieBreak,
				Message: fmt.Sprintf("%d organizations tied at rate %.4f in %d; alphabetical tie-break chose %s",
					tied+1, best.Rate, year, best.Org),
				Row:  diag.NoRow(),
				Org:  best.Org,
				Year: year,
			})
		}
		out = append(out, Leader{Year: year, Org: best.Org, Rate: best.Rate, Tied: tied})
	}
	return out
}
