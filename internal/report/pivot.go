package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"tenure/internal/rates"
)

const orgColumnWidth = 32

// Pivot renders the dense grid as a rate table, organizations down, years
// across. Undefined rates show as "?", empty cells (no appointments) as "-".
func Pivot(w io.Writer, grid *rates.Grid) {
	var b strings.Builder
	b.WriteString(pad("organization", orgColumnWidth))
	for _, year := range grid.Years {
		fmt.Fprintf(&b, " %6d", year)
	}
	b.WriteString("\n")

	cells := grid.Cells()
	for oi, org := range grid.Orgs {
		b.WriteString(pad(org, orgColumnWidth))
		for yi := range grid.Years {
			cell := cells[oi*len(grid.Years)+yi]
			b.WriteString(" " + pivotCell(cell))
		}
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}

func pivotCell(cell rates.GridCell) string {
	switch {
	case !cell.Defined:
		return fmt.Sprintf("%6s", "?")
	case cell.Total == 0:
		return fmt.Sprintf("%6s", "-")
	default:
		return fmt.Sprintf("%6s", strconv.FormatFloat(cell.Rate, 'f', 3, 64))
	}
}

// pad right-pads or truncates to a display width, accounting for wide runes.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
