package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tenure/internal/diag"
)

// Summary is the diagnostic accounting of one run: how many rows came in,
// where the excluded ones went, and which recoveries fired. Together with
// the cell totals it lets a reader verify row conservation by hand.
type Summary struct {
	Rows                int
	CountedAppointments int
	Reappointments      int
	Organizations       int
	Clusters            int

	ExcludedMissingOrg  int
	ExcludedMissingYear int

	MissingName       int
	MissingPosition   int
	BadYearCells      int
	BadFlagCells      int
	YearsFromFileName int

	ClampedRates      int
	ImpossibleCells   int
	TieBreaks         int
	FlagDisagreements int
}

// CollectCounts fills the recovery counters from the bag's per-code totals.
func (s *Summary) CollectCounts(bag *diag.Bag) {
	s.MissingName = bag.Count(diag.IngMissingName)
	s.MissingPosition = bag.Count(diag.IngMissingPosition)
	s.BadYearCells = bag.Count(diag.IngBadYear)
	s.BadFlagCells = bag.Count(diag.IngBadFlag)
	s.YearsFromFileName = bag.Count(diag.IngYearFromFile)
	s.ClampedRates = bag.Count(diag.RateClamped)
	s.ImpossibleCells = bag.Count(diag.RateImpossibleCell)
	s.TieBreaks = bag.Count(diag.RateTieBreak)
	s.FlagDisagreements = bag.Count(diag.MarkFlagDisagreement)
}

// ExcludedTotal is the number of rows left out of org-year aggregation.
func (s *Summary) ExcludedTotal() int {
	return s.ExcludedMissingOrg + s.ExcludedMissingYear
}

var (
	summaryTitle = lipgloss.NewStyle().Bold(true)
	summaryKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	summaryWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Render writes the summary. Styles degrade to plain text when the output is
// not a terminal (lipgloss handles that), and styled=false forces plain.
func (s *Summary) Render(w io.Writer, styled bool) {
	title := func(t string) string { return t }
	key := title
	warn := title
	if styled {
		title = func(t string) string { return summaryTitle.Render(t) }
		key = func(t string) string { return summaryKey.Render(t) }
		warn = func(t string) string { return summaryWarn.Render(t) }
	}

	var b strings.Builder
	b.WriteString(title("run summary") + "\n")
	line := func(style func(string) string, name string, value int) {
		fmt.Fprintf(&b, "  %s %d\n", style(pad(name, 26)), value)
	}
	line(key, "rows ingested", s.Rows)
	line(key, "rows aggregated", s.CountedAppointments)
	line(key, "reappointments", s.Reappointments)
	line(key, "lineages", s.Clusters)
	line(key, "organizations", s.Organizations)
	line(key, "excluded: missing org", s.ExcludedMissingOrg)
	line(key, "excluded: missing year", s.ExcludedMissingYear)
	if s.MissingName > 0 {
		line(key, "rows w/o name", s.MissingName)
	}
	if s.MissingPosition > 0 {
		line(key, "rows w/o position", s.MissingPosition)
	}
	if s.BadYearCells > 0 {
		line(key, "unparseable year cells", s.BadYearCells)
	}
	if s.BadFlagCells > 0 {
		line(key, "unparseable flag cells", s.BadFlagCells)
	}
	if s.YearsFromFileName > 0 {
		line(key, "years from file name", s.YearsFromFileName)
	}
	if s.FlagDisagreements > 0 {
		line(key, "source flag disagreements", s.FlagDisagreements)
	}
	if s.ClampedRates > 0 {
		line(warn, "clamped rates", s.ClampedRates)
	}
	if s.ImpossibleCells > 0 {
		line(warn, "impossible cells", s.ImpossibleCells)
	}
	if s.TieBreaks > 0 {
		line(key, "tie-breaks applied", s.TieBreaks)
	}
	io.WriteString(w, b.String())
}
