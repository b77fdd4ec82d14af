// Package report renders pipeline results: the two output tables, a text
// pivot of the dense grid, and the run summary.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"tenure/internal/annual"
	"tenure/internal/chrono"
	"tenure/internal/rates"
)

// rateString formats a rate with 4 decimal digits, enough precision for the
// downstream trend analysis. An undefined rate becomes an empty field, never
// a fake zero.
func rateString(rate float64, defined bool) string {
	if !defined {
		return ""
	}
	return strconv.FormatFloat(rate, 'f', 4, 64)
}

// WriteOrgYearRates writes the dense grid as CSV, one row per (organization,
// year), in the grid's deterministic order.
func WriteOrgYearRates(w io.Writer, grid *rates.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"organization", "year", "total_appointments", "reappointments", "reappointment_rate"}); err != nil {
		return err
	}
	for _, cell := range grid.Cells() {
		record := []string{
			cell.Org,
			strconv.Itoa(cell.Year),
			strconv.Itoa(cell.Total),
			strconv.Itoa(cell.Reappointments),
			rateString(cell.Rate, cell.Defined),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnnualProportions writes the government-wide series, one row per
// canonical year.
func WriteAnnualProportions(w io.Writer, series []annual.Proportion) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "total_appointments", "reappointments", "reappointment_proportion"}); err != nil {
		return err
	}
	for _, p := range series {
		record := []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Total),
			strconv.Itoa(p.Reappointments),
			rateString(p.Proportion, true),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkings writes the per-row classification, one line per input row in
// original row order. The year column holds the parsed year, empty when the
// source cell was unusable.
func WriteMarkings(w io.Writer, marked []chrono.Marked) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"row", "name", "organization", "year", "reappointed"}); err != nil {
		return err
	}
	for _, m := range marked {
		year := ""
		if y, ok := m.Year(); ok {
			year = strconv.Itoa(y)
		}
		record := []string{
			strconv.Itoa(m.Record.Row.Index),
			m.Record.Name.Text(),
			m.Record.Org.Text(),
			year,
			strconv.FormatBool(m.Reappointment),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLeaders writes one row per year with the maximum-rate organization.
func WriteLeaders(w io.Writer, leaders []rates.Leader) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "organization", "reappointment_rate", "tied_organizations"}); err != nil {
		return err
	}
	for _, l := range leaders {
		record := []string{
			strconv.Itoa(l.Year),
			l.Org,
			rateString(l.Rate, true),
			strconv.Itoa(l.Tied),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
