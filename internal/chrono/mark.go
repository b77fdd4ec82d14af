// Package chrono classifies each member of an appointment lineage as the
// origin appointment or a reappointment. Every downstream rate depends on
// this classification being defined once and applied consistently.
package chrono

import (
	"math"
	"sort"

	"tenure/internal/identity"
	"tenure/internal/table"
)

// Marked is one record with its derived classification. The derived flag is
// authoritative; the raw reappointed cell on the row is reference data only.
type Marked struct {
	Record        identity.Record
	Reappointment bool
}

// Year returns the parsed appointment year of the marked record.
func (m Marked) Year() (int, bool) {
	return table.ParseYear(m.Record.Row.Year)
}

// Mark orders a cluster chronologically and flags all but the earliest
// member as reappointments. The sort is stable on (year, original row
// index); a missing year sorts after every known year so an unknown-year
// appointment is never mistaken for the origin of a lineage. A cluster of
// size 1 yields a single false.
func Mark(c identity.Cluster) []Marked {
	members := append([]identity.Record(nil), c.Members...)
	sort.SliceStable(members, func(i, j int) bool {
		yi := sortYear(members[i].Row.Year)
		yj := sortYear(members[j].Row.Year)
		if yi != yj {
			return yi < yj
		}
		return members[i].Row.Index < members[j].Row.Index
	})

	out := make([]Marked, len(members))
	for i, rec := range members {
		out[i] = Marked{Record: rec, Reappointment: i > 0}
	}
	return out
}

// MarkAll marks every cluster and returns the classifications in original
// row order, one per input row.
func MarkAll(clusters []identity.Cluster) []Marked {
	var out []Marked
	for _, c := range clusters {
		out = append(out, Mark(c)...)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Record.Row.Index < out[j].Record.Row.Index
	})
	return out
}

// sortYear maps a raw year cell to its chronological sort key, with missing
// or unparseable years treated as +infinity.
func sortYear(raw string) int {
	y, ok := table.ParseYear(raw)
	if !ok {
		return math.MaxInt
	}
	return y
}
