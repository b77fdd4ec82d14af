// Package table loads delimited appointment files into an immutable row
// snapshot and resolves free-form column headers onto the logical fields the
// pipeline needs.
package table

import (
	"strconv"
	"strings"
)

// Row is one appointment record as read from the source, untouched. Raw cells
// are kept as strings; parsing and normalization happen in later stages so
// that every stage consumes an immutable snapshot.
type Row struct {
	Index int    // position across the whole ingest, 0-based
	File  string // source file path
	Line  int    // 1-based line number in File (header is line 1)

	Name         string
	Position     string
	Organization string
	Year         string // raw year cell, possibly backfilled from the file name
	Reappointed  string // raw reappointed cell, reference data only

	// YearFromFile marks a Year cell backfilled from the source file name.
	YearFromFile bool
}

// Table is an immutable collection of rows in ingest order.
type Table struct {
	rows []Row
}

// NewTable wraps rows into a Table. The slice is not copied; callers hand
// ownership over.
func NewTable(rows []Row) *Table {
	return &Table{rows: rows}
}

// Rows returns the backing slice. Callers must not modify it.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.rows)
}

// ParseYear parses a raw year cell. The second result is false for missing or
// unparseable cells.
func ParseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	// Tolerate "2013.0" style cells produced by spreadsheet exports.
	if dot := strings.IndexByte(s, '.'); dot > 0 && strings.Trim(s[dot+1:], "0") == "" {
		s = s[:dot]
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// ParseFlag parses a boolean-like reappointed cell (true/false, 1/0, yes/no,
// t/f, y/n, case-insensitive). The second result is false for missing or
// unrecognized cells.
func ParseFlag(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "1", "yes", "y":
		return true, true
	case "false", "f", "0", "no", "n":
		return false, true
	default:
		return false, false
	}
}

// YearRange is the canonical closed year interval the dense grid and the
// annual series cover.
type YearRange struct {
	First int
	Last  int
}

// DefaultYears is the canonical 2013-2024 window of the appointment dataset.
func DefaultYears() YearRange {
	return YearRange{First: 2013, Last: 2024}
}

// Contains reports whether y falls inside the range.
func (r YearRange) Contains(y int) bool {
	return y >= r.First && y <= r.Last
}

// Count returns the number of years in the range.
func (r YearRange) Count() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Years returns every year in ascending order.
func (r YearRange) Years() []int {
	out := make([]int, 0, r.Count())
	for y := r.First; y <= r.Last; y++ {
		out = append(out, y)
	}
	return out
}
