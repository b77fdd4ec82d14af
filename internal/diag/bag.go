package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics up to a cap. Counters keep totals per code even
// after the cap is reached, so summary statistics never undercount.
type Bag struct {
	items  []Diagnostic
	max    int
	counts map[Code]int
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items:  make([]Diagnostic, 0, min(max, 64)),
		max:    max,
		counts: make(map[Code]int),
	}
}

// Add records a diagnostic. It returns false when the item itself was dropped
// because the cap is reached; the per-code counter is bumped either way.
func (b *Bag) Add(d Diagnostic) bool {
	b.counts[d.Code]++
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Count returns how many diagnostics with the given code were recorded,
// including ones dropped by the cap.
func (b *Bag) Count(code Code) int {
	return b.counts[code]
}

// CountSeverity sums recorded (non-dropped) diagnostics of a severity.
func (b *Bag) CountSeverity(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the collected diagnostics. Callers must
// not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge folds another bag into this one, growing the cap as needed so no item
// is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
	for code, n := range other.counts {
		b.counts[code] += n
	}
}

// Sort gives a stable, deterministic report order: row-scoped diagnostics
// first by row index, then cell-scoped ones by org, year, severity (desc)
// and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Row.IsRow() != dj.Row.IsRow() {
			return di.Row.IsRow()
		}
		if di.Row.Index != dj.Row.Index {
			return di.Row.Index < dj.Row.Index
		}
		if di.Org != dj.Org {
			return di.Org < dj.Org
		}
		if di.Year != dj.Year {
			return di.Year < dj.Year
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated (code, row, org, year) findings, keeping the first.
// Per-code counters are left untouched; they track occurrences, not output.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d|%d|%s|%d", d.Code, d.Row.Index, d.Org, d.Year)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}

// Cap returns the item cap as a uint16 for wire formats that carry it.
func (b *Bag) Cap() uint16 {
	c, err := safecast.Conv[uint16](b.max)
	if err != nil {
		return ^uint16(0)
	}
	return c
}
