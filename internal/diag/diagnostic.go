// Package diag collects recoverable findings of a pipeline run: row-level
// data defects, integrity violations and tie-break occurrences. Fatal
// structural problems are ordinary Go errors; everything the pipeline can
// recover from lands here instead of aborting the run.
package diag

import "fmt"

// RowRef points a diagnostic at a source row. A zero RowRef means the
// diagnostic concerns an aggregate rather than a particular row.
type RowRef struct {
	File  string
	Line  int // 1-based line in File, 0 when unknown
	Index int // ingest-wide row index, -1 when not row-scoped
}

// NoRow is the RowRef for diagnostics that are not tied to a source row.
func NoRow() RowRef {
	return RowRef{Index: -1}
}

func (r RowRef) IsRow() bool {
	return r.Index >= 0
}

func (r RowRef) String() string {
	if !r.IsRow() {
		return "<dataset>"
	}
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// Diagnostic is one recoverable finding. Org/Year carry cell context for
// aggregate-scoped findings and stay zero for row-scoped ones.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Row      RowRef
	Org      string
	Year     int
}
