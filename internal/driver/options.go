package driver

import (
	"tenure/internal/normalize"
	"tenure/internal/table"
)

// DefaultMaxDiagnostics caps how many individual diagnostics a run retains.
// Per-code counters keep counting beyond the cap.
const DefaultMaxDiagnostics = 100

// Options configures a pipeline run.
type Options struct {
	// Years is the canonical year window of the dense grid and the annual
	// series. Zero value means the 2013-2024 default.
	Years table.YearRange
	// Rules is the normalization rule set; nil means normalize.Default().
	Rules *normalize.RuleSet
	// Columns pins logical fields to explicit headers.
	Columns table.Overrides
	// MaxDiagnostics caps retained diagnostics; 0 means the default.
	MaxDiagnostics int
	// Jobs limits parallel workers for the grid computation; 0 means auto.
	Jobs int
	// EnableDiskCache reuses normalized fields from previous runs over the
	// same input.
	EnableDiskCache bool
	// Progress receives stage events; nil disables progress reporting.
	Progress ProgressSink
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Years == (table.YearRange{}) {
		out.Years = table.DefaultYears()
	}
	if out.Rules == nil {
		out.Rules = normalize.Default()
	}
	if out.MaxDiagnostics <= 0 {
		out.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return out
}
