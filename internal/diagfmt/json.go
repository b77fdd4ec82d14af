package diagfmt

import (
	"encoding/json"
	"io"

	"tenure/internal/diag"
)

// DiagnosticPayload is the wire form of one diagnostic.
type DiagnosticPayload struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Org      string `json:"org,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// DiagnosticsOutput wraps the listing with per-code totals, which keep
// counting past the bag's item cap.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticPayload `json:"diagnostics"`
	Counts      map[string]int      `json:"counts,omitempty"`
}

// BuildOutput converts a bag into its serializable form.
func BuildOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticPayload, 0, bag.Len()),
		Counts:      make(map[string]int),
	}
	for _, d := range bag.Items() {
		if d.Severity == diag.SevInfo && !opts.ShowInfo {
			continue
		}
		p := DiagnosticPayload{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Org:      d.Org,
		}
		if d.Row.IsRow() {
			p.File = d.Row.File
			p.Line = d.Row.Line
		}
		if d.Org != "" {
			p.Year = d.Year
		}
		out.Diagnostics = append(out.Diagnostics, p)
	}
	for _, code := range []diag.Code{
		diag.IngMissingName, diag.IngMissingPosition, diag.IngMissingOrg,
		diag.IngBadYear, diag.IngBadFlag, diag.IngYearFromFile, diag.IngYearOutOfRange,
		diag.MarkFlagDisagreement,
		diag.RateImpossibleCell, diag.RateClamped, diag.RateTieBreak,
	} {
		if n := bag.Count(code); n > 0 {
			out.Counts[code.String()] = n
		}
	}
	return out
}

// JSON encodes the bag to w with indentation.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(bag, opts))
}
