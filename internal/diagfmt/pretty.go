// Package diagfmt renders collected diagnostics for humans and machines.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"tenure/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

// Pretty writes one line per diagnostic:
//
//	<file>:<line>: <SEV> <CODE>: <message>
//
// for row-scoped findings, and
//
//	<org>/<year>: <SEV> <CODE>: <message>
//
// for cell-scoped ones. Call bag.Sort() beforehand for deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevInfo && !opts.ShowInfo {
			continue
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", location(d), severity(d.Severity, opts.Color), d.Code, d.Message)
	}
}

func location(d diag.Diagnostic) string {
	if d.Row.IsRow() {
		return d.Row.String()
	}
	if d.Org != "" {
		return fmt.Sprintf("%s/%d", d.Org, d.Year)
	}
	return "<dataset>"
}

func severity(s diag.Severity, colored bool) string {
	if !colored {
		return s.String()
	}
	switch s {
	case diag.SevError:
		return errColor.Sprint(s.String())
	case diag.SevWarning:
		return warnColor.Sprint(s.String())
	default:
		return infoColor.Sprint(s.String())
	}
}
