package diagfmt

// PrettyOpts controls the human-readable diagnostic listing.
type PrettyOpts struct {
	// Color enables ANSI colors on severities.
	Color bool
	// ShowInfo includes info-level diagnostics, which are hidden by default.
	ShowInfo bool
}

// JSONOpts controls the machine-readable listing.
type JSONOpts struct {
	ShowInfo bool
}
