package table

import (
	"fmt"
	"strings"
)

// Columns maps the logical fields onto header indices of a concrete file.
type Columns struct {
	Name         int
	Position     int
	Organization int
	Year         int
	Reappointed  int
}

// Overrides pins a logical field to an exact header name, bypassing the
// fuzzy resolver. Empty entries fall back to alias matching.
type Overrides struct {
	Name         string
	Position     string
	Organization string
	Year         string
	Reappointed  string
}

// logicalField describes one required column and its recognized spellings.
// Aliases are matched against canonicalized headers: exact first, substring
// second. Resolution order matters; more specific fields claim their columns
// before "name" gets a chance to swallow e.g. "org_name".
type logicalField struct {
	logical  string
	aliases  []string
	override func(Overrides) string
	assign   func(*Columns, int)
}

var logicalFields = []logicalField{
	{
		logical:  "reappointed",
		aliases:  []string{"reappointed", "reappointment", "reappoint", "re appointed"},
		override: func(o Overrides) string { return o.Reappointed },
		assign:   func(c *Columns, i int) { c.Reappointed = i },
	},
	{
		logical:  "organization",
		aliases:  []string{"organization", "organisation", "org", "agency", "department"},
		override: func(o Overrides) string { return o.Organization },
		assign:   func(c *Columns, i int) { c.Organization = i },
	},
	{
		logical:  "position",
		aliases:  []string{"position", "title", "role"},
		override: func(o Overrides) string { return o.Position },
		assign:   func(c *Columns, i int) { c.Position = i },
	},
	{
		logical:  "year",
		aliases:  []string{"year"},
		override: func(o Overrides) string { return o.Year },
		assign:   func(c *Columns, i int) { c.Year = i },
	},
	{
		logical:  "name",
		aliases:  []string{"name", "appointee"},
		override: func(o Overrides) string { return o.Name },
		assign:   func(c *Columns, i int) { c.Name = i },
	},
}

// ResolveColumns maps a header row onto the logical columns. A logical field
// that cannot be resolved is a structural error: the message names the field
// and lists every available header so the caller can supply an override.
func ResolveColumns(header []string, overrides Overrides) (Columns, error) {
	canon := make([]string, len(header))
	for i, h := range header {
		canon[i] = canonHeader(h)
	}
	claimed := make([]bool, len(header))
	var cols Columns

	for _, f := range logicalFields {
		idx := -1
		if want := strings.TrimSpace(f.override(overrides)); want != "" {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), want) {
					idx = i
					break
				}
			}
			if idx < 0 {
				return Columns{}, fmt.Errorf(
					"column override %q for %s not found; available columns: %s",
					want, f.logical, strings.Join(header, ", "))
			}
		} else {
			idx = matchAlias(canon, claimed, f.aliases)
		}
		if idx < 0 {
			return Columns{}, fmt.Errorf(
				"cannot resolve required column %q; available columns: %s",
				f.logical, strings.Join(header, ", "))
		}
		claimed[idx] = true
		f.assign(&cols, idx)
	}
	return cols, nil
}

// matchAlias returns the first unclaimed header matching an alias, preferring
// exact matches over substring matches.
func matchAlias(canon []string, claimed []bool, aliases []string) int {
	for _, a := range aliases {
		for i, h := range canon {
			if !claimed[i] && h == a {
				return i
			}
		}
	}
	for _, a := range aliases {
		for i, h := range canon {
			if !claimed[i] && strings.Contains(h, a) {
				return i
			}
		}
	}
	return -1
}

// canonHeader lower-cases a header and maps separators to single spaces so
// "Org_Name", "org-name" and "Org Name" all compare equal.
func canonHeader(h string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', '/':
			return ' '
		}
		return r
	}, strings.ToLower(strings.TrimSpace(h)))
	return strings.Join(strings.Fields(mapped), " ")
}
