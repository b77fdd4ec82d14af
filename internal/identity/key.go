// Package identity groups appointment rows into lineages: sets of rows
// believed to represent the same person in the same role at the same
// organization, based on normalized-text matching.
package identity

import (
	"fmt"

	"tenure/internal/normalize"
)

// Key identifies one appointment lineage. Rows with equal keys cluster
// together. A row missing any identity component gets a singleton key derived
// from its own index, so missing identity can never silently merge with
// another record.
type Key struct {
	Name     string
	Position string
	Org      string

	singleton bool
	rowIndex  int
}

// KeyOf derives the cluster key for a row. rowIndex is the ingest-wide index
// used to make singleton keys unmatchable.
func KeyOf(name, position, org normalize.Value, rowIndex int) Key {
	if name.IsMissing() || position.IsMissing() || org.IsMissing() {
		return Key{singleton: true, rowIndex: rowIndex}
	}
	return Key{
		Name:     name.Text(),
		Position: position.Text(),
		Org:      org.Text(),
	}
}

// Singleton reports whether the key can never match another row.
func (k Key) Singleton() bool {
	return k.singleton
}

func (k Key) String() string {
	if k.singleton {
		return fmt.Sprintf("<row %d>", k.rowIndex)
	}
	return k.Name + " | " + k.Position + " | " + k.Org
}
