package identity

import (
	"tenure/internal/normalize"
	"tenure/internal/table"
)

// Record couples a source row with its normalized identity fields. Records
// are derived once per run; the underlying row is never modified.
type Record struct {
	Row      table.Row
	Name     normalize.Value
	Position normalize.Value
	Org      normalize.Value
}

// Cluster is the ordered set of records sharing a key. Member order is
// ingest order; the chronological marker applies its own stable sort.
type Cluster struct {
	Key     Key
	Members []Record
}

// NormalizeTable derives a Record for every row of the table, in row order.
func NormalizeTable(t *table.Table, rules *normalize.RuleSet) []Record {
	rows := t.Rows()
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			Row:      row,
			Name:     rules.Field(row.Name),
			Position: rules.Field(row.Position),
			Org:      rules.Field(row.Organization),
		}
	}
	return records
}

// Resolve groups records into clusters. Cluster order is first-seen key
// order and member order is insertion order, so the result is a pure,
// deterministic function of the input sequence. Every record lands in
// exactly one cluster; malformed records are isolated, not rejected.
func Resolve(records []Record) []Cluster {
	clusters := make([]Cluster, 0, len(records))
	index := make(map[Key]int, len(records))

	for _, rec := range records {
		key := KeyOf(rec.Name, rec.Position, rec.Org, rec.Row.Index)
		if key.Singleton() {
			clusters = append(clusters, Cluster{Key: key, Members: []Record{rec}})
			continue
		}
		if at, ok := index[key]; ok {
			clusters[at].Members = append(clusters[at].Members, rec)
			continue
		}
		index[key] = len(clusters)
		clusters = append(clusters, Cluster{Key: key, Members: []Record{rec}})
	}
	return clusters
}
