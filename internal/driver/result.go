package driver

import (
	"tenure/internal/aggregate"
	"tenure/internal/annual"
	"tenure/internal/chrono"
	"tenure/internal/diag"
	"tenure/internal/identity"
	"tenure/internal/observ"
	"tenure/internal/rates"
	"tenure/internal/report"
	"tenure/internal/table"
)

// Result carries every artefact of a completed run. Each field is the output
// of one stage; later stages never mutate earlier ones.
type Result struct {
	Table    *table.Table
	Records  []identity.Record
	Clusters []identity.Cluster
	Marked   []chrono.Marked
	Counts   *aggregate.Result
	Grid     *rates.Grid
	Leaders  []rates.Leader
	Annual   []annual.Proportion

	Bag     *diag.Bag
	Summary report.Summary
	Timing  observ.Report
}
