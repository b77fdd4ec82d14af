// Package driver orchestrates the reappointment pipeline: ingest, normalize,
// resolve, mark, aggregate, rates, annual. Each stage is a pure function of
// the previous stage's output; the driver wires them together, times them and
// collects diagnostics.
package driver

import (
	"context"
	"fmt"
	"strconv"

	"tenure/internal/aggregate"
	"tenure/internal/annual"
	"tenure/internal/chrono"
	"tenure/internal/diag"
	"tenure/internal/identity"
	"tenure/internal/observ"
	"tenure/internal/rates"
	"tenure/internal/table"
)

// Run executes the whole pipeline over a delimited file or a directory of
// per-year files. Structural problems (unreadable input, unresolvable
// columns) abort with an error and no partial result; everything recoverable
// lands in the result's diagnostic bag.
func Run(ctx context.Context, input string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &Result{Bag: bag}

	publish := func(stage Stage, status Status, note string) {
		if opts.Progress != nil {
			opts.Progress.Publish(Event{Stage: stage, Status: status, Note: note})
		}
	}
	fail := func(stage Stage, err error) (*Result, error) {
		publish(stage, StatusError, err.Error())
		return nil, err
	}

	// ingest
	publish(StageIngest, StatusWorking, "")
	stop := timer.Phase("ingest")
	tbl, err := table.Load(input, opts.Columns)
	if err != nil {
		return fail(StageIngest, err)
	}
	res.Table = tbl
	stop(fmt.Sprintf("%d rows", tbl.Len()))
	publish(StageIngest, StatusDone, "")

	// normalize
	publish(StageNormalize, StatusWorking, "")
	stop = timer.Phase("normalize")
	res.Records, err = normalizeRecords(tbl, opts)
	if err != nil {
		return fail(StageNormalize, err)
	}
	reportRowDefects(res.Records, opts.Years, bag)
	stop(strconv.Itoa(len(res.Records)) + " records")
	publish(StageNormalize, StatusDone, "")

	// resolve
	publish(StageResolve, StatusWorking, "")
	stop = timer.Phase("resolve")
	res.Clusters = identity.Resolve(res.Records)
	stop(fmt.Sprintf("%d lineages", len(res.Clusters)))
	publish(StageResolve, StatusDone, "")

	// mark
	publish(StageMark, StatusWorking, "")
	stop = timer.Phase("mark")
	res.Marked = chrono.MarkAll(res.Clusters)
	reportFlagDisagreements(res.Marked, bag)
	stop("")
	publish(StageMark, StatusDone, "")

	// aggregate
	publish(StageAggregate, StatusWorking, "")
	stop = timer.Phase("aggregate")
	res.Counts = aggregate.Count(res.Marked)
	stop(fmt.Sprintf("%d cells", len(res.Counts.Cells)))
	publish(StageAggregate, StatusDone, "")

	// rates + leaders
	publish(StageRates, StatusWorking, "")
	stop = timer.Phase("rates")
	res.Grid, err = rates.Build(ctx, res.Counts, opts.Years, opts.Jobs, bag)
	if err != nil {
		return fail(StageRates, err)
	}
	res.Leaders = rates.Leaders(res.Grid, bag)
	stop(fmt.Sprintf("%d orgs x %d years", len(res.Grid.Orgs), opts.Years.Count()))
	publish(StageRates, StatusDone, "")

	// annual series
	publish(StageAnnual, StatusWorking, "")
	stop = timer.Phase("annual")
	res.Annual = annual.Reduce(res.Marked, opts.Years)
	stop("")
	publish(StageAnnual, StatusDone, "")

	bag.Sort()
	bag.Dedup()
	res.Timing = timer.Report()
	fillSummary(res)
	return res, nil
}

// normalizeRecords derives normalized identity fields for every row, going
// through the disk cache when enabled.
func normalizeRecords(tbl *table.Table, opts Options) ([]identity.Record, error) {
	if !opts.EnableDiskCache {
		return identity.NormalizeTable(tbl, opts.Rules), nil
	}

	cache, err := OpenDiskCache(cacheAppName)
	if err != nil {
		// cache trouble must never fail the run
		return identity.NormalizeTable(tbl, opts.Rules), nil
	}
	key := HashTable(tbl)
	var payload CachePayload
	if ok, err := cache.Get(key, &payload); err == nil && ok {
		if records, ok := recordsFromCache(tbl, &payload); ok {
			return records, nil
		}
	}
	records := identity.NormalizeTable(tbl, opts.Rules)
	_ = cache.Put(key, cacheFromRecords(records))
	return records, nil
}

// reportRowDefects emits one diagnostic per defective row field. The rows
// stay in the dataset; the aggregator excludes them where needed.
func reportRowDefects(records []identity.Record, years table.YearRange, bag *diag.Bag) {
	for _, rec := range records {
		ref := diag.RowRef{File: rec.Row.File, Line: rec.Row.Line, Index: rec.Row.Index}
		if rec.Name.IsMissing() {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning, Code: diag.IngMissingName,
				Message: "record has no usable name; isolated from matching", Row: ref,
			})
		}
		if rec.Position.IsMissing() {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning, Code: diag.IngMissingPosition,
				Message: "record has no usable position; isolated from matching", Row: ref,
			})
		}
		if rec.Org.IsMissing() {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning, Code: diag.IngMissingOrg,
				Message: "record has no usable organization; excluded from aggregation", Row: ref,
			})
		}
		if rec.Row.YearFromFile {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevInfo, Code: diag.IngYearFromFile,
				Message: "year " + rec.Row.Year + " taken from the source file name", Row: ref,
			})
		}
		year, ok := table.ParseYear(rec.Row.Year)
		switch {
		case !ok && rec.Row.Year != "":
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning, Code: diag.IngBadYear,
				Message: fmt.Sprintf("year cell %q is not a year; excluded from aggregation", rec.Row.Year), Row: ref,
			})
		case ok && !years.Contains(year):
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning, Code: diag.IngYearOutOfRange,
				Message: fmt.Sprintf("year %d is outside the %d-%d window", year, years.First, years.Last), Row: ref,
			})
		}
	}
}

// reportFlagDisagreements compares the authoritative derived classification
// against the raw reappointed cell. The raw flag is reference data; a
// mismatch is informational, an unparseable non-empty cell is a row defect.
func reportFlagDisagreements(marked []chrono.Marked, bag *diag.Bag) {
	for _, m := range marked {
		row := m.Record.Row
		ref := diag.RowRef{File: row.File, Line: row.Line, Index: row.Index}
		raw, ok := table.ParseFlag(row.Reappointed)
		if !ok {
			if row.Reappointed != "" {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevWarning, Code: diag.IngBadFlag,
					Message: fmt.Sprintf("reappointed cell %q is not a boolean", row.Reappointed), Row: ref,
				})
			}
			continue
		}
		if raw != m.Reappointment {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevInfo, Code: diag.MarkFlagDisagreement,
				Message: fmt.Sprintf("source says reappointed=%v, chronology says %v", raw, m.Reappointment), Row: ref,
			})
		}
	}
}

func fillSummary(res *Result) {
	s := &res.Summary
	s.Rows = res.Table.Len()
	s.Clusters = len(res.Clusters)
	s.Organizations = len(res.Grid.Orgs)
	s.CountedAppointments = res.Counts.CountedTotal()
	s.ExcludedMissingOrg = res.Counts.Excluded[aggregate.ExcludedMissingOrg]
	s.ExcludedMissingYear = res.Counts.Excluded[aggregate.ExcludedMissingYear]
	for _, m := range res.Marked {
		if m.Reappointment {
			s.Reappointments++
		}
	}
	s.CollectCounts(res.Bag)
}
