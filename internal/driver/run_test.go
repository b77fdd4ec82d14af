package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tenure/internal/diag"
	"tenure/internal/table"
	"tenure/internal/testkit"
)

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const sampleCSV = `name,position,org,year,reappointed
Alice Grey,Clerk,Dept A,2013,false
Alice Grey,Clerk,Dept A,2015,false
Alice Grey,Clerk,Dept A,2014,true
Bob Stone,Analyst,Dept B,2013,
Bob Stone,Analyst,Dept B,2014,true
Cara Voss,Director,,2013,false
Dan Poe,Auditor,Dept A,abc,false
`

func TestRunEndToEnd(t *testing.T) {
	input := writeInput(t, "appointments.csv", sampleCSV)

	res, err := Run(context.Background(), input, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if res.Table.Len() != 7 {
		t.Fatalf("ingested %d rows, want 7", res.Table.Len())
	}
	if err := testkit.CheckMarking(res.Clusters); err != nil {
		t.Error(err)
	}
	if err := testkit.CheckConservation(res.Table.Len(), res.Marked, res.Counts); err != nil {
		t.Error(err)
	}
	if err := testkit.CheckGrid(res.Grid, table.DefaultYears()); err != nil {
		t.Error(err)
	}

	// Alice: 2013 origin, 2014 and 2015 reappointments. Bob: 2013 origin,
	// 2014 reappointment.
	if got := res.Summary.Reappointments; got != 3 {
		t.Errorf("Reappointments = %d, want 3", got)
	}
	// Cara has no org, Dan has no parseable year.
	if got := res.Summary.ExcludedMissingOrg; got != 1 {
		t.Errorf("ExcludedMissingOrg = %d, want 1", got)
	}
	if got := res.Summary.ExcludedMissingYear; got != 1 {
		t.Errorf("ExcludedMissingYear = %d, want 1", got)
	}

	cell := res.Grid.Cell("dept a", 2014)
	if cell == nil {
		t.Fatal("grid has no dept a / 2014 cell")
	}
	if cell.Total != 1 || cell.Reappointments != 1 || cell.Rate != 1.0 {
		t.Errorf("dept a / 2014 = %+v, want total 1, reapp 1, rate 1", *cell)
	}

	if bad := res.Bag.CountSeverity(diag.SevError); bad != 0 {
		t.Errorf("run produced %d error diagnostics", bad)
	}
	if res.Bag.Count(diag.IngBadYear) != 1 {
		t.Errorf("IngBadYear count = %d, want 1", res.Bag.Count(diag.IngBadYear))
	}
	if res.Bag.Count(diag.IngMissingOrg) != 1 {
		t.Errorf("IngMissingOrg count = %d, want 1", res.Bag.Count(diag.IngMissingOrg))
	}
}

func TestRunStructuralFailure(t *testing.T) {
	input := writeInput(t, "broken.csv", "foo,bar\n1,2\n")

	_, err := Run(context.Background(), input, Options{})
	if err == nil {
		t.Fatal("expected a structural error for unresolvable columns")
	}
}

func TestRunProgressEvents(t *testing.T) {
	input := writeInput(t, "appointments.csv", sampleCSV)

	ch := make(chan Event, 64)
	_, err := Run(context.Background(), input, Options{Progress: ChannelSink{Ch: ch}})
	if err != nil {
		t.Fatal(err)
	}
	close(ch)

	done := map[Stage]bool{}
	for ev := range ch {
		if ev.Status == StatusError {
			t.Errorf("unexpected error event for stage %s: %s", ev.Stage, ev.Note)
		}
		if ev.Status == StatusDone {
			done[ev.Stage] = true
		}
	}
	for _, st := range Stages() {
		if !done[st] {
			t.Errorf("stage %s never reported done", st)
		}
	}
}

func TestRunDirectoryInput(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"appointments_2013.csv": "name,position,org,year,reappointed\nAlice Grey,Clerk,Dept A,,false\n",
		"appointments_2014.csv": "name,position,org,year,reappointed\nAlice Grey,Clerk,Dept A,,false\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res, err := Run(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// Years backfilled from file names, so both rows land in one lineage and
	// the second one becomes a reappointment.
	if got := res.Bag.Count(diag.IngYearFromFile); got != 2 {
		t.Errorf("IngYearFromFile count = %d, want 2", got)
	}
	if res.Summary.Reappointments != 1 {
		t.Errorf("Reappointments = %d, want 1", res.Summary.Reappointments)
	}
}
