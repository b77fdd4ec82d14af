package diagfmt

import (
	"strings"
	"testing"

	"tenure/internal/diag"
)

func fixtureBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.IngBadYear,
		Message:  "year cell \"soon\" is not a year",
		Row:      diag.RowRef{File: "data.csv", Line: 4, Index: 2},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.RateClamped,
		Message:  "rate 5/2 clamped to 1.0",
		Row:      diag.NoRow(),
		Org:      "depta",
		Year:     2014,
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.RateTieBreak,
		Message:  "2 organizations tied",
		Row:      diag.NoRow(),
		Org:      "apple board",
		Year:     2015,
	})
	bag.Sort()
	return bag
}

func TestPretty(t *testing.T) {
	var b strings.Builder
	Pretty(&b, fixtureBag(), PrettyOpts{})
	out := b.String()

	if !strings.Contains(out, "data.csv:4: WARNING ING_BAD_YEAR:") {
		t.Errorf("missing row diagnostic line in:\n%s", out)
	}
	if !strings.Contains(out, "depta/2014: WARNING RATE_CLAMPED:") {
		t.Errorf("missing cell diagnostic line in:\n%s", out)
	}
	if strings.Contains(out, "RATE_TIE_BREAK") {
		t.Errorf("info diagnostic shown without ShowInfo:\n%s", out)
	}

	b.Reset()
	Pretty(&b, fixtureBag(), PrettyOpts{ShowInfo: true})
	if !strings.Contains(b.String(), "apple board/2015: INFO RATE_TIE_BREAK:") {
		t.Errorf("info diagnostic missing with ShowInfo:\n%s", b.String())
	}
}

func TestBuildOutput(t *testing.T) {
	out := BuildOutput(fixtureBag(), JSONOpts{ShowInfo: true})
	if len(out.Diagnostics) != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.File != "data.csv" || first.Line != 4 || first.Code != "ING_BAD_YEAR" {
		t.Errorf("first payload = %+v", first)
	}
	if out.Counts["RATE_CLAMPED"] != 1 || out.Counts["RATE_TIE_BREAK"] != 1 {
		t.Errorf("counts = %v", out.Counts)
	}
}

func TestJSONEncodes(t *testing.T) {
	var b strings.Builder
	if err := JSON(&b, fixtureBag(), JSONOpts{}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if !strings.Contains(b.String(), "\"code\": \"RATE_CLAMPED\"") {
		t.Errorf("json output missing code:\n%s", b.String())
	}
}
