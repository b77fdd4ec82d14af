package trendfit

import (
	"math"
	"testing"

	"tenure/internal/annual"
)

func series(points ...annual.Proportion) []annual.Proportion {
	return points
}

func TestLinearPerfectTrend(t *testing.T) {
	// proportion rises exactly 0.1 per year
	s := series(
		annual.Proportion{Year: 2013, Total: 10, Proportion: 0.1},
		annual.Proportion{Year: 2014, Total: 10, Proportion: 0.2},
		annual.Proportion{Year: 2015, Total: 10, Proportion: 0.3},
		annual.Proportion{Year: 2016, Total: 10, Proportion: 0.4},
	)
	fit, err := Linear(s)
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if math.Abs(fit.Slope-0.1) > 1e-9 {
		t.Errorf("slope = %v, want 0.1", fit.Slope)
	}
	if math.Abs(fit.R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", fit.R2)
	}
	if fit.PValue > 1e-6 {
		t.Errorf("p-value = %v, want ~0 for a perfect trend", fit.PValue)
	}
	if fit.N != 4 {
		t.Errorf("N = %d, want 4", fit.N)
	}
}

func TestLinearFlatSeries(t *testing.T) {
	s := series(
		annual.Proportion{Year: 2013, Total: 5, Proportion: 0.25},
		annual.Proportion{Year: 2014, Total: 5, Proportion: 0.25},
		annual.Proportion{Year: 2015, Total: 5, Proportion: 0.25},
	)
	fit, err := Linear(s)
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if fit.Slope != 0 {
		t.Errorf("slope = %v, want 0", fit.Slope)
	}
	if fit.PValue != 1 {
		t.Errorf("p-value = %v, want 1 for a flat series", fit.PValue)
	}
}

func TestLinearSkipsEmptyYears(t *testing.T) {
	s := series(
		annual.Proportion{Year: 2013, Total: 10, Proportion: 0.1},
		annual.Proportion{Year: 2014, Total: 0, Proportion: 0}, // gap year, no signal
		annual.Proportion{Year: 2015, Total: 10, Proportion: 0.3},
		annual.Proportion{Year: 2016, Total: 10, Proportion: 0.4},
	)
	fit, err := Linear(s)
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if fit.N != 3 {
		t.Errorf("N = %d, want 3 (gap year excluded)", fit.N)
	}
}

func TestLinearDegenerateInput(t *testing.T) {
	s := series(
		annual.Proportion{Year: 2013, Total: 10, Proportion: 0.1},
		annual.Proportion{Year: 2014, Total: 10, Proportion: 0.2},
	)
	if _, err := Linear(s); err == nil {
		t.Error("fewer than 3 usable years must fail")
	}
	if _, err := Linear(nil); err == nil {
		t.Error("empty series must fail")
	}
}
