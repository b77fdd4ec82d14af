// Package trendfit fits a simple linear trend to the annual reappointment
// proportion series and reports the usual diagnostics (slope, p-value, R²).
package trendfit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"tenure/internal/annual"
)

// MinYears is the smallest number of years with observed appointments that
// still supports a trend fit.
const MinYears = 3

// Fit is the least-squares line over (year, proportion) points plus its
// diagnostics. PValue is the two-sided p-value of the slope under a
// Student's t with n-2 degrees of freedom.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64
	PValue    float64
	N         int
}

// Linear fits proportion = intercept + slope*year over the years that have at
// least one appointment. Years with zero appointments carry no signal and are
// left out of the fit rather than pinned at zero. Fewer than MinYears usable
// years is a degenerate input and fails.
func Linear(series []annual.Proportion) (Fit, error) {
	var xs, ys []float64
	for _, p := range series {
		if p.Total == 0 {
			continue
		}
		xs = append(xs, float64(p.Year))
		ys = append(ys, p.Proportion)
	}
	n := len(xs)
	if n < MinYears {
		return Fit{}, fmt.Errorf("trend fit needs at least %d years with appointments, have %d", MinYears, n)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	// residual and regressor sums for the slope's standard error
	meanX := stat.Mean(xs, nil)
	var ssr, sxx float64
	for i := range xs {
		pred := intercept + slope*xs[i]
		ssr += (ys[i] - pred) * (ys[i] - pred)
		sxx += (xs[i] - meanX) * (xs[i] - meanX)
	}

	fit := Fit{
		Slope:     slope,
		Intercept: intercept,
		R2:        stat.RSquaredFrom(estimates(xs, intercept, slope), ys, nil),
		PValue:    1,
		N:         n,
	}

	if sxx > 0 && ssr > 0 {
		se := math.Sqrt(ssr / float64(n-2) / sxx)
		t := slope / se
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		fit.PValue = 2 * dist.CDF(-math.Abs(t))
	} else if ssr == 0 && slope != 0 {
		// a perfect non-flat line
		fit.PValue = 0
	}
	return fit, nil
}

func estimates(xs []float64, intercept, slope float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = intercept + slope*x
	}
	return out
}
