package engine

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Standard-normal primitives shared by all three formulas. gonum's erf-based
// CDF and erfinv-based quantile are accurate well past the 1e-10 the integer
// rounding downstream is sensitive to.

// normalCDF computes the cumulative distribution function for standard normal
func normalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normalQuantile computes the quantile function for standard normal (inverse CDF).
// Panics for p outside (0,1); callers validate first.
func normalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
