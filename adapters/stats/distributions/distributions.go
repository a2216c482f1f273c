// Package distributions gives the engines one place to reach the standard
// normal and Student's t distributions.
package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalCDF computes cumulative distribution function for standard normal
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TwoTailedNormalPValue returns 2·(1 − Φ(|z|)). It is evaluated as 2·Φ(−|z|),
// which is the same quantity without cancellation in the far tail.
func TwoTailedNormalPValue(z float64) float64 {
	p := 2 * distuv.UnitNormal.CDF(-math.Abs(z))
	return math.Min(p, 1)
}

// TwoSidedCriticalZ returns Φ⁻¹(1 − α/2).
func TwoSidedCriticalZ(alpha float64) float64 {
	return distuv.UnitNormal.Quantile(1 - alpha/2)
}

// TTestPValue computes the two-tailed p-value of a t statistic.
func TTestPValue(tStatistic float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	if math.IsInf(tStatistic, 0) {
		return 0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return 2 * tDist.CDF(-math.Abs(tStatistic))
}

// CorrelationT transforms a correlation coefficient into its t statistic
// with n−2 degrees of freedom. |r| = 1 maps to ±Inf.
func CorrelationT(r float64, sampleSize int) float64 {
	df := float64(sampleSize - 2)
	denom := 1 - r*r
	if denom <= 0 {
		return math.Copysign(math.Inf(1), r)
	}
	return r * math.Sqrt(df/denom)
}

// CorrelationPValue computes the two-sided p-value for a correlation coefficient
func CorrelationPValue(r float64, sampleSize int) float64 {
	if sampleSize < 3 {
		return 1.0
	}
	return TTestPValue(CorrelationT(r, sampleSize), sampleSize-2)
}
