// Package correlation measures linear association between paired series and
// verifies the sampling distribution of the mean by resampling.
package correlation

import (
	"math"

	"koistat/adapters/stats/distributions"
	"koistat/adapters/stats/moments"
	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// Pearson computes the product-moment correlation of x and y and its
// two-sided p-value from Student's t with n−2 degrees of freedom.
func Pearson(x, y series.Numeric) (stats.CorrelationResult, error) {
	if x.Len() != y.Len() {
		return stats.CorrelationResult{}, core.NewLengthMismatchError(x.Len(), y.Len())
	}
	n := x.Len()
	if n < 3 {
		return stats.CorrelationResult{}, core.NewInsufficientDataError("pearson correlation", 3, n)
	}

	if moments.IsConstant(x) || moments.IsConstant(y) {
		return stats.CorrelationResult{}, core.ErrZeroVariance
	}

	r := stat.Correlation(x.Values(), y.Values(), nil)
	// Clamp to [-1, 1] range (due to floating point precision)
	r = math.Max(-1, math.Min(1, r))

	return stats.CorrelationResult{
		R:                r,
		PValue:           distributions.CorrelationPValue(r, n),
		N:                n,
		T:                distributions.CorrelationT(r, n),
		DegreesOfFreedom: n - 2,
	}, nil
}
