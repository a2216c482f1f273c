// Package fitting fits parametric distributions to catalog series and
// evaluates the quantities reports derive from them.
package fitting

import (
	"koistat/adapters/stats/moments"
	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// FitNormal estimates μ and σ by maximum likelihood: the sample mean and the
// population standard deviation. A constant series fits with σ exactly 0, so
// the derived quantities report ErrDegenerateDistribution.
func FitNormal(s series.Numeric) (stats.FittedNormal, error) {
	mu, err := moments.Mean(s)
	if err != nil {
		return stats.FittedNormal{}, err
	}
	sigma, err := moments.StdDev(s)
	if err != nil {
		return stats.FittedNormal{}, err
	}
	if moments.IsConstant(s) {
		mu, sigma = s.Values()[0], 0
	}
	return stats.FittedNormal{Mu: mu, Sigma: sigma, N: s.Len()}, nil
}

// ZScore standardises x against the fit.
func ZScore(x float64, f stats.FittedNormal) (float64, error) {
	if f.Sigma == 0 {
		return 0, core.ErrDegenerateDistribution
	}
	return (x - f.Mu) / f.Sigma, nil
}

// NormalPDF is the Gaussian density (1/(σ√(2π)))·exp(−z²/2).
func NormalPDF(x float64, f stats.FittedNormal) (float64, error) {
	if f.Sigma == 0 {
		return 0, core.ErrDegenerateDistribution
	}
	return distuv.Normal{Mu: f.Mu, Sigma: f.Sigma}.Prob(x), nil
}

// DensityCurve samples the fitted density at points evenly spaced over
// [lo, hi], for overlaying on a histogram.
func DensityCurve(f stats.FittedNormal, lo, hi float64, points int) ([]stats.CurvePoint, error) {
	if f.Sigma == 0 {
		return nil, core.ErrDegenerateDistribution
	}
	if points < 2 {
		return nil, core.NewInvalidArgumentError("points", "must be at least 2")
	}
	if !(lo < hi) {
		return nil, core.NewInvalidArgumentError("range", "needs lo < hi")
	}

	dist := distuv.Normal{Mu: f.Mu, Sigma: f.Sigma}
	step := (hi - lo) / float64(points-1)
	curve := make([]stats.CurvePoint, points)
	for i := range curve {
		x := lo + float64(i)*step
		if i == points-1 {
			x = hi
		}
		curve[i] = stats.CurvePoint{X: x, Density: dist.Prob(x)}
	}
	return curve, nil
}
