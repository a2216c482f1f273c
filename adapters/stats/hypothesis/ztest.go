// Package hypothesis runs one-sample two-tailed z-tests and evaluates them
// at one or more significance levels.
package hypothesis

import (
	"fmt"
	"math"

	"koistat/adapters/stats/distributions"
	"koistat/adapters/stats/moments"
	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"
)

// ZTest compares the sample mean with mu0 using the sample standard deviation
// (n−1 denominator) for the standard error.
func ZTest(sample series.Numeric, mu0 float64) (stats.HypothesisResult, error) {
	if math.IsNaN(mu0) || math.IsInf(mu0, 0) {
		return stats.HypothesisResult{}, core.NewInvalidArgumentError("hypothesized mean", "must be finite")
	}
	n := sample.Len()
	if n < 2 {
		return stats.HypothesisResult{}, core.NewInsufficientDataError("z-test", 2, n)
	}

	if moments.IsConstant(sample) {
		return stats.HypothesisResult{}, core.ErrZeroVariance
	}

	mean, err := moments.Mean(sample)
	if err != nil {
		return stats.HypothesisResult{}, err
	}
	sd, err := moments.SampleStdDev(sample)
	if err != nil {
		return stats.HypothesisResult{}, err
	}

	se := sd / math.Sqrt(float64(n))
	z := (mean - mu0) / se

	return stats.HypothesisResult{
		N:                n,
		SampleMean:       mean,
		SampleStdDev:     sd,
		HypothesizedMean: mu0,
		StandardError:    se,
		Z:                z,
		PValue:           distributions.TwoTailedNormalPValue(z),
	}, nil
}

// Decide evaluates result at alpha: reject iff |z| > Φ⁻¹(1 − α/2).
func Decide(result stats.HypothesisResult, alpha float64) (stats.DecisionRecord, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return stats.DecisionRecord{}, core.NewInvalidArgumentError("alpha", fmt.Sprintf("must lie in (0, 1), got %v", alpha))
	}
	zc := distributions.TwoSidedCriticalZ(alpha)
	return stats.DecisionRecord{
		Alpha:     alpha,
		CriticalZ: zc,
		Reject:    math.Abs(result.Z) > zc,
	}, nil
}

// DecideAll evaluates the same statistic at every alpha, in the order given.
func DecideAll(result stats.HypothesisResult, alphas ...float64) ([]stats.DecisionRecord, error) {
	decisions := make([]stats.DecisionRecord, 0, len(alphas))
	for _, alpha := range alphas {
		d, err := Decide(result, alpha)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

// Evaluate runs ZTest and attaches a decision for each alpha.
func Evaluate(sample series.Numeric, mu0 float64, alphas ...float64) (stats.HypothesisResult, error) {
	result, err := ZTest(sample, mu0)
	if err != nil {
		return stats.HypothesisResult{}, err
	}
	decisions, err := DecideAll(result, alphas...)
	if err != nil {
		return stats.HypothesisResult{}, err
	}
	result.Decisions = decisions
	return result, nil
}

// RegionPoint is one sample of the standard normal curve annotated with the
// region it falls in at a given critical value.
type RegionPoint struct {
	Z       float64 `json:"z"`
	Density float64 `json:"density"`
	Reject  bool    `json:"reject"`
}

// CriticalRegionCurve samples the standard normal density across
// ±max(4, |z|+2) so that both the critical bounds and the observed statistic
// are in view.
func CriticalRegionCurve(result stats.HypothesisResult, decision stats.DecisionRecord, points int) ([]RegionPoint, error) {
	if points < 2 {
		return nil, core.NewInvalidArgumentError("points", "must be at least 2")
	}
	limit := math.Max(4, math.Abs(result.Z)+2)
	step := 2 * limit / float64(points-1)

	curve := make([]RegionPoint, points)
	for i := range curve {
		z := -limit + float64(i)*step
		curve[i] = RegionPoint{
			Z:       z,
			Density: math.Exp(-z*z/2) / math.Sqrt(2*math.Pi),
			Reject:  math.Abs(z) >= decision.CriticalZ,
		}
	}
	return curve, nil
}
