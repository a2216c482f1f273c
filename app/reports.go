package app

import (
	"time"

	"koistat/domain/core"
	"koistat/domain/stats"
)

// ============================================================================
// REPORT SECTIONS
// ============================================================================

// ProbabilityReport partitions candidates by signal-to-noise ratio and checks
// the total-probability and Bayes identities for the confirmed label.
type ProbabilityReport struct {
	N      int                    `json:"n"`
	Target string                 `json:"target"`
	Bins   []stats.Bin            `json:"bins"`
	Counts []stats.GroupCount     `json:"counts"` // bin order
	Total  stats.TotalProbability `json:"total_probability"`
	Bayes  []stats.BayesReversal  `json:"bayes"` // non-empty bins only
}

// RadiusReport fits a normal curve to rocky planet radii and projects how
// often an Earth analogue turns up in a future survey.
type RadiusReport struct {
	Fit          stats.FittedNormal       `json:"fit"`
	Summary      stats.SummaryStats       `json:"summary"`
	EarthRadius  float64                  `json:"earth_radius"`
	EarthZ       float64                  `json:"earth_z"`
	EarthDensity float64                  `json:"earth_density"`
	Curve        []stats.CurvePoint       `json:"curve"`
	EarthAnalogs stats.ProportionEstimate `json:"earth_analogs"`
	FutureStars  int                      `json:"future_stars"`
	PNone        float64                  `json:"p_none"`
	PAtLeastOne  float64                  `json:"p_at_least_one"`
}

// MomentsReport describes the radius distribution and planets per host star.
type MomentsReport struct {
	Radius       stats.MomentSummary   `json:"radius"`
	Summary      stats.SummaryStats    `json:"summary"`
	Skew         SkewClass             `json:"skew"`
	Multiplicity stats.DiscreteMoments `json:"multiplicity"`
}

// CorrelationReport relates stellar radius to orbital period and verifies
// the central limit theorem on planet radii.
type CorrelationReport struct {
	Pearson     stats.CorrelationResult        `json:"pearson"`
	Alpha       float64                        `json:"alpha"`
	Significant bool                           `json:"significant"`
	Sampling    stats.SamplingSimulationResult `json:"sampling"`
	Seed        uint64                         `json:"seed"`
	Workers     int                            `json:"workers"`
}

// HypothesisReport tests whether habitable-zone rocky planets share Earth's
// mean radius.
type HypothesisReport struct {
	Result stats.HypothesisResult `json:"result"`
}

// FullReport bundles every section of one run.
type FullReport struct {
	RunID       core.RunID         `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Source      string             `json:"source,omitempty"`
	Objects     int                `json:"objects"`
	Probability *ProbabilityReport `json:"probability"`
	Radius      *RadiusReport      `json:"radius"`
	Moments     *MomentsReport     `json:"moments"`
	Correlation *CorrelationReport `json:"correlation"`
	Hypothesis  *HypothesisReport  `json:"hypothesis"`
}

// SkewClass buckets a skewness value.
type SkewClass string

const (
	SkewPositive  SkewClass = "positive"
	SkewNegative  SkewClass = "negative"
	SkewSymmetric SkewClass = "symmetric"
)

// ClassifySkew calls |skew| > 1 asymmetric.
func ClassifySkew(skew float64) SkewClass {
	switch {
	case skew > 1:
		return SkewPositive
	case skew < -1:
		return SkewNegative
	}
	return SkewSymmetric
}
