// Package stats defines the value objects produced by the statistics engines.
// Every type is built by a single engine call and never mutated afterwards.
package stats

import (
	"encoding/json"
	"math"
)

// ============================================================================
// MOMENTS
// ============================================================================

// MomentSummary holds the first four moments of a continuous series.
// Variance, skewness and kurtosis are population forms; Kurtosis is excess.
type MomentSummary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// GroupCount is the number of records sharing one grouping key.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DiscreteMoments summarises a per-group count variable (e.g. planets per host star).
type DiscreteMoments struct {
	Groups   int          `json:"groups"`
	Mean     float64      `json:"mean"`
	Variance float64      `json:"variance"`
	MaxCount int          `json:"max_count"`
	Counts   []GroupCount `json:"counts"` // descending by count
}

// SummaryStats contains basic descriptive statistics
type SummaryStats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// ============================================================================
// PARTITIONS & CONDITIONAL PROBABILITY
// ============================================================================

// Bin is the half-open interval [Lower, Upper) carrying a category label.
// Upper may be +Inf.
type Bin struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v falls inside the bin.
func (b Bin) Contains(v float64) bool {
	return v >= b.Lower && v < b.Upper
}

// Unbounded reports whether the bin extends to +Inf.
func (b Bin) Unbounded() bool {
	return math.IsInf(b.Upper, 1)
}

// ProbabilityTerm is one summand P(target|c)·P(c) of the total-probability law.
type ProbabilityTerm struct {
	Category    string  `json:"category"`
	Marginal    float64 `json:"marginal"`    // P(c)
	Conditional float64 `json:"conditional"` // P(target|c), 0 when c is empty
	Product     float64 `json:"product"`
}

// TotalProbability exposes both sides of the total-probability law so a
// caller can compare them.
type TotalProbability struct {
	Target        string            `json:"target"`
	Reconstructed float64           `json:"reconstructed"` // Σ P(target|c)·P(c)
	Direct        float64           `json:"direct"`        // count(target)/N
	Terms         []ProbabilityTerm `json:"terms"`
}

// BayesReversal is P(category|target) computed two ways.
type BayesReversal struct {
	Category    string  `json:"category"`
	Target      string  `json:"target"`
	ViaTheorem  float64 `json:"via_theorem"`  // P(target|c)·P(c)/P(target)
	DirectCount float64 `json:"direct_count"` // count(c ∧ target)/count(target)
}

// ============================================================================
// DISTRIBUTION FITS
// ============================================================================

// FittedNormal is a maximum-likelihood Normal fit. Sigma is the population
// standard deviation.
type FittedNormal struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
	N     int     `json:"n"`
}

// ProportionEstimate is an empirical success rate k/n.
type ProportionEstimate struct {
	Successes int     `json:"successes"`
	Trials    int     `json:"trials"`
	P         float64 `json:"p"`
}

// CurvePoint is one sample of a density curve.
type CurvePoint struct {
	X       float64 `json:"x"`
	Density float64 `json:"density"`
}

// ============================================================================
// CORRELATION & RESAMPLING
// ============================================================================

// CorrelationResult is a Pearson coefficient with its two-sided p-value.
type CorrelationResult struct {
	R                float64 `json:"r"`
	PValue           float64 `json:"p_value"`
	N                int     `json:"n"`
	T                float64 `json:"t_statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
}

// Significant reports whether the correlation is significant at alpha.
func (c CorrelationResult) Significant(alpha float64) bool {
	return c.PValue < alpha
}

// MarshalJSON writes an infinite t statistic (|r| = 1) as null.
func (c CorrelationResult) MarshalJSON() ([]byte, error) {
	type plain CorrelationResult
	out := struct {
		plain
		T *float64 `json:"t_statistic"`
	}{plain: plain(c)}
	if !math.IsInf(c.T, 0) && !math.IsNaN(c.T) {
		t := c.T
		out.T = &t
	}
	return json.Marshal(out)
}

// SamplingSimulationResult compares an empirical sampling distribution of
// the mean with its theoretical standard error.
type SamplingSimulationResult struct {
	PopulationMean      float64   `json:"population_mean"`
	PopulationStdDev    float64   `json:"population_std_dev"`
	MeanOfMeans         float64   `json:"mean_of_means"`
	EmpiricalStdError   float64   `json:"empirical_std_error"`
	TheoreticalStdError float64   `json:"theoretical_std_error"`
	SampleSize          int       `json:"sample_size"`
	NumSamples          int       `json:"num_samples"`
	SampleMeans         []float64 `json:"sample_means,omitempty"`
}

// StdErrorRatio is EmpiricalStdError / TheoreticalStdError.
func (r SamplingSimulationResult) StdErrorRatio() float64 {
	if r.TheoreticalStdError == 0 {
		return math.NaN()
	}
	return r.EmpiricalStdError / r.TheoreticalStdError
}

// ============================================================================
// HYPOTHESIS TESTING
// ============================================================================

// DecisionRecord is the outcome of a two-sided test at one significance level.
type DecisionRecord struct {
	Alpha     float64 `json:"alpha"`
	CriticalZ float64 `json:"critical_z"`
	Reject    bool    `json:"reject"`
}

// Verdict renders the decision the way reports phrase it.
func (d DecisionRecord) Verdict() string {
	if d.Reject {
		return "reject null hypothesis"
	}
	return "fail to reject null hypothesis"
}

// HypothesisResult is a one-sample two-tailed z-test.
type HypothesisResult struct {
	N                int              `json:"n"`
	SampleMean       float64          `json:"sample_mean"`
	SampleStdDev     float64          `json:"sample_std_dev"`
	HypothesizedMean float64          `json:"hypothesized_mean"`
	StandardError    float64          `json:"standard_error"`
	Z                float64          `json:"z"`
	PValue           float64          `json:"p_value"`
	Decisions        []DecisionRecord `json:"decisions,omitempty"`
}
