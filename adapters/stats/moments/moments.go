// Package moments computes raw and central moments of numeric series and
// frequency moments of grouped counts.
package moments

import (
	"math"
	"sort"

	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic average. Requires n ≥ 1.
func Mean(s series.Numeric) (float64, error) {
	if s.Len() < 1 {
		return 0, core.NewInsufficientDataError("mean", 1, s.Len())
	}
	return mstats.Mean(s.Values())
}

// Variance returns the population variance (divide by n). Requires n ≥ 2.
func Variance(s series.Numeric) (float64, error) {
	if s.Len() < 2 {
		return 0, core.NewInsufficientDataError("variance", 2, s.Len())
	}
	return mstats.PopulationVariance(s.Values())
}

// SampleVariance returns the unbiased variance (divide by n−1). Requires n ≥ 2.
func SampleVariance(s series.Numeric) (float64, error) {
	if s.Len() < 2 {
		return 0, core.NewInsufficientDataError("sample variance", 2, s.Len())
	}
	return mstats.SampleVariance(s.Values())
}

// StdDev is the square root of Variance.
func StdDev(s series.Numeric) (float64, error) {
	v, err := Variance(s)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// SampleStdDev is the square root of SampleVariance.
func SampleStdDev(s series.Numeric) (float64, error) {
	v, err := SampleVariance(s)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Skewness is the Fisher-Pearson coefficient m3/m2^(3/2) without
// small-sample correction.
func Skewness(s series.Numeric) (float64, error) {
	m2, err := secondMoment(s, "skewness")
	if err != nil {
		return 0, err
	}
	m3 := stat.Moment(3, s.Values(), nil)
	return m3 / math.Pow(m2, 1.5), nil
}

// Kurtosis is the excess kurtosis m4/m2² − 3 in population form.
func Kurtosis(s series.Numeric) (float64, error) {
	m2, err := secondMoment(s, "kurtosis")
	if err != nil {
		return 0, err
	}
	m4 := stat.Moment(4, s.Values(), nil)
	return m4/(m2*m2) - 3, nil
}

// Compute returns mean, population variance, skewness and excess kurtosis.
func Compute(s series.Numeric) (stats.MomentSummary, error) {
	m2, err := secondMoment(s, "moments")
	if err != nil {
		return stats.MomentSummary{}, err
	}
	x := s.Values()
	m3 := stat.Moment(3, x, nil)
	m4 := stat.Moment(4, x, nil)

	return stats.MomentSummary{
		N:        len(x),
		Mean:     stat.Mean(x, nil),
		Variance: m2,
		Skewness: m3 / math.Pow(m2, 1.5),
		Kurtosis: m4/(m2*m2) - 3,
	}, nil
}

// secondMoment returns m2 and rejects the cases where standardised moments
// are undefined.
func secondMoment(s series.Numeric, statistic string) (float64, error) {
	if s.Len() < 2 {
		return 0, core.NewInsufficientDataError(statistic, 2, s.Len())
	}
	if IsConstant(s) {
		return 0, core.ErrZeroVariance
	}
	return stat.Moment(2, s.Values(), nil), nil
}

// IsConstant reports whether every value in s is identical. It inspects the
// data rather than a computed variance, which rounding can leave slightly
// above zero for constants like 0.1. An empty series is not constant.
func IsConstant(s series.Numeric) bool {
	x := s.Values()
	if len(x) == 0 {
		return false
	}
	return floats.Min(x) == floats.Max(x)
}

// Discrete counts records per key and reports the moments of those counts.
// At least two distinct keys are required for the variance to be meaningful.
func Discrete(keys []string) (stats.DiscreteMoments, error) {
	tally := make(map[string]int)
	for _, k := range keys {
		tally[k]++
	}
	if len(tally) < 2 {
		return stats.DiscreteMoments{}, core.NewInsufficientDataError("discrete moments", 2, len(tally))
	}

	counts := make([]stats.GroupCount, 0, len(tally))
	for k, c := range tally {
		counts = append(counts, stats.GroupCount{Key: k, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
	}
	mean, err := mstats.Mean(values)
	if err != nil {
		return stats.DiscreteMoments{}, err
	}
	variance, err := mstats.PopulationVariance(values)
	if err != nil {
		return stats.DiscreteMoments{}, err
	}

	return stats.DiscreteMoments{
		Groups:   len(counts),
		Mean:     mean,
		Variance: variance,
		MaxCount: counts[0].Count,
		Counts:   counts,
	}, nil
}

// Summarize produces the descriptive brief reports print next to the moments.
func Summarize(s series.Numeric) (stats.SummaryStats, error) {
	if s.Len() < 1 {
		return stats.SummaryStats{}, core.NewInsufficientDataError("summary", 1, s.Len())
	}
	data := mstats.Float64Data(s.Values())

	mean, _ := data.Mean()
	stdDev, _ := data.StandardDeviationPopulation()
	min, _ := data.Min()
	max, _ := data.Max()
	median, _ := data.Median()
	q25, _ := data.Percentile(25)
	q75, _ := data.Percentile(75)

	return stats.SummaryStats{
		N:      s.Len(),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}, nil
}
