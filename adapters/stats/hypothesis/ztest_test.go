package hypothesis

import (
	"math"
	"math/rand/v2"
	"testing"

	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZTestScenarioFailsToReject(t *testing.T) {
	sample := series.MustNumeric("koi_prad", 0.9, 1.0, 1.1, 0.95, 1.05)

	res, err := Evaluate(sample, 1.0, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 5, res.N)
	assert.InDelta(t, 1.0, res.SampleMean, 1e-12)
	assert.InDelta(t, 0.0, res.Z, 1e-9)
	assert.InDelta(t, 1.0, res.PValue, 1e-9)
	require.Len(t, res.Decisions, 1)
	assert.False(t, res.Decisions[0].Reject)
	assert.Equal(t, "fail to reject null hypothesis", res.Decisions[0].Verdict())
}

func TestZTestComputesStandardError(t *testing.T) {
	sample := series.MustNumeric("koi_prad", 1.2, 1.4, 1.6, 1.8, 2.0)

	res, err := ZTest(sample, 1.0)
	require.NoError(t, err)

	sd := math.Sqrt(0.1) // sample variance 0.4/4
	assert.InDelta(t, 1.6, res.SampleMean, 1e-12)
	assert.InDelta(t, sd, res.SampleStdDev, 1e-12)
	assert.InDelta(t, sd/math.Sqrt(5), res.StandardError, 1e-12)
	assert.InDelta(t, 0.6/(sd/math.Sqrt(5)), res.Z, 1e-9)
	assert.Less(t, res.PValue, 1e-4)
}

func TestDecideAtTwoLevels(t *testing.T) {
	res := stats.HypothesisResult{Z: 2.2}

	decisions, err := DecideAll(res, 0.05, 0.01)
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	assert.InDelta(t, 1.959964, decisions[0].CriticalZ, 1e-5)
	assert.True(t, decisions[0].Reject)
	assert.InDelta(t, 2.575829, decisions[1].CriticalZ, 1e-5)
	assert.False(t, decisions[1].Reject)
	assert.Equal(t, 2.2, res.Z, "deciding must not touch the statistic")
}

func TestDecideBoundaryIsNotRejection(t *testing.T) {
	d, err := Decide(stats.HypothesisResult{Z: 0}, 0.05)
	require.NoError(t, err)
	exact := stats.HypothesisResult{Z: -d.CriticalZ}

	d, err = Decide(exact, 0.05)
	require.NoError(t, err)
	assert.False(t, d.Reject)
}

func TestDecideRejectsInvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := Decide(stats.HypothesisResult{}, alpha)
		assert.ErrorIs(t, err, core.ErrInvalidArgument, "alpha=%v", alpha)
	}
	_, err := Evaluate(series.MustNumeric("x", 1, 2, 3), 0, 0.05, 2)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestZTestErrors(t *testing.T) {
	_, err := ZTest(series.MustNumeric("x", 1), 0)
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = ZTest(series.MustNumeric("x", 2, 2, 2), 1)
	assert.ErrorIs(t, err, core.ErrZeroVariance)

	_, err = ZTest(series.MustNumeric("x", 1, 2), math.Inf(1))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestZTestRejectsInexactConstantSample(t *testing.T) {
	for _, c := range []float64{0.1, 1.0 / 3} {
		_, err := ZTest(series.MustNumeric("x", c, c, c), 1.0)
		assert.ErrorIs(t, err, core.ErrZeroVariance, "sample of %v", c)
	}
}

func TestZTestIsOrderInvariantAndMonotoneInAlpha(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.IntN(80)
		values := make([]float64, n)
		for i := range values {
			values[i] = 1 + 0.3*rng.NormFloat64() + 0.1*float64(trial%3)
		}
		shuffled := make([]float64, n)
		copy(shuffled, values)
		rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		a, err := Evaluate(series.MustNumeric("x", values...), 1.0, 0.05, 0.01)
		require.NoError(t, err)
		b, err := Evaluate(series.MustNumeric("x", shuffled...), 1.0, 0.05, 0.01)
		require.NoError(t, err)

		assert.InDelta(t, a.Z, b.Z, 1e-9)
		assert.InDelta(t, a.PValue, b.PValue, 1e-9)

		at05, at01 := a.Decisions[0], a.Decisions[1]
		assert.GreaterOrEqual(t, at01.CriticalZ, at05.CriticalZ)
		if at01.Reject {
			assert.True(t, at05.Reject)
		}
	}
}

func TestCriticalRegionCurve(t *testing.T) {
	res := stats.HypothesisResult{Z: 12.45}
	d, err := Decide(res, 0.05)
	require.NoError(t, err)

	curve, err := CriticalRegionCurve(res, d, 1001)
	require.NoError(t, err)
	require.Len(t, curve, 1001)

	assert.InDelta(t, -14.45, curve[0].Z, 1e-9)
	assert.InDelta(t, 14.45, curve[1000].Z, 1e-9)
	assert.True(t, curve[0].Reject)
	assert.False(t, curve[500].Reject)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), curve[500].Density, 1e-9)

	narrow, err := CriticalRegionCurve(stats.HypothesisResult{Z: 0.5}, d, 3)
	require.NoError(t, err)
	assert.InDelta(t, -4.0, narrow[0].Z, 1e-12)

	_, err = CriticalRegionCurve(res, d, 1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
