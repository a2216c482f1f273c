package correlation

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"koistat/adapters/rng"
	"koistat/domain/core"
	"koistat/domain/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneToTen() series.Numeric {
	return series.MustNumeric("population", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
}

func TestSamplingDistributionScenario(t *testing.T) {
	cfg := SamplingConfig{SampleSize: 5, NumSamples: 5000}

	res, err := SimulateSamplingDistribution(oneToTen(), cfg, rand.New(rand.NewPCG(42, 0)))
	require.NoError(t, err)

	assert.InDelta(t, 5.5, res.PopulationMean, 1e-12)
	assert.InDelta(t, math.Sqrt(8.25), res.PopulationStdDev, 1e-12)
	assert.InDelta(t, math.Sqrt(8.25)/math.Sqrt(5), res.TheoreticalStdError, 1e-12)
	assert.InEpsilon(t, res.TheoreticalStdError, res.EmpiricalStdError, 0.05)
	assert.InDelta(t, 5.5, res.MeanOfMeans, 0.1)
	assert.Nil(t, res.SampleMeans)
}

func TestSamplingDistributionIsReproducible(t *testing.T) {
	cfg := SamplingConfig{SampleSize: 5, NumSamples: 500, KeepMeans: true}

	a, err := SimulateSamplingDistribution(oneToTen(), cfg, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := SimulateSamplingDistribution(oneToTen(), cfg, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a.SampleMeans, 500)
}

func TestSamplingDistributionConverges(t *testing.T) {
	pop := oneToTen()
	for seed := uint64(1); seed <= 10; seed++ {
		for _, numSamples := range []int{200, 2000, 20000} {
			cfg := SamplingConfig{SampleSize: 5, NumSamples: numSamples}
			res, err := SimulateSamplingDistribution(pop, cfg, rand.New(rand.NewPCG(seed, 99)))
			require.NoError(t, err)

			// ~5 standard errors of a sample standard deviation
			tolerance := 5 / math.Sqrt(2*float64(numSamples))
			assert.InDelta(t, 1.0, res.StdErrorRatio(), tolerance, "seed=%d samples=%d", seed, numSamples)
		}
	}
}

func TestSamplingWithoutReplacement(t *testing.T) {
	pop := oneToTen()

	_, err := SimulateSamplingDistribution(pop, SamplingConfig{SampleSize: 11, NumSamples: 10, WithoutReplacement: true}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	// drawing the whole population without replacement always yields its mean
	res, err := SimulateSamplingDistribution(pop, SamplingConfig{SampleSize: 10, NumSamples: 50, WithoutReplacement: true}, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.InDelta(t, 5.5, res.MeanOfMeans, 1e-12)
	assert.InDelta(t, 0.0, res.EmpiricalStdError, 1e-12)

	// with replacement has no such bound
	_, err = SimulateSamplingDistribution(pop, SamplingConfig{SampleSize: 50, NumSamples: 10}, rand.New(rand.NewPCG(1, 1)))
	assert.NoError(t, err)
}

func TestSamplingConfigValidation(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 1))

	_, err := SimulateSamplingDistribution(series.MustNumeric("p"), SamplingConfig{SampleSize: 1, NumSamples: 10}, src)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	_, err = SimulateSamplingDistribution(oneToTen(), SamplingConfig{SampleSize: 0, NumSamples: 10}, src)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = SimulateSamplingDistribution(oneToTen(), SamplingConfig{SampleSize: 3, NumSamples: 1}, src)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestSimulateParallel(t *testing.T) {
	ctx := context.Background()
	cfg := SamplingConfig{SampleSize: 5, NumSamples: 5000}
	streams := rng.NewSeeded()

	a, err := SimulateParallel(ctx, oneToTen(), cfg, streams, 42, 4)
	require.NoError(t, err)
	b, err := SimulateParallel(ctx, oneToTen(), cfg, streams, 42, 4)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 5000, a.NumSamples)
	assert.InEpsilon(t, a.TheoreticalStdError, a.EmpiricalStdError, 0.05)

	many, err := SimulateParallel(ctx, oneToTen(), SamplingConfig{SampleSize: 5, NumSamples: 3}, streams, 42, 16)
	require.NoError(t, err)
	assert.Equal(t, 3, many.NumSamples)
}

func TestSimulateParallelHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SimulateParallel(ctx, oneToTen(), SamplingConfig{SampleSize: 5, NumSamples: 1000}, rng.NewSeeded(), 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
