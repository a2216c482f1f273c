package fitting

import (
	"math"
	"testing"

	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitNormalUsesPopulationSigma(t *testing.T) {
	f, err := FitNormal(series.MustNumeric("koi_prad", 0.8, 0.9, 1.0, 1.1, 1.2))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, f.Mu, 1e-12)
	assert.InDelta(t, 0.1414, f.Sigma, 1e-4)
	assert.InDelta(t, math.Sqrt(0.02), f.Sigma, 1e-12)
	assert.Equal(t, 5, f.N)

	z, err := ZScore(1.0, f)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, z, 1e-12)

	z, err = ZScore(1.2, f)
	require.NoError(t, err)
	assert.InDelta(t, 0.2/math.Sqrt(0.02), z, 1e-12)
}

func TestFitNormalNeedsTwoObservations(t *testing.T) {
	_, err := FitNormal(series.MustNumeric("koi_prad", 1.0))
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestDegenerateFit(t *testing.T) {
	f, err := FitNormal(series.MustNumeric("koi_prad", 2, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Sigma)

	_, err = ZScore(1, f)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
	_, err = NormalPDF(1, f)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
	_, err = DensityCurve(f, 0, 1, 10)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
}

func TestDegenerateFitOfInexactConstant(t *testing.T) {
	f, err := FitNormal(series.MustNumeric("koi_prad", 0.1, 0.1, 0.1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Sigma)
	assert.Equal(t, 0.1, f.Mu)

	_, err = ZScore(1.0, f)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
	_, err = NormalPDF(0.1, f)
	assert.ErrorIs(t, err, core.ErrDegenerateDistribution)
}

func TestNormalPDFMatchesClosedForm(t *testing.T) {
	f := stats.FittedNormal{Mu: 1.8, Sigma: 0.9}
	for _, x := range []float64{-1, 0, 1, 1.8, 3.5} {
		z := (x - f.Mu) / f.Sigma
		want := math.Exp(-z*z/2) / (f.Sigma * math.Sqrt(2*math.Pi))

		got, err := NormalPDF(x, f)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "x=%v", x)
	}
}

func TestDensityCurve(t *testing.T) {
	f := stats.FittedNormal{Mu: 0, Sigma: 1}
	curve, err := DensityCurve(f, -3, 3, 7)
	require.NoError(t, err)
	require.Len(t, curve, 7)

	assert.Equal(t, -3.0, curve[0].X)
	assert.Equal(t, 3.0, curve[6].X)
	assert.InDelta(t, 0.0, curve[3].X, 1e-12)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), curve[3].Density, 1e-12)
	assert.InDelta(t, curve[0].Density, curve[6].Density, 1e-15)

	_, err = DensityCurve(f, 1, 1, 7)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = DensityCurve(f, 0, 1, 1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestEstimateProportion(t *testing.T) {
	p, err := EstimateProportion(3, 200)
	require.NoError(t, err)
	assert.Equal(t, 0.015, p.P)

	_, err = EstimateProportion(0, 0)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	_, err = EstimateProportion(5, 4)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = EstimateProportion(-1, 4)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestBinomialScenario(t *testing.T) {
	zero, err := BinomialPMF(0, 100, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 0.3660, zero, 1e-4)

	atLeastOne, err := BinomialAtLeastOne(100, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 0.6340, atLeastOne, 1e-4)
}

func TestBinomialPMFKnownValues(t *testing.T) {
	p, err := BinomialPMF(2, 4, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 6.0/16.0, p, 1e-12)

	p, err = BinomialPMF(5, 4, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	p, err = BinomialPMF(0, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	p, err = BinomialPMF(10, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	p, err = BinomialPMF(3, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestBinomialPMFOutsideSupport(t *testing.T) {
	for _, k := range []int{-1, 11, 50} {
		p, err := BinomialPMF(k, 10, 0.3)
		require.NoError(t, err, "k=%d", k)
		assert.Equal(t, 0.0, p, "k=%d", k)
	}
}

func TestBinomialPMFIsStableForLargeN(t *testing.T) {
	const n = 20000
	const prob = 0.3

	sum := 0.0
	for k := 0; k <= n; k++ {
		v, err := BinomialPMF(k, n, prob)
		require.NoError(t, err)
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "k=%d", k)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	mode, err := BinomialPMF(6000, n, prob)
	require.NoError(t, err)
	assert.Greater(t, mode, 0.0)
}

func TestBinomialConsistency(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100, 1000, 10000} {
		for _, p := range []float64{0, 1e-6, 0.01, 0.25, 0.5, 0.9, 1} {
			zero, err := BinomialPMF(0, n, p)
			require.NoError(t, err)
			atLeastOne, err := BinomialAtLeastOne(n, p)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, zero+atLeastOne, 1e-9, "n=%d p=%v", n, p)
		}
	}
}

func TestBinomialRejectsInvalidArguments(t *testing.T) {
	_, err := BinomialPMF(0, 0, 0.5)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = BinomialPMF(0, 10, 1.5)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = BinomialAtLeastOne(10, -0.1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = BinomialAtLeastOne(10, math.NaN())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
