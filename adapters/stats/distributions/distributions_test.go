package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalQuantileInvertsCDF(t *testing.T) {
	for _, p := range []float64{0.01, 0.1, 0.5, 0.9, 0.975, 0.995} {
		assert.InDelta(t, p, NormalCDF(NormalQuantile(p)), 1e-9, "p=%v", p)
	}
}

func TestTwoSidedCriticalZ(t *testing.T) {
	assert.InDelta(t, 1.959964, TwoSidedCriticalZ(0.05), 1e-5)
	assert.InDelta(t, 2.575829, TwoSidedCriticalZ(0.01), 1e-5)
}

func TestTwoTailedNormalPValue(t *testing.T) {
	assert.InDelta(t, 1.0, TwoTailedNormalPValue(0), 1e-12)
	assert.InDelta(t, 0.05, TwoTailedNormalPValue(1.959964), 1e-6)
	assert.Equal(t, TwoTailedNormalPValue(2.3), TwoTailedNormalPValue(-2.3))

	// far tail must stay positive rather than cancel to zero
	assert.Greater(t, TwoTailedNormalPValue(12.45), 0.0)
}

func TestTTestPValue(t *testing.T) {
	// t = 2.228 is the 97.5th percentile for 10 degrees of freedom
	assert.InDelta(t, 0.05, TTestPValue(2.228139, 10), 1e-5)
	assert.Equal(t, 1.0, TTestPValue(1.5, 0))
	assert.Equal(t, 0.0, TTestPValue(math.Inf(1), 5))
}

func TestCorrelationPValue(t *testing.T) {
	assert.Equal(t, 1.0, CorrelationPValue(0.9, 2))
	assert.InDelta(t, 1.0, CorrelationPValue(0, 30), 1e-12)
	assert.Equal(t, 0.0, CorrelationPValue(1, 30))
	assert.True(t, math.IsInf(CorrelationT(-1, 10), -1))
	assert.Less(t, CorrelationPValue(0.8, 30), CorrelationPValue(0.3, 30))
}
