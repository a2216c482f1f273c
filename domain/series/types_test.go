package series

import (
	"math"
	"testing"

	"koistat/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericRejectsNonFinite(t *testing.T) {
	_, err := NewNumeric("koi_prad", []float64{1, math.NaN()})
	assert.ErrorIs(t, err, core.ErrNonFinite)

	_, err = NewNumeric("koi_prad", []float64{math.Inf(1)})
	assert.ErrorIs(t, err, core.ErrNonFinite)
}

func TestNumericIsImmutable(t *testing.T) {
	raw := []float64{1, 2, 3}
	s, err := NewNumeric("koi_prad", raw)
	require.NoError(t, err)

	raw[0] = 100
	assert.Equal(t, 1.0, s.At(0))

	out := s.Values()
	out[1] = 100
	assert.Equal(t, 2.0, s.At(1))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "koi_prad", s.Name())
}

func TestNewLabeledChecksAlignment(t *testing.T) {
	s := MustNumeric("koi_model_snr", 5, 50, 500)

	_, err := NewLabeled(s, []string{"CONFIRMED"})
	assert.ErrorIs(t, err, core.ErrLengthMismatch)

	labels := []string{"CONFIRMED", "FALSE POSITIVE", "CONFIRMED"}
	l, err := NewLabeled(s, labels)
	require.NoError(t, err)
	labels[0] = "CHANGED"
	assert.Equal(t, "CONFIRMED", l.Label(0))
	assert.Equal(t, []string{"CONFIRMED", "FALSE POSITIVE", "CONFIRMED"}, l.Labels())
	assert.Equal(t, 500.0, l.At(2))
}

func TestMustNumericPanics(t *testing.T) {
	assert.Panics(t, func() { MustNumeric("x", math.NaN()) })
}
