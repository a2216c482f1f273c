// Package series holds the immutable, index-aligned value objects the
// statistics engines consume. Values are copied in and out so no engine can
// observe a caller's later mutation.
package series

import (
	"fmt"
	"math"

	"koistat/domain/core"
)

// Numeric is an ordered sequence of finite reals, one per catalog record.
type Numeric struct {
	name   string
	values []float64
}

// NewNumeric validates and copies values.
func NewNumeric(name string, values []float64) (Numeric, error) {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Numeric{}, fmt.Errorf("%w: %s[%d] = %v", core.ErrNonFinite, name, i, v)
		}
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return Numeric{name: name, values: cp}, nil
}

// MustNumeric is NewNumeric for fixtures and literals; it panics on invalid input.
func MustNumeric(name string, values ...float64) Numeric {
	s, err := NewNumeric(name, values)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the column the series was extracted from.
func (s Numeric) Name() string { return s.name }

// Len returns the number of observations.
func (s Numeric) Len() int { return len(s.values) }

// At returns the i-th observation.
func (s Numeric) At(i int) float64 { return s.values[i] }

// Values returns a copy of the observations.
func (s Numeric) Values() []float64 {
	cp := make([]float64, len(s.values))
	copy(cp, s.values)
	return cp
}

// Labeled pairs a Numeric with one categorical label per observation.
type Labeled struct {
	Numeric
	labels []string
}

// NewLabeled checks that labels are index-aligned with values.
func NewLabeled(values Numeric, labels []string) (Labeled, error) {
	if values.Len() != len(labels) {
		return Labeled{}, core.NewLengthMismatchError(values.Len(), len(labels))
	}
	cp := make([]string, len(labels))
	copy(cp, labels)
	return Labeled{Numeric: values, labels: cp}, nil
}

// Label returns the label of the i-th observation.
func (l Labeled) Label(i int) string { return l.labels[i] }

// Labels returns a copy of the labels.
func (l Labeled) Labels() []string {
	cp := make([]string, len(l.labels))
	copy(cp, l.labels)
	return cp
}
