// Package partition bins continuous variables into ordered categories and
// answers joint, marginal and conditional probability queries over them.
package partition

import (
	"fmt"
	"math"

	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"
)

// SNR category labels of the default scheme.
const (
	LabelLow    = "Low"
	LabelMedium = "Medium"
	LabelHigh   = "High"
)

// Scheme is an ordered, non-overlapping set of bins.
type Scheme struct {
	bins []stats.Bin
}

// NewScheme validates bins: labels unique and non-empty, Lower < Upper,
// ascending and non-overlapping. Gaps between bins are permitted; values
// that land in one are reported as out of range.
func NewScheme(bins ...stats.Bin) (Scheme, error) {
	if len(bins) == 0 {
		return Scheme{}, core.NewInvalidArgumentError("scheme", "needs at least one bin")
	}

	seen := make(map[string]bool, len(bins))
	for i, b := range bins {
		if b.Label == "" {
			return Scheme{}, core.NewInvalidArgumentError(fmt.Sprintf("bin %d", i), "has an empty label")
		}
		if seen[b.Label] {
			return Scheme{}, core.NewInvalidArgumentError(fmt.Sprintf("bin %q", b.Label), "is duplicated")
		}
		seen[b.Label] = true

		if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || !(b.Lower < b.Upper) {
			return Scheme{}, core.NewInvalidArgumentError(fmt.Sprintf("bin %q", b.Label), "needs lower < upper")
		}
		if i > 0 && b.Lower < bins[i-1].Upper {
			return Scheme{}, core.NewInvalidArgumentError(fmt.Sprintf("bin %q", b.Label), "overlaps or precedes the previous bin")
		}
	}

	cp := make([]stats.Bin, len(bins))
	copy(cp, bins)
	return Scheme{bins: cp}, nil
}

// DefaultSNRScheme partitions model SNR into Low [0,10), Medium [10,100)
// and High [100,+Inf).
func DefaultSNRScheme() Scheme {
	s, err := NewScheme(
		stats.Bin{Label: LabelLow, Lower: 0, Upper: 10},
		stats.Bin{Label: LabelMedium, Lower: 10, Upper: 100},
		stats.Bin{Label: LabelHigh, Lower: 100, Upper: math.Inf(1)},
	)
	if err != nil {
		panic(err)
	}
	return s
}

// Bins returns a copy of the scheme's bins in order.
func (s Scheme) Bins() []stats.Bin {
	cp := make([]stats.Bin, len(s.bins))
	copy(cp, s.bins)
	return cp
}

// Labels returns the category labels in bin order.
func (s Scheme) Labels() []string {
	labels := make([]string, len(s.bins))
	for i, b := range s.bins {
		labels[i] = b.Label
	}
	return labels
}

// Locate returns the index of the bin containing v.
func (s Scheme) Locate(v float64) (int, error) {
	for i, b := range s.bins {
		if b.Contains(v) {
			return i, nil
		}
	}
	return -1, core.NewOutOfRangeError(v)
}

func (s Scheme) indexOf(label string) (int, error) {
	for i, b := range s.bins {
		if b.Label == label {
			return i, nil
		}
	}
	return -1, core.NewInvalidArgumentError(fmt.Sprintf("category %q", label), "is not part of the scheme")
}

// Assignment maps every observation of a series to a category.
type Assignment struct {
	Labels []string       `json:"labels"` // index-aligned with the series
	Counts map[string]int `json:"counts"` // every scheme label present, possibly 0
}

// Assign bins every value of s. It fails on the first value outside all bins.
func Assign(s series.Numeric, scheme Scheme) (Assignment, error) {
	out := Assignment{
		Labels: make([]string, s.Len()),
		Counts: make(map[string]int, len(scheme.bins)),
	}
	for _, b := range scheme.bins {
		out.Counts[b.Label] = 0
	}

	for i := 0; i < s.Len(); i++ {
		idx, err := scheme.Locate(s.At(i))
		if err != nil {
			return Assignment{}, fmt.Errorf("%s[%d]: %w", s.Name(), i, err)
		}
		label := scheme.bins[idx].Label
		out.Labels[i] = label
		out.Counts[label]++
	}
	return out, nil
}
