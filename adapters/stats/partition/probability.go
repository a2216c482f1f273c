package partition

import (
	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"
)

// Table is the joint count table category × label of a labeled series.
type Table struct {
	scheme      Scheme
	total       int
	categoryN   []int
	joint       []map[string]int
	labelTotals map[string]int
}

// NewTable bins a labeled series and tallies joint counts.
func NewTable(labeled series.Labeled, scheme Scheme) (*Table, error) {
	if labeled.Len() == 0 {
		return nil, core.NewInsufficientDataError("probability table", 1, 0)
	}

	t := &Table{
		scheme:      scheme,
		total:       labeled.Len(),
		categoryN:   make([]int, len(scheme.bins)),
		joint:       make([]map[string]int, len(scheme.bins)),
		labelTotals: make(map[string]int),
	}
	for i := range t.joint {
		t.joint[i] = make(map[string]int)
	}

	for i := 0; i < labeled.Len(); i++ {
		idx, err := scheme.Locate(labeled.At(i))
		if err != nil {
			return nil, err
		}
		label := labeled.Label(i)
		t.categoryN[idx]++
		t.joint[idx][label]++
		t.labelTotals[label]++
	}
	return t, nil
}

// Total returns the number of records tallied.
func (t *Table) Total() int { return t.total }

// Count returns the number of records in category c.
func (t *Table) Count(category string) (int, error) {
	idx, err := t.scheme.indexOf(category)
	if err != nil {
		return 0, err
	}
	return t.categoryN[idx], nil
}

// JointCount returns the number of records in category c carrying label.
func (t *Table) JointCount(category, label string) (int, error) {
	idx, err := t.scheme.indexOf(category)
	if err != nil {
		return 0, err
	}
	return t.joint[idx][label], nil
}

// Marginal returns P(c) = count(c)/N.
func (t *Table) Marginal(category string) (float64, error) {
	n, err := t.Count(category)
	if err != nil {
		return 0, err
	}
	return float64(n) / float64(t.total), nil
}

// Conditional returns P(target|c) = count(c ∧ target)/count(c).
func (t *Table) Conditional(category, target string) (float64, error) {
	idx, err := t.scheme.indexOf(category)
	if err != nil {
		return 0, err
	}
	if t.categoryN[idx] == 0 {
		return 0, core.NewEmptyPartitionError(category)
	}
	return float64(t.joint[idx][target]) / float64(t.categoryN[idx]), nil
}

// TargetProbability returns the direct empirical P(target) = count(target)/N.
func (t *Table) TargetProbability(target string) float64 {
	return float64(t.labelTotals[target]) / float64(t.total)
}

// TotalProbability reconstructs P(target) as Σ P(target|c)·P(c). Empty
// categories contribute nothing since their P(c) is zero.
func (t *Table) TotalProbability(target string) stats.TotalProbability {
	out := stats.TotalProbability{
		Target: target,
		Direct: t.TargetProbability(target),
		Terms:  make([]stats.ProbabilityTerm, 0, len(t.scheme.bins)),
	}

	for i, b := range t.scheme.bins {
		term := stats.ProbabilityTerm{
			Category: b.Label,
			Marginal: float64(t.categoryN[i]) / float64(t.total),
		}
		if t.categoryN[i] > 0 {
			term.Conditional = float64(t.joint[i][target]) / float64(t.categoryN[i])
		}
		term.Product = term.Conditional * term.Marginal
		out.Reconstructed += term.Product
		out.Terms = append(out.Terms, term)
	}
	return out
}

// Bayes reverses the conditional: P(c|target) = P(target|c)·P(c)/P(target),
// with P(target) taken from direct counts. The direct-count estimate
// count(c ∧ target)/count(target) is returned alongside for cross-checking.
func (t *Table) Bayes(category, target string) (stats.BayesReversal, error) {
	if t.labelTotals[target] == 0 {
		return stats.BayesReversal{}, core.NewEmptyPartitionError(target)
	}

	likelihood, err := t.Conditional(category, target)
	if err != nil {
		return stats.BayesReversal{}, err
	}
	prior, err := t.Marginal(category)
	if err != nil {
		return stats.BayesReversal{}, err
	}
	joint, err := t.JointCount(category, target)
	if err != nil {
		return stats.BayesReversal{}, err
	}

	return stats.BayesReversal{
		Category:    category,
		Target:      target,
		ViaTheorem:  likelihood * prior / t.TargetProbability(target),
		DirectCount: float64(joint) / float64(t.labelTotals[target]),
	}, nil
}

// ConditionalProbability is the one-shot form of Table.Conditional.
func ConditionalProbability(labeled series.Labeled, scheme Scheme, category, target string) (float64, error) {
	t, err := NewTable(labeled, scheme)
	if err != nil {
		return 0, err
	}
	return t.Conditional(category, target)
}
