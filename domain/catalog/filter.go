package catalog

import "math"

// Predicate selects records.
type Predicate func(Record) bool

// DispositionIn keeps records whose disposition is one of ds.
func DispositionIn(ds ...Disposition) Predicate {
	set := make(map[Disposition]bool, len(ds))
	for _, d := range ds {
		set[d] = true
	}
	return func(r Record) bool { return set[r.Disposition] }
}

// NonMissing keeps records with a finite value in every listed column.
func NonMissing(cols ...Column) Predicate {
	return func(r Record) bool {
		for _, col := range cols {
			v, err := r.Value(col)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
}

// HasHostStar keeps records that carry a host-star identifier.
func HasHostStar() Predicate {
	return func(r Record) bool { return r.KepID != 0 }
}

// Below keeps records with col < limit.
func Below(col Column, limit float64) Predicate {
	return func(r Record) bool {
		v, err := r.Value(col)
		return err == nil && v < limit
	}
}

// Between keeps records with lo < col < hi, or lo ≤ col ≤ hi when inclusive.
func Between(col Column, lo, hi float64, inclusive bool) Predicate {
	return func(r Record) bool {
		v, err := r.Value(col)
		if err != nil || math.IsNaN(v) {
			return false
		}
		if inclusive {
			return v >= lo && v <= hi
		}
		return v > lo && v < hi
	}
}
