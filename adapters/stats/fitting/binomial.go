package fitting

import (
	"fmt"
	"math"

	"koistat/domain/core"
	"koistat/domain/stats"

	"gonum.org/v1/gonum/stat/combin"
)

// EstimateProportion returns the empirical success rate k/n.
func EstimateProportion(successes, trials int) (stats.ProportionEstimate, error) {
	if trials <= 0 {
		return stats.ProportionEstimate{}, core.NewInsufficientDataError("proportion", 1, trials)
	}
	if successes < 0 || successes > trials {
		return stats.ProportionEstimate{}, core.NewInvalidArgumentError("successes", fmt.Sprintf("must lie in [0, %d], got %d", trials, successes))
	}
	return stats.ProportionEstimate{
		Successes: successes,
		Trials:    trials,
		P:         float64(successes) / float64(trials),
	}, nil
}

// BinomialPMF is P(X = k) for X ~ Binomial(n, p), evaluated in log space so
// large n does not overflow the coefficient.
func BinomialPMF(k, n int, p float64) (float64, error) {
	if err := checkBinomial(n, p); err != nil {
		return 0, err
	}
	if k < 0 || k > n {
		return 0, nil
	}

	switch p {
	case 0:
		if k == 0 {
			return 1, nil
		}
		return 0, nil
	case 1:
		if k == n {
			return 1, nil
		}
		return 0, nil
	}

	fn, fk := float64(n), float64(k)
	logP := combin.LogGeneralizedBinomial(fn, fk) + fk*math.Log(p) + (fn-fk)*math.Log1p(-p)
	return math.Exp(logP), nil
}

// BinomialAtLeastOne is P(X ≥ 1) = 1 − (1−p)ⁿ.
func BinomialAtLeastOne(n int, p float64) (float64, error) {
	if err := checkBinomial(n, p); err != nil {
		return 0, err
	}
	return 1 - math.Pow(1-p, float64(n)), nil
}

func checkBinomial(n int, p float64) error {
	if n < 1 {
		return core.NewInvalidArgumentError("n", fmt.Sprintf("must be at least 1, got %d", n))
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return core.NewInvalidArgumentError("p", fmt.Sprintf("must lie in [0, 1], got %v", p))
	}
	return nil
}
