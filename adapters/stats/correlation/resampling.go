package correlation

import (
	"context"
	"fmt"
	"math"

	"koistat/adapters/stats/moments"
	"koistat/domain/core"
	"koistat/domain/series"
	"koistat/domain/stats"
	"koistat/ports"

	"golang.org/x/sync/errgroup"
)

// Source is the randomness the simulation draws indices from.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// SamplingConfig controls a sampling-distribution simulation.
type SamplingConfig struct {
	SampleSize         int
	NumSamples         int
	WithoutReplacement bool
	KeepMeans          bool // retain every sample mean in the result
}

func (c SamplingConfig) validate(populationSize int) error {
	if populationSize < 2 {
		return core.NewInsufficientDataError("sampling simulation population", 2, populationSize)
	}
	if c.SampleSize < 1 {
		return core.NewInvalidArgumentError("sample size", fmt.Sprintf("must be at least 1, got %d", c.SampleSize))
	}
	if c.NumSamples < 2 {
		return core.NewInvalidArgumentError("number of samples", fmt.Sprintf("must be at least 2, got %d", c.NumSamples))
	}
	if c.WithoutReplacement && c.SampleSize > populationSize {
		return core.NewInsufficientDataError("sampling without replacement", c.SampleSize, populationSize)
	}
	return nil
}

// SimulateSamplingDistribution draws cfg.NumSamples samples of
// cfg.SampleSize from population (with replacement unless configured
// otherwise) and compares the spread of their means with σ/√n.
func SimulateSamplingDistribution(population series.Numeric, cfg SamplingConfig, rng Source) (stats.SamplingSimulationResult, error) {
	if err := cfg.validate(population.Len()); err != nil {
		return stats.SamplingSimulationResult{}, err
	}

	means := make([]float64, cfg.NumSamples)
	// with no abort check drawMeans cannot fail
	_ = drawMeans(population.Values(), cfg, rng, means, nil)
	return summarize(population, cfg, means)
}

// SimulateParallel splits the draws across workers, each consuming its own
// stream from streams. Output is reproducible for a fixed (seed, workers).
func SimulateParallel(ctx context.Context, population series.Numeric, cfg SamplingConfig, streams ports.RNGPort, seed uint64, workers int) (stats.SamplingSimulationResult, error) {
	if err := cfg.validate(population.Len()); err != nil {
		return stats.SamplingSimulationResult{}, err
	}
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.NumSamples {
		workers = cfg.NumSamples
	}

	pop := population.Values()
	means := make([]float64, cfg.NumSamples)
	chunk := (cfg.NumSamples + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, cfg.NumSamples)
		if lo >= hi {
			break
		}
		key := fmt.Sprintf("worker-%d", w)
		g.Go(func() error {
			stream, err := streams.Stream(gctx, "", "sampling_distribution", key, seed)
			if err != nil {
				return err
			}
			return drawMeans(pop, cfg, stream, means[lo:hi], gctx.Err)
		})
	}
	if err := g.Wait(); err != nil {
		return stats.SamplingSimulationResult{}, err
	}

	return summarize(population, cfg, means)
}

// drawMeans fills out with independent sample means. aborted, when non-nil,
// is polled between samples.
func drawMeans(pop []float64, cfg SamplingConfig, rng Source, out []float64, aborted func() error) error {
	n := len(pop)
	var idx []int
	if cfg.WithoutReplacement {
		idx = make([]int, n)
		for i := range idx {
			idx[i] = i
		}
	}

	for s := range out {
		if aborted != nil && s%256 == 0 {
			if err := aborted(); err != nil {
				return err
			}
		}

		sum := 0.0
		if cfg.WithoutReplacement {
			// partial Fisher-Yates; the permutation carries over between samples
			for j := 0; j < cfg.SampleSize; j++ {
				r := j + rng.IntN(n-j)
				idx[j], idx[r] = idx[r], idx[j]
				sum += pop[idx[j]]
			}
		} else {
			for j := 0; j < cfg.SampleSize; j++ {
				sum += pop[rng.IntN(n)]
			}
		}
		out[s] = sum / float64(cfg.SampleSize)
	}
	return nil
}

func summarize(population series.Numeric, cfg SamplingConfig, means []float64) (stats.SamplingSimulationResult, error) {
	popMean, err := moments.Mean(population)
	if err != nil {
		return stats.SamplingSimulationResult{}, err
	}
	popSD, err := moments.StdDev(population)
	if err != nil {
		return stats.SamplingSimulationResult{}, err
	}

	meanSeries, err := series.NewNumeric("sample_means", means)
	if err != nil {
		return stats.SamplingSimulationResult{}, err
	}
	meanOfMeans, err := moments.Mean(meanSeries)
	if err != nil {
		return stats.SamplingSimulationResult{}, err
	}
	empiricalSE, err := moments.StdDev(meanSeries)
	if err != nil {
		return stats.SamplingSimulationResult{}, err
	}

	result := stats.SamplingSimulationResult{
		PopulationMean:      popMean,
		PopulationStdDev:    popSD,
		MeanOfMeans:         meanOfMeans,
		EmpiricalStdError:   empiricalSE,
		TheoreticalStdError: popSD / math.Sqrt(float64(cfg.SampleSize)),
		SampleSize:          cfg.SampleSize,
		NumSamples:          cfg.NumSamples,
	}
	if cfg.KeepMeans {
		result.SampleMeans = means
	}
	return result, nil
}
