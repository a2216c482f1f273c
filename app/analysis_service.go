package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"koistat/adapters/stats/correlation"
	"koistat/adapters/stats/fitting"
	"koistat/adapters/stats/hypothesis"
	"koistat/adapters/stats/moments"
	"koistat/adapters/stats/partition"
	"koistat/domain/catalog"
	"koistat/domain/core"
	"koistat/domain/stats"
	"koistat/internal"
	"koistat/ports"
)

// Thresholds applied to the catalog before each analysis.
const (
	RockyRadiusLimit     = 10.0  // Earth radii; excludes gas giants from the normal fit
	MomentRadiusLimit    = 20.0  // Earth radii; trims extreme outliers
	EarthRadius          = 1.0   // Earth radii
	EarthAnalogMinRadius = 0.8   // exclusive
	EarthAnalogMaxRadius = 1.2   // exclusive
	HabitableMinTemp     = 200.0 // kelvin
	HabitableMaxTemp     = 320.0 // kelvin
	RockyHabitableLimit  = 2.5   // Earth radii
	FutureStars          = 100
	CurvePoints          = 100
	CorrelationAlpha     = 0.05
)

// Options tunes the stochastic and inferential parts of a run.
type Options struct {
	Seed             uint64
	SampleSize       int
	NumSamples       int
	Workers          int
	Alphas           []float64
	HypothesizedMean float64
}

// DefaultOptions returns the report defaults.
func DefaultOptions() Options {
	return Options{
		Seed:             42,
		SampleSize:       50,
		NumSamples:       1000,
		Workers:          1,
		Alphas:           []float64{0.05, 0.01},
		HypothesizedMean: EarthRadius,
	}
}

// AnalysisService runs the catalog analyses.
type AnalysisService struct {
	catalog *catalog.Catalog
	rng     ports.RNGPort
	opts    Options
	source  string
	logger  *internal.Logger
}

// NewAnalysisService wires a loaded catalog to the analyses.
func NewAnalysisService(cat *catalog.Catalog, rng ports.RNGPort, opts Options, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		catalog: cat,
		rng:     rng,
		opts:    opts,
		logger:  logger.Named("analysis"),
	}
}

// WithSource records where the catalog came from in generated reports.
func (s *AnalysisService) WithSource(source string) *AnalysisService {
	s.source = source
	return s
}

// Catalog returns the catalog under analysis.
func (s *AnalysisService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Probability partitions confirmed and false-positive objects by SNR.
func (s *AnalysisService) Probability(ctx context.Context) (*ProbabilityReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	subset := s.catalog.Filter(
		catalog.DispositionIn(catalog.DispositionConfirmed, catalog.DispositionFalsePositive),
		catalog.NonMissing(catalog.ColModelSNR),
		catalog.Between(catalog.ColModelSNR, 0, math.Inf(1), true),
	)
	labeled, err := subset.LabeledColumn(catalog.ColModelSNR)
	if err != nil {
		return nil, fmt.Errorf("probability: %w", err)
	}

	scheme := partition.DefaultSNRScheme()
	table, err := partition.NewTable(labeled, scheme)
	if err != nil {
		return nil, fmt.Errorf("probability: %w", err)
	}

	target := string(catalog.DispositionConfirmed)
	report := &ProbabilityReport{
		N:      table.Total(),
		Target: target,
		Bins:   scheme.Bins(),
		Total:  table.TotalProbability(target),
	}
	for _, label := range scheme.Labels() {
		n, err := table.Count(label)
		if err != nil {
			return nil, fmt.Errorf("probability: %w", err)
		}
		report.Counts = append(report.Counts, stats.GroupCount{Key: label, Count: n})
		if n == 0 {
			s.logger.Warn("SNR bin %s is empty; skipping Bayes reversal", label)
			continue
		}
		rev, err := table.Bayes(label, target)
		if err != nil {
			return nil, fmt.Errorf("probability: bayes for %s: %w", label, err)
		}
		report.Bayes = append(report.Bayes, rev)
	}

	s.logger.Debug("probability: N=%d P(%s)=%.4f reconstructed=%.4f",
		report.N, target, report.Total.Direct, report.Total.Reconstructed)
	return report, nil
}

// RadiusDistribution fits rocky radii and estimates the Earth-analogue rate.
func (s *AnalysisService) RadiusDistribution(ctx context.Context) (*RadiusReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	confirmed := s.catalog.Filter(
		catalog.DispositionIn(catalog.DispositionConfirmed),
		catalog.NonMissing(catalog.ColPlanetRadius, catalog.ColEquilibriumTemp),
	)
	rocky, err := confirmed.Filter(catalog.Below(catalog.ColPlanetRadius, RockyRadiusLimit)).Column(catalog.ColPlanetRadius)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}

	fit, err := fitting.FitNormal(rocky)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}
	summary, err := moments.Summarize(rocky)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}
	z, err := fitting.ZScore(EarthRadius, fit)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}
	density, err := fitting.NormalPDF(EarthRadius, fit)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}
	curve, err := fitting.DensityCurve(fit, summary.Min, summary.Max, CurvePoints)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}

	analogs := confirmed.Count(
		catalog.Between(catalog.ColPlanetRadius, EarthAnalogMinRadius, EarthAnalogMaxRadius, false),
		catalog.Between(catalog.ColEquilibriumTemp, HabitableMinTemp, HabitableMaxTemp, false),
	)
	proportion, err := fitting.EstimateProportion(analogs, confirmed.Len())
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}
	pNone, err := fitting.BinomialPMF(0, FutureStars, proportion.P)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}
	pAny, err := fitting.BinomialAtLeastOne(FutureStars, proportion.P)
	if err != nil {
		return nil, fmt.Errorf("radius distribution: %w", err)
	}

	s.logger.Debug("radius: mu=%.4f sigma=%.4f analogs=%d/%d", fit.Mu, fit.Sigma, analogs, confirmed.Len())
	return &RadiusReport{
		Fit:          fit,
		Summary:      summary,
		EarthRadius:  EarthRadius,
		EarthZ:       z,
		EarthDensity: density,
		Curve:        curve,
		EarthAnalogs: proportion,
		FutureStars:  FutureStars,
		PNone:        pNone,
		PAtLeastOne:  pAny,
	}, nil
}

// Moments describes planet radii and system multiplicity.
func (s *AnalysisService) Moments(ctx context.Context) (*MomentsReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	confirmed := s.catalog.Filter(
		catalog.DispositionIn(catalog.DispositionConfirmed),
		catalog.NonMissing(catalog.ColPlanetRadius),
		catalog.HasHostStar(),
	)
	radius, err := confirmed.Filter(catalog.Below(catalog.ColPlanetRadius, MomentRadiusLimit)).Column(catalog.ColPlanetRadius)
	if err != nil {
		return nil, fmt.Errorf("moments: %w", err)
	}

	summary, err := moments.Compute(radius)
	if err != nil {
		return nil, fmt.Errorf("moments: %w", err)
	}
	desc, err := moments.Summarize(radius)
	if err != nil {
		return nil, fmt.Errorf("moments: %w", err)
	}
	multiplicity, err := moments.Discrete(confirmed.HostStars())
	if err != nil {
		return nil, fmt.Errorf("moments: multiplicity: %w", err)
	}

	s.logger.Debug("moments: n=%d skew=%.4f hosts=%d", summary.N, summary.Skewness, multiplicity.Groups)
	return &MomentsReport{
		Radius:       summary,
		Summary:      desc,
		Skew:         ClassifySkew(summary.Skewness),
		Multiplicity: multiplicity,
	}, nil
}

// Correlation tests stellar radius against orbital period and simulates the
// sampling distribution of mean planet radius.
func (s *AnalysisService) Correlation(ctx context.Context) (*CorrelationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	confirmed := s.catalog.Filter(
		catalog.DispositionIn(catalog.DispositionConfirmed),
		catalog.NonMissing(catalog.ColStellarRadius, catalog.ColOrbitalPeriod, catalog.ColPlanetRadius),
	)
	srad, err := confirmed.Column(catalog.ColStellarRadius)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	period, err := confirmed.Column(catalog.ColOrbitalPeriod)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	pearson, err := correlation.Pearson(srad, period)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	population, err := confirmed.Filter(catalog.Below(catalog.ColPlanetRadius, MomentRadiusLimit)).Column(catalog.ColPlanetRadius)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	workers := max(s.opts.Workers, 1)
	cfg := correlation.SamplingConfig{SampleSize: s.opts.SampleSize, NumSamples: s.opts.NumSamples}
	start := time.Now()
	sampling, err := correlation.SimulateParallel(ctx, population, cfg, s.rng, s.opts.Seed, workers)
	if err != nil {
		return nil, fmt.Errorf("correlation: sampling distribution: %w", err)
	}

	s.logger.Debug("correlation: r=%.4f p=%.3g; %d samples in %s",
		pearson.R, pearson.PValue, cfg.NumSamples, time.Since(start))
	return &CorrelationReport{
		Pearson:     pearson,
		Alpha:       CorrelationAlpha,
		Significant: pearson.Significant(CorrelationAlpha),
		Sampling:    sampling,
		Seed:        s.opts.Seed,
		Workers:     workers,
	}, nil
}

// Hypothesis runs the one-sample z-test on habitable-zone rocky planets.
func (s *AnalysisService) Hypothesis(ctx context.Context) (*HypothesisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sample, err := s.catalog.Filter(
		catalog.DispositionIn(catalog.DispositionConfirmed),
		catalog.Between(catalog.ColEquilibriumTemp, HabitableMinTemp, HabitableMaxTemp, true),
		catalog.NonMissing(catalog.ColPlanetRadius),
		catalog.Below(catalog.ColPlanetRadius, RockyHabitableLimit),
	).Column(catalog.ColPlanetRadius)
	if err != nil {
		return nil, fmt.Errorf("hypothesis: %w", err)
	}

	result, err := hypothesis.Evaluate(sample, s.opts.HypothesizedMean, s.opts.Alphas...)
	if err != nil {
		return nil, fmt.Errorf("hypothesis: %w", err)
	}
	s.logger.Debug("hypothesis: n=%d z=%.4f p=%.3g", result.N, result.Z, result.PValue)
	return &HypothesisReport{Result: result}, nil
}

// Run executes every analysis. Any failure aborts the run.
func (s *AnalysisService) Run(ctx context.Context) (*FullReport, error) {
	start := time.Now()
	report := &FullReport{
		RunID:       core.NewRunID(),
		GeneratedAt: start.UTC(),
		Source:      s.source,
		Objects:     s.catalog.Len(),
	}
	s.logger.Info("run %s started over %d objects", report.RunID, report.Objects)

	var err error
	if report.Probability, err = s.Probability(ctx); err != nil {
		return nil, s.fail(report.RunID, err)
	}
	if report.Radius, err = s.RadiusDistribution(ctx); err != nil {
		return nil, s.fail(report.RunID, err)
	}
	if report.Moments, err = s.Moments(ctx); err != nil {
		return nil, s.fail(report.RunID, err)
	}
	if report.Correlation, err = s.Correlation(ctx); err != nil {
		return nil, s.fail(report.RunID, err)
	}
	if report.Hypothesis, err = s.Hypothesis(ctx); err != nil {
		return nil, s.fail(report.RunID, err)
	}

	s.logger.Info("run %s finished in %s", report.RunID, time.Since(start))
	return report, nil
}

func (s *AnalysisService) fail(runID core.RunID, err error) error {
	s.logger.Error("run %s failed: %v", runID, err)
	return err
}
