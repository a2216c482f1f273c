package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"koistat/adapters/koi"
	"koistat/adapters/rng"
	"koistat/app"
	"koistat/domain/core"
	"koistat/internal"
	"koistat/internal/config"
	"koistat/internal/errors"
	"koistat/internal/report"

	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	dataFile   string
	seed       uint64
	alphas     []float64
	mu0        float64
	sampleSize int
	numSamples int
	workers    int
	format     string
}

func main() {
	config.LoadDotEnv(".env")
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{
		dataFile:   cfg.Data.File,
		seed:       cfg.Analysis.Seed,
		alphas:     cfg.Analysis.Alphas,
		mu0:        cfg.Analysis.HypothesizedMean,
		sampleSize: cfg.Analysis.SampleSize,
		numSamples: cfg.Analysis.NumSamples,
		workers:    cfg.Analysis.Workers,
		format:     "md",
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	rootCmd := &cobra.Command{
		Use:   "koistat",
		Short: "Statistical analysis of the Kepler Objects of Interest catalog",
		Long: `Run probability, distribution, moment, correlation and hypothesis-test
analyses over a KOI cumulative table exported as CSV or XLSX.

Example: koistat report --data kepler_data.csv --format html > report.html`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataFile, "data", opts.dataFile, "KOI table (.csv or .xlsx)")
	flags.Uint64Var(&opts.seed, "seed", opts.seed, "Random seed for the sampling simulation")
	flags.Float64SliceVar(&opts.alphas, "alpha", opts.alphas, "Significance level (repeatable)")
	flags.Float64Var(&opts.mu0, "mu0", opts.mu0, "Hypothesized mean radius in Earth radii")
	flags.IntVar(&opts.sampleSize, "sample-size", opts.sampleSize, "Sample size for the sampling simulation")
	flags.IntVar(&opts.numSamples, "samples", opts.numSamples, "Number of simulated samples")
	flags.IntVar(&opts.workers, "workers", opts.workers, "Parallel workers for the sampling simulation")
	flags.StringVar(&opts.format, "format", opts.format, "Output format: md, html or json")

	rootCmd.AddCommand(
		newReportCmd(opts, logger),
		newSectionCmd(opts, logger, "probability", "Total probability and Bayes reversal over SNR bins",
			func(ctx context.Context, svc *app.AnalysisService, r *app.FullReport) (err error) {
				r.Probability, err = svc.Probability(ctx)
				return err
			}),
		newSectionCmd(opts, logger, "normal", "Normal fit of planet radii and Earth-analogue binomial",
			func(ctx context.Context, svc *app.AnalysisService, r *app.FullReport) (err error) {
				r.Radius, err = svc.RadiusDistribution(ctx)
				return err
			}),
		newSectionCmd(opts, logger, "moments", "Radius moments and planets per host star",
			func(ctx context.Context, svc *app.AnalysisService, r *app.FullReport) (err error) {
				r.Moments, err = svc.Moments(ctx)
				return err
			}),
		newSectionCmd(opts, logger, "correlation", "Stellar radius vs period and the sampling distribution of the mean",
			func(ctx context.Context, svc *app.AnalysisService, r *app.FullReport) (err error) {
				r.Correlation, err = svc.Correlation(ctx)
				return err
			}),
		newSectionCmd(opts, logger, "ztest", "One-sample z-test on habitable-zone rocky planets",
			func(ctx context.Context, svc *app.AnalysisService, r *app.FullReport) (err error) {
				r.Hypothesis, err = svc.Hypothesis(ctx)
				return err
			}),
	)
	return rootCmd
}

func newReportCmd(opts *options, logger *internal.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run every analysis and print the full report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(opts, logger)
			if err != nil {
				return err
			}
			rep, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rep, opts.format)
		},
	}
}

type sectionFunc func(ctx context.Context, svc *app.AnalysisService, r *app.FullReport) error

func newSectionCmd(opts *options, logger *internal.Logger, use, short string, run sectionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(opts, logger)
			if err != nil {
				return err
			}
			rep := &app.FullReport{
				RunID:       core.NewRunID(),
				GeneratedAt: time.Now().UTC(),
				Source:      opts.dataFile,
				Objects:     svc.Catalog().Len(),
			}
			if err := run(cmd.Context(), svc, rep); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rep, opts.format)
		},
	}
}

func loadService(opts *options, logger *internal.Logger) (*app.AnalysisService, error) {
	cat, err := koi.NewDataReader(opts.dataFile, logger).ReadCatalog()
	if err != nil {
		return nil, err
	}
	analysis := app.Options{
		Seed:             opts.seed,
		SampleSize:       opts.sampleSize,
		NumSamples:       opts.numSamples,
		Workers:          opts.workers,
		Alphas:           opts.alphas,
		HypothesizedMean: opts.mu0,
	}
	return app.NewAnalysisService(cat, rng.NewSeeded(), analysis, logger).WithSource(opts.dataFile), nil
}

func render(w io.Writer, rep *app.FullReport, format string) error {
	switch format {
	case "md", "markdown":
		_, err := io.WriteString(w, report.Markdown(rep))
		return err
	case "html":
		_, err := w.Write(report.HTML(rep))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return fmt.Errorf("unknown format %q (want md, html or json)", format)
}
