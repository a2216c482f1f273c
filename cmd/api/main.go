package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"koistat/adapters/api"
	"koistat/adapters/koi"
	"koistat/adapters/rng"
	"koistat/app"
	"koistat/internal"
	"koistat/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	cat, err := koi.NewDataReader(cfg.Data.File, logger).ReadCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	opts := app.Options{
		Seed:             cfg.Analysis.Seed,
		SampleSize:       cfg.Analysis.SampleSize,
		NumSamples:       cfg.Analysis.NumSamples,
		Workers:          cfg.Analysis.Workers,
		Alphas:           cfg.Analysis.Alphas,
		HypothesizedMean: cfg.Analysis.HypothesizedMean,
	}
	service := app.NewAnalysisService(cat, rng.NewSeeded(), opts, logger).WithSource(cfg.Data.File)
	server := api.NewServer(service, cfg.Analysis.Alphas, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, ":"+cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
