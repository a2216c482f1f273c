package config

import (
	"os"
	"strconv"
	"strings"

	"koistat/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Analysis AnalysisConfig
	Server   ServerConfig
	LogLevel string
}

// DataConfig holds the catalog location
type DataConfig struct {
	File string
}

// AnalysisConfig holds the knobs of the report run
type AnalysisConfig struct {
	Seed             uint64
	SampleSize       int
	NumSamples       int
	Workers          int
	Alphas           []float64
	HypothesizedMean float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Defaults used when the environment is silent.
const (
	DefaultDataFile         = "kepler_data.csv"
	DefaultSeed             = 42
	DefaultSampleSize       = 50
	DefaultNumSamples       = 1000
	DefaultWorkers          = 1
	DefaultHypothesizedMean = 1.0
)

// DefaultAlphas are the significance levels tested when KOI_ALPHAS is unset.
var DefaultAlphas = []float64{0.05, 0.01}

// LoadDotEnv reads .env files into the process environment. A missing file is
// not an error; variables already set are not overridden.
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	alphas, err := getEnvFloatListOrDefault("KOI_ALPHAS", DefaultAlphas)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}

	config := &Config{
		Data: DataConfig{
			File: getEnvOrDefault("KOI_DATA_FILE", DefaultDataFile),
		},
		Analysis: AnalysisConfig{
			Seed:             getEnvUintOrDefault("KOI_SEED", DefaultSeed),
			SampleSize:       getEnvIntOrDefault("KOI_SAMPLE_SIZE", DefaultSampleSize),
			NumSamples:       getEnvIntOrDefault("KOI_NUM_SAMPLES", DefaultNumSamples),
			Workers:          getEnvIntOrDefault("KOI_WORKERS", DefaultWorkers),
			Alphas:           alphas,
			HypothesizedMean: getEnvFloatOrDefault("KOI_HYPOTHESIZED_MEAN", DefaultHypothesizedMean),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks ranges the analysis depends on.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return errors.ConfigInvalid("KOI_DATA_FILE is required")
	}
	if c.Analysis.SampleSize < 1 {
		return errors.ConfigInvalid("KOI_SAMPLE_SIZE must be at least 1")
	}
	if c.Analysis.NumSamples < 2 {
		return errors.ConfigInvalid("KOI_NUM_SAMPLES must be at least 2")
	}
	if c.Analysis.Workers < 1 {
		return errors.ConfigInvalid("KOI_WORKERS must be at least 1")
	}
	if len(c.Analysis.Alphas) == 0 {
		return errors.ConfigInvalid("KOI_ALPHAS must list at least one level")
	}
	for _, a := range c.Analysis.Alphas {
		if !(a > 0 && a < 1) {
			return errors.ConfigInvalid("KOI_ALPHAS entries must lie in (0, 1)")
		}
	}
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvFloatListOrDefault(key string, defaultValue []float64) ([]float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return append([]float64(nil), defaultValue...), nil
	}
	return ParseFloatList(value)
}

// ParseFloatList parses a comma separated list such as "0.05,0.01".
func ParseFloatList(value string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("cannot parse " + strconv.Quote(part) + " as a number")
		}
		out = append(out, f)
	}
	return out, nil
}
