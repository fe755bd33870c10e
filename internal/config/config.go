package config

import (
	"os"
	"strconv"
)

// Candidate acquisition strategies.
const (
	StrategyServer  = "server"  // server-side random sample
	StrategyShuffle = "shuffle" // capped fetch followed by a client-side shuffle
)

// Label lookup modes.
const (
	LookupBulk   = "bulk"   // one query for all candidate ids
	LookupSingle = "single" // one query per evaluated candidate
)

// Output modes.
const (
	OutputCombined = "combined" // all samples to Sample<collection>
	OutputSplit    = "split"    // Architectural_<project> / Non_architectural_<project>
)

// DefaultModelID is the prediction model whose output is trusted when MODEL_ID is unset.
const DefaultModelID = "648ee4526b3fde4b1b33e099-648f1f6f6b3fde4b1b3429cf"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// Database
	DatabaseURL string

	// YAML project list
	ConfigFile string

	// Sampling
	ModelID          string // Prediction model id, "<model>-<version>"
	Namespace        string // Label id prefix, e.g. "Apache" in "Apache-13012345"
	SourceCollection string // Collection candidates are drawn from
	Strategy         string // "server" or "shuffle"
	SampleSize       int    // Server-side sample size
	FetchLimit       int    // Fetch cap for the shuffle strategy
	LabelLookup      string // "bulk" or "single"
	OutputMode       string // "combined" or "split"
	RandomSeed       int64  // Seed for the shuffle strategy, 0 means time-seeded

	// Infrastructure
	RedisURL       string // Optional, backs the API rate limiter
	PushgatewayURL string // Optional, run metrics are pushed here after each CLI run
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/decisions?sslmode=disable"),
		ConfigFile:       getEnv("CONFIG_FILE", "config.yaml"),
		ModelID:          getEnv("MODEL_ID", DefaultModelID),
		Namespace:        getEnv("NAMESPACE", "Apache"),
		SourceCollection: getEnv("SOURCE_COLLECTION", "Apache"),
		Strategy:         getEnv("SAMPLING_STRATEGY", StrategyServer),
		SampleSize:       getEnvInt("SAMPLE_SIZE", 2000),
		FetchLimit:       getEnvInt("FETCH_LIMIT", 200),
		LabelLookup:      getEnv("LABEL_LOOKUP", LookupBulk),
		OutputMode:       getEnv("OUTPUT_MODE", OutputCombined),
		RandomSeed:       int64(getEnvInt("RANDOM_SEED", 0)),
		RedisURL:         getEnv("REDIS_URL", ""),
		PushgatewayURL:   getEnv("PUSHGATEWAY_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// ApplyYAML overrides sampling settings with the non-empty values from the YAML file.
func (c *Config) ApplyYAML(y *YAMLConfig) {
	if y == nil {
		return
	}
	if y.ModelID != "" {
		c.ModelID = y.ModelID
	}
	if y.Namespace != "" {
		c.Namespace = y.Namespace
	}
	if y.SourceCollection != "" {
		c.SourceCollection = y.SourceCollection
	}
}
