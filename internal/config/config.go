package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/material"
)

const (
	defaultDBPath    = "./beamcalc.db"
	defaultAddr      = ":8080"
	defaultRateLimit = 5.0
	defaultRateBurst = 10
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath     string
	Addr       string
	Resolution int
	Material   string
	RateLimit  float64 // requests per second per client
	RateBurst  int
}

// Load reads environment variables and returns a populated Config. A .env
// file in the working directory is loaded first when present; variables
// already set in the environment take precedence.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path.
func LoadFrom(path string) Config {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: reading %s: %v", path, err)
	}

	cfg := Config{
		DBPath:     os.Getenv("BEAMCALC_DB_PATH"),
		Addr:       os.Getenv("BEAMCALC_ADDR"),
		Material:   os.Getenv("BEAMCALC_MATERIAL"),
		Resolution: intEnv("BEAMCALC_RESOLUTION", beam.DefaultResolution),
		RateLimit:  floatEnv("BEAMCALC_RATE_LIMIT", defaultRateLimit),
		RateBurst:  intEnv("BEAMCALC_RATE_BURST", defaultRateBurst),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Material == "" {
		cfg.Material = material.Default
	}

	return cfg
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("warning: %s=%q is not a positive integer, using %d", key, raw, def)
		return def
	}
	return v
}

func floatEnv(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("warning: %s=%q is not a positive number, using %g", key, raw, def)
		return def
	}
	return v
}
