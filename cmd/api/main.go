// Package main is the entry point for the bookshelf API server.
// It wires together configuration, the in-memory book store, and the HTTP router.
package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aoideee/bookshelf-api/internal/data"
)

// appVersion is the current version of the API, shown in logs and /healthz.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via
// command-line flags. Defaults come from the environment (and .env).
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 9000)
	environment string // Runtime environment: development, staging, or production
	limiter     struct {
		rps     float64 // Tokens added per second for each client IP
		burst   int     // Bucket size for each client IP
		enabled bool
	}
	cors struct {
		trustedOrigins []string // Origins allowed to make cross-origin requests; "*" allows any
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig // Server configuration loaded from flags
	logger *slog.Logger // Structured logger that writes to stdout
	models data.Models  // In-memory book store

	// shutdown is closed once the server has stopped; background goroutines
	// started by middleware exit when it closes.
	shutdown chan struct{}
}

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	settings := parseConfig(flag.CommandLine, os.Args[1:])

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	appInstance := &applicationDependencies{
		config:   settings,
		logger:   logger,
		models:   data.NewModels(),
		shutdown: make(chan struct{}),
	}

	err := appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// parseConfig registers the server flags on fs and parses args.
func parseConfig(fs *flag.FlagSet, args []string) serverConfig {
	var settings serverConfig

	fs.IntVar(&settings.port, "port", envInt("PORT", 9000), "Server port")
	fs.StringVar(&settings.environment, "env", envString("APP_ENV", "development"), "Environment(development|staging|production)")

	fs.Float64Var(&settings.limiter.rps, "limiter-rps", envFloat("LIMITER_RPS", 2), "Rate limiter maximum requests per second")
	fs.IntVar(&settings.limiter.burst, "limiter-burst", envInt("LIMITER_BURST", 4), "Rate limiter maximum burst")
	fs.BoolVar(&settings.limiter.enabled, "limiter-enabled", envBool("LIMITER_ENABLED", false), "Enable per-IP rate limiter")

	fs.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		settings.cors.trustedOrigins = strings.Fields(val)
		return nil
	})
	settings.cors.trustedOrigins = strings.Fields(envString("CORS_TRUSTED_ORIGINS", "*"))

	// flag.CommandLine exits on error; other sets report through their own handling.
	_ = fs.Parse(args)
	return settings
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
