package seedtool

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fedegiraudo/inmatch/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Inmatch Seed Tool
=================

Generates realistic listings and search profiles, saves them as JSON seed
files and optionally loads them into a running inmatch service.

Usage:
  go run cmd/seed-tool/main.go [options]

Options:
  -url string
        Base URL of the service; empty skips submission (default "http://localhost:9080")
  -listings int
        Number of listings to generate (default 500)
  -profiles int
        Number of search profiles to generate (default 50)
  -workers int
        Number of concurrent submit workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -listings-out string
        Output file for listings (default: seed_listings_TIMESTAMP.json)
  -profiles-out string
        Output file for profiles (default: seed_profiles_TIMESTAMP.json)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate seed files only
  go run cmd/seed-tool/main.go -url ""

  # Seed a running service
  go run cmd/seed-tool/main.go -listings 2000 -profiles 200

  # Seed a service on another port
  go run cmd/seed-tool/main.go -url http://localhost:8080
`)
}
