package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/fedegiraudo/inmatch/internal/seedtool"
)

// Default configuration constants.
const (
	defaultNumListings = 500
	defaultNumProfiles = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service; empty skips submission")
		numListings  = flag.Int("listings", defaultNumListings, "Number of listings to generate")
		numProfiles  = flag.Int("profiles", defaultNumProfiles, "Number of search profiles to generate")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submit workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		listingsFile = flag.String("listings-out", "", "Output file for listings (default: seed_listings_TIMESTAMP.json)")
		profilesFile = flag.String("profiles-out", "", "Output file for profiles (default: seed_profiles_TIMESTAMP.json)")
		logFile      = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedtool.ShowHelp()
		return
	}

	if err := seedtool.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seedtool.Config{
		BaseURL:      *baseURL,
		NumListings:  *numListings,
		NumProfiles:  *numProfiles,
		Workers:      *workers,
		Timeout:      *timeout,
		ListingsFile: *listingsFile,
		ProfilesFile: *profilesFile,
		LogFile:      *logFile,
		Verbose:      *verbose,
	}

	if err := seedtool.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
