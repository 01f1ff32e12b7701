package seedtool

import "time"

// Config holds configuration for a seed run.
type Config struct {
	BaseURL      string        // Base URL of the service; empty skips submission
	NumListings  int           // Number of listings to generate
	NumProfiles  int           // Number of search profiles to generate
	Workers      int           // Number of concurrent submit workers
	Timeout      time.Duration // HTTP request timeout
	ListingsFile string        // Output file for generated listings
	ProfilesFile string        // Output file for generated profiles
	LogFile      string        // Log file for run output
	Verbose      bool          // Enable verbose logging
}

// Stats holds seed run statistics.
type Stats struct {
	ListingsGenerated  int
	ProfilesGenerated  int
	ListingsSubmitted  int
	ProfilesSubmitted  int
	SubmitFailed       int
	SummariesRetrieved int
	TotalMatches       int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
