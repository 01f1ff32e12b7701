package seedtool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fedegiraudo/inmatch/pkg/logger"
)

const directoryPermission = 0750

// Run executes a complete seed run: generate, save, and when a base URL is
// configured, submit to the running service and pull the match summary.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("listings", config.NumListings),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	listings := GenerateListings(ctx, config, stats)
	profiles := GenerateProfiles(ctx, config, stats)

	if err := saveJSON(ctx, config.ListingsFile, "seed_listings", listings); err != nil {
		return fmt.Errorf("save listings: %w", err)
	}
	if err := saveJSON(ctx, config.ProfilesFile, "seed_profiles", profiles); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	if config.BaseURL != "" {
		if err := checkServiceHealth(ctx, config); err != nil {
			return fmt.Errorf("service health check failed: %w", err)
		}
		if err := submitListings(ctx, config, listings, stats); err != nil {
			return fmt.Errorf("listing submission failed: %w", err)
		}
		if err := submitProfiles(ctx, config, profiles, stats); err != nil {
			return fmt.Errorf("profile submission failed: %w", err)
		}
		if err := fetchSummary(ctx, config, stats); err != nil {
			return fmt.Errorf("summary retrieval failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed")
	return nil
}

// saveJSON writes the items as an indented JSON array. An empty filename
// selects a timestamped default based on prefix.
func saveJSON(ctx context.Context, filename, prefix string, items any) error {
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = prefix + "_" + timestamp + ".json"
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Get().Info(ctx, "seed data saved", logger.String("filename", filename))
	return nil
}

func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("listingsGenerated", stats.ListingsGenerated),
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("listingsSubmitted", stats.ListingsSubmitted),
		logger.Int("profilesSubmitted", stats.ProfilesSubmitted),
		logger.Int("submitFailed", stats.SubmitFailed),
		logger.Int("summariesRetrieved", stats.SummariesRetrieved),
		logger.Int("totalMatches", stats.TotalMatches),
		logger.String("duration", stats.Duration.String()))
}
