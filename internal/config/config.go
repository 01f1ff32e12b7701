// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers file and environment sources over the defaults.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"context"

	"github.com/fedegiraudo/inmatch/internal/domain/match"
)

// Store backend names.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the repository backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath is the database file used when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// SeedListings and SeedProfiles optionally point at JSON files loaded
	// into the stores at startup.
	SeedListings string `koanf:"seed_listings"`
	SeedProfiles string `koanf:"seed_profiles"`

	// DefaultMinScore is the score threshold applied to the ranking
	// endpoints when the request does not supply one.
	DefaultMinScore int `koanf:"default_min_score"`

	// SummaryMinScore is the threshold used by the population-wide match
	// summary.
	SummaryMinScore int `koanf:"summary_min_score"`

	// MaxResults caps the number of entries a ranking endpoint returns.
	MaxResults int `koanf:"max_results"`

	// NeighborhoodGroups is the neighborhood hierarchy table: a parent
	// area name mapped to its constituent sub-areas.
	NeighborhoodGroups map[string][]string `koanf:"neighborhood_groups"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		Store:              StoreMemory,
		SQLitePath:         "inmatch.db",
		DefaultMinScore:    40,
		SummaryMinScore:    70,
		MaxResults:         100,
		NeighborhoodGroups: match.DefaultNeighborhoodGroups(),
	}
}
