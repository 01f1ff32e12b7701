// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	repository "github.com/fedegiraudo/inmatch/internal/adapters/repository"
	"github.com/fedegiraudo/inmatch/internal/domain/match"
	"github.com/fedegiraudo/inmatch/internal/domain/model"
	"github.com/fedegiraudo/inmatch/internal/domain/types"
	"github.com/fedegiraudo/inmatch/pkg/logger"
	"github.com/fedegiraudo/inmatch/pkg/metrics"
)

// Store backend names accepted by WithStoreBackend.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Service implements the matching API on top of the repositories and the
// match engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	listings repository.ListingStore
	profiles repository.ProfileStore
	matcher  *match.Matcher
	sqlite   *repository.SQLite

	// Configuration
	storeBackend    string
	sqlitePath      string
	seedListings    string
	seedProfiles    string
	defaultMinScore int
	summaryMinScore int
	maxResults      int
	groups          map[string][]string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStoreBackend selects the repository backend and, for sqlite, the
// database path.
func WithStoreBackend(backend, sqlitePath string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storeBackend = backend
		}
		if sqlitePath != "" {
			s.sqlitePath = sqlitePath
		}
	}
}

// WithSeedFiles points at JSON files loaded into the stores at Start.
func WithSeedFiles(listings, profiles string) Option {
	return func(s *Service) {
		s.seedListings = listings
		s.seedProfiles = profiles
	}
}

// WithMinScores sets the default ranking threshold and the population
// summary threshold.
func WithMinScores(defaultMin, summaryMin int) Option {
	return func(s *Service) {
		if defaultMin >= 0 && defaultMin <= 100 {
			s.defaultMinScore = defaultMin
		}
		if summaryMin >= 0 && summaryMin <= 100 {
			s.summaryMinScore = summaryMin
		}
	}
}

// WithMaxResults caps the number of entries a ranking call returns.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithNeighborhoodGroups sets the neighborhood hierarchy table used by the
// match engine.
func WithNeighborhoodGroups(groups map[string][]string) Option {
	return func(s *Service) {
		if groups != nil {
			s.groups = groups
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeBackend:    StoreMemory,
		sqlitePath:      "inmatch.db",
		defaultMinScore: 40,
		summaryMinScore: 70,
		maxResults:      100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the stores, loads seed data and builds the matcher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	switch s.storeBackend {
	case StoreSQLite:
		db, err := repository.OpenSQLite(s.sqlitePath)
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.sqlite = db
		s.listings = db.Listings()
		s.profiles = db.Profiles()
		s.logger.Info(ctx, "using sqlite stores", logger.String("path", s.sqlitePath))
	default:
		s.listings = repository.NewMemoryListingStore()
		s.profiles = repository.NewMemoryProfileStore()
		s.logger.Info(ctx, "using in-memory stores")
	}

	matcherOpts := []match.Option{}
	if s.groups != nil {
		matcherOpts = append(matcherOpts, match.WithNeighborhoodGroups(s.groups))
	}
	s.matcher = match.New(matcherOpts...)

	if err := s.loadSeeds(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.String("store", s.storeBackend),
		logger.Int("listings", s.listings.Count(ctx)),
		logger.Int("profiles", s.profiles.Count(ctx)),
		logger.Int("defaultMinScore", s.defaultMinScore),
		logger.Int("summaryMinScore", s.summaryMinScore),
	)

	metrics.UpdateListingsTotal(s.listings.Count(ctx))
	metrics.UpdateProfilesTotal(s.profiles.Count(ctx))

	return nil
}

// Stop releases store resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.sqlite != nil {
		if err := s.sqlite.Close(); err != nil {
			s.logger.Error(context.Background(), "closing sqlite store failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

func (s *Service) loadSeeds(ctx context.Context) error {
	if s.seedListings != "" {
		listings, err := repository.LoadListingsFromFile(s.seedListings)
		if err != nil {
			return err
		}
		for _, l := range listings {
			if l.ID == "" {
				l.ID = uuid.NewString()
			}
			if err := s.listings.Put(ctx, l); err != nil {
				return err
			}
		}
		s.logger.Info(ctx, "seeded listings", logger.Int("count", len(listings)))
	}
	if s.seedProfiles != "" {
		profiles, err := repository.LoadProfilesFromFile(s.seedProfiles)
		if err != nil {
			return err
		}
		for _, p := range profiles {
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			if err := s.profiles.Put(ctx, p); err != nil {
				return err
			}
		}
		s.logger.Info(ctx, "seeded profiles", logger.Int("count", len(profiles)))
	}
	return nil
}

// AddListing stores a listing, assigning an id when the caller omits one.
func (s *Service) AddListing(ctx context.Context, l model.Listing) (model.Listing, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.listings.Put(ctx, l); err != nil {
		metrics.RecordStoreError()
		return model.Listing{}, err
	}
	metrics.UpdateListingsTotal(s.listings.Count(ctx))
	return l, nil
}

// AddProfile stores a search profile, assigning an id when the caller omits one.
func (s *Service) AddProfile(ctx context.Context, p model.SearchProfile) (model.SearchProfile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.profiles.Put(ctx, p); err != nil {
		metrics.RecordStoreError()
		return model.SearchProfile{}, err
	}
	metrics.UpdateProfilesTotal(s.profiles.Count(ctx))
	return p, nil
}

// Listings returns every stored listing.
func (s *Service) Listings(ctx context.Context) ([]model.Listing, error) {
	return s.listings.List(ctx)
}

// Profiles returns every stored search profile.
func (s *Service) Profiles(ctx context.Context) ([]model.SearchProfile, error) {
	return s.profiles.List(ctx)
}

// MatchesForProfile ranks the stored listings for the given profile.
// A negative minScore selects the configured default threshold.
func (s *Service) MatchesForProfile(ctx context.Context, profileID string, minScore int) ([]types.ListingMatch, error) {
	if minScore < 0 {
		minScore = s.defaultMinScore
	}
	p, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.listings.List(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}

	start := time.Now()
	out := s.matcher.RankListings(candidates, p, minScore)
	metrics.RecordScoringDuration(float64(time.Since(start).Milliseconds()))
	for _, l := range candidates {
		if match.Eligible(l, p) {
			metrics.RecordScore()
		} else {
			metrics.RecordEligibilityRejection()
		}
	}

	if len(out) > s.maxResults {
		out = out[:s.maxResults]
	}
	return out, nil
}

// CandidatesForListing ranks the stored profiles for the given listing.
// Every profile is scored; there is no eligibility gate on this path.
func (s *Service) CandidatesForListing(ctx context.Context, listingID string, minScore int) ([]types.ProfileMatch, error) {
	if minScore < 0 {
		minScore = s.defaultMinScore
	}
	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}

	start := time.Now()
	out := s.matcher.RankProfiles(profiles, l, minScore)
	metrics.RecordScoringDuration(float64(time.Since(start).Milliseconds()))
	for range profiles {
		metrics.RecordScore()
	}

	if len(out) > s.maxResults {
		out = out[:s.maxResults]
	}
	return out, nil
}

// MatchSummary builds the per-profile aggregate over the published and
// available listings. Profiles are processed concurrently; result order
// follows the profile store's order. A negative minScore selects the
// configured summary threshold.
func (s *Service) MatchSummary(ctx context.Context, minScore int) ([]types.ProfileSummary, error) {
	if minScore < 0 {
		minScore = s.summaryMinScore
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	public, err := s.listings.ListPublic(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}

	start := time.Now()
	out := make([]types.ProfileSummary, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.matcher.Summarize(p, public, minScore)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("match summary: %w", err)
	}
	metrics.RecordSummaryRun(float64(time.Since(start).Milliseconds()))

	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"store":           s.storeBackend,
		"defaultMinScore": s.defaultMinScore,
		"summaryMinScore": s.summaryMinScore,
		"maxResults":      s.maxResults,
	}

	if s.started {
		listings := s.listings.Count(ctx)
		profiles := s.profiles.Count(ctx)
		stats["listings"] = listings
		stats["profiles"] = profiles
		metrics.UpdateListingsTotal(listings)
		metrics.UpdateProfilesTotal(profiles)
	}

	return stats
}
