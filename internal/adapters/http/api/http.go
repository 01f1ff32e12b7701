// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	repository "github.com/fedegiraudo/inmatch/internal/adapters/repository"
	"github.com/fedegiraudo/inmatch/internal/domain/model"
	"github.com/fedegiraudo/inmatch/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AddListing(ctx context.Context, l model.Listing) (model.Listing, error)
	AddProfile(ctx context.Context, p model.SearchProfile) (model.SearchProfile, error)
	Listings(ctx context.Context) ([]model.Listing, error)
	Profiles(ctx context.Context) ([]model.SearchProfile, error)

	// MatchesForProfile ranks eligible listings for a profile;
	// CandidatesForListing ranks every profile for a listing;
	// MatchSummary aggregates per-profile matches over the visible
	// listing population. A negative minScore selects the configured
	// default threshold.
	MatchesForProfile(ctx context.Context, profileID string, minScore int) ([]types.ListingMatch, error)
	CandidatesForListing(ctx context.Context, listingID string, minScore int) ([]types.ProfileMatch, error)
	MatchSummary(ctx context.Context, minScore int) ([]types.ProfileSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	listingsHandler *ListingsHandler
	profilesHandler *ProfilesHandler
	summaryHandler  *SummaryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		listingsHandler: NewListingsHandler(deps),
		profilesHandler: NewProfilesHandler(deps),
		summaryHandler:  NewSummaryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/listings", MetricsMiddleware(s.listingsHandler.HandleListings, "listings"))
	mux.HandleFunc("/listings/", MetricsMiddleware(s.listingsHandler.HandleCandidates, "candidates"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandleProfiles, "profiles"))
	mux.HandleFunc("/profiles/", MetricsMiddleware(s.profilesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/matches/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// minScoreParam parses the optional min_score query parameter. Absent means
// "use the configured default", signalled downstream as -1.
func minScoreParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("min_score")
	if raw == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 100 {
		return 0, errors.New("min_score must be an integer in [0,100]")
	}
	return n, nil
}

// isNotFound translates repository lookup failures to 404s.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
