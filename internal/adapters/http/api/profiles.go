// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// ProfilesHandler handles profile ingest, profile reads and the ranked
// listing matches for one profile.
type ProfilesHandler struct {
	deps Dependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps Dependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandleProfiles handles GET /profiles and POST /profiles.
func (h *ProfilesHandler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profiles, err := h.deps.Profiles(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, profiles)
	case http.MethodPost:
		var p model.SearchProfile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := validateProfile(p); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		stored, err := h.deps.AddProfile(r.Context(), p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	default:
		http.NotFound(w, r)
	}
}

// HandleMatches handles GET /profiles/{id}/matches?min_score=N.
func (h *ProfilesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r.URL.Path, "/profiles/", "matches")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	minScore, err := minScoreParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	matches, err := h.deps.MatchesForProfile(r.Context(), id, minScore)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func validateProfile(p model.SearchProfile) error {
	if p.Operation != "" && p.Operation != model.OperationVenta && p.Operation != model.OperationAlquiler {
		return errors.New("operation must be Venta, Alquiler or empty")
	}
	if p.PriceMin != nil && p.PriceMax != nil && *p.PriceMin > *p.PriceMax {
		return errors.New("price_min must not exceed price_max")
	}
	if rooms := strings.TrimSpace(p.Rooms); rooms != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(rooms, "+"))
		if err != nil || n < 0 {
			return errors.New(`rooms must be "N" or "N+"`)
		}
	}
	return nil
}
