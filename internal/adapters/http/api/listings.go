// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// ListingsHandler handles listing ingest, listing reads and the
// candidate-profile ranking for one listing.
type ListingsHandler struct {
	deps Dependencies
}

// NewListingsHandler creates a new listings handler.
func NewListingsHandler(deps Dependencies) *ListingsHandler {
	return &ListingsHandler{deps: deps}
}

// HandleListings handles GET /listings and POST /listings.
func (h *ListingsHandler) HandleListings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listings, err := h.deps.Listings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, listings)
	case http.MethodPost:
		var l model.Listing
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := validateListing(l); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		stored, err := h.deps.AddListing(r.Context(), l)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	default:
		http.NotFound(w, r)
	}
}

// HandleCandidates handles GET /listings/{id}/candidates?min_score=N.
func (h *ListingsHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r.URL.Path, "/listings/", "candidates")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	minScore, err := minScoreParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	matches, err := h.deps.CandidatesForListing(r.Context(), id, minScore)
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

func validateListing(l model.Listing) error {
	switch {
	case l.Category == "":
		return errors.New("missing category")
	case l.Operation != model.OperationVenta && l.Operation != model.OperationAlquiler:
		return errors.New("operation must be Venta or Alquiler")
	case l.Price < 0:
		return errors.New("price must be non-negative")
	case l.Rooms < 0:
		return errors.New("rooms must be non-negative")
	}
	return nil
}

// pathID extracts the id from paths shaped like {prefix}{id}/{suffix}.
func pathID(path, prefix, suffix string) (string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	id, action, found := strings.Cut(rest, "/")
	if !found || id == "" || action != suffix {
		return "", false
	}
	return id, true
}
