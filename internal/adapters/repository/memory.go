package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// MemoryListingStore implements ListingStore with an RWMutex-protected map.
// Insertion order is tracked so List output is deterministic, which keeps
// stable-sorted ranking output reproducible across runs.
type MemoryListingStore struct {
	mu    sync.RWMutex
	byID  map[string]model.Listing
	order []string
}

// NewMemoryListingStore creates an empty in-memory listing store.
func NewMemoryListingStore() *MemoryListingStore {
	return &MemoryListingStore{
		byID: make(map[string]model.Listing),
	}
}

// Put inserts or replaces a listing by id.
func (s *MemoryListingStore) Put(ctx context.Context, l model.Listing) error {
	if l.ID == "" {
		return fmt.Errorf("put listing: %w", ErrEmptyID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[l.ID]; !exists {
		s.order = append(s.order, l.ID)
	}
	s.byID[l.ID] = l
	return nil
}

// Get returns the listing with the given id, or ErrNotFound.
func (s *MemoryListingStore) Get(ctx context.Context, id string) (model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %q: %w", id, ErrNotFound)
	}
	return l, nil
}

// List returns every listing in insertion order.
func (s *MemoryListingStore) List(ctx context.Context) ([]model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Listing, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// ListPublic returns the published and available listings in insertion order.
func (s *MemoryListingStore) ListPublic(ctx context.Context) ([]model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Listing
	for _, id := range s.order {
		if l := s.byID[id]; l.Published && l.Available {
			out = append(out, l)
		}
	}
	return out, nil
}

// Count returns the number of stored listings.
func (s *MemoryListingStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// MemoryProfileStore implements ProfileStore with an RWMutex-protected map.
type MemoryProfileStore struct {
	mu    sync.RWMutex
	byID  map[string]model.SearchProfile
	order []string
}

// NewMemoryProfileStore creates an empty in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		byID: make(map[string]model.SearchProfile),
	}
}

// Put inserts or replaces a profile by id.
func (s *MemoryProfileStore) Put(ctx context.Context, p model.SearchProfile) error {
	if p.ID == "" {
		return fmt.Errorf("put profile: %w", ErrEmptyID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.byID[p.ID] = p
	return nil
}

// Get returns the profile with the given id, or ErrNotFound.
func (s *MemoryProfileStore) Get(ctx context.Context, id string) (model.SearchProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return model.SearchProfile{}, fmt.Errorf("get profile %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// List returns every profile in insertion order.
func (s *MemoryProfileStore) List(ctx context.Context) ([]model.SearchProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SearchProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Count returns the number of stored profiles.
func (s *MemoryProfileStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
