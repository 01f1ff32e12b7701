// Package repository defines the listing and profile stores and errors.
package repository

import (
	"context"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// ListingStore provides read/write access to listing records.
type ListingStore interface {
	// Put inserts or replaces a listing by id.
	Put(ctx context.Context, l model.Listing) error

	// Get returns the listing with the given id.
	// Returns ErrNotFound if the listing is unknown.
	Get(ctx context.Context, id string) (model.Listing, error)

	// List returns every listing in insertion order.
	List(ctx context.Context) ([]model.Listing, error)

	// ListPublic returns the listings that are published and available,
	// in insertion order. This is the population the aggregate match
	// summary runs over.
	ListPublic(ctx context.Context) ([]model.Listing, error)

	// Count returns the number of stored listings.
	Count(ctx context.Context) int
}

// ProfileStore provides read/write access to search-profile records.
type ProfileStore interface {
	// Put inserts or replaces a profile by id.
	Put(ctx context.Context, p model.SearchProfile) error

	// Get returns the profile with the given id.
	// Returns ErrNotFound if the profile is unknown.
	Get(ctx context.Context, id string) (model.SearchProfile, error)

	// List returns every profile in insertion order.
	List(ctx context.Context) ([]model.SearchProfile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}
