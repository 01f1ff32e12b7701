// Package types contains the annotated match shapes shared across the application.
package types

import "github.com/fedegiraudo/inmatch/internal/domain/model"

// ListingMatch is a listing annotated with its compatibility score for a
// given search profile.
type ListingMatch struct {
	Listing  model.Listing `json:"listing"`
	Score    int           `json:"score"`
	Criteria []string      `json:"criteria"`
}

// ProfileMatch is a search profile annotated with its compatibility score
// for a given listing.
type ProfileMatch struct {
	Profile  model.SearchProfile `json:"profile"`
	Score    int                 `json:"score"`
	Criteria []string            `json:"criteria"`
}

// ProfileSummary aggregates one profile's matches across the listing
// population, partitioned into severity buckets by score.
type ProfileSummary struct {
	Profile      model.SearchProfile `json:"profile"`
	Matches      []ListingMatch      `json:"matches"`
	TotalMatches int                 `json:"total_matches"`

	// Bucket counts: High is score >= 90, Medium is [80,90), Low is
	// [70,80). Matches below 70 are counted in TotalMatches but belong
	// to no bucket, so the bucket sum can be smaller than the total.
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}
