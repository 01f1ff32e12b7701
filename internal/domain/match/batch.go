package match

import (
	"sort"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
	"github.com/fedegiraudo/inmatch/internal/domain/types"
)

// Severity bucket boundaries for the aggregate summary.
const (
	bucketHigh   = 90
	bucketMedium = 80
	bucketLow    = 70
)

// RankListings filters the candidates by eligibility, scores the survivors,
// keeps those at or above minScore and sorts them by score descending. The
// sort is stable, so equal scores keep their input order.
func (m *Matcher) RankListings(listings []model.Listing, p model.SearchProfile, minScore int) []types.ListingMatch {
	var out []types.ListingMatch
	for _, l := range listings {
		if !Eligible(l, p) {
			continue
		}
		r := m.Score(l, p)
		if r.Score < minScore {
			continue
		}
		out = append(out, types.ListingMatch{
			Listing:  l,
			Score:    r.Score,
			Criteria: r.Criteria,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// RankProfiles scores every profile against the fixed listing, keeps those
// at or above minScore and sorts descending (stable). Unlike RankListings
// there is no eligibility gate on this path: every profile is scored.
func (m *Matcher) RankProfiles(profiles []model.SearchProfile, l model.Listing, minScore int) []types.ProfileMatch {
	var out []types.ProfileMatch
	for _, p := range profiles {
		r := m.Score(l, p)
		if r.Score < minScore {
			continue
		}
		out = append(out, types.ProfileMatch{
			Profile:  p,
			Score:    r.Score,
			Criteria: r.Criteria,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Summarize ranks the listings for one profile and partitions the matches
// into the high (>=90), medium ([80,90)) and low ([70,80)) buckets. Matches
// between minScore and 70 stay in the match list and count but land in no
// bucket, so the bucket sum can fall short of TotalMatches when minScore is
// below 70. Callers supply only publicly visible, available listings.
func (m *Matcher) Summarize(p model.SearchProfile, listings []model.Listing, minScore int) types.ProfileSummary {
	matches := m.RankListings(listings, p, minScore)
	s := types.ProfileSummary{
		Profile:      p,
		Matches:      matches,
		TotalMatches: len(matches),
	}
	for _, mt := range matches {
		switch {
		case mt.Score >= bucketHigh:
			s.High++
		case mt.Score >= bucketMedium:
			s.Medium++
		case mt.Score >= bucketLow:
			s.Low++
		}
	}
	return s
}
