package match

import (
	"math"
	"strconv"
	"strings"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// Criterion weights. Together they make up the full 100-point pool.
const (
	priceWeight     = 30.0
	locationWeight  = 25.0
	roomsWeight     = 20.0
	areaWeight      = 15.0
	parkingWeight   = 5.0
	amenitiesWeight = 3.0
	ageWeight       = 2.0
)

// Criterion labels surfaced to the presentation layer. They are opaque to
// callers and must not be re-derived from the score.
const (
	LabelPriceInRange        = "Precio dentro del rango"
	LabelPriceSlightlyOver   = "Precio ligeramente por encima"
	LabelPriceModeratelyOver = "Precio moderadamente por encima"
	LabelPriceSlightlyUnder  = "Precio ligeramente por debajo"
	LabelLocation            = "Ubicación"
	LabelRooms               = "Ambientes"
	LabelRoomsClose          = "Ambientes cercanos"
	LabelTotalArea           = "M2 totales"
	LabelAreaSlightlyUnder   = "M2 ligeramente menor"
	LabelParking             = "Cochera"
	LabelAmenities           = "Amenities"
	LabelAge                 = "Antigüedad"
)

// Result is the outcome of scoring one listing against one profile.
type Result struct {
	// Score is the compatibility percentage, 0..100.
	Score int `json:"score"`
	// Criteria lists the labels of criteria that contributed points, in
	// evaluation order (price, location, rooms, area, parking,
	// amenities, age).
	Criteria []string `json:"criteria"`
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithNeighborhoodGroups replaces the neighborhood hierarchy table. The map
// is copied so later caller mutations cannot leak into the matcher.
func WithNeighborhoodGroups(groups map[string][]string) Option {
	return func(m *Matcher) {
		if groups == nil {
			return
		}
		copied := make(map[string][]string, len(groups))
		for name, members := range groups {
			copied[name] = append([]string(nil), members...)
		}
		m.groups = copied
	}
}

// Matcher scores listings against search profiles. It is stateless apart
// from the immutable hierarchy table and safe for concurrent use.
type Matcher struct {
	groups map[string][]string
}

// New creates a Matcher with the default neighborhood hierarchy.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		groups: DefaultNeighborhoodGroups(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score computes the 0..100 compatibility between a listing and a profile.
// It does not consult Eligible; callers filter first where gating applies.
// Partial credits accumulate as floats and only the final sum is rounded
// (half away from zero), so band fractions like 22.5 survive until the end.
func (m *Matcher) Score(l model.Listing, p model.SearchProfile) Result {
	var total float64
	var criteria []string

	award := func(points float64, label string) {
		total += points
		if label != "" && points > 0 {
			criteria = append(criteria, label)
		}
	}

	award(priceScore(l, p))
	award(m.locationScore(l, p))
	award(roomsScore(l, p))
	award(areaScore(l, p))
	award(parkingScore(l, p))
	award(amenitiesScore(l, p))
	award(ageScore(l, p))

	return Result{
		Score:    int(math.Round(total)),
		Criteria: criteria,
	}
}

// priceScore awards full credit inside [PriceMin, PriceMax] and graduated
// partial credit for near misses: a steep four-step decay above the ceiling
// and a gentler three-step decay below the floor.
func priceScore(l model.Listing, p model.SearchProfile) (float64, string) {
	if p.PriceMin == nil && p.PriceMax == nil {
		return 0, ""
	}

	floor := 0.0
	if p.PriceMin != nil {
		floor = *p.PriceMin
	}

	if p.PriceMax != nil && l.Price > *p.PriceMax {
		over := (l.Price - *p.PriceMax) / *p.PriceMax * 100
		switch {
		case over <= 5:
			return priceWeight * 0.75, LabelPriceSlightlyOver
		case over <= 10:
			return priceWeight * 0.50, LabelPriceModeratelyOver
		case over <= 20:
			return priceWeight * 0.25, ""
		case over <= 30:
			return priceWeight * 0.10, ""
		default:
			return 0, ""
		}
	}

	if l.Price < floor {
		under := (floor - l.Price) / floor * 100
		switch {
		case under <= 10:
			return priceWeight * 0.85, LabelPriceSlightlyUnder
		case under <= 20:
			return priceWeight * 0.70, ""
		default:
			return priceWeight * 0.50, ""
		}
	}

	return priceWeight, LabelPriceInRange
}

// locationScore tests case-insensitive containment of any requested
// neighborhood (after hierarchy expansion) inside the listing's location
// text. All or nothing.
func (m *Matcher) locationScore(l model.Listing, p model.SearchProfile) (float64, string) {
	wanted := expandNeighborhoods(m.groups, p.Neighborhoods)
	if len(wanted) == 0 {
		return 0, ""
	}
	location := strings.ToLower(l.LocationText())
	for _, name := range wanted {
		if strings.Contains(location, strings.ToLower(name)) {
			return locationWeight, LabelLocation
		}
	}
	return 0, ""
}

// roomsScore handles both preference forms: "N+" meaning N or more, and a
// bare integer meaning an exact count with near-miss credit one and two
// rooms away.
func roomsScore(l model.Listing, p model.SearchProfile) (float64, string) {
	pref := strings.TrimSpace(p.Rooms)
	if pref == "" {
		return 0, ""
	}

	if strings.HasSuffix(pref, "+") {
		n, err := strconv.Atoi(strings.TrimSuffix(pref, "+"))
		if err != nil {
			return 0, ""
		}
		switch {
		case l.Rooms >= n:
			return roomsWeight, LabelRooms
		case l.Rooms == n-1:
			return roomsWeight * 0.60, ""
		case l.Rooms == n-2:
			return roomsWeight * 0.25, ""
		default:
			return 0, ""
		}
	}

	n, err := strconv.Atoi(pref)
	if err != nil {
		return 0, ""
	}
	diff := l.Rooms - n
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return roomsWeight, LabelRooms
	case 1:
		return roomsWeight * 0.60, LabelRoomsClose
	case 2:
		return roomsWeight * 0.25, ""
	default:
		return 0, ""
	}
}

// areaScore needs both the requested minimum and the listing's total area;
// otherwise the criterion is skipped. Deficits below the minimum earn
// stepped partial credit down to 20% under.
func areaScore(l model.Listing, p model.SearchProfile) (float64, string) {
	if p.MinTotalArea == nil || l.TotalArea == nil {
		return 0, ""
	}
	area, wanted := *l.TotalArea, *p.MinTotalArea
	if area >= wanted {
		return areaWeight, LabelTotalArea
	}
	deficit := (wanted - area) / wanted * 100
	switch {
	case deficit <= 5:
		return areaWeight * 0.80, LabelAreaSlightlyUnder
	case deficit <= 10:
		return areaWeight * 0.60, ""
	case deficit <= 20:
		return areaWeight * 0.30, ""
	default:
		return 0, ""
	}
}

// parkingScore has no must-have gate of its own: the points exist only when
// the profile asks for parking and the listing provides it.
func parkingScore(l model.Listing, p model.SearchProfile) (float64, string) {
	if p.NeedsParking && l.HasParking {
		return parkingWeight, LabelParking
	}
	return 0, ""
}

// amenitiesScore awards the requested-amenity satisfaction fraction of the
// weight; fractional points are kept as-is until the final rounding.
func amenitiesScore(l model.Listing, p model.SearchProfile) (float64, string) {
	if len(p.Amenities) == 0 || len(l.Amenities) == 0 {
		return 0, ""
	}
	offered := make(map[string]struct{}, len(l.Amenities))
	for _, a := range l.Amenities {
		offered[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	var wanted, satisfied int
	for _, a := range p.Amenities {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		wanted++
		if _, ok := offered[a]; ok {
			satisfied++
		}
	}
	if wanted == 0 || satisfied == 0 {
		return 0, ""
	}
	return amenitiesWeight * float64(satisfied) / float64(wanted), LabelAmenities
}

// ageScore matches the listing's single age label against any requested
// label, case-insensitively. All or nothing.
func ageScore(l model.Listing, p model.SearchProfile) (float64, string) {
	if len(p.AgeLabels) == 0 || strings.TrimSpace(l.Age) == "" {
		return 0, ""
	}
	for _, label := range p.AgeLabels {
		if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(l.Age)) {
			return ageWeight, LabelAge
		}
	}
	return 0, ""
}
