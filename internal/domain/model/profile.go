package model

// SearchProfile is a user's saved search criteria. Every field is optional:
// a zero value imposes no constraint on matching.
type SearchProfile struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// Categories restricts the property categories; empty means any.
	Categories []Category `json:"categories,omitempty"`

	// Operation restricts the transaction kind; empty means any.
	Operation Operation `json:"operation,omitempty"`

	// PriceMin and PriceMax bound the desired price; each side is
	// independently optional (nil = unbounded).
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`

	// Neighborhoods are free-text names, expanded through the hierarchy
	// table before any comparison.
	Neighborhoods []string `json:"neighborhoods,omitempty"`

	// Rooms is the desired room count: an exact count ("3") or a minimum
	// ("3+"). Empty means unset.
	Rooms string `json:"rooms,omitempty"`

	// MinTotalArea is the desired minimum total area in square meters.
	MinTotalArea *float64 `json:"min_total_area,omitempty"`

	Amenities []string `json:"amenities,omitempty"`

	// AgeLabels are matched by case-insensitive equality against the
	// listing's age label.
	AgeLabels []string `json:"age_labels,omitempty"`

	NeedsParking         bool `json:"needs_parking"`
	NeedsFinancing       bool `json:"needs_financing"`
	NeedsProfessionalUse bool `json:"needs_professional_use"`
	NeedsPets            bool `json:"needs_pets"`
}
