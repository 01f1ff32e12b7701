// Package model contains domain models passed between layers.
package model

import "strings"

// Category is the closed set of property categories handled by the CRM.
type Category string

// Known property categories.
const (
	CategoryCasa         Category = "Casa"
	CategoryDepartamento Category = "Departamento"
	CategoryPH           Category = "PH"
	CategoryLocal        Category = "Local"
	CategoryOficina      Category = "Oficina"
	CategoryTerreno      Category = "Terreno"
	CategoryGalpon       Category = "Galpon"
	CategoryQuinta       Category = "Quinta"
)

// Operation is the transaction kind of a listing.
type Operation string

// Known operations.
const (
	OperationVenta    Operation = "Venta"
	OperationAlquiler Operation = "Alquiler"
)

// Listing represents a property record offered for sale or rental.
// It is a read-only snapshot for the duration of a scoring call.
type Listing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Category  Category  `json:"category"`
	Operation Operation `json:"operation"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency,omitempty"`

	// TotalArea and CoveredArea are in square meters; nil when unknown.
	TotalArea   *float64 `json:"total_area,omitempty"`
	CoveredArea *float64 `json:"covered_area,omitempty"`

	// Rooms is the room/environment ("ambientes") count.
	Rooms int `json:"rooms"`

	AcceptsFinancing bool `json:"accepts_financing"`
	ProfessionalUse  bool `json:"professional_use"`
	PetsAllowed      bool `json:"pets_allowed"`
	HasParking       bool `json:"has_parking"`

	Amenities []string `json:"amenities,omitempty"`

	// Age is a free-form age label: years as a string ("5") or a bracket
	// name ("A estrenar").
	Age string `json:"age,omitempty"`

	Address      string `json:"address,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Region       string `json:"region,omitempty"`

	Published bool `json:"published"`
	Available bool `json:"available"`
}

// LocationText assembles the free-text location descriptor used for
// neighborhood containment checks.
func (l Listing) LocationText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Address, l.Neighborhood, l.Region} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
