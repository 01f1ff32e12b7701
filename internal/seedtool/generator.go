package seedtool

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
	"github.com/fedegiraudo/inmatch/pkg/logger"
)

// Price ranges per operation, in USD for sales and ARS-pegged USD for rentals.
const (
	salePriceMin    = 60_000
	salePriceRange  = 400_000
	rentPriceMin    = 400
	rentPriceRange  = 2_600
	areaMin         = 28
	areaRange       = 220
	maxRooms        = 6
	profileBandPct  = 25
	rentalShare     = 0.35
	publishedShare  = 0.90
	availableShare  = 0.85
	parkingShare    = 0.40
	financingShare  = 0.30
	petsShare       = 0.55
	professionalPct = 0.10
)

var categories = []model.Category{
	model.CategoryDepartamento,
	model.CategoryDepartamento,
	model.CategoryDepartamento,
	model.CategoryCasa,
	model.CategoryCasa,
	model.CategoryPH,
	model.CategoryLocal,
	model.CategoryOficina,
	model.CategoryTerreno,
	model.CategoryGalpon,
	model.CategoryQuinta,
}

var neighborhoods = []string{
	"Palermo Soho",
	"Palermo Hollywood",
	"Palermo Chico",
	"Las Cañitas",
	"Belgrano",
	"Recoleta",
	"Caballito",
	"Villa Crespo",
	"San Telmo",
	"Núñez",
	"Colegiales",
	"Almagro",
}

var streets = []string{
	"Gorriti",
	"Honduras",
	"Cabildo",
	"Santa Fe",
	"Rivadavia",
	"Corrientes",
	"Defensa",
	"Libertador",
}

var amenityPool = []string{
	"Pileta",
	"Sum",
	"Gimnasio",
	"Parrilla",
	"Terraza",
	"Laundry",
	"Seguridad",
	"Cochera de cortesía",
}

var ageLabels = []string{"A estrenar", "5", "10", "20", "30", "50"}

var profileNames = []string{
	"Familia García",
	"Matrimonio joven",
	"Inversor",
	"Estudiante",
	"Pareja con mascotas",
	"Profesional independiente",
	"Jubilados",
	"Emprendedor",
}

// randomFloat returns a random float64 in [0, 1) using crypto/rand.
func randomFloat() float64 {
	const divisor = 1_000_000
	n, _ := rand.Int(rand.Reader, big.NewInt(divisor))
	return float64(n.Int64()) / float64(divisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func pick[T any](pool []T) T {
	return pool[randomInt(len(pool))]
}

func pickSubset(pool []string) []string {
	var out []string
	for _, item := range pool {
		if randomFloat() < 0.35 {
			out = append(out, item)
		}
	}
	return out
}

// GenerateListings creates a synthetic listing population with a realistic
// mix of categories, operations and visibility states.
func GenerateListings(ctx context.Context, config *Config, stats *Stats) []model.Listing {
	logger.Get().Info(ctx, "generating listings", logger.Int("count", config.NumListings))

	listings := make([]model.Listing, config.NumListings)
	for i := range listings {
		category := pick(categories)
		operation := model.OperationVenta
		price := float64(salePriceMin + randomInt(salePriceRange))
		if randomFloat() < rentalShare {
			operation = model.OperationAlquiler
			price = float64(rentPriceMin + randomInt(rentPriceRange))
		}

		total := float64(areaMin + randomInt(areaRange))
		covered := total * (0.6 + randomFloat()*0.4)
		rooms := 1 + randomInt(maxRooms)
		neighborhood := pick(neighborhoods)
		street := pick(streets)

		l := model.Listing{
			ID:               uuid.NewString(),
			Title:            fmt.Sprintf("%s %d ambientes en %s", category, rooms, neighborhood),
			Category:         category,
			Operation:        operation,
			Price:            price,
			Currency:         "USD",
			TotalArea:        &total,
			CoveredArea:      &covered,
			Rooms:            rooms,
			AcceptsFinancing: randomFloat() < financingShare,
			ProfessionalUse:  randomFloat() < professionalPct,
			PetsAllowed:      randomFloat() < petsShare,
			HasParking:       randomFloat() < parkingShare,
			Amenities:        pickSubset(amenityPool),
			Age:              pick(ageLabels),
			Address:          fmt.Sprintf("%s %d", street, 100+randomInt(9000)),
			Neighborhood:     neighborhood,
			Region:           "CABA",
			Published:        randomFloat() < publishedShare,
			Available:        randomFloat() < availableShare,
		}
		listings[i] = l
	}

	stats.ListingsGenerated = len(listings)
	return listings
}

// GenerateProfiles creates search profiles whose criteria overlap the
// generated listing population, so seeded data produces matches.
func GenerateProfiles(ctx context.Context, config *Config, stats *Stats) []model.SearchProfile {
	logger.Get().Info(ctx, "generating search profiles", logger.Int("count", config.NumProfiles))

	profiles := make([]model.SearchProfile, config.NumProfiles)
	for i := range profiles {
		operation := model.OperationVenta
		center := float64(salePriceMin + randomInt(salePriceRange))
		if randomFloat() < rentalShare {
			operation = model.OperationAlquiler
			center = float64(rentPriceMin + randomInt(rentPriceRange))
		}
		band := center * profileBandPct / 100
		priceMin := center - band
		priceMax := center + band

		rooms := fmt.Sprintf("%d", 1+randomInt(maxRooms-1))
		if randomFloat() < 0.5 {
			rooms += "+"
		}

		minArea := float64(areaMin + randomInt(areaRange/2))

		p := model.SearchProfile{
			ID:            uuid.NewString(),
			Name:          fmt.Sprintf("%s #%d", pick(profileNames), i+1),
			Categories:    []model.Category{pick(categories)},
			Operation:     operation,
			PriceMin:      &priceMin,
			PriceMax:      &priceMax,
			Neighborhoods: []string{pick(append([]string{"Palermo"}, neighborhoods...))},
			Rooms:         rooms,
			MinTotalArea:  &minArea,
			Amenities:     pickSubset(amenityPool),
			AgeLabels:     pickSubset(ageLabels),
			NeedsParking:  randomFloat() < parkingShare,
			NeedsPets:     operation == model.OperationAlquiler && randomFloat() < 0.3,
		}
		profiles[i] = p
	}

	stats.ProfilesGenerated = len(profiles)
	return profiles
}
