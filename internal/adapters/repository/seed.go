package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// LoadListingsFromFile reads a JSON array of listings from path.
func LoadListingsFromFile(path string) ([]model.Listing, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}
	var listings []model.Listing
	if err := json.Unmarshal(b, &listings); err != nil {
		return nil, fmt.Errorf("unmarshal listings: %w", err)
	}
	return listings, nil
}

// LoadProfilesFromFile reads a JSON array of search profiles from path.
func LoadProfilesFromFile(path string) ([]model.SearchProfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	var profiles []model.SearchProfile
	if err := json.Unmarshal(b, &profiles); err != nil {
		return nil, fmt.Errorf("unmarshal profiles: %w", err)
	}
	return profiles, nil
}
