package match

import "github.com/fedegiraudo/inmatch/internal/domain/model"

// Eligible reports whether a listing satisfies every hard must-have
// condition of the profile. A listing that fails here is never scored and
// never surfaces as a match, whatever its would-be score. Unset preference
// fields impose no constraint.
func Eligible(l model.Listing, p model.SearchProfile) bool {
	if len(p.Categories) > 0 && !hasCategory(p.Categories, l.Category) {
		return false
	}
	if p.Operation != "" && p.Operation != l.Operation {
		return false
	}
	if p.NeedsFinancing && !l.AcceptsFinancing {
		return false
	}
	if p.NeedsProfessionalUse && !l.ProfessionalUse {
		return false
	}
	// Pets are a hard condition for rental searches only; a sale search
	// never excludes a listing over pets.
	if p.Operation == model.OperationAlquiler && p.NeedsPets && !l.PetsAllowed {
		return false
	}
	return true
}

func hasCategory(cats []model.Category, c model.Category) bool {
	for _, cat := range cats {
		if cat == c {
			return true
		}
	}
	return false
}
