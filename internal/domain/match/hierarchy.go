// Package match implements the listing/profile compatibility engine:
// a hard eligibility filter, a weighted criterion scorer, and the batch
// ranking and aggregation helpers built on top of them.
package match

import "strings"

// DefaultNeighborhoodGroups returns the built-in neighborhood hierarchy
// table. A key names a parent area; its value lists the constituent
// sub-areas substituted in before location matching.
func DefaultNeighborhoodGroups() map[string][]string {
	return map[string][]string{
		"Palermo": {
			"Palermo Soho",
			"Palermo Hollywood",
			"Palermo Chico",
			"Palermo Viejo",
			"Palermo Nuevo",
			"Palermo Botánico",
			"Las Cañitas",
			"Villa Freud",
		},
	}
}

// expandNeighborhoods trims the requested names and substitutes every name
// found in the hierarchy table with its member list. Names not in the table
// pass through unchanged; group names are kept alongside their members so a
// bare parent mention in a listing still matches.
func expandNeighborhoods(groups map[string][]string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
		if members, ok := groups[name]; ok {
			out = append(out, members...)
		}
	}
	return out
}
