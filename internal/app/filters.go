package app

import "tablescout/internal/domain"

// Filters are the post-fetch predicates applied by the surface layer.
// Filtering is never part of the acquisition pipeline: filtered views are
// derived from an already-aggregated result. An empty slice means "no
// restriction" for that dimension.
type Filters struct {
	Prices        []string // rendered tiers: "$", "$$", ...
	Cuisines      []string
	Neighborhoods []string
}

func (f Filters) empty() bool {
	return len(f.Prices) == 0 && len(f.Cuisines) == 0 && len(f.Neighborhoods) == 0
}

// Apply returns the records matching every non-empty filter dimension.
func (f Filters) Apply(in []domain.ReservationRecord) []domain.ReservationRecord {
	if f.empty() {
		return in
	}
	out := make([]domain.ReservationRecord, 0, len(in))
	for _, r := range in {
		if len(f.Prices) > 0 && !contains(f.Prices, r.PriceLabel()) {
			continue
		}
		if len(f.Cuisines) > 0 && !contains(f.Cuisines, r.Category) {
			continue
		}
		if len(f.Neighborhoods) > 0 && !contains(f.Neighborhoods, r.Neighborhood) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
