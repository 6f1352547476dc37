package services

import (
	"slices"

	"route-planner-service/internal/domain"
)

// SequenceStops orders selected stops into a visit sequence.
//
// Stops are partitioned by tier priority (VIP before Standard) and within
// each tier the supplied relative order is preserved. No distance-based
// reordering occurs: tier priority deliberately dominates geographic
// proximity. Empty input yields an empty sequence.
func SequenceStops(stops []domain.Stop) []domain.Stop {
	ordered := slices.Clone(stops)
	slices.SortStableFunc(ordered, func(a, b domain.Stop) int {
		return a.Tier.Priority() - b.Tier.Priority()
	})
	return ordered
}
