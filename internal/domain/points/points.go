// Package points holds the season points award rules.
package points

// Only the top five placements in a class earn points.
const MaxAwardedPlacement = 5

// baseAwards is the standard award table for a 1x event, keyed by placement.
var baseAwards = map[int]int{
	1: 5,
	2: 4,
	3: 3,
	4: 2,
	5: 1,
}

// fourXAwards is the fixed override for 4x finals events. It is not a linear
// scaling of the base table; the gaps between placements shrink to one point.
var fourXAwards = map[int]int{
	1: 20,
	2: 19,
	3: 18,
	4: 17,
	5: 16,
}

// Award returns the points earned for a placement at an event with the given
// points multiplier. Placements outside 1..5 earn nothing. Competitors
// without an active membership never earn points, regardless of placement.
func Award(placement int, multiplier float64, activeMember bool) int {
	if !activeMember {
		return 0
	}
	if placement < 1 || placement > MaxAwardedPlacement {
		return 0
	}

	if multiplier == 4 {
		return fourXAwards[placement]
	}

	base := baseAwards[placement]
	if multiplier == 1 {
		return base
	}

	// Truncate toward zero for fractional multipliers.
	return int(float64(base) * multiplier)
}
