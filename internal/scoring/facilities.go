package scoring

// SeatingScore rates capacity against the requested head count. A room
// within 80–150% of the requirement is ideal; undersized rooms fall off
// linearly and oversized rooms take a mild efficiency penalty.
func SeatingScore(capacity, required int) float64 {
	if required <= 0 {
		if capacity > 0 {
			return 1.0
		}
		return 0.5
	}
	ratio := float64(capacity) / float64(required)
	switch {
	case ratio >= 0.8 && ratio <= 1.5:
		return 1.0
	case ratio < 0.8:
		return clamp(ratio/0.8, 0, 1)
	default:
		return clamp(1.0-(ratio-1.5)*0.1, 0.5, 1)
	}
}

// EquipmentScore rates computer availability against the requested count.
func EquipmentScore(computers, required int) float64 {
	if required == 0 {
		return 1.0
	}
	if computers == 0 {
		return 0.0
	}
	ratio := float64(computers) / float64(required)
	if ratio >= 1.0 {
		return 1.0
	}
	return ratio
}

// AVScore rates projector availability. A missing required projector is
// disqualifying; an unneeded one is a small bonus over the 0.8 baseline.
func AVScore(hasProjector, required bool) float64 {
	switch {
	case required && !hasProjector:
		return 0.0
	case hasProjector:
		return 1.0
	default:
		return 0.8
	}
}
