package ahp

import "math"

// PriorityWeights derives the normalized priority vector using the row
// geometric-mean method: gm[i] = (prod_j M[i][j])^(1/n), then normalize so
// the weights sum to 1. The geometric mean is deliberate: it needs no
// iteration and cannot fail to converge. Do not swap in an eigensolver,
// the rest of the system depends on these exact values.
func PriorityWeights(m *Matrix) []float64 {
	n := m.Order()
	if n == 1 {
		return []float64{1}
	}

	weights := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		// Product in log space keeps large Saaty values from overflowing
		// for wide matrices.
		var logSum float64
		for j := 0; j < n; j++ {
			logSum += math.Log(m.At(i, j))
		}
		gm := math.Exp(logSum / float64(n))
		weights[i] = gm
		sum += gm
	}
	for i := range weights {
		weights[i] /= sum
	}

	// Drift from the normalize step is negligible, but renormalize if it
	// ever exceeds tolerance so downstream sums hold exactly.
	var total float64
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-1) > 1e-9 {
		for i := range weights {
			weights[i] /= total
		}
	}
	return weights
}
