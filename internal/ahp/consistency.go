package ahp

import "fmt"

// ConsistencyThreshold is Saaty's conventional acceptability bound:
// a consistency ratio below 0.1 means the judgments are coherent enough
// to trust the derived weights.
const ConsistencyThreshold = 0.1

// randomIndexTable holds Saaty's Random Index reference values, indexed by
// matrix order. RI is the average consistency index of randomly generated
// reciprocal matrices of that order.
var randomIndexTable = []float64{
	0,    // n=0, unused
	0,    // n=1
	0,    // n=2
	0.58, // n=3
	0.90, // n=4
	1.12, // n=5
	1.24, // n=6
	1.32, // n=7
	1.41, // n=8
	1.45, // n=9
	1.49, // n=10
}

func randomIndex(n int) float64 {
	if n >= len(randomIndexTable) {
		return randomIndexTable[len(randomIndexTable)-1]
	}
	return randomIndexTable[n]
}

// ConsistencyRatio estimates how self-contradictory the judgments behind m
// are, given its priority weights. The principal eigenvalue is approximated
// as the mean of (Mw)_i / w_i, then CI = (lambda - n) / (n - 1) and
// CR = CI / RI(n). Orders below 3 carry at most one independent judgment
// and are defined as perfectly consistent.
//
// A zero weight means the matrix is degenerate; that is reported as
// ErrInvalidInput instead of letting NaN or Inf escape.
func ConsistencyRatio(m *Matrix, weights []float64) (float64, error) {
	n := m.Order()
	if len(weights) != n {
		return 0, fmt.Errorf("%w: weight vector length %d does not match matrix order %d",
			ErrInvalidInput, len(weights), n)
	}
	for i, w := range weights {
		if w == 0 {
			return 0, fmt.Errorf("%w: zero weight for criterion %q", ErrInvalidInput, m.criteria[i])
		}
	}
	if n < 3 {
		return 0, nil
	}

	var lambdaSum float64
	for i := 0; i < n; i++ {
		var row float64
		for j := 0; j < n; j++ {
			row += m.At(i, j) * weights[j]
		}
		lambdaSum += row / weights[i]
	}
	lambdaMax := lambdaSum / float64(n)

	ci := (lambdaMax - float64(n)) / float64(n-1)
	cr := ci / randomIndex(n)
	if cr < 0 {
		// lambdaMax can dip a hair under n from rounding; clamp so CR
		// stays non-negative as documented.
		cr = 0
	}
	return cr, nil
}
