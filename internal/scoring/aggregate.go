package scoring

import (
	"fmt"
	"math"
)

// Method selects how per-criterion scores are folded into one.
type Method string

const (
	// WeightedSum is the compensatory model: high scores offset low ones.
	WeightedSum Method = "weighted_sum"
	// WeightedProduct is non-compensatory: a near-zero score drags the
	// whole result down regardless of the others.
	WeightedProduct Method = "weighted_product"
	// Combined blends 70% WSM with 30% WPM for robustness.
	Combined Method = "combined"
)

// wpmEpsilon replaces zero scores in the product model so one hard zero
// does not erase every other criterion entirely.
const wpmEpsilon = 0.001

// Aggregate folds scores and weights with the given method. Weights are
// renormalized internally if they do not sum to 1.
func Aggregate(method Method, scores, weights map[string]float64) (float64, error) {
	switch method {
	case WeightedSum, "":
		return aggregateSum(scores, weights), nil
	case WeightedProduct:
		return aggregateProduct(scores, weights), nil
	case Combined:
		wsm := aggregateSum(scores, weights)
		wpm := aggregateProduct(scores, weights)
		return 0.7*wsm + 0.3*wpm, nil
	default:
		return 0, fmt.Errorf("unknown aggregation method %q", method)
	}
}

func aggregateSum(scores, weights map[string]float64) float64 {
	if len(scores) == 0 || len(weights) == 0 {
		return 0
	}
	var total, weightSum float64
	for name, score := range scores {
		w := weights[name]
		total += w * score
		weightSum += w
	}
	if weightSum > 0 && math.Abs(weightSum-1) > 1e-9 {
		total /= weightSum
	}
	return total
}

func aggregateProduct(scores, weights map[string]float64) float64 {
	if len(scores) == 0 || len(weights) == 0 {
		return 0
	}
	product := 1.0
	var weightSum float64
	for name, score := range scores {
		w := weights[name]
		if w == 0 {
			continue
		}
		product *= math.Pow(math.Max(wpmEpsilon, score), w)
		weightSum += w
	}
	if weightSum > 0 && math.Abs(weightSum-1) > 1e-9 {
		product = math.Pow(product, 1/weightSum)
	}
	return product
}

// AggregateHierarchy folds leaf scores bottom-up: each main criterion's
// sub-scores collapse under its sub-weights, then the main scores collapse
// under the main weights. Returns the final score and the per-main-criterion
// breakdown for display.
func AggregateHierarchy(method Method, leafScores map[string]float64, mainWeights map[string]float64, subWeights map[string]map[string]float64) (float64, map[string]float64, error) {
	mainScores := make(map[string]float64, len(mainWeights))
	for mainCrit := range mainWeights {
		sub, ok := subWeights[mainCrit]
		if !ok {
			// Leaf main criterion scores directly.
			mainScores[mainCrit] = leafScores[mainCrit]
			continue
		}
		scores := make(map[string]float64, len(sub))
		for name := range sub {
			scores[name] = leafScores[name]
		}
		s, err := Aggregate(method, scores, sub)
		if err != nil {
			return 0, nil, err
		}
		mainScores[mainCrit] = s
	}

	final, err := Aggregate(method, mainScores, mainWeights)
	if err != nil {
		return 0, nil, err
	}
	return final, mainScores, nil
}
