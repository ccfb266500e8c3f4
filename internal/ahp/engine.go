package ahp

// Result is the outcome of a single evaluation: one weight per criterion
// (summing to 1) plus the consistency verdict for the judgments that
// produced them. The JSON field names are part of the ranking API contract.
type Result struct {
	Weights          map[string]float64 `json:"weights"`
	ConsistencyRatio float64            `json:"consistency_ratio"`
	IsConsistent     bool               `json:"is_consistent"`
}

// Evaluate builds the reciprocal matrix, derives geometric-mean priority
// weights and measures their consistency in one pure call. The input is
// not mutated and identical inputs always produce identical results.
func Evaluate(cmp *Comparisons) (*Result, error) {
	m := BuildMatrix(cmp)
	weights := PriorityWeights(m)
	cr, err := ConsistencyRatio(m, weights)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]float64, len(weights))
	for i, name := range m.Criteria() {
		byName[name] = weights[i]
	}
	return &Result{
		Weights:          byName,
		ConsistencyRatio: cr,
		IsConsistent:     cr < ConsistencyThreshold,
	}, nil
}

// EvaluateJudgments is the wire-level convenience: ordered criteria plus
// "A vs B"-keyed Saaty strengths, as received by the HTTP layer.
func EvaluateJudgments(criteria []string, judgments map[string]float64) (*Result, error) {
	cmp, err := ParseComparisons(criteria, judgments)
	if err != nil {
		return nil, err
	}
	return Evaluate(cmp)
}
