package ahp

import "fmt"

// Hierarchy is a two-level criteria tree: pairwise judgments over the main
// criteria, and one judgment set per main criterion over its sub-criteria.
// A Hierarchy is an immutable input to EvaluateHierarchy; there is no
// shared default profile that gets mutated between calls.
type Hierarchy struct {
	Main *Comparisons
	Sub  map[string]*Comparisons
}

// HierarchyResult carries weights at every level. GlobalWeights maps each
// sub-criterion to main weight x sub weight, which is what room scoring
// multiplies against. ConsistencyRatios is keyed "main" plus one entry per
// sub-matrix; IsConsistent is the conjunction over all of them.
type HierarchyResult struct {
	MainWeights       map[string]float64            `json:"main_criteria_weights"`
	SubWeights        map[string]map[string]float64 `json:"sub_criteria_weights"`
	GlobalWeights     map[string]float64            `json:"weights"`
	ConsistencyRatios map[string]float64            `json:"consistency_ratios"`
	IsConsistent      bool                          `json:"is_consistent"`
}

// EvaluateHierarchy evaluates the main matrix and every sub-matrix, then
// folds sub weights through their parent's main weight into global weights.
func EvaluateHierarchy(h *Hierarchy) (*HierarchyResult, error) {
	main, err := Evaluate(h.Main)
	if err != nil {
		return nil, fmt.Errorf("main criteria: %w", err)
	}

	res := &HierarchyResult{
		MainWeights:       main.Weights,
		SubWeights:        make(map[string]map[string]float64, len(h.Sub)),
		GlobalWeights:     make(map[string]float64),
		ConsistencyRatios: map[string]float64{"main": main.ConsistencyRatio},
		IsConsistent:      main.IsConsistent,
	}

	for _, mainCrit := range h.Main.Criteria() {
		sub, ok := h.Sub[mainCrit]
		if !ok {
			// A main criterion without sub-criteria contributes its own
			// weight directly.
			res.GlobalWeights[mainCrit] = main.Weights[mainCrit]
			continue
		}
		subRes, err := Evaluate(sub)
		if err != nil {
			return nil, fmt.Errorf("sub-criteria of %s: %w", mainCrit, err)
		}
		res.SubWeights[mainCrit] = subRes.Weights
		res.ConsistencyRatios[mainCrit] = subRes.ConsistencyRatio
		if !subRes.IsConsistent {
			res.IsConsistent = false
		}
		for name, w := range subRes.Weights {
			res.GlobalWeights[name] = main.Weights[mainCrit] * w
		}
	}
	return res, nil
}

// DefaultHierarchy returns the built-in room-selection preference profile:
// Comfort/Health/Usability at the top, with the documented sub-criteria
// defaults. The main matrix targets roughly 42/35/23 and sits well under
// the consistency threshold.
func DefaultHierarchy() *Hierarchy {
	main := mustComparisons(
		[]string{CriterionComfort, CriterionHealth, CriterionUsability},
		[]judgment{
			{CriterionComfort, CriterionHealth, 1.2},
			{CriterionComfort, CriterionUsability, 2.0},
			{CriterionHealth, CriterionUsability, 1.5},
		})

	comfort := mustComparisons(
		[]string{CriterionTemperature, CriterionLighting, CriterionNoise, CriterionHumidity},
		[]judgment{
			{CriterionTemperature, CriterionLighting, 2},
			{CriterionTemperature, CriterionNoise, 2},
			{CriterionTemperature, CriterionHumidity, 3},
			{CriterionLighting, CriterionNoise, 1},
			{CriterionLighting, CriterionHumidity, 2},
			{CriterionNoise, CriterionHumidity, 2},
		})

	health := mustComparisons(
		[]string{CriterionCO2, CriterionAirQuality, CriterionVOC},
		[]judgment{
			{CriterionCO2, CriterionAirQuality, 2},
			{CriterionCO2, CriterionVOC, 2},
			{CriterionAirQuality, CriterionVOC, 1.5},
		})

	usability := mustComparisons(
		[]string{CriterionSeating, CriterionEquipment, CriterionAVFacilities},
		[]judgment{
			{CriterionSeating, CriterionEquipment, 2},
			{CriterionSeating, CriterionAVFacilities, 3},
			{CriterionEquipment, CriterionAVFacilities, 2},
		})

	return &Hierarchy{
		Main: main,
		Sub: map[string]*Comparisons{
			CriterionComfort:   comfort,
			CriterionHealth:    health,
			CriterionUsability: usability,
		},
	}
}

// Criterion names shared between the hierarchy, score mapping and the
// ranking API.
const (
	CriterionComfort   = "Comfort"
	CriterionHealth    = "Health"
	CriterionUsability = "Usability"

	CriterionTemperature  = "Temperature"
	CriterionLighting     = "Lighting"
	CriterionNoise        = "Noise"
	CriterionHumidity     = "Humidity"
	CriterionCO2          = "CO2"
	CriterionAirQuality   = "AirQuality"
	CriterionVOC          = "VOC"
	CriterionSeating      = "SeatingCapacity"
	CriterionEquipment    = "Equipment"
	CriterionAVFacilities = "AVFacilities"
)

type judgment struct {
	a, b     string
	strength float64
}

// mustComparisons builds a judgment set from compile-time constants; any
// error here is a programming mistake, not caller input.
func mustComparisons(criteria []string, judgments []judgment) *Comparisons {
	cmp, err := NewComparisons(criteria)
	if err != nil {
		panic(err)
	}
	for _, j := range judgments {
		if err := cmp.Set(j.a, j.b, j.strength); err != nil {
			panic(err)
		}
	}
	return cmp
}
