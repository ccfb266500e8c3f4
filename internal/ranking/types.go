package ranking

import (
	"time"

	"github.com/roomsense/roomrank/internal/ahp"
	"github.com/roomsense/roomrank/internal/scoring"
	"github.com/roomsense/roomrank/internal/store"
)

// Request is the ranking API payload. Judgments use the "A vs B" wire form
// on the Saaty scale; anything omitted falls back to the default profile.
type Request struct {
	// MainJudgments compares Comfort, Health and Usability pairwise.
	MainJudgments map[string]float64 `json:"main_judgments,omitempty"`
	// SubJudgments compares the sub-criteria of one main criterion,
	// keyed by the main criterion's name.
	SubJudgments map[string]map[string]float64 `json:"sub_judgments,omitempty"`

	EnvironmentalPreferences *EnvironmentalPreferences `json:"environmental_preferences,omitempty"`
	FacilityRequirements     *FacilityRequirements     `json:"facility_requirements,omitempty"`

	RequestedTime   *time.Time `json:"requested_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`

	Method scoring.Method `json:"aggregation_method,omitempty"`
}

// EnvironmentalPreferences narrows the comfort bands a user cares about.
// Nil fields keep the standards-based defaults.
type EnvironmentalPreferences struct {
	TemperatureMin *float64 `json:"temperature_min,omitempty"`
	TemperatureMax *float64 `json:"temperature_max,omitempty"`
	HumidityMin    *float64 `json:"humidity_min,omitempty"`
	HumidityMax    *float64 `json:"humidity_max,omitempty"`
	CO2Max         *float64 `json:"co2_max,omitempty"`
	NoiseMax       *float64 `json:"noise_max,omitempty"`
}

// FacilityRequirements filters rooms before scoring. Nil fields do not
// filter.
type FacilityRequirements struct {
	Videoprojector *bool `json:"videoprojector,omitempty"`
	MinSeating     *int  `json:"min_seating,omitempty"`
	Computers      *int  `json:"computers,omitempty"`
	Whiteboard     *bool `json:"whiteboard,omitempty"`
}

// RankedRoom is one room's evaluation in the response, best rank first.
type RankedRoom struct {
	RoomName          string             `json:"room_name"`
	Rank              int                `json:"rank"`
	OverallScore      float64            `json:"overall_score"`
	MainScores        map[string]float64 `json:"main_scores"`
	CriterionScores   map[string]float64 `json:"criteria_scores"`
	CurrentConditions map[string]float64 `json:"current_conditions,omitempty"`
	Facilities        store.Facilities   `json:"facilities"`
	IsAvailable       bool               `json:"is_available"`
}

// PreferenceEvaluation reports the AHP outcome for the request's
// judgments. The weights / consistency_ratio / is_consistent field names
// are the stable API contract.
type PreferenceEvaluation struct {
	Weights           map[string]float64 `json:"weights"`
	MainWeights       map[string]float64 `json:"main_criteria_weights"`
	ConsistencyRatio  float64            `json:"consistency_ratio"`
	ConsistencyRatios map[string]float64 `json:"consistency_ratios"`
	IsConsistent      bool               `json:"is_consistent"`

	// Retained for aggregation, not serialized.
	subWeights map[string]map[string]float64
}

// RequestSummary mirrors back what the request asked for.
type RequestSummary struct {
	TopCriteria              []string `json:"top_criteria"`
	FacilityRequirements     bool     `json:"facility_requirements"`
	EnvironmentalPreferences bool     `json:"environmental_preferences"`
	TimeSpecific             bool     `json:"time_specific"`
}

// Response is the full ranking result.
type Response struct {
	RankedRooms         []*RankedRoom         `json:"ranked_rooms"`
	TotalRoomsEvaluated int                   `json:"total_rooms_evaluated"`
	Timestamp           time.Time             `json:"timestamp"`
	Preferences         *PreferenceEvaluation `json:"preferences"`
	RequestSummary      *RequestSummary       `json:"request_summary"`
}

// envConfig is a resolved per-criterion mapping override.
type envConfig struct {
	cfg      scoring.MappingConfig
	centered bool
}

func (e envConfig) apply(value float64) float64 {
	if e.centered {
		return scoring.MapCentered(value, e.cfg)
	}
	return scoring.MapLowerBetter(value, e.cfg)
}

// overrideConfigs converts user preferences into mapping configs. The
// acceptable band extends past the preferred band by the same margins the
// standards-based defaults use.
func overrideConfigs(prefs *EnvironmentalPreferences) map[string]envConfig {
	if prefs == nil {
		return nil
	}
	configs := make(map[string]envConfig)

	if prefs.TemperatureMin != nil || prefs.TemperatureMax != nil {
		cfg := scoring.TemperatureConfig
		if prefs.TemperatureMin != nil {
			cfg.OptimalMin = *prefs.TemperatureMin
			cfg.AcceptableMin = *prefs.TemperatureMin - 2
		}
		if prefs.TemperatureMax != nil {
			cfg.OptimalMax = *prefs.TemperatureMax
			cfg.AcceptableMax = *prefs.TemperatureMax + 2
		}
		configs[ahp.CriterionTemperature] = envConfig{cfg: cfg, centered: true}
	}

	if prefs.HumidityMin != nil || prefs.HumidityMax != nil {
		cfg := scoring.HumidityConfig
		if prefs.HumidityMin != nil {
			cfg.OptimalMin = *prefs.HumidityMin
			cfg.AcceptableMin = *prefs.HumidityMin - 10
		}
		if prefs.HumidityMax != nil {
			cfg.OptimalMax = *prefs.HumidityMax
			cfg.AcceptableMax = *prefs.HumidityMax + 10
		}
		configs[ahp.CriterionHumidity] = envConfig{cfg: cfg, centered: true}
	}

	if prefs.CO2Max != nil {
		cfg := scoring.CO2Config
		cfg.OptimalMax = *prefs.CO2Max * 0.6
		cfg.AcceptableMax = *prefs.CO2Max
		configs[ahp.CriterionCO2] = envConfig{cfg: cfg}
	}

	if prefs.NoiseMax != nil {
		cfg := scoring.NoiseConfig
		cfg.OptimalMax = *prefs.NoiseMax * 0.78
		cfg.AcceptableMax = *prefs.NoiseMax
		configs[ahp.CriterionNoise] = envConfig{cfg: cfg}
	}

	return configs
}
