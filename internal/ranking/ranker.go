package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/roomsense/roomrank/internal/ahp"
	"github.com/roomsense/roomrank/internal/cache"
	"github.com/roomsense/roomrank/internal/metrics"
	"github.com/roomsense/roomrank/internal/scoring"
	"github.com/roomsense/roomrank/internal/store"
)

// neutralScore stands in for a criterion with no data, so a room is
// neither rewarded nor punished for a sensor it lacks.
const neutralScore = 0.5

// Ranker orchestrates a full room ranking: fetch, filter, enrich with
// sensor averages and availability, derive AHP weights from the request's
// judgments, score and sort. It is safe for concurrent use; per-request
// state lives on the call stack.
type Ranker struct {
	store            store.Store
	cache            cache.Cache
	defaults         *ahp.Hierarchy
	window           int
	defaultDuration  time.Duration
	consistencyLimit float64
	logger           *slog.Logger
}

// Config holds the ranking knobs. Zero values fall back to the defaults.
type Config struct {
	// SensorWindow is how many recent readings per sensor feed the average.
	SensorWindow int
	// DefaultDuration is the availability window when a request gives a
	// time but no duration.
	DefaultDuration time.Duration
	// ConsistencyLimit is the CR above which judgments are flagged
	// inconsistent.
	ConsistencyLimit float64
}

// New creates a Ranker. cache may be nil to disable average caching.
func New(s store.Store, c cache.Cache, cfg Config, logger *slog.Logger) *Ranker {
	if cfg.SensorWindow <= 0 {
		cfg.SensorWindow = 10
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = time.Hour
	}
	if cfg.ConsistencyLimit <= 0 {
		cfg.ConsistencyLimit = ahp.ConsistencyThreshold
	}
	return &Ranker{
		store:            s,
		cache:            c,
		defaults:         ahp.DefaultHierarchy(),
		window:           cfg.SensorWindow,
		defaultDuration:  cfg.DefaultDuration,
		consistencyLimit: cfg.ConsistencyLimit,
		logger:           logger,
	}
}

// Rank evaluates every room that passes the facility filter and returns
// them best first. Invalid pairwise judgments surface as ahp.ErrInvalidInput
// for the API layer to turn into a validation response.
func (r *Ranker) Rank(ctx context.Context, req *Request) (*Response, error) {
	started := time.Now()

	prefs, err := r.EvaluatePreferences(req)
	if err != nil {
		metrics.RankingRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}

	rooms, err := r.store.ListRooms(ctx)
	if err != nil {
		metrics.RankingRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms = filterByFacilities(rooms, req.FacilityRequirements)
	metrics.RoomsEvaluated.Observe(float64(len(rooms)))

	ranked := make([]*RankedRoom, 0, len(rooms))
	for _, room := range rooms {
		rr, err := r.scoreRoom(ctx, room, req, prefs)
		if err != nil {
			metrics.RankingRequests.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("score room %s: %w", room.Name, err)
		}
		ranked = append(ranked, rr)
	}

	sortAndRank(ranked)

	metrics.RankingRequests.WithLabelValues("ok").Inc()
	metrics.EvaluationDuration.Observe(time.Since(started).Seconds())

	return &Response{
		RankedRooms:         ranked,
		TotalRoomsEvaluated: len(ranked),
		Timestamp:           time.Now().UTC(),
		Preferences:         prefs,
		RequestSummary:      summarize(req, prefs),
	}, nil
}

// EvaluatePreferences turns the request's pairwise judgments into a weight
// hierarchy, falling back to the default profile where the request is
// silent.
func (r *Ranker) EvaluatePreferences(req *Request) (*PreferenceEvaluation, error) {
	h := &ahp.Hierarchy{Main: r.defaults.Main, Sub: r.defaults.Sub}

	if len(req.MainJudgments) > 0 {
		main, err := ahp.ParseComparisons(r.defaults.Main.Criteria(), req.MainJudgments)
		if err != nil {
			return nil, err
		}
		h.Main = main
	}
	if len(req.SubJudgments) > 0 {
		sub := make(map[string]*ahp.Comparisons, len(r.defaults.Sub))
		for name, cmp := range r.defaults.Sub {
			sub[name] = cmp
		}
		for mainCrit, judgments := range req.SubJudgments {
			base, ok := r.defaults.Sub[mainCrit]
			if !ok {
				return nil, fmt.Errorf("%w: unknown main criterion %q", ahp.ErrInvalidInput, mainCrit)
			}
			cmp, err := ahp.ParseComparisons(base.Criteria(), judgments)
			if err != nil {
				return nil, fmt.Errorf("sub-criteria of %s: %w", mainCrit, err)
			}
			sub[mainCrit] = cmp
		}
		h.Sub = sub
	}

	res, err := ahp.EvaluateHierarchy(h)
	if err != nil {
		return nil, err
	}

	// The single reported ratio is the worst matrix in the hierarchy, and
	// the verdict applies the configured limit to it.
	var worst float64
	for _, cr := range res.ConsistencyRatios {
		if cr > worst {
			worst = cr
		}
	}
	return &PreferenceEvaluation{
		Weights:           res.GlobalWeights,
		MainWeights:       res.MainWeights,
		subWeights:        res.SubWeights,
		ConsistencyRatio:  worst,
		ConsistencyRatios: res.ConsistencyRatios,
		IsConsistent:      worst < r.consistencyLimit,
	}, nil
}

func (r *Ranker) scoreRoom(ctx context.Context, room *store.Room, req *Request, prefs *PreferenceEvaluation) (*RankedRoom, error) {
	averages, err := r.averagesFor(ctx, room.Name)
	if err != nil {
		return nil, err
	}

	leaf, conditions := leafScores(averages, room.Facilities, req)

	available := true
	if req.RequestedTime != nil {
		duration := r.defaultDuration
		if req.DurationMinutes > 0 {
			duration = time.Duration(req.DurationMinutes) * time.Minute
		}
		end := req.RequestedTime.Add(duration)
		conflict, err := r.store.HasConflict(ctx, room.Name, *req.RequestedTime, end)
		if err != nil {
			return nil, fmt.Errorf("availability check: %w", err)
		}
		available = !conflict
	}

	final, mains, err := scoring.AggregateHierarchy(req.Method, leaf, prefs.MainWeights, prefs.subWeights)
	if err != nil {
		return nil, err
	}

	return &RankedRoom{
		RoomName:          room.Name,
		OverallScore:      round3(final),
		MainScores:        round3Map(mains),
		CriterionScores:   round3Map(leaf),
		CurrentConditions: conditions,
		Facilities:        room.Facilities,
		IsAvailable:       available,
	}, nil
}

// averagesFor reads the windowed sensor averages, going through the cache
// when one is configured.
func (r *Ranker) averagesFor(ctx context.Context, roomName string) (map[string]store.SensorAverage, error) {
	key := fmt.Sprintf("averages:%s:%d", roomName, r.window)
	if r.cache != nil {
		if raw, ok := r.cache.Get(ctx, key); ok {
			var cached map[string]store.SensorAverage
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			r.cache.Delete(ctx, key)
		}
	}

	averages, err := r.store.RecentAverages(ctx, roomName, r.window)
	if err != nil {
		return nil, fmt.Errorf("sensor averages: %w", err)
	}
	if r.cache != nil {
		if raw, err := json.Marshal(averages); err == nil {
			r.cache.Set(ctx, key, raw)
		}
	}
	return averages, nil
}

// sensorCriteria maps stored sensor types onto hierarchy sub-criteria.
var sensorCriteria = map[string]string{
	"temperature": ahp.CriterionTemperature,
	"light":       ahp.CriterionLighting,
	"noise":       ahp.CriterionNoise,
	"humidity":    ahp.CriterionHumidity,
	"co2":         ahp.CriterionCO2,
	"air_quality": ahp.CriterionAirQuality,
	"voc":         ahp.CriterionVOC,
}

// leafScores maps sensor averages and facilities onto every sub-criterion
// of the hierarchy. Sensors without data score neutral.
func leafScores(averages map[string]store.SensorAverage, fac store.Facilities, req *Request) (map[string]float64, map[string]float64) {
	leaf := map[string]float64{
		ahp.CriterionTemperature: neutralScore,
		ahp.CriterionLighting:    neutralScore,
		ahp.CriterionNoise:       neutralScore,
		ahp.CriterionHumidity:    neutralScore,
		ahp.CriterionCO2:         neutralScore,
		ahp.CriterionAirQuality:  neutralScore,
		ahp.CriterionVOC:         neutralScore,
	}
	conditions := make(map[string]float64, len(averages))

	configs := overrideConfigs(req.EnvironmentalPreferences)
	for sensorType, avg := range averages {
		criterion, ok := sensorCriteria[sensorType]
		if !ok {
			continue
		}
		conditions[sensorType] = avg.Average
		if cfg, ok := configs[criterion]; ok {
			leaf[criterion] = cfg.apply(avg.Average)
			continue
		}
		if fn, err := scoring.MappingFor(sensorType); err == nil {
			leaf[criterion] = fn(avg.Average)
		}
	}

	requiredSeats, requiredComputers := 0, 0
	needProjector := false
	if fr := req.FacilityRequirements; fr != nil {
		if fr.MinSeating != nil {
			requiredSeats = *fr.MinSeating
		}
		if fr.Computers != nil {
			requiredComputers = *fr.Computers
		}
		if fr.Videoprojector != nil {
			needProjector = *fr.Videoprojector
		}
	}
	leaf[ahp.CriterionSeating] = scoring.SeatingScore(fac.SeatingCapacity, requiredSeats)
	leaf[ahp.CriterionEquipment] = scoring.EquipmentScore(fac.Computers, requiredComputers)
	leaf[ahp.CriterionAVFacilities] = scoring.AVScore(fac.Videoprojector, needProjector)

	return leaf, conditions
}

func filterByFacilities(rooms []*store.Room, req *FacilityRequirements) []*store.Room {
	if req == nil {
		return rooms
	}
	filtered := rooms[:0:0]
	for _, room := range rooms {
		f := room.Facilities
		if req.Videoprojector != nil && f.Videoprojector != *req.Videoprojector {
			continue
		}
		if req.MinSeating != nil && f.SeatingCapacity < *req.MinSeating {
			continue
		}
		if req.Computers != nil && *req.Computers > 0 && f.Computers == 0 {
			continue
		}
		if req.Whiteboard != nil && f.Whiteboard != *req.Whiteboard {
			continue
		}
		filtered = append(filtered, room)
	}
	return filtered
}

// sortAndRank orders rooms available-first, then by score descending, and
// assigns 1-based ranks where exact score ties share a rank.
func sortAndRank(rooms []*RankedRoom) {
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].IsAvailable != rooms[j].IsAvailable {
			return rooms[i].IsAvailable
		}
		if rooms[i].OverallScore != rooms[j].OverallScore {
			return rooms[i].OverallScore > rooms[j].OverallScore
		}
		return rooms[i].RoomName < rooms[j].RoomName
	})
	rank := 1
	for i, room := range rooms {
		if i > 0 && (room.OverallScore != rooms[i-1].OverallScore || room.IsAvailable != rooms[i-1].IsAvailable) {
			rank = i + 1
		}
		room.Rank = rank
	}
}

func summarize(req *Request, prefs *PreferenceEvaluation) *RequestSummary {
	type wc struct {
		name   string
		weight float64
	}
	ordered := make([]wc, 0, len(prefs.Weights))
	for name, w := range prefs.Weights {
		ordered = append(ordered, wc{name, w})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].weight != ordered[j].weight {
			return ordered[i].weight > ordered[j].weight
		}
		return ordered[i].name < ordered[j].name
	})
	top := make([]string, 0, 3)
	for i := 0; i < len(ordered) && i < 3; i++ {
		top = append(top, ordered[i].name)
	}
	return &RequestSummary{
		TopCriteria:              top,
		FacilityRequirements:     req.FacilityRequirements != nil,
		EnvironmentalPreferences: req.EnvironmentalPreferences != nil,
		TimeSpecific:             req.RequestedTime != nil,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round3Map(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round3(v)
	}
	return out
}
