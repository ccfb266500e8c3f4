package ranking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/roomsense/roomrank/internal/ahp"
	"github.com/roomsense/roomrank/internal/cache"
	"github.com/roomsense/roomrank/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockStore struct {
	rooms         []*store.Room
	averages      map[string]map[string]store.SensorAverage
	busy          map[string]bool
	averageCall   int
	conflictStart time.Time
	conflictEnd   time.Time
}

func (m *mockStore) CreateRoom(_ context.Context, _ *store.Room) error { return nil }
func (m *mockStore) GetRoom(_ context.Context, name string) (*store.Room, error) {
	for _, r := range m.rooms {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}
func (m *mockStore) ListRooms(_ context.Context) ([]*store.Room, error) { return m.rooms, nil }
func (m *mockStore) InsertReading(_ context.Context, _ *store.SensorReading) error {
	return nil
}
func (m *mockStore) RecentAverages(_ context.Context, roomName string, _ int) (map[string]store.SensorAverage, error) {
	m.averageCall++
	return m.averages[roomName], nil
}
func (m *mockStore) CreateEvent(_ context.Context, _ *store.CalendarEvent) error { return nil }
func (m *mockStore) HasConflict(_ context.Context, roomName string, start, end time.Time) (bool, error) {
	m.conflictStart, m.conflictEnd = start, end
	return m.busy[roomName], nil
}
func (m *mockStore) GetStats(_ context.Context) (*store.Stats, error) { return &store.Stats{}, nil }
func (m *mockStore) Close() error                                     { return nil }

func avg(v float64) store.SensorAverage {
	return store.SensorAverage{Average: v, Samples: 10, LatestAt: time.Now()}
}

func twoRoomStore() *mockStore {
	return &mockStore{
		rooms: []*store.Room{
			{Name: "good", Facilities: store.Facilities{SeatingCapacity: 30, Videoprojector: true}},
			{Name: "stale", Facilities: store.Facilities{SeatingCapacity: 30, Videoprojector: true}},
		},
		averages: map[string]map[string]store.SensorAverage{
			"good": {
				"temperature": avg(22),
				"co2":         avg(500),
				"humidity":    avg(50),
				"noise":       avg(30),
			},
			"stale": {
				"temperature": avg(29),
				"co2":         avg(1600),
				"humidity":    avg(80),
				"noise":       avg(60),
			},
		},
		busy: map[string]bool{},
	}
}

func TestRankOrdersByScore(t *testing.T) {
	r := New(twoRoomStore(), nil, Config{}, discardLogger())
	resp, err := r.Rank(context.Background(), &Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalRoomsEvaluated != 2 {
		t.Fatalf("evaluated %d rooms, want 2", resp.TotalRoomsEvaluated)
	}
	if resp.RankedRooms[0].RoomName != "good" {
		t.Errorf("best room = %s, want good", resp.RankedRooms[0].RoomName)
	}
	if resp.RankedRooms[0].Rank != 1 || resp.RankedRooms[1].Rank != 2 {
		t.Errorf("ranks = %d,%d, want 1,2", resp.RankedRooms[0].Rank, resp.RankedRooms[1].Rank)
	}
	if resp.RankedRooms[0].OverallScore <= resp.RankedRooms[1].OverallScore {
		t.Errorf("scores not descending: %v then %v",
			resp.RankedRooms[0].OverallScore, resp.RankedRooms[1].OverallScore)
	}
}

func TestRankDefaultPreferences(t *testing.T) {
	r := New(twoRoomStore(), nil, Config{}, discardLogger())
	resp, err := r.Rank(context.Background(), &Request{})
	if err != nil {
		t.Fatal(err)
	}
	prefs := resp.Preferences
	if !prefs.IsConsistent {
		t.Error("default profile must evaluate consistent")
	}
	var sum float64
	for _, w := range prefs.Weights {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("global weights sum to %v, want 1", sum)
	}
	if math.Abs(prefs.MainWeights[ahp.CriterionComfort]-0.42) > 0.02 {
		t.Errorf("Comfort weight %v, want ~0.42", prefs.MainWeights[ahp.CriterionComfort])
	}
}

func TestRankCustomJudgments(t *testing.T) {
	r := New(twoRoomStore(), nil, Config{}, discardLogger())
	resp, err := r.Rank(context.Background(), &Request{
		MainJudgments: map[string]float64{
			"Health vs Comfort":    5,
			"Health vs Usability":  7,
			"Comfort vs Usability": 2,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	prefs := resp.Preferences
	if prefs.MainWeights[ahp.CriterionHealth] <= prefs.MainWeights[ahp.CriterionComfort] {
		t.Errorf("Health should outweigh Comfort: %v vs %v",
			prefs.MainWeights[ahp.CriterionHealth], prefs.MainWeights[ahp.CriterionComfort])
	}
}

func TestRankInvalidJudgments(t *testing.T) {
	r := New(twoRoomStore(), nil, Config{}, discardLogger())
	_, err := r.Rank(context.Background(), &Request{
		MainJudgments: map[string]float64{"Comfort vs Health": -2},
	})
	if !errors.Is(err, ahp.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}

	_, err = r.Rank(context.Background(), &Request{
		MainJudgments: map[string]float64{"Comfort vs Mystery": 3},
	})
	if !errors.Is(err, ahp.ErrInvalidInput) {
		t.Errorf("unknown criterion: got %v, want ErrInvalidInput", err)
	}
}

func TestRankFacilityFilter(t *testing.T) {
	ms := twoRoomStore()
	ms.rooms[1].Facilities.Videoprojector = false
	r := New(ms, nil, Config{}, discardLogger())

	needProjector := true
	resp, err := r.Rank(context.Background(), &Request{
		FacilityRequirements: &FacilityRequirements{Videoprojector: &needProjector},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalRoomsEvaluated != 1 {
		t.Fatalf("evaluated %d rooms, want 1", resp.TotalRoomsEvaluated)
	}
	if resp.RankedRooms[0].RoomName != "good" {
		t.Errorf("remaining room = %s, want good", resp.RankedRooms[0].RoomName)
	}
}

func TestRankAvailabilityDemotes(t *testing.T) {
	ms := twoRoomStore()
	ms.busy["good"] = true
	r := New(ms, nil, Config{}, discardLogger())

	when := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	resp, err := r.Rank(context.Background(), &Request{
		RequestedTime:   &when,
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatal(err)
	}
	// "good" scores higher but is booked; the free room leads.
	if resp.RankedRooms[0].RoomName != "stale" {
		t.Errorf("best room = %s, want available one", resp.RankedRooms[0].RoomName)
	}
	if resp.RankedRooms[0].IsAvailable != true || resp.RankedRooms[1].IsAvailable != false {
		t.Error("availability flags wrong")
	}
}

func TestRankOmittedDurationUsesDefault(t *testing.T) {
	ms := twoRoomStore()
	r := New(ms, nil, Config{}, discardLogger())

	when := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if _, err := r.Rank(context.Background(), &Request{RequestedTime: &when}); err != nil {
		t.Fatal(err)
	}
	if !ms.conflictStart.Equal(when) {
		t.Errorf("conflict window starts at %v, want %v", ms.conflictStart, when)
	}
	if got := ms.conflictEnd.Sub(ms.conflictStart); got != time.Hour {
		t.Errorf("conflict window spans %v, want the default hour", got)
	}
}

func TestRankConfiguredDefaultDuration(t *testing.T) {
	ms := twoRoomStore()
	r := New(ms, nil, Config{DefaultDuration: 30 * time.Minute}, discardLogger())

	when := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if _, err := r.Rank(context.Background(), &Request{RequestedTime: &when}); err != nil {
		t.Fatal(err)
	}
	if got := ms.conflictEnd.Sub(ms.conflictStart); got != 30*time.Minute {
		t.Errorf("conflict window spans %v, want 30m", got)
	}

	// An explicit duration still wins.
	if _, err := r.Rank(context.Background(), &Request{RequestedTime: &when, DurationMinutes: 90}); err != nil {
		t.Fatal(err)
	}
	if got := ms.conflictEnd.Sub(ms.conflictStart); got != 90*time.Minute {
		t.Errorf("conflict window spans %v, want 90m", got)
	}
}

func TestRankConsistencyLimit(t *testing.T) {
	// The default profile is near-consistent but not exact, so a tiny
	// limit flips the verdict without changing the weights.
	strict := New(twoRoomStore(), nil, Config{ConsistencyLimit: 1e-6}, discardLogger())
	resp, err := strict.Rank(context.Background(), &Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Preferences.IsConsistent {
		t.Error("tiny limit should flag the default profile inconsistent")
	}

	// 2 / 2 / 1 is mildly cyclic: CR ~0.19, past the standard threshold
	// but within a raised limit.
	relaxed := New(twoRoomStore(), nil, Config{ConsistencyLimit: 0.5}, discardLogger())
	resp, err = relaxed.Rank(context.Background(), &Request{
		MainJudgments: map[string]float64{"Comfort vs Health": 2, "Health vs Usability": 2, "Comfort vs Usability": 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Preferences.ConsistencyRatio < 0.1 || resp.Preferences.ConsistencyRatio > 0.5 {
		t.Fatalf("judgments gave CR %v, expected between 0.1 and 0.5", resp.Preferences.ConsistencyRatio)
	}
	if !resp.Preferences.IsConsistent {
		t.Error("raised limit should accept the mildly cyclic judgments")
	}
}

func TestRankNeutralWithoutSensors(t *testing.T) {
	ms := &mockStore{
		rooms:    []*store.Room{{Name: "bare", Facilities: store.Facilities{SeatingCapacity: 10}}},
		averages: map[string]map[string]store.SensorAverage{},
	}
	r := New(ms, nil, Config{}, discardLogger())
	resp, err := r.Rank(context.Background(), &Request{})
	if err != nil {
		t.Fatal(err)
	}
	room := resp.RankedRooms[0]
	if room.CriterionScores[ahp.CriterionCO2] != neutralScore {
		t.Errorf("missing sensor should score %v, got %v", neutralScore, room.CriterionScores[ahp.CriterionCO2])
	}
	if len(room.CurrentConditions) != 0 {
		t.Errorf("no conditions expected, got %v", room.CurrentConditions)
	}
}

func TestRankUsesCache(t *testing.T) {
	ms := twoRoomStore()
	c := cache.NewMemory(time.Minute, nil)
	r := New(ms, c, Config{}, discardLogger())

	if _, err := r.Rank(context.Background(), &Request{}); err != nil {
		t.Fatal(err)
	}
	first := ms.averageCall
	if _, err := r.Rank(context.Background(), &Request{}); err != nil {
		t.Fatal(err)
	}
	if ms.averageCall != first {
		t.Errorf("second run hit the store %d more times, want cached", ms.averageCall-first)
	}
}

func TestRankEnvironmentalPreferences(t *testing.T) {
	ms := &mockStore{
		rooms: []*store.Room{{Name: "warm", Facilities: store.Facilities{SeatingCapacity: 10}}},
		averages: map[string]map[string]store.SensorAverage{
			"warm": {"temperature": avg(25)},
		},
	}
	r := New(ms, nil, Config{}, discardLogger())

	// 25°C is fine by default but outside a 19–22 preference.
	lo, hi := 19.0, 22.0
	strict, err := r.Rank(context.Background(), &Request{
		EnvironmentalPreferences: &EnvironmentalPreferences{TemperatureMin: &lo, TemperatureMax: &hi},
	})
	if err != nil {
		t.Fatal(err)
	}
	relaxed, err := r.Rank(context.Background(), &Request{})
	if err != nil {
		t.Fatal(err)
	}
	s := strict.RankedRooms[0].CriterionScores[ahp.CriterionTemperature]
	d := relaxed.RankedRooms[0].CriterionScores[ahp.CriterionTemperature]
	if s >= d {
		t.Errorf("strict preference score %v should be below default %v", s, d)
	}
}

func TestSortAndRankTies(t *testing.T) {
	rooms := []*RankedRoom{
		{RoomName: "b", OverallScore: 0.8, IsAvailable: true},
		{RoomName: "a", OverallScore: 0.8, IsAvailable: true},
		{RoomName: "c", OverallScore: 0.6, IsAvailable: true},
	}
	sortAndRank(rooms)
	if rooms[0].Rank != 1 || rooms[1].Rank != 1 {
		t.Errorf("tied rooms ranks = %d,%d, want 1,1", rooms[0].Rank, rooms[1].Rank)
	}
	if rooms[2].Rank != 3 {
		t.Errorf("next room rank = %d, want 3", rooms[2].Rank)
	}
	if rooms[0].RoomName != "a" {
		t.Errorf("ties break by name: got %s first", rooms[0].RoomName)
	}
}
