package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/roomsense/roomrank/internal/ahp"
	"github.com/roomsense/roomrank/internal/ranking"
	"github.com/roomsense/roomrank/internal/telemetry"
)

type RankingHandler struct {
	ranker    *ranking.Ranker
	telemetry telemetry.Client
}

func NewRankingHandler(ranker *ranking.Ranker, tc telemetry.Client) *RankingHandler {
	return &RankingHandler{ranker: ranker, telemetry: tc}
}

func (h *RankingHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req ranking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.ranker.Rank(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ahp.ErrInvalidInput) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.telemetry != nil {
		ev := telemetry.RankingCompletedEvent{
			RoomsEvaluated:   resp.TotalRoomsEvaluated,
			ConsistencyRatio: resp.Preferences.ConsistencyRatio,
			Timestamp:        time.Now().UTC(),
		}
		if len(resp.RankedRooms) > 0 {
			ev.BestRoom = resp.RankedRooms[0].RoomName
			ev.BestScore = resp.RankedRooms[0].OverallScore
		}
		_ = h.telemetry.Publish(telemetry.SubjectRankingDone, ev)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Example returns the default preference profile evaluated end to end, so
// clients can see the judgment format and the weights it produces.
func (h *RankingHandler) Example(w http.ResponseWriter, r *http.Request) {
	res, err := ahp.EvaluateHierarchy(ahp.DefaultHierarchy())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"request": map[string]interface{}{
			"main_judgments": map[string]float64{
				"Comfort vs Health":    1.2,
				"Comfort vs Usability": 2.0,
				"Health vs Usability":  1.5,
			},
			"facility_requirements":     map[string]interface{}{"min_seating": 10, "videoprojector": true},
			"environmental_preferences": map[string]interface{}{"temperature_min": 20, "temperature_max": 23},
		},
		"evaluation": res,
	})
}

type evaluateRequest struct {
	Criteria  []string           `json:"criteria"`
	Judgments map[string]float64 `json:"judgments"`

	MainJudgments map[string]float64            `json:"main_judgments,omitempty"`
	SubJudgments  map[string]map[string]float64 `json:"sub_judgments,omitempty"`
}

// EvaluatePreferences runs the weighting step alone. With explicit criteria
// it evaluates a single matrix; otherwise it treats the payload as
// hierarchy judgments over the default criteria tree.
func (h *RankingHandler) EvaluatePreferences(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Criteria) > 0 {
		res, err := ahp.EvaluateJudgments(req.Criteria, req.Judgments)
		if err != nil {
			writeEvaluationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	prefs, err := h.ranker.EvaluatePreferences(&ranking.Request{
		MainJudgments: req.MainJudgments,
		SubJudgments:  req.SubJudgments,
	})
	if err != nil {
		writeEvaluationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func writeEvaluationError(w http.ResponseWriter, err error) {
	if errors.Is(err, ahp.ErrInvalidInput) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
