package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roomsense/roomrank/internal/metrics"
	"github.com/roomsense/roomrank/internal/scoring"
	"github.com/roomsense/roomrank/internal/store"
)

type SensorsHandler struct {
	store store.Store
}

func NewSensorsHandler(s store.Store) *SensorsHandler {
	return &SensorsHandler{store: s}
}

type ingestReadingRequest struct {
	RoomName   string     `json:"room_name"`
	SensorType string     `json:"sensor_type"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

func (h *SensorsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.RoomName == "" || req.SensorType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "room_name and sensor_type required"})
		return
	}

	reading := &store.SensorReading{
		RoomName:   req.RoomName,
		SensorType: req.SensorType,
		Value:      req.Value,
		Unit:       req.Unit,
	}
	if req.RecordedAt != nil {
		reading.RecordedAt = req.RecordedAt.UTC()
	}

	if err := h.store.InsertReading(r.Context(), reading); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	metrics.SensorReadingsIngested.WithLabelValues("http").Inc()
	writeJSON(w, http.StatusCreated, reading)
}

type sensorAveragesResponse struct {
	RoomName string                        `json:"room_name"`
	Window   int                           `json:"window"`
	Sensors  map[string]sensorAverageEntry `json:"sensors"`
}

type sensorAverageEntry struct {
	Average  float64   `json:"average"`
	Score    *float64  `json:"score,omitempty"`
	Samples  int       `json:"samples"`
	LatestAt time.Time `json:"latest_at"`
}

// Averages reports the recent per-sensor averages for a room, each scored
// on the unit scale when a mapping for the sensor type exists.
func (h *SensorsHandler) Averages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	window := 10
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid window"})
			return
		}
		window = n
	}

	averages, err := h.store.RecentAverages(r.Context(), name, window)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := sensorAveragesResponse{
		RoomName: name,
		Window:   window,
		Sensors:  make(map[string]sensorAverageEntry, len(averages)),
	}
	for sensorType, avg := range averages {
		entry := sensorAverageEntry{
			Average:  avg.Average,
			Samples:  avg.Samples,
			LatestAt: avg.LatestAt,
		}
		if mapping, err := scoring.MappingFor(sensorType); err == nil {
			score := mapping(avg.Average)
			entry.Score = &score
		}
		resp.Sensors[sensorType] = entry
	}
	writeJSON(w, http.StatusOK, resp)
}
