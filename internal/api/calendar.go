package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roomsense/roomrank/internal/store"
	"github.com/roomsense/roomrank/internal/telemetry"
)

type CalendarHandler struct {
	store           store.Store
	telemetry       telemetry.Client
	defaultDuration time.Duration
}

func NewCalendarHandler(s store.Store, tc telemetry.Client, defaultDuration time.Duration) *CalendarHandler {
	if defaultDuration <= 0 {
		defaultDuration = time.Hour
	}
	return &CalendarHandler{store: s, telemetry: tc, defaultDuration: defaultDuration}
}

// Availability answers whether a room is free for a slot. The slot starts
// at ?at (RFC 3339, default now) and runs for ?duration_minutes, falling
// back to the configured default duration.
func (h *CalendarHandler) Availability(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	start := time.Now().UTC()
	if v := r.URL.Query().Get("at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid at, want RFC 3339"})
			return
		}
		start = t
	}
	duration := h.defaultDuration
	if v := r.URL.Query().Get("duration_minutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid duration_minutes"})
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}
	end := start.Add(duration)

	room, err := h.store.GetRoom(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if room == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}

	conflict, err := h.store.HasConflict(r.Context(), name, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room_name":    name,
		"start_time":   start,
		"end_time":     end,
		"is_available": !conflict,
	})
}

type createEventRequest struct {
	RoomName  string    `json:"room_name"`
	Title     string    `json:"title,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status,omitempty"`
}

func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.RoomName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "room_name required"})
		return
	}
	if !req.EndTime.After(req.StartTime) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end_time must be after start_time"})
		return
	}

	event := &store.CalendarEvent{
		RoomName:  req.RoomName,
		Title:     req.Title,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Status:    store.EventStatus(req.Status),
	}
	if err := h.store.CreateEvent(r.Context(), event); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.telemetry != nil {
		_ = h.telemetry.Publish(telemetry.SubjectEventBooked(event.RoomName), telemetry.EventBookedEvent{
			RoomName:  event.RoomName,
			Title:     event.Title,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
		})
	}

	writeJSON(w, http.StatusCreated, event)
}
