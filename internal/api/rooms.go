package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomsense/roomrank/internal/store"
)

type RoomsHandler struct {
	store store.Store
}

func NewRoomsHandler(s store.Store) *RoomsHandler {
	return &RoomsHandler{store: s}
}

func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.store.ListRooms(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rooms == nil {
		rooms = []*store.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	room, err := h.store.GetRoom(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if room == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}
	writeJSON(w, http.StatusOK, room)
}

type createRoomRequest struct {
	Name       string           `json:"name"`
	Building   string           `json:"building,omitempty"`
	Floor      int              `json:"floor,omitempty"`
	Facilities store.Facilities `json:"facilities"`
}

func (h *RoomsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	room := &store.Room{
		Name:       req.Name,
		Building:   req.Building,
		Floor:      req.Floor,
		Facilities: req.Facilities,
	}
	if err := h.store.CreateRoom(r.Context(), room); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, room)
}
