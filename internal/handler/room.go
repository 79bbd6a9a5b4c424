package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/burrowhq/burrow/internal/housework"
	"github.com/burrowhq/burrow/internal/identity"
	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/websocket"
)

type RoomHandler struct {
	svc    *housework.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewRoomHandler(svc *housework.Service, hub *websocket.Hub, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{svc: svc, hub: hub, logger: logger}
}

func (h *RoomHandler) broadcast(userID string, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(userID, msg)
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	rooms, err := h.svc.Rooms(userID)
	if err != nil {
		h.logger.Error("list rooms", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// House returns the entry room. A user with no rooms gets a 404 so the
// client can show the first-run setup flow.
func (h *RoomHandler) House(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	room, err := h.svc.HouseRoom(userID)
	if err != nil {
		h.logger.Error("get house room", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}
	if room == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no rooms"})
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	var req housework.RoomInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	room, err := h.svc.CreateRoom(userID, req)
	if err != nil {
		h.logger.Error("create room", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("room", "created", room.ID, ""))
	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")

	if err := h.svc.DeleteRoom(userID, roomID); err != nil {
		h.logger.Error("delete room", "user_id", userID, "room_id", roomID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("room", "deleted", roomID, ""))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Tasks returns the room's tasks with the reset policy applied, plus the
// completion summary the room screens render.
func (h *RoomHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")

	progress, err := h.svc.RoomProgress(userID, roomID)
	if err != nil {
		h.logger.Error("room progress", "user_id", userID, "room_id", roomID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SaveTasks commits the edit screen's batch of deletions, additions, and
// renames in one request, then returns the refreshed summary.
func (h *RoomHandler) SaveTasks(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")

	var req housework.RoomEdits
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.svc.ApplyRoomEdits(userID, roomID, req); err != nil {
		h.logger.Error("apply room edits", "user_id", userID, "room_id", roomID, "error", err)
		writeServiceError(w, err)
		return
	}

	progress, err := h.svc.RoomProgress(userID, roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("room_tasks", "saved", roomID, roomID))
	writeJSON(w, http.StatusOK, progress)
}
