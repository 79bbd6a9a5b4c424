package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/burrowhq/burrow/internal/housework"
	"github.com/burrowhq/burrow/internal/identity"
	"github.com/burrowhq/burrow/internal/websocket"
)

type UserHandler struct {
	svc    *housework.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewUserHandler(svc *housework.Service, hub *websocket.Hub, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, hub: hub, logger: logger}
}

func (h *UserHandler) broadcast(userID string, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(userID, msg)
	}
}

type setupRequest struct {
	DisplayName string `json:"display_name"`
}

// Setup seeds a fresh household: user record, template rooms, starter
// chores. Called once after account creation.
func (h *UserHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user, err := h.svc.SetupHousehold(userID, strings.TrimSpace(req.DisplayName))
	if err != nil {
		h.logger.Error("setup household", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	user, err := h.svc.Profile(userID)
	if err != nil {
		h.logger.Error("get profile", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type profileRequest struct {
	DisplayName string            `json:"display_name"`
	Avatar      map[string]string `json:"avatar"`
	Coins       int               `json:"coins"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user, err := h.svc.UpdateProfile(userID, strings.TrimSpace(req.DisplayName), req.Avatar, req.Coins)
	if err != nil {
		h.logger.Error("update profile", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("profile", "updated", userID, ""))
	writeJSON(w, http.StatusOK, user)
}

// Progress reports whole-household completion, resetting any tasks whose
// recurrence window elapsed before counting.
func (h *UserHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	progress, err := h.svc.HouseholdProgress(userID)
	if err != nil {
		h.logger.Error("household progress", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())

	if err := h.svc.DeleteAccount(userID); err != nil {
		h.logger.Error("delete account", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("account", "deleted", userID, ""))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
