package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/burrowhq/burrow/internal/housework"
	"github.com/burrowhq/burrow/internal/identity"
	"github.com/burrowhq/burrow/internal/websocket"
)

type TaskHandler struct {
	svc    *housework.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTaskHandler(svc *housework.Service, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(userID string, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(userID, msg)
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")

	var req housework.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	task, err := h.svc.AddTask(userID, roomID, req)
	if err != nil {
		h.logger.Error("create task", "user_id", userID, "room_id", roomID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("task", "created", task.ID, roomID))
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")
	taskID := r.PathValue("task_id")

	var req housework.TaskEdit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.ID = taskID

	task, err := h.svc.EditTask(userID, roomID, req)
	if err != nil {
		h.logger.Error("update task", "user_id", userID, "task_id", taskID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("task", "updated", taskID, roomID))
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")
	taskID := r.PathValue("task_id")

	if err := h.svc.RemoveTask(userID, roomID, taskID); err != nil {
		h.logger.Error("delete task", "user_id", userID, "task_id", taskID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("task", "deleted", taskID, roomID))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")
	taskID := r.PathValue("task_id")

	task, err := h.svc.CompleteTask(userID, roomID, taskID)
	if err != nil {
		h.logger.Error("complete task", "user_id", userID, "task_id", taskID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("task", "completed", taskID, roomID))
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")
	taskID := r.PathValue("task_id")

	task, err := h.svc.ReopenTask(userID, roomID, taskID)
	if err != nil {
		h.logger.Error("reopen task", "user_id", userID, "task_id", taskID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.broadcast(userID, websocket.NewMessage("task", "reopened", taskID, roomID))
	writeJSON(w, http.StatusOK, task)
}

// Find looks a task up by exact name. Missing tasks are a 404, not an
// error payload, so clients can probe for starter chores.
func (h *TaskHandler) Find(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserID(r.Context())
	roomID := r.PathValue("id")
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name query parameter is required"})
		return
	}

	task, err := h.svc.FindTask(userID, roomID, name)
	if err != nil {
		h.logger.Error("find task", "user_id", userID, "room_id", roomID, "error", err)
		writeServiceError(w, err)
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}
	writeJSON(w, http.StatusOK, task)
}
