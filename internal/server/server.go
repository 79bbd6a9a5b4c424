package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/burrowhq/burrow/internal/handler"
	"github.com/burrowhq/burrow/internal/housework"
	"github.com/burrowhq/burrow/internal/identity"
	"github.com/burrowhq/burrow/internal/middleware"
	"github.com/burrowhq/burrow/internal/store"
	ws "github.com/burrowhq/burrow/internal/websocket"
)

type Server struct {
	db             *sql.DB
	hub            *ws.Hub
	svc            *housework.Service
	roomH          *handler.RoomHandler
	taskH          *handler.TaskHandler
	userH          *handler.UserHandler
	fallbackUserID string
	logger         *slog.Logger
}

func New(db *sql.DB, fallbackUserID string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	roomStore := store.NewRoomStore(db)
	taskStore := store.NewTaskStore(db)

	svc := housework.New(userStore, roomStore, taskStore, logger.With("component", "housework"))

	return &Server{
		db:             db,
		hub:            hub,
		svc:            svc,
		roomH:          handler.NewRoomHandler(svc, hub, logger.With("component", "room")),
		taskH:          handler.NewTaskHandler(svc, hub, logger.With("component", "task")),
		userH:          handler.NewUserHandler(svc, hub, logger.With("component", "user")),
		fallbackUserID: fallbackUserID,
		logger:         logger,
	}
}

// Hub returns the change-event hub, mainly for tests.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()
	outerMux.HandleFunc("GET /health", s.healthHandler)

	apiMux := http.NewServeMux()
	s.registerAPIRoutes(apiMux)

	resolve := identity.Middleware(s.fallbackUserID)
	outerMux.Handle("/api/", resolve(apiMux))
	outerMux.HandleFunc("GET /ws", ws.Handler(s.hub, identity.FromRequest(s.fallbackUserID), s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	// Household lifecycle
	mux.HandleFunc("POST /api/setup", s.userH.Setup)
	mux.HandleFunc("GET /api/profile", s.userH.Profile)
	mux.HandleFunc("PUT /api/profile", s.userH.UpdateProfile)
	mux.HandleFunc("GET /api/progress", s.userH.Progress)
	mux.HandleFunc("DELETE /api/account", s.userH.DeleteAccount)

	// Rooms
	mux.HandleFunc("GET /api/rooms", s.roomH.List)
	mux.HandleFunc("POST /api/rooms", s.roomH.Create)
	mux.HandleFunc("GET /api/rooms/house", s.roomH.House)
	mux.HandleFunc("DELETE /api/rooms/{id}", s.roomH.Delete)

	// Room tasks
	mux.HandleFunc("GET /api/rooms/{id}/tasks", s.roomH.Tasks)
	mux.HandleFunc("PUT /api/rooms/{id}/tasks", s.roomH.SaveTasks)
	mux.HandleFunc("POST /api/rooms/{id}/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/rooms/{id}/tasks/find", s.taskH.Find)
	mux.HandleFunc("PUT /api/rooms/{id}/tasks/{task_id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/rooms/{id}/tasks/{task_id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/rooms/{id}/tasks/{task_id}/complete", s.taskH.Complete)
	mux.HandleFunc("DELETE /api/rooms/{id}/tasks/{task_id}/complete", s.taskH.Reopen)
}
